package convert

import (
	"archive/zip"
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	filetype "gopkg.in/h2non/filetype.v1"
)

// The six fixed columns every input table must carry, by their exact
// case-sensitive header names. They may appear in any order among the first
// six fields; everything after the sixth field is a sample column.
var requiredColumns = []string{"id", "Name", "REF", "ALT", "CHROM", "POS"}

const fixedColumnCount = 6

// SampleSet is the ordered sequence of sample column names, derived once
// from the input header and shared read-only by every Marker from the same
// table.
type SampleSet []string

// LoadMarkers reads a comma- or tab-separated genotype table from path and
// returns the sample column set plus the markers in input row order. Zipped
// and gzipped input is read transparently.
func LoadMarkers(path string) (SampleSet, []Marker, error) {
	in, done, err := openInput(path)
	if err != nil {
		return nil, nil, err
	}
	defer done()
	return ReadMarkers(in)
}

// ReadMarkers parses a genotype table from r. The delimiter is sniffed from
// the header line: a tab anywhere selects TSV, otherwise CSV.
func ReadMarkers(r io.Reader) (SampleSet, []Marker, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<26)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, nil, errors.Wrap(err, "reading input header")
		}
		return nil, nil, errors.New("input table is empty")
	}
	headerLine := strings.TrimSuffix(sc.Text(), "\r")
	sep := ","
	if strings.ContainsRune(headerLine, '\t') {
		sep = "\t"
	}
	header := strings.Split(headerLine, sep)

	cols, err := fixedColumnIndex(header)
	if err != nil {
		return nil, nil, err
	}

	var samples SampleSet
	if len(header) > fixedColumnCount {
		samples = append(samples, header[fixedColumnCount:]...)
	}

	var markers []Marker
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		row := strings.Split(text, sep)
		if len(row) != len(header) {
			return nil, nil, &MalformedRowError{Line: line, Fields: len(row), Want: len(header)}
		}
		markers = append(markers, Marker{
			ID:        row[cols["id"]],
			Name:      row[cols["Name"]],
			Ref:       row[cols["REF"]],
			Alt:       row[cols["ALT"]],
			Chrom:     row[cols["CHROM"]],
			Pos:       row[cols["POS"]],
			Genotypes: append([]string(nil), row[fixedColumnCount:]...),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "reading input table")
	}
	return samples, markers, nil
}

// fixedColumnIndex locates the six required columns among the first six
// header fields. Names are case-sensitive.
func fixedColumnIndex(header []string) (map[string]int, error) {
	n := len(header)
	if n > fixedColumnCount {
		n = fixedColumnCount
	}
	idx := make(map[string]int, fixedColumnCount)
	for i := 0; i < n; i++ {
		idx[header[i]] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, &SchemaError{Column: name}
		}
	}
	return idx, nil
}

func openInput(path string) (io.Reader, func() error, error) {
	switch sniff(path) {
	case "zip":
		zr, err := zip.OpenReader(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening zipped input %s", path)
		}
		if len(zr.File) == 0 {
			zr.Close()
			return nil, nil, errors.Errorf("zip archive %s contains no files", path)
		}
		f, err := zr.File[0].Open()
		if err != nil {
			zr.Close()
			return nil, nil, errors.Wrapf(err, "reading zipped input %s", path)
		}
		return f, func() error {
			f.Close()
			return zr.Close()
		}, nil
	case "gz":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening input %s", path)
		}
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, errors.Wrapf(err, "unzipping input %s", path)
		}
		return gz, func() error {
			gz.Close()
			return f.Close()
		}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening input %s", path)
	}
	return f, f.Close, nil
}

// sniff reports the detected file type extension for path, "unknown" when
// the magic bytes match nothing filetype knows.
func sniff(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()
	bb := make([]byte, 262)
	n, err := f.Read(bb)
	if err != nil && err != io.EOF {
		return "unknown"
	}
	kind, err := filetype.Match(bb[:n])
	if err != nil {
		return "unknown"
	}
	return kind.Extension
}
