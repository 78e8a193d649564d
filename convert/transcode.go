package convert

import (
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const toolName = "geno2vcf"

// Header metadata, fixed regardless of input content.
var headerMeta = []string{
	"##fileformat=VCFv4.2",
	"##source=" + toolName,
	`##INFO=<ID=DP,Number=1,Type=Integer,Description="Read Depth">`,
	`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`,
}

var vcfColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}

// Transcoder assembles VCF text from loaded markers.
type Transcoder struct {
	Samples SampleSet

	// Strict rejects genotype calls that match neither the missing sentinel
	// nor a pairing of the marker's alleles. When false, such calls encode
	// as 0/1 and a warning is logged, matching the historical behavior.
	Strict bool
}

// Header returns the fixed metadata lines plus the column header line, with
// sample names appended in column set order.
func (t *Transcoder) Header() []string {
	cols := append(append([]string(nil), vcfColumns...), t.Samples...)
	return append(append([]string(nil), headerMeta...), strings.Join(cols, "\t"))
}

// Line assembles the VCF data line for one marker: the nine fixed fields
// followed by one genotype code per sample, tab-separated.
func (t *Transcoder) Line(m *Marker) (string, error) {
	var b strings.Builder
	for i, f := range []string{m.Chrom, m.Pos, m.ID, m.Ref, m.Alt, ".", "PASS", ".", "GT"} {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(f)
	}
	for i, raw := range m.Genotypes {
		code, err := t.encode(m, i, raw)
		if err != nil {
			return "", err
		}
		b.WriteByte('\t')
		b.WriteString(code)
	}
	return b.String(), nil
}

func (t *Transcoder) encode(m *Marker, sample int, raw string) (string, error) {
	z := Classify(raw, m.Ref, m.Alt)
	if z != Invalid {
		return z.Code(), nil
	}
	name := ""
	if sample < len(t.Samples) {
		name = t.Samples[sample]
	}
	if t.Strict {
		return "", &InvalidGenotypeError{MarkerID: m.ID, Sample: name, Raw: raw}
	}
	log.WithFields(log.Fields{
		"marker": m.ID,
		"sample": name,
		"call":   raw,
	}).Warn("genotype call matches neither allele pairing, defaulting to 0/1")
	return Het.Code(), nil
}

// Document is a fully assembled VCF: the fixed header block plus one data
// line per marker.
type Document struct {
	header []string
	lines  []string
}

// Transcode assembles a Document with data lines in marker input order, the
// direct conversion variant.
func (t *Transcoder) Transcode(markers []Marker) (*Document, error) {
	doc := &Document{header: t.Header(), lines: make([]string, 0, len(markers))}
	for i := range markers {
		line, err := t.Line(&markers[i])
		if err != nil {
			return nil, err
		}
		doc.lines = append(doc.lines, line)
	}
	return doc, nil
}

// TranscodeCorrected is an alias of Transcode, kept for callers that
// historically requested a separate missing-value pass. Encoding is applied
// uniformly, so there is nothing left to correct.
func (t *Transcoder) TranscodeCorrected(markers []Marker) (*Document, error) {
	return t.Transcode(markers)
}

// Sort orders the data lines by chromosome, compared as text, then position,
// compared as an integer. Rows with equal keys keep their relative order.
// Sorting an already sorted document is a no-op. Returns d.
func (d *Document) Sort() *Document {
	sort.SliceStable(d.lines, func(i, j int) bool {
		return lineLess(d.lines[i], d.lines[j])
	})
	return d
}

// Lines returns a copy of the data lines in their current order.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Render joins the header block and data lines into the final
// newline-terminated VCF text.
func (d *Document) Render() string {
	var b strings.Builder
	for _, h := range d.header {
		b.WriteString(h)
		b.WriteByte('\n')
	}
	for _, l := range d.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

func lineLess(a, b string) bool {
	achrom, apos := lineKey(a)
	bchrom, bpos := lineKey(b)
	if achrom != bchrom {
		return achrom < bchrom
	}
	return posLess(apos, bpos)
}

func lineKey(line string) (chrom, pos string) {
	f := strings.SplitN(line, "\t", 3)
	chrom = f[0]
	if len(f) > 1 {
		pos = f[1]
	}
	return chrom, pos
}

// posLess compares positions numerically. A position that does not parse as
// an integer sorts after every numeric one and compares as text against
// other non-numeric positions.
func posLess(a, b string) bool {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	}
	return a < b
}
