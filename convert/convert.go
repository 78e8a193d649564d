package convert

import (
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/brentp/vcfgo"
	"github.com/pkg/errors"
)

// Client drives a single conversion: load the genotype table, transcode it
// to VCF, and write the result to the output path.
type Client struct {
	InputFile  string
	OutputFile string

	// Strict rejects unrecognized genotype calls instead of defaulting
	// them to 0/1.
	Strict bool
	// Unsorted keeps input row order instead of sorting by chromosome
	// and position.
	Unsorted bool
	// Validate re-reads the rendered VCF before writing it.
	Validate bool
}

// NewClient returns a Client converting inputFile into outputFile with the
// default settings: legacy genotype handling, sorted output.
func NewClient(inputFile string, outputFile string) *Client {
	return &Client{
		InputFile:  inputFile,
		OutputFile: outputFile,
	}
}

// Convert runs the whole pipeline. An output path ending in .gz is written
// through a bgzf writer. No output file is created when loading or
// transcoding fails.
func (c *Client) Convert() error {
	text, err := c.render()
	if err != nil {
		return err
	}
	if c.Validate {
		if err := validateVCF(text); err != nil {
			return err
		}
	}
	return c.write(text)
}

func (c *Client) render() (string, error) {
	samples, markers, err := LoadMarkers(c.InputFile)
	if err != nil {
		return "", err
	}
	t := &Transcoder{Samples: samples, Strict: c.Strict}
	doc, err := t.Transcode(markers)
	if err != nil {
		return "", err
	}
	if !c.Unsorted {
		doc.Sort()
	}
	return doc.Render(), nil
}

func (c *Client) write(text string) error {
	out, err := os.Create(c.OutputFile)
	if err != nil {
		return errors.Wrapf(err, "creating %s", c.OutputFile)
	}
	var w io.Writer = out
	var bz *bgzf.Writer
	if strings.HasSuffix(c.OutputFile, ".gz") {
		bz = bgzf.NewWriter(out, 1)
		w = bz
	}
	if _, err := io.WriteString(w, text); err != nil {
		out.Close()
		return errors.Wrapf(err, "writing %s", c.OutputFile)
	}
	if bz != nil {
		if err := bz.Close(); err != nil {
			out.Close()
			return errors.Wrapf(err, "flushing %s", c.OutputFile)
		}
	}
	return errors.Wrapf(out.Close(), "closing %s", c.OutputFile)
}

// validateVCF re-reads the rendered document to confirm it parses as VCF.
func validateVCF(text string) error {
	rdr, err := vcfgo.NewReader(strings.NewReader(text), false)
	if err != nil {
		return errors.Wrap(err, "validating generated header")
	}
	for {
		v := rdr.Read()
		if v == nil {
			break
		}
		rdr.Clear()
	}
	if err := rdr.Error(); err != nil {
		return errors.Wrap(err, "validating generated vcf")
	}
	return nil
}
