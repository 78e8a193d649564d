package convert

import "fmt"

// SchemaError reports a required column missing from the input header. It is
// raised before any row is processed.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input header is missing required column %q", e.Column)
}

// MalformedRowError reports a data row whose field count does not match the
// header's.
type MalformedRowError struct {
	Line   int // 1-based line number in the input file
	Fields int
	Want   int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: row has %d fields, header has %d", e.Line, e.Fields, e.Want)
}

// InvalidGenotypeError reports a genotype call that matches neither the
// missing sentinel nor any pairing of the marker's alleles. Only raised in
// strict mode; otherwise such calls encode as 0/1 with a logged warning.
type InvalidGenotypeError struct {
	MarkerID string
	Sample   string
	Raw      string
}

func (e *InvalidGenotypeError) Error() string {
	return fmt.Sprintf("marker %s, sample %s: unrecognized genotype call %q", e.MarkerID, e.Sample, e.Raw)
}
