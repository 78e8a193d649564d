package convert

// missingCall is the sentinel upstream genotyping tables use for a no-call.
const missingCall = "--"

// Zygosity classifies a raw diploid genotype call against a marker's
// reference and alternate alleles.
type Zygosity int

const (
	HomRef Zygosity = iota
	HomAlt
	Het
	Missing
	Invalid
)

func (z Zygosity) String() string {
	switch z {
	case HomRef:
		return "homozygous reference"
	case HomAlt:
		return "homozygous alternate"
	case Het:
		return "heterozygous"
	case Missing:
		return "missing"
	}
	return "invalid"
}

// Code returns the VCF GT field for z. Invalid has no code of its own;
// the transcoder resolves it according to its genotype policy.
func (z Zygosity) Code() string {
	switch z {
	case HomRef:
		return "0/0"
	case HomAlt:
		return "1/1"
	case Missing:
		return "./."
	}
	return "0/1"
}

// Marker is one genotyped site: one input row, one VCF data line.
type Marker struct {
	ID    string // unique marker identifier, emitted as VCF ID
	Name  string // auxiliary identifier, input only
	Ref   string // reference allele
	Alt   string // alternate allele
	Chrom string // chromosome name, passed through verbatim
	Pos   string // one based physical coordinate, kept as text

	// Genotypes holds the raw call for each sample, in SampleSet order.
	Genotypes []string
}

// Classify maps a raw genotype call to a zygosity. Alleles compare as whole
// strings, so multi-character alleles work the same as single bases. A call
// that is neither the missing sentinel nor a pairing of ref and alt is
// Invalid; the caller decides whether that means heterozygous (the historical
// default) or an error.
func Classify(raw, ref, alt string) Zygosity {
	switch raw {
	case missingCall:
		return Missing
	case ref + ref:
		return HomRef
	case alt + alt:
		return HomAlt
	case ref + alt, alt + ref:
		return Het
	}
	return Invalid
}
