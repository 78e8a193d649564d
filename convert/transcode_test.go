package convert

import (
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1", "s2"}}
	h := tr.Header()
	require.Len(t, h, 5)
	assert.Equal(t, "##fileformat=VCFv4.2", h[0])
	assert.Equal(t, "##source=geno2vcf", h[1])
	assert.Equal(t, `##INFO=<ID=DP,Number=1,Type=Integer,Description="Read Depth">`, h[2])
	assert.Equal(t, `##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">`, h[3])
	assert.Equal(t, "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\ts1\ts2", h[4])
}

func TestHeaderSampleOrderIndependentOfRows(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"z", "a", "m"}}
	assert.True(t, strings.HasSuffix(tr.Header()[4], "\tz\ta\tm"))
}

func TestLine(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"sample1"}}
	line, err := tr.Line(&Marker{
		ID: "rs123", Ref: "A", Alt: "G", Chrom: "1", Pos: "100",
		Genotypes: []string{"AA"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1\t100\trs123\tA\tG\t.\tPASS\t.\tGT\t0/0", line)
}

func TestLineGenotypeCodes(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1", "s2", "s3", "s4"}}
	line, err := tr.Line(&Marker{
		ID: "m1", Ref: "C", Alt: "T", Chrom: "3", Pos: "17",
		Genotypes: []string{"CC", "TT", "CT", "--"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(line, "\tGT\t0/0\t1/1\t0/1\t./."))
}

func TestLineInvalidGenotypeLegacy(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	tr := &Transcoder{Samples: SampleSet{"s1"}}
	line, err := tr.Line(&Marker{
		ID: "m1", Ref: "A", Alt: "G", Chrom: "1", Pos: "1",
		Genotypes: []string{"TT"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(line, "\t0/1"))

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "m1", hook.LastEntry().Data["marker"])
	assert.Equal(t, "s1", hook.LastEntry().Data["sample"])
	assert.Equal(t, "TT", hook.LastEntry().Data["call"])
}

func TestLineInvalidGenotypeStrict(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1"}, Strict: true}
	_, err := tr.Line(&Marker{
		ID: "m1", Ref: "A", Alt: "G", Chrom: "1", Pos: "1",
		Genotypes: []string{"TT"},
	})
	var gtErr *InvalidGenotypeError
	require.ErrorAs(t, err, &gtErr)
	assert.Equal(t, "m1", gtErr.MarkerID)
	assert.Equal(t, "s1", gtErr.Sample)
	assert.Equal(t, "TT", gtErr.Raw)
}

func markerFixture(id, chrom, pos string) Marker {
	return Marker{ID: id, Ref: "A", Alt: "G", Chrom: chrom, Pos: pos, Genotypes: []string{"AA"}}
}

func TestTranscodeKeepsInputOrder(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1"}}
	doc, err := tr.Transcode([]Marker{
		markerFixture("m1", "2", "5"),
		markerFixture("m2", "1", "500"),
	})
	require.NoError(t, err)
	lines := doc.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "2\t5\t"))
	assert.True(t, strings.HasPrefix(lines[1], "1\t500\t"))
}

func TestTranscodeCorrectedAliasesTranscode(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1"}}
	markers := []Marker{markerFixture("m1", "1", "9")}
	direct, err := tr.Transcode(markers)
	require.NoError(t, err)
	corrected, err := tr.TranscodeCorrected(markers)
	require.NoError(t, err)
	assert.Equal(t, direct.Render(), corrected.Render())
}

func TestSortChromLexicographicPosNumeric(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1"}}
	doc, err := tr.Transcode([]Marker{
		markerFixture("m1", "2", "5"),
		markerFixture("m2", "1", "500"),
		markerFixture("m3", "10", "1"),
		markerFixture("m4", "1", "80"),
	})
	require.NoError(t, err)
	doc.Sort()

	var order []string
	for _, l := range doc.Lines() {
		f := strings.SplitN(l, "\t", 3)
		order = append(order, f[0]+":"+f[1])
	}
	// lexicographic chromosomes: "1" < "10" < "2"; numeric positions within
	assert.Equal(t, []string{"1:80", "1:500", "10:1", "2:5"}, order)
}

func TestSortStable(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1"}}
	doc, err := tr.Transcode([]Marker{
		markerFixture("first", "1", "100"),
		markerFixture("second", "1", "100"),
		markerFixture("third", "1", "100"),
	})
	require.NoError(t, err)
	doc.Sort()

	lines := doc.Lines()
	assert.Contains(t, lines[0], "\tfirst\t")
	assert.Contains(t, lines[1], "\tsecond\t")
	assert.Contains(t, lines[2], "\tthird\t")
}

func TestSortIdempotent(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1"}}
	doc, err := tr.Transcode([]Marker{
		markerFixture("m1", "3", "7"),
		markerFixture("m2", "1", "900"),
		markerFixture("m3", "1", "80"),
	})
	require.NoError(t, err)
	once := doc.Sort().Lines()
	twice := doc.Sort().Lines()
	assert.Equal(t, once, twice)
}

func TestRenderRowCount(t *testing.T) {
	tr := &Transcoder{Samples: SampleSet{"s1"}}
	markers := []Marker{
		markerFixture("m1", "1", "1"),
		markerFixture("m2", "1", "2"),
		markerFixture("m3", "2", "3"),
	}
	doc, err := tr.Transcode(markers)
	require.NoError(t, err)

	rendered := strings.Split(strings.TrimSuffix(doc.Render(), "\n"), "\n")
	assert.Len(t, rendered, len(tr.Header())+len(markers))
}

func TestPosLess(t *testing.T) {
	assert.True(t, posLess("9", "10"))
	assert.False(t, posLess("10", "9"))
	assert.False(t, posLess("5", "5"))
	// non-numeric positions sort after numeric ones
	assert.True(t, posLess("10", "x"))
	assert.False(t, posLess("x", "10"))
	assert.True(t, posLess("a", "b"))
}
