/*geno2vcf is a converter for tabular diploid genotype tables into VCF format
 */
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/gmhshr123/diploid-genotype2vcf/convert"
	"github.com/gmhshr123/diploid-genotype2vcf/uploader"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	app = kingpin.New("geno2vcf", "convert tabular diploid genotype calls into vcf format and stage the result in cloud storage")

	conv       = app.Command("conv", "convert a genotype table to vcf format")
	inFile     = conv.Arg("input-data", "relative path to the genotype table, csv or tsv, plain, zip or gzip").Required().ExistingFile()
	outFile    = conv.Flag("output-file", "relative path to output vcf, a .gz suffix selects bgzf compression").Short('o').String()
	unsorted   = conv.Flag("unsorted", "keep input row order instead of sorting by chromosome and position").Bool()
	strict     = conv.Flag("strict", "reject genotype calls that match neither allele instead of defaulting them to 0/1").Bool()
	validate   = conv.Flag("validate", "re-read the generated vcf before writing it").Bool()
	convBucket = conv.Flag("bucket", "google cloud storage bucket to stage the vcf into").Short('b').String()
	convPush   = conv.Flag("push", "push the generated vcf into cloud storage").Short('p').Bool()

	push       = app.Command("push", "push a vcf into cloud storage")
	inFilePush = push.Arg("input-data", "relative path to the vcf to upload").Required().ExistingFile()
	pushBucket = push.Flag("bucket", "google cloud storage bucket to stage the vcf into").Required().Short('b').String()
)

var (
	cyan = color.New(color.FgCyan).SprintFunc()
)

func main() {
	app.UsageTemplate(kingpin.CompactUsageTemplate).Version("1.0.0")
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case conv.FullCommand():
		RunConv()
	case push.FullCommand():
		RunPush(*inFilePush, *pushBucket)
	}
}

func RunConv() {
	outputFile := *outFile
	if outputFile == "" {
		outputFile = defaultOutputPath(*inFile)
	}
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Prefix = "converting genotype table to vcf   "
	s.Start()

	client := convert.NewClient(*inFile, outputFile)
	client.Strict = *strict
	client.Unsorted = *unsorted
	client.Validate = *validate
	err := client.Convert()
	s.Stop()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nvcf output at: %s\n\n", cyan(outputFile))

	if *convPush {
		if *convBucket == "" {
			kingpin.FatalUsage("if --push is used to stage the output of conversion in cloud storage, a bucket must be specified")
		}
		RunPush(outputFile, *convBucket)
	}
}

func RunPush(input string, bucket string) {
	ctx := context.Background()
	gcsClient, err := uploader.New(ctx, bucket)
	if err != nil {
		log.Fatal(err)
	}
	defer gcsClient.Close()

	url, err := gcsClient.Push(ctx, input)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("staged vcf at: %s\n\n", cyan(url))
}

// defaultOutputPath swaps the input file's extension for .vcf, unwrapping a
// trailing .gz or .zip first.
func defaultOutputPath(in string) string {
	base := strings.TrimSuffix(in, ".gz")
	base = strings.TrimSuffix(base, ".zip")
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + ".vcf"
}
