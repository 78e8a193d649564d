/*Package convert turns tabular diploid genotype tables into VCF documents.

An input table carries one row per genetic marker and one column per
sample, after six fixed columns naming the marker and its coordinates.
The loader reads the table into an ordered sequence of markers, the
transcoder encodes every sample's call against the marker's reference
and alternate alleles and assembles VCFv4.2 text, sorted by chromosome
and position.
*/
package convert
