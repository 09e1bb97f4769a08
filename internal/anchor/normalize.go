package anchor

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// placeSuffixRe strips TIGER place-type suffixes so "Chicago city" and
// the bare "Chicago" of a CBSA title key identically. The ACS place
// names carry the same suffixes, so both sides of the join normalize
// into the same keyspace.
var placeSuffixRe = regexp.MustCompile(`\s+(city|town|village|c?dp)$`)

// foldMarks removes combining marks: "Española" keys the same whether
// the source kept the diacritic or flattened it to ASCII.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize standardizes a place name for matching by:
//  1. Trimming whitespace and lowercasing
//  2. Folding diacritics to their base letters
//  3. Stripping the Census place-type suffix (city, town, village, CDP)
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(foldMarks, name); err == nil {
		name = folded
	}
	return placeSuffixRe.ReplaceAllString(name, "")
}

// PlaceKey builds the "name|stateFIPS" key the place and population
// lookups share.
func PlaceKey(name, stateFIPS string) string {
	return Normalize(name) + "|" + stateFIPS
}

// ACSPlaceKey keys an ACS place row, whose NAME carries a trailing
// ", State" segment.
func ACSPlaceKey(name, stateFIPS string) string {
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	return PlaceKey(name, stateFIPS)
}
