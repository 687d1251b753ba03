package bulletin

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var (
	// stationCodeRe matches a bare station code: a short alphanumeric token
	// like "10382" or "P0489". Such tokens are identifiers, not names.
	stationCodeRe = regexp.MustCompile(`^[A-Za-z0-9]{4,5}$`)

	// markupRe strips residual markup tags from description fields.
	markupRe = regexp.MustCompile(`<[^>]*>`)

	// trailingCodeRe captures the text preceding a trailing parenthesized
	// code, e.g. "Berlin-Tempelhof (10384)" -> "Berlin-Tempelhof".
	trailingCodeRe = regexp.MustCompile(`^(.*?)\s*\([A-Za-z0-9]{3,6}\)\s*$`)
)

// ResolveSiteName best-effort extracts a human-readable site name from the
// first Placemark node. Candidates that look like bare station codes are
// rejected; when no usable name node exists the Placemark's description is
// tried instead. Returns "" when nothing usable is found — never an error.
func ResolveSiteName(root *etree.Element) string {
	if root == nil {
		return ""
	}
	placemarks := findAll(root, "Placemark")
	if len(placemarks) == 0 {
		return ""
	}
	pm := placemarks[0]

	for _, name := range findAll(pm, "name") {
		if candidate := text(name); usableName(candidate) {
			return candidate
		}
	}

	for _, desc := range findAll(pm, "description") {
		if candidate := nameFromDescription(desc.Text()); usableName(candidate) {
			return candidate
		}
	}
	return ""
}

// nameFromDescription strips markup, then prefers the text before a trailing
// parenthesized code, falling back to the first line.
func nameFromDescription(desc string) string {
	plain := strings.TrimSpace(markupRe.ReplaceAllString(desc, " "))
	if plain == "" {
		return ""
	}
	if m := trailingCodeRe.FindStringSubmatch(plain); m != nil {
		return squash(m[1])
	}
	line, _, _ := strings.Cut(plain, "\n")
	return squash(line)
}

// squash collapses runs of whitespace left behind by tag stripping.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func usableName(s string) bool {
	return s != "" && !stationCodeRe.MatchString(s)
}
