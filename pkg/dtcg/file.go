package dtcg

import (
	"regexp"
	"strings"
)

// File names of the style-derived token files.
const (
	TypographyFilename = "typography.json"
	ShadowFilename     = "shadow.json"
)

// TokenFile is one output artifact of a conversion.
type TokenFile struct {
	Filename       string `json:"filename"`
	CollectionName string `json:"collectionName"`
	ModeName       string `json:"modeName"`
	Content        *Tree  `json:"content"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lower-cases s, collapses every run of characters outside [a-z0-9]
// into a single dash and trims leading and trailing dashes.
func Slug(s string) string {
	s = nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// Filename returns "{slug(collection)}-{slug(mode)}.json".
func Filename(collectionName, modeName string) string {
	return Slug(collectionName) + "-" + Slug(modeName) + ".json"
}
