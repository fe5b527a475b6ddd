package gallery

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Matches reports whether the artwork's title or artist matches query.
// Substrings match directly; otherwise single words are compared with a
// small edit-distance allowance so typos still find the piece.
func Matches(a Artwork, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	hay := strings.ToLower(a.Title + " " + a.Artist)
	if strings.Contains(hay, q) {
		return true
	}
	allowed := len(q) / 4
	if allowed == 0 {
		return false
	}
	for _, word := range strings.Fields(hay) {
		if levenshtein.ComputeDistance(word, q) <= allowed {
			return true
		}
	}
	return false
}

// Filter returns the artworks matching query, keeping collection order.
func Filter(list []Artwork, query string) []Artwork {
	if strings.TrimSpace(query) == "" {
		return list
	}
	var out []Artwork
	for _, a := range list {
		if Matches(a, query) {
			out = append(out, a)
		}
	}
	return out
}
