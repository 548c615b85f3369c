// Package search ranks an owner's hotels against a free-text query.
// Matching is accent-insensitive and tolerates small typos, which is what
// dashboard users type when looking up a property by name or city.
package search

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

// Hit is a matching hotel and its relevance score.
type Hit struct {
	Hotel *model.Hotel `json:"hotel"`
	Score int          `json:"score"`
}

// Result holds ranked hits and, when the query looks like a misspelt
// location, the location it most likely meant.
type Result struct {
	Hits       []Hit  `json:"hits"`
	Suggestion string `json:"suggestion,omitempty"`
}

const similarityThreshold = 0.6

// Normalize lower-cases s and transliterates it to ASCII.
func Normalize(s string) string {
	return strings.ToLower(unidecode.Unidecode(strings.TrimSpace(s)))
}

// Similarity is 1 minus the edit distance scaled by the longer string.
func Similarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(distance)/float64(maxLen)
}

// Rank scores every hotel and returns those that match, best first.
func Rank(query string, hotels []*model.Hotel) Result {
	q := Normalize(query)
	res := Result{Hits: []Hit{}}
	if q == "" {
		return res
	}
	terms := strings.Fields(q)

	for _, h := range hotels {
		if s := score(q, terms, Normalize(h.Name), Normalize(h.Location)); s > 0 {
			res.Hits = append(res.Hits, Hit{Hotel: h, Score: s})
		}
	}
	sort.SliceStable(res.Hits, func(i, j int) bool { return res.Hits[i].Score > res.Hits[j].Score })

	res.Suggestion = suggestLocation(q, hotels)
	return res
}

func score(q string, terms []string, name, location string) int {
	s := 0
	if strings.Contains(name, q) {
		s += 30
	}
	if strings.Contains(location, q) {
		s += 20
	}
	s += 10 * fuzzyTerms(terms, strings.Fields(name))
	s += 8 * fuzzyTerms(terms, strings.Fields(location))
	return s
}

// fuzzyTerms counts query terms that closely match some word of the field.
func fuzzyTerms(terms, words []string) int {
	n := 0
	for _, t := range terms {
		for _, w := range words {
			if Similarity(t, w) >= similarityThreshold {
				n++
				break
			}
		}
	}
	return n
}

func suggestLocation(q string, hotels []*model.Hotel) string {
	original := map[string]string{}
	var keys []string
	for _, h := range hotels {
		k := Normalize(h.Location)
		if k == "" {
			continue
		}
		if k == q || strings.Contains(k, q) {
			return ""
		}
		if _, ok := original[k]; !ok {
			original[k] = h.Location
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	best := closestmatch.New(keys, []int{2, 3}).Closest(q)
	if best == "" || Similarity(q, best) < similarityThreshold {
		return ""
	}
	return original[best]
}
