package search

import (
	"testing"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
)

func hotels() []*model.Hotel {
	return []*model.Hotel{
		{ID: 1, Name: "Sea Breeze", Location: "Goa"},
		{ID: 2, Name: "Hotel Royal", Location: "Mumbai"},
		{ID: 3, Name: "Café Lumière", Location: "Pondichéry"},
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Café Lumière "); got != "cafe lumiere" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestSimilarity(t *testing.T) {
	if got := Similarity("", ""); got != 1 {
		t.Fatalf("empty similarity = %v", got)
	}
	if got := Similarity("goa", "goa"); got != 1 {
		t.Fatalf("identical similarity = %v", got)
	}
	if got := Similarity("mumbay", "mumbai"); got < similarityThreshold {
		t.Fatalf("one-letter typo similarity = %v", got)
	}
	if got := Similarity("goa", "mumbai"); got >= similarityThreshold {
		t.Fatalf("unrelated similarity = %v", got)
	}
}

func TestRankAccentInsensitive(t *testing.T) {
	res := Rank("cafe lumiere", hotels())
	if len(res.Hits) != 1 || res.Hits[0].Hotel.ID != 3 {
		t.Fatalf("hits = %+v", res.Hits)
	}
}

func TestRankToleratesTypos(t *testing.T) {
	res := Rank("mumbay", hotels())
	if len(res.Hits) == 0 || res.Hits[0].Hotel.ID != 2 {
		t.Fatalf("hits = %+v", res.Hits)
	}
	if res.Suggestion != "Mumbai" {
		t.Fatalf("suggestion = %q, want Mumbai", res.Suggestion)
	}
}

func TestRankPrefersNameOverLocation(t *testing.T) {
	hs := []*model.Hotel{
		{ID: 1, Name: "Goa Inn", Location: "Goa"},
		{ID: 2, Name: "Palm Stay", Location: "Goa"},
	}
	res := Rank("goa", hs)
	if len(res.Hits) != 2 || res.Hits[0].Hotel.ID != 1 {
		t.Fatalf("hits = %+v", res.Hits)
	}
	if res.Suggestion != "" {
		t.Fatalf("exact location should not produce a suggestion, got %q", res.Suggestion)
	}
}

func TestRankEmptyQuery(t *testing.T) {
	if res := Rank("   ", hotels()); len(res.Hits) != 0 {
		t.Fatalf("hits = %+v", res.Hits)
	}
}
