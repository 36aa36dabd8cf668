package mbti

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/mbtistock/pkg/kst"
)

func TestInsightRotator_SameDaySameCard(t *testing.T) {
	r := NewInsightRotator(nil)

	morning := time.Date(2025, 3, 10, 0, 30, 0, 0, kst.Location)
	night := time.Date(2025, 3, 10, 23, 59, 0, 0, kst.Location)

	a := r.For("INTJ", morning)
	b := r.For("INTJ", night)
	assert.Equal(t, a, b)
	assert.Equal(t, "2025-03-10", a.Date)
}

func TestInsightRotator_AdvancesDaily(t *testing.T) {
	cards := []InsightCard{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	r := NewInsightRotator(cards)

	day := kst.Date(2025, 3, 10)
	first := r.For("INTJ", day).Card.ID
	next := r.For("INTJ", day.AddDate(0, 0, 1)).Card.ID
	wrap := r.For("INTJ", day.AddDate(0, 0, 3)).Card.ID

	assert.NotEqual(t, first, next)
	assert.Equal(t, first, wrap)
}

func TestInsightRotator_OffsetPerType(t *testing.T) {
	cards := []InsightCard{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	r := NewInsightRotator(cards)
	day := kst.Date(2025, 3, 10)

	// INTJ is index 0, INTP index 1: INTP today == INTJ tomorrow
	assert.Equal(t, r.For("INTJ", day.AddDate(0, 0, 1)).Card, r.For("INTP", day).Card)
}

func TestInsightRotator_UsesKSTDate(t *testing.T) {
	r := NewInsightRotator(nil)

	// 15:30 UTC on the 9th is 00:30 KST on the 10th
	utc := time.Date(2025, 3, 9, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", r.For("ENFP", utc).Date)
	assert.Equal(t, r.For("ENFP", kst.Date(2025, 3, 10)).Card, r.For("ENFP", utc).Card)
}

func TestInsightRotator_BeforeEpoch(t *testing.T) {
	cards := []InsightCard{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	r := NewInsightRotator(cards)

	// 1969-12-31 is day -1: still a valid card, and the deck keeps rotating across the boundary
	before := r.For("INTJ", kst.Date(1969, 12, 31))
	epoch := r.For("INTJ", kst.Date(1970, 1, 1))

	assert.Equal(t, "c", before.Card.ID)
	assert.Equal(t, "a", epoch.Card.ID)
	assert.NotPanics(t, func() { r.For("ESFP", kst.Date(1900, 1, 1)) })
}
