package service

import (
	"math"
	"sort"

	"examengine/internal/models"
	"examengine/internal/selection"
)

// ChapterWeight pairs a chapter with its share of a generated set
type ChapterWeight struct {
	Chapter string
	Weight  float64
}

// DeckWeights is the chapter distribution for generated flashcard decks.
// Weights sum to 1.0.
var DeckWeights = []ChapterWeight{
	{"Pharmacology", 0.30},
	{"Pharmaceutics", 0.20},
	{"Pharmaceutical Chemistry", 0.20},
	{"Microbiology", 0.10},
	{"Pharmacognosy", 0.10},
	{"Drug Laws", 0.05},
	{"Clinical Pharmacy", 0.05},
}

// TestWeights is the chapter distribution for full-length tests
var TestWeights = []ChapterWeight{
	{"Pharmacology", 0.32},
	{"Pharmaceutics", 0.20},
	{"Drug Laws", 0.15},
	{"Microbiology", 0.10},
	{"Pharmaceutical Chemistry", 0.10},
	{"Hospital Pharmacy", 0.07},
	{"Reasoning", 0.06},
}

// DeckSize is the fixed size of a generated flashcard deck
const DeckSize = 20

// DefaultTestSize is the question count of a full-length test when the
// caller does not override it
const DefaultTestSize = 100

// DeckQuotaSpec allocates DeckSize questions across DeckWeights using
// floor allocation, with the remainder going to the lowest-weight
// chapter so the counts sum to the deck size exactly.
func DeckQuotaSpec() selection.QuotaSpec {
	weights := make([]ChapterWeight, len(DeckWeights))
	copy(weights, DeckWeights)
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})

	spec := selection.QuotaSpec{Target: DeckSize}
	allocated := 0
	for i, cw := range weights {
		var count int
		if i < len(weights)-1 {
			count = int(float64(DeckSize) * cw.Weight)
			allocated += count
		} else {
			count = DeckSize - allocated
		}
		spec.Quotas = append(spec.Quotas, selection.Quota{
			Filter: selection.Filter{Chapters: []string{cw.Chapter}},
			Count:  count,
			Weight: cw.Weight,
		})
	}
	return spec
}

// TestQuotaSpec allocates total questions across TestWeights. Each
// chapter gets max(1, round(total*weight)); rounding overshoot is
// handled by the engine's target truncation.
func TestQuotaSpec(total int) selection.QuotaSpec {
	if total <= 0 {
		total = DefaultTestSize
	}

	spec := selection.QuotaSpec{Target: total}
	for _, cw := range TestWeights {
		count := int(math.Round(float64(total) * cw.Weight))
		if count < 1 {
			count = 1
		}
		spec.Quotas = append(spec.Quotas, selection.Quota{
			Filter: selection.Filter{Chapters: []string{cw.Chapter}},
			Count:  count,
			Weight: cw.Weight,
		})
	}
	return spec
}

// DailyQuotaSpec is the fixed 10-question composition of the shared
// daily test: 3 Pharmacology, 2 Pharmaceutics, 2 Drug Laws, 1 from
// Microbiology or Pharmaceutical Chemistry, 1 Hospital Pharmacy and 1
// current-affairs or case-law question.
func DailyQuotaSpec() selection.QuotaSpec {
	return selection.QuotaSpec{
		Target: 10,
		Quotas: []selection.Quota{
			{Filter: selection.Filter{Chapters: []string{"Pharmacology"}}, Count: 3, Weight: 0.30},
			{Filter: selection.Filter{Chapters: []string{"Pharmaceutics"}}, Count: 2, Weight: 0.20},
			{Filter: selection.Filter{Chapters: []string{"Drug Laws"}}, Count: 2, Weight: 0.20},
			{Filter: selection.Filter{Chapters: []string{"Microbiology", "Pharmaceutical Chemistry"}}, Count: 1, Weight: 0.10},
			{Filter: selection.Filter{Chapters: []string{"Hospital Pharmacy"}}, Count: 1, Weight: 0.10},
			{Filter: selection.Filter{Categories: []string{models.CategoryCurrentAffairs, models.CategoryCaseLaw}}, Count: 1, Weight: 0.10},
		},
	}
}
