package service

import "testing"

func TestDeckQuotaSpecSumsToDeckSize(t *testing.T) {
	spec := DeckQuotaSpec()

	if spec.Target != DeckSize {
		t.Errorf("Target = %d, want %d", spec.Target, DeckSize)
	}

	sum := 0
	for _, q := range spec.Quotas {
		sum += q.Count
	}
	if sum != DeckSize {
		t.Errorf("quota counts sum to %d, want %d", sum, DeckSize)
	}
}

func TestDeckQuotaSpecFloorAllocation(t *testing.T) {
	spec := DeckQuotaSpec()

	counts := make(map[string]int)
	for _, q := range spec.Quotas {
		if len(q.Filter.Chapters) != 1 {
			t.Fatalf("deck quotas should target single chapters, got %v", q.Filter.Chapters)
		}
		counts[q.Filter.Chapters[0]] = q.Count
	}

	want := map[string]int{
		"Pharmacology":             6,
		"Pharmaceutics":            4,
		"Pharmaceutical Chemistry": 4,
		"Microbiology":             2,
		"Pharmacognosy":            2,
		"Drug Laws":                1,
		"Clinical Pharmacy":        1,
	}
	for chapter, n := range want {
		if counts[chapter] != n {
			t.Errorf("%s count = %d, want %d", chapter, counts[chapter], n)
		}
	}
}

func TestTestQuotaSpecDefault(t *testing.T) {
	spec := TestQuotaSpec(0)

	if spec.Target != DefaultTestSize {
		t.Errorf("Target = %d, want %d", spec.Target, DefaultTestSize)
	}

	counts := make(map[string]int)
	for _, q := range spec.Quotas {
		counts[q.Filter.Chapters[0]] = q.Count
	}

	want := map[string]int{
		"Pharmacology":             32,
		"Pharmaceutics":            20,
		"Drug Laws":                15,
		"Microbiology":             10,
		"Pharmaceutical Chemistry": 10,
		"Hospital Pharmacy":        7,
		"Reasoning":                6,
	}
	for chapter, n := range want {
		if counts[chapter] != n {
			t.Errorf("%s count = %d, want %d", chapter, counts[chapter], n)
		}
	}
}

func TestTestQuotaSpecMinimumOnePerChapter(t *testing.T) {
	spec := TestQuotaSpec(5)

	for _, q := range spec.Quotas {
		if q.Count < 1 {
			t.Errorf("%v count = %d, want >= 1", q.Filter.Chapters, q.Count)
		}
	}
}

func TestDailyQuotaSpecComposition(t *testing.T) {
	spec := DailyQuotaSpec()

	if spec.Target != 10 {
		t.Errorf("Target = %d, want 10", spec.Target)
	}

	sum := 0
	for _, q := range spec.Quotas {
		sum += q.Count
	}
	if sum != 10 {
		t.Errorf("quota counts sum to %d, want 10", sum)
	}

	var hasChapterUnion, hasCategoryUnion bool
	for _, q := range spec.Quotas {
		if len(q.Filter.Chapters) == 2 {
			hasChapterUnion = true
		}
		if len(q.Filter.Categories) == 2 {
			hasCategoryUnion = true
		}
	}
	if !hasChapterUnion {
		t.Error("expected a two-chapter union slot")
	}
	if !hasCategoryUnion {
		t.Error("expected a two-category union slot")
	}
}
