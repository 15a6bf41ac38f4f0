package selection

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

type bankQuestion struct {
	id       int64
	chapter  string
	category string
}

// memorySource is an in-memory Source backed by a fixed bank
type memorySource struct {
	bank []bankQuestion
}

func (s *memorySource) IDsMatching(f Filter, exclude []int64) ([]int64, error) {
	excluded := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	var ids []int64
	for _, q := range s.bank {
		if _, skip := excluded[q.id]; skip {
			continue
		}
		if len(f.Chapters) > 0 && !contains(f.Chapters, q.chapter) {
			continue
		}
		if len(f.Categories) > 0 && !contains(f.Categories, q.category) {
			continue
		}
		ids = append(ids, q.id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// buildBank creates n questions per chapter with sequential ids
func buildBank(perChapter int, chapters ...string) *memorySource {
	src := &memorySource{}
	var id int64
	for _, ch := range chapters {
		for i := 0; i < perChapter; i++ {
			id++
			src.bank = append(src.bank, bankQuestion{id: id, chapter: ch, category: "technical"})
		}
	}
	return src
}

func chapterOf(src *memorySource, id int64) string {
	for _, q := range src.bank {
		if q.id == id {
			return q.chapter
		}
	}
	return ""
}

func assertNoDuplicates(t *testing.T, ids []int64) {
	t.Helper()
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d in result %v", id, ids)
		}
		seen[id] = struct{}{}
	}
}

func TestSelectHonorsQuotas(t *testing.T) {
	src := buildBank(10, "Pharmacology", "Pharmaceutics", "Drug Laws")
	engine := New(rand.New(rand.NewSource(1)))

	spec := QuotaSpec{
		Target: 6,
		Quotas: []Quota{
			{Filter: Filter{Chapters: []string{"Pharmacology"}}, Count: 3, Weight: 0.5},
			{Filter: Filter{Chapters: []string{"Pharmaceutics"}}, Count: 2, Weight: 0.3},
			{Filter: Filter{Chapters: []string{"Drug Laws"}}, Count: 1, Weight: 0.2},
		},
	}

	ids, err := engine.Select(src, spec, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(ids) != 6 {
		t.Fatalf("expected 6 ids, got %d", len(ids))
	}
	assertNoDuplicates(t, ids)

	counts := make(map[string]int)
	for _, id := range ids {
		counts[chapterOf(src, id)]++
	}
	if counts["Pharmacology"] != 3 || counts["Pharmaceutics"] != 2 || counts["Drug Laws"] != 1 {
		t.Errorf("chapter counts = %v, want 3/2/1", counts)
	}
}

func TestSelectFallbackFillsByWeight(t *testing.T) {
	// Drug Laws has only 1 question but its quota asks for 4; the
	// shortfall must come from the higher-weight chapters.
	src := buildBank(10, "Pharmacology", "Pharmaceutics")
	src.bank = append(src.bank, bankQuestion{id: 100, chapter: "Drug Laws", category: "technical"})

	engine := New(rand.New(rand.NewSource(7)))
	spec := QuotaSpec{
		Target: 10,
		Quotas: []Quota{
			{Filter: Filter{Chapters: []string{"Pharmacology"}}, Count: 4, Weight: 0.5},
			{Filter: Filter{Chapters: []string{"Pharmaceutics"}}, Count: 2, Weight: 0.3},
			{Filter: Filter{Chapters: []string{"Drug Laws"}}, Count: 4, Weight: 0.2},
		},
	}

	ids, err := engine.Select(src, spec, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(ids) != 10 {
		t.Fatalf("expected 10 ids after fallback, got %d", len(ids))
	}
	assertNoDuplicates(t, ids)

	counts := make(map[string]int)
	for _, id := range ids {
		counts[chapterOf(src, id)]++
	}
	if counts["Drug Laws"] != 1 {
		t.Errorf("Drug Laws contributed %d, want 1 (all it has)", counts["Drug Laws"])
	}
	if counts["Pharmacology"] < 4 {
		t.Errorf("fallback should refill from highest weight first, Pharmacology = %d", counts["Pharmacology"])
	}
}

func TestSelectRespectsExclusions(t *testing.T) {
	src := buildBank(5, "Pharmacology")
	engine := New(rand.New(rand.NewSource(3)))

	spec := QuotaSpec{
		Target: 3,
		Quotas: []Quota{
			{Filter: Filter{Chapters: []string{"Pharmacology"}}, Count: 3, Weight: 1.0},
		},
	}

	ids, err := engine.Select(src, spec, []int64{1, 2})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	for _, id := range ids {
		if id == 1 || id == 2 {
			t.Errorf("excluded id %d was drawn", id)
		}
	}
}

func TestSelectShortResultWhenBankExhausted(t *testing.T) {
	// Exclusions are never relaxed: a short result is returned rather
	// than reusing excluded ids.
	src := buildBank(4, "Pharmacology")
	engine := New(rand.New(rand.NewSource(9)))

	spec := QuotaSpec{
		Target: 4,
		Quotas: []Quota{
			{Filter: Filter{Chapters: []string{"Pharmacology"}}, Count: 4, Weight: 1.0},
		},
	}

	ids, err := engine.Select(src, spec, []int64{1, 2})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids from exhausted bank, got %d", len(ids))
	}
}

func TestSelectEmptyBank(t *testing.T) {
	src := &memorySource{}
	engine := New(rand.New(rand.NewSource(1)))

	spec := QuotaSpec{
		Target: 10,
		Quotas: []Quota{
			{Filter: Filter{Chapters: []string{"Pharmacology"}}, Count: 10, Weight: 1.0},
		},
	}

	_, err := engine.Select(src, spec, nil)
	if err != ErrInsufficientBank {
		t.Fatalf("expected ErrInsufficientBank, got %v", err)
	}
}

func TestSelectCategoryUnionFilter(t *testing.T) {
	src := &memorySource{bank: []bankQuestion{
		{id: 1, chapter: "Pharmacology", category: "technical"},
		{id: 2, chapter: "General", category: "current_affairs"},
		{id: 3, chapter: "General", category: "case_law"},
	}}
	engine := New(rand.New(rand.NewSource(5)))

	spec := QuotaSpec{
		Target: 1,
		Quotas: []Quota{
			{Filter: Filter{Categories: []string{"current_affairs", "case_law"}}, Count: 1, Weight: 1.0},
		},
	}

	ids, err := engine.Select(src, spec, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 id, got %d", len(ids))
	}
	if ids[0] == 1 {
		t.Errorf("drew technical question %d for a category-union slot", ids[0])
	}
}

func TestSelectDeterministicWithFixedSeed(t *testing.T) {
	src := buildBank(20, "Pharmacology", "Pharmaceutics", "Drug Laws")
	spec := QuotaSpec{
		Target: 9,
		Quotas: []Quota{
			{Filter: Filter{Chapters: []string{"Pharmacology"}}, Count: 4, Weight: 0.5},
			{Filter: Filter{Chapters: []string{"Pharmaceutics"}}, Count: 3, Weight: 0.3},
			{Filter: Filter{Chapters: []string{"Drug Laws"}}, Count: 2, Weight: 0.2},
		},
	}

	first, err := New(rand.New(rand.NewSource(42))).Select(src, spec, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	second, err := New(rand.New(rand.NewSource(42))).Select(src, spec, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("same seed produced different draws:\n%v\n%v", first, second)
	}
}

func TestSelectStructuralPropertiesUnderRandomSeeds(t *testing.T) {
	src := buildBank(8, "Pharmacology", "Pharmaceutics", "Drug Laws")
	spec := QuotaSpec{
		Target: 12,
		Quotas: []Quota{
			{Filter: Filter{Chapters: []string{"Pharmacology"}}, Count: 6, Weight: 0.5},
			{Filter: Filter{Chapters: []string{"Pharmaceutics"}}, Count: 4, Weight: 0.3},
			{Filter: Filter{Chapters: []string{"Drug Laws"}}, Count: 2, Weight: 0.2},
		},
	}

	for seed := int64(0); seed < 20; seed++ {
		ids, err := New(rand.New(rand.NewSource(seed))).Select(src, spec, nil)
		if err != nil {
			t.Fatalf("seed %d: Select() error = %v", seed, err)
		}
		if len(ids) != 12 {
			t.Fatalf("seed %d: expected 12 ids, got %d", seed, len(ids))
		}
		assertNoDuplicates(t, ids)
	}
}
