package selection

import (
	"errors"
	"math/rand"
	"sort"
	"time"
)

// ErrInsufficientBank is returned when no questions at all can be drawn
// for a quota spec, even after the fallback pass.
var ErrInsufficientBank = errors.New("insufficient questions in bank")

// Filter selects the subset of the question bank a quota draws from.
// A non-empty Chapters list matches any of those chapters; a non-empty
// Categories list matches any of those categories. Both set means AND.
type Filter struct {
	Chapters   []string
	Categories []string
}

// Quota asks for Count questions matching Filter. Weight orders quotas
// during both the primary pass and the fallback fill (highest first).
type Quota struct {
	Filter Filter
	Count  int
	Weight float64
}

// QuotaSpec is a complete selection request: a target size and the
// per-filter quotas that should add up to it.
type QuotaSpec struct {
	Target int
	Quotas []Quota
}

// Source provides the eligible question ids for a filter, excluding the
// given ids. Implemented by the question repository. Implementations
// must return ids in a stable order (sorted by id) so that a
// fixed-seed engine produces deterministic draws.
type Source interface {
	IDsMatching(f Filter, exclude []int64) ([]int64, error)
}

// Engine draws random question sets satisfying quota specs. The random
// source is injectable so tests can fix a seed.
type Engine struct {
	rng *rand.Rand
}

// New creates an engine. A nil rng gets a time-seeded source.
func New(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// Select draws question ids satisfying spec, never drawing an id twice
// or drawing any id in exclude. Quotas are processed highest weight
// first; if the primary pass comes up short a fallback pass refills
// from the same filters in weight order until the target is reached or
// the eligible bank is exhausted. Exclusions are never relaxed: a
// result may be shorter than the target, and ErrInsufficientBank is
// returned only when nothing could be drawn at all.
func (e *Engine) Select(src Source, spec QuotaSpec, exclude []int64) ([]int64, error) {
	quotas := make([]Quota, len(spec.Quotas))
	copy(quotas, spec.Quotas)
	sort.SliceStable(quotas, func(i, j int) bool {
		return quotas[i].Weight > quotas[j].Weight
	})

	excluded := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	var result []int64

	// Primary pass: honor each quota's count.
	for _, q := range quotas {
		remaining := spec.Target - len(result)
		if remaining <= 0 {
			break
		}
		want := q.Count
		if want > remaining {
			want = remaining
		}
		drawn, err := e.draw(src, q.Filter, want, excluded)
		if err != nil {
			return nil, err
		}
		result = append(result, drawn...)
	}

	// Fallback pass: refill from underpopulated quotas' filters,
	// highest weight first.
	for _, q := range quotas {
		remaining := spec.Target - len(result)
		if remaining <= 0 {
			break
		}
		drawn, err := e.draw(src, q.Filter, remaining, excluded)
		if err != nil {
			return nil, err
		}
		result = append(result, drawn...)
	}

	if len(result) == 0 {
		return nil, ErrInsufficientBank
	}

	if len(result) > spec.Target {
		result = result[:spec.Target]
	}

	return result, nil
}

// Shuffle randomizes ids in place using the engine's random source
func (e *Engine) Shuffle(ids []int64) {
	e.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

// draw picks up to n ids uniformly at random from the filter's eligible
// set and marks them excluded for subsequent draws
func (e *Engine) draw(src Source, f Filter, n int, excluded map[int64]struct{}) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}

	excludeList := make([]int64, 0, len(excluded))
	for id := range excluded {
		excludeList = append(excludeList, id)
	}

	eligible, err := src.IDsMatching(f, excludeList)
	if err != nil {
		return nil, err
	}

	e.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	if n > len(eligible) {
		n = len(eligible)
	}

	drawn := eligible[:n]
	for _, id := range drawn {
		excluded[id] = struct{}{}
	}
	return drawn, nil
}
