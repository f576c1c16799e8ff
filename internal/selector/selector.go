// Package selector picks a bounded set of calls for detail display.
package selector

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/types"
)

var (
	ErrInvalidSelectionCount = errors.New("invalid selection count")
	ErrInvalidSelectionMode  = errors.New("invalid selection mode")
)

// AllowedCounts are the page sizes offered to operators.
var AllowedCounts = []int{5, 10, 15}

// DefaultSeed keeps sampled selections reproducible across queries.
const DefaultSeed int64 = 42

// Request describes which records to pick.
type Request struct {
	Count     int
	Mode      types.SelectionMode
	Seed      int64
	MinValues int
}

// Selection is the outcome of Select.
type Selection struct {
	Records   []types.CallRecord  `json:"records"`
	Mode      types.SelectionMode `json:"mode"`
	Requested int                 `json:"requested"`
	Available int                 `json:"available"`
	// Insufficient is set when fewer records exist than were requested.
	Insufficient bool `json:"insufficient"`
	// Suppressed is set when the subset is below the minimum sample size;
	// Records is empty in that case.
	Suppressed bool `json:"suppressed"`
}

// Validate checks the request against the allowed counts and modes.
func (r Request) Validate() error {
	if !slices.Contains(AllowedCounts, r.Count) {
		return fmt.Errorf("%w: %d (allowed: %v)", ErrInvalidSelectionCount, r.Count, AllowedCounts)
	}
	switch r.Mode {
	case types.RecentMode, types.SampleMode:
		return nil
	}
	return fmt.Errorf("%w: %q (allowed: %s, %s)", ErrInvalidSelectionMode, r.Mode, types.RecentMode, types.SampleMode)
}

// ParseMode accepts "recent" or "sample".
func ParseMode(s string) (types.SelectionMode, error) {
	m := types.SelectionMode(s)
	switch m {
	case types.RecentMode, types.SampleMode:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSelectionMode, s)
}

// Select returns min(Count, len(records)) records. Recent mode takes the
// tail of records; sample mode draws without replacement using a generator
// seeded from req.Seed and returns the draws in subset order.
func Select(records []types.CallRecord, req Request) (Selection, error) {
	if err := req.Validate(); err != nil {
		return Selection{}, err
	}
	minValues := req.MinValues
	if minValues <= 0 {
		minValues = aggregator.DefaultMinValuesRequired
	}

	sel := Selection{
		Mode:         req.Mode,
		Requested:    req.Count,
		Available:    len(records),
		Insufficient: len(records) < req.Count,
		Suppressed:   len(records) < minValues,
	}
	if sel.Suppressed {
		sel.Records = []types.CallRecord{}
		return sel, nil
	}

	n := min(req.Count, len(records))
	switch req.Mode {
	case types.RecentMode:
		sel.Records = slices.Clone(records[len(records)-n:])
	case types.SampleMode:
		sel.Records = sample(records, n, req.Seed)
	}
	return sel, nil
}

func sample(records []types.CallRecord, n int, seed int64) []types.CallRecord {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates: the first n slots end up as the draw
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	picked := idx[:n]
	slices.Sort(picked)

	out := make([]types.CallRecord, 0, n)
	for _, i := range picked {
		out = append(out, records[i])
	}
	return out
}
