package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"call-insights-go/internal/types"
)

var ErrUnknownVariant = errors.New("unknown variant")

// Variant is a named preset for the topic-trends screen.
type Variant struct {
	Name    string              `json:"name"`
	Mode    types.SelectionMode `json:"mode"`
	TopK    int                 `json:"top_k"`
	Columns types.ColumnSet     `json:"columns"`
}

var (
	// ClassicVariant shows the latest calls with summary and transcript only.
	ClassicVariant = Variant{Name: "classic", Mode: types.RecentMode, Columns: types.BasicColumns}
	// FilteredVariant shows the latest calls with full call details.
	FilteredVariant = Variant{Name: "filtered", Mode: types.RecentMode, Columns: types.DetailedColumns}
	// FancyVariant shows the top ten topics and a seeded sample of calls.
	FancyVariant = Variant{Name: "fancy", Mode: types.SampleMode, TopK: 10, Columns: types.DetailedColumns}
)

// Variants lists the presets in the order they are offered.
var Variants = []Variant{ClassicVariant, FilteredVariant, FancyVariant}

// LookupVariant finds a preset by name.
func LookupVariant(name string) (Variant, error) {
	for _, v := range Variants {
		if strings.EqualFold(v.Name, strings.TrimSpace(name)) {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Apply copies the preset's selection mode, top-k and columns onto q.
func (v Variant) Apply(q *Query) {
	q.Selection.Mode = v.Mode
	q.TopK = v.TopK
	q.Columns = v.Columns
}
