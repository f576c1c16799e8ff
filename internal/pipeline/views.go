package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownView        = errors.New("unknown view")
	ErrViewNotImplemented = errors.New("view not implemented")
)

// View is one entry of the dashboard menu.
type View struct {
	Name        string `json:"name"`
	Implemented bool   `json:"implemented"`
}

// Views lists the dashboard menu in display order.
var Views = []View{
	{Name: "Topic Trends", Implemented: true},
	{Name: "Agent Performance", Implemented: true},
	{Name: "Transfer Calls Analysis"},
	{Name: "Sentiment Analysis"},
}

// ValidateView reports whether name is a menu entry that can be served.
func ValidateView(name string) (View, error) {
	for _, v := range Views {
		if v.Name != name {
			continue
		}
		if !v.Implemented {
			return v, fmt.Errorf("%w: %s", ErrViewNotImplemented, name)
		}
		return v, nil
	}
	return View{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
}
