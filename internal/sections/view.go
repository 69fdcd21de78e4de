// Package sections turns collection loads into presentable section views.
// A section always settles to a View; failures render as the section's
// "no data" text rather than an error.
package sections

import (
	"fmt"

	"github.com/Zachkp/portfolio/internal/loader"
)

// Meta is the static description of a section.
type Meta struct {
	Name      string
	// Anchor is the page fragment id the navigation links to.
	Anchor    string
	Title     string
	Subtitle  string
	EmptyText string
	// Skeletons is the number of placeholder cards drawn while loading.
	Skeletons int
}

// View is a snapshot of a section ready for a template or terminal.
type View struct {
	Meta
	Status loader.Status
	Items  any
	Count  int
	Error  string
}

func (v View) Loading() bool { return v.Status == loader.StatusLoading || v.Status == loader.StatusIdle }
func (v View) Failed() bool  { return v.Status == loader.StatusFailed }

// HasItems reports a Loaded view with at least one record.
func (v View) HasItems() bool {
	return v.Status == loader.StatusLoaded && v.Count > 0
}

// ShowEmpty is true when the "no data" text replaces the item list, which
// covers both an empty result and a failed load.
func (v View) ShowEmpty() bool {
	return v.Failed() || (v.Status == loader.StatusLoaded && v.Count == 0)
}

// CountLabel renders the entry counter, e.g. "TOTAL_ENTRIES: 03".
func (v View) CountLabel() string {
	return fmt.Sprintf("TOTAL_ENTRIES: %02d", v.Count)
}

// SkeletonSlots returns a slice sized for ranging over placeholders.
func (v View) SkeletonSlots() []int {
	n := v.Skeletons
	if n <= 0 {
		n = 1
	}
	return make([]int, n)
}

// FromState builds the view of st for the section described by m.
func FromState[T any](m Meta, st loader.State[T]) View {
	v := View{Meta: m, Status: st.Status}
	switch st.Status {
	case loader.StatusLoaded:
		items := st.Items
		if items == nil {
			items = []T{}
		}
		v.Items = items
		v.Count = len(items)
	case loader.StatusFailed:
		v.Error = st.ErrorText()
	}
	return v
}

// Placeholder is the view shown before a load settles.
func Placeholder(m Meta) View {
	return View{Meta: m, Status: loader.StatusLoading}
}
