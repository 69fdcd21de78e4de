package sections

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Page is an ordered set of independent sections.
type Page struct {
	sections []Section
	byName   map[string]Section
}

func NewPage(sections ...Section) *Page {
	p := &Page{byName: make(map[string]Section, len(sections))}
	for _, s := range sections {
		p.sections = append(p.sections, s)
		p.byName[s.Meta().Name] = s
	}
	return p
}

func (p *Page) Sections() []Section {
	return p.sections
}

// Lookup finds a section by collection name.
func (p *Page) Lookup(name string) (Section, bool) {
	s, ok := p.byName[name]
	return s, ok
}

// Placeholders returns a loading view per section in page order.
func (p *Page) Placeholders() []View {
	views := make([]View, len(p.sections))
	for i, s := range p.sections {
		views[i] = Placeholder(s.Meta())
	}
	return views
}

// LoadAll renders every section concurrently. Sections settle
// independently; one failing does not affect the others.
func (p *Page) LoadAll(ctx context.Context) []View {
	views := make([]View, len(p.sections))

	var g errgroup.Group
	for i, s := range p.sections {
		g.Go(func() error {
			views[i] = s.Render(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return views
}
