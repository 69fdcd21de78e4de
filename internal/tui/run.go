package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/portfolio/internal/sections"
)

// watcher keeps one live watch per page section and forwards every
// transition to send.
type watcher struct {
	page *sections.Page
	send func(tea.Msg)

	mu    sync.Mutex
	stops []func()
}

func newWatcher(page *sections.Page, send func(tea.Msg)) *watcher {
	return &watcher{page: page, send: send}
}

// start (re)starts every section. Earlier watches are stopped first, so a
// stale result never reaches the program.
func (w *watcher) start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopLocked()
	for i, s := range w.page.Sections() {
		w.stops = append(w.stops, s.Watch(ctx, func(v sections.View) {
			w.send(sectionMsg{index: i, view: v})
		}))
	}
}

func (w *watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *watcher) stopLocked() {
	for _, stop := range w.stops {
		stop()
	}
	w.stops = nil
}

// Run shows the page in the terminal until the user quits or ctx ends.
func Run(ctx context.Context, page *sections.Page, title, tagline string) error {
	var p *tea.Program
	w := newWatcher(page, func(msg tea.Msg) { p.Send(msg) })

	m := newModel(title, tagline, page.Placeholders(), func() { w.start(ctx) })
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	defer w.stop()
	_, err := p.Run()
	return err
}
