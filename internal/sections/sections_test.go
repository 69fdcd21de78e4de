package sections

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/crud"
	"github.com/Zachkp/portfolio/internal/entities"
	"github.com/Zachkp/portfolio/internal/loader"
)

// stubReader serves canned listings per collection.
type stubReader struct {
	docs  map[string][]crud.Document
	errs  map[string]error
	block map[string]chan struct{}
}

func (s *stubReader) GetAll(ctx context.Context, collection string) (*crud.Result, error) {
	if ch, ok := s.block[collection]; ok {
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := s.errs[collection]; err != nil {
		return nil, err
	}
	items := s.docs[collection]
	return &crud.Result{Items: items, TotalCount: len(items)}, nil
}

func (s *stubReader) Get(context.Context, string, string) (crud.Document, error) {
	return nil, crud.ErrNotFound
}

func (s *stubReader) Collections(context.Context) ([]string, error) {
	return nil, nil
}

func portfolioReader() *stubReader {
	return &stubReader{
		docs: map[string][]crud.Document{
			"projects": {
				{"_id": "p1", "projectTitle": "Orbit Tracker", "techStack": "Go, HTMX"},
				{"_id": "p2", "projectTitle": "Star Catalog"},
			},
		},
		errs: map[string]error{
			"passions": errors.New("network down"),
		},
	}
}

func TestPortfolio_LoadAllSettlesEverySection(t *testing.T) {
	page := Portfolio(portfolioReader())

	views := page.LoadAll(context.Background())
	require.Len(t, views, 3)

	projects, skills, passions := views[0], views[1], views[2]

	assert.Equal(t, "projects", projects.Name)
	assert.Equal(t, loader.StatusLoaded, projects.Status)
	assert.True(t, projects.HasItems())
	assert.Equal(t, "TOTAL_ENTRIES: 02", projects.CountLabel())
	items, ok := projects.Items.([]entities.Project)
	require.True(t, ok)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, []string{"Go", "HTMX"}, items[0].Technologies())

	assert.Equal(t, loader.StatusLoaded, skills.Status)
	assert.True(t, skills.ShowEmpty())
	assert.Equal(t, "MODULES_OFFLINE", skills.EmptyText)
	assert.Equal(t, []entities.Skill{}, skills.Items)

	assert.Equal(t, loader.StatusFailed, passions.Status)
	assert.True(t, passions.ShowEmpty())
	assert.Equal(t, "network down", passions.Error)
	assert.Nil(t, passions.Items)
}

func TestPortfolio_OddRecordsDoNotFailSection(t *testing.T) {
	r := &stubReader{docs: map[string][]crud.Document{
		"projects": {
			{"_id": "p1", "projectTitle": "Orbit Tracker"},
			{"_id": "p2", "projectTitle": "Star Catalog", "_createdDate": "2024-01-05"},
		},
		"skills": {
			{"_id": "s1", "skillName": "Go", "yearsOfExperience": "5"},
		},
	}}

	views := Portfolio(r).LoadAll(context.Background())
	projects, skills := views[0], views[1]

	assert.Equal(t, loader.StatusLoaded, projects.Status)
	assert.Equal(t, 2, projects.Count)
	assert.Empty(t, projects.Error)

	assert.Equal(t, loader.StatusLoaded, skills.Status)
	items, ok := skills.Items.([]entities.Skill)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "5 YRS EXP", items[0].ExperienceLabel())
}

func TestPage_LoadAllRunsSectionsConcurrently(t *testing.T) {
	release := make(chan struct{})
	r := &stubReader{block: map[string]chan struct{}{"projects": release}}
	page := Portfolio(r)

	done := make(chan []View, 1)
	go func() { done <- page.LoadAll(context.Background()) }()

	// Skills and passions must not wait on the blocked projects fetch, but
	// LoadAll returns only once every section has settled.
	select {
	case <-done:
		t.Fatal("LoadAll returned before projects settled")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	select {
	case views := <-done:
		for _, v := range views {
			assert.Equal(t, loader.StatusLoaded, v.Status, v.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("LoadAll did not return")
	}
}

func TestSection_RenderTimeout(t *testing.T) {
	r := &stubReader{block: map[string]chan struct{}{"skills": make(chan struct{})}}
	s := Skills(r, loader.WithTimeout(20*time.Millisecond))

	v := s.Render(context.Background())

	assert.Equal(t, loader.StatusFailed, v.Status)
	assert.Contains(t, v.Error, loader.ErrTimeout.Error())
	assert.True(t, v.ShowEmpty())
}

func TestSection_RenderCancelledContext(t *testing.T) {
	r := &stubReader{block: map[string]chan struct{}{"projects": make(chan struct{})}}
	s := Projects(r)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	v := s.Render(ctx)
	assert.Equal(t, loader.StatusFailed, v.Status)
	assert.Contains(t, v.Error, "context canceled")
}

func TestSection_WatchReportsTransitions(t *testing.T) {
	s := Projects(portfolioReader())

	var (
		mu    sync.Mutex
		views []View
	)
	stop := s.Watch(context.Background(), func(v View) {
		mu.Lock()
		views = append(views, v)
		mu.Unlock()
	})
	defer stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(views) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, views[0].Loading())
	assert.Equal(t, loader.StatusLoaded, views[1].Status)
	assert.Equal(t, 2, views[1].Count)
}

func TestSection_WatchStopDiscardsLateResult(t *testing.T) {
	release := make(chan struct{})
	r := &stubReader{block: map[string]chan struct{}{"passions": release}}
	s := Passions(r)

	var (
		mu    sync.Mutex
		calls int
	)
	stop := s.Watch(context.Background(), func(View) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	stop()
	close(release)

	assert.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls > 1
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestPage_LookupAndPlaceholders(t *testing.T) {
	page := Portfolio(portfolioReader())

	s, ok := page.Lookup("skills")
	require.True(t, ok)
	assert.Equal(t, "SKILL_MATRIX", s.Meta().Title)

	_, ok = page.Lookup("blog")
	assert.False(t, ok)

	placeholders := page.Placeholders()
	require.Len(t, placeholders, 3)
	for _, v := range placeholders {
		assert.True(t, v.Loading())
		assert.False(t, v.ShowEmpty())
	}
	assert.Len(t, placeholders[1].SkeletonSlots(), 4)
}

func TestFromState_NilItemsRenderAsEmpty(t *testing.T) {
	v := FromState(ProjectsMeta, loader.State[entities.Project]{Status: loader.StatusLoaded})

	assert.Equal(t, []entities.Project{}, v.Items)
	assert.Equal(t, "TOTAL_ENTRIES: 00", v.CountLabel())
	assert.True(t, v.ShowEmpty())
	assert.False(t, v.HasItems())
}
