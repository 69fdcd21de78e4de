package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/crud"
	"github.com/Zachkp/portfolio/internal/entities"
)

const sample = `
projects:
  - _id: orbit
    projectTitle: Orbit Tracker
    techStack: Go, gin, HTMX
  - _id: mailer
    projectTitle: Terminal Mail
skills:
  - _id: go
    skillName: Go
    yearsOfExperience: 4
passions: []
`

func setupStore(t *testing.T) *crud.SQLStore {
	t.Helper()
	db, err := crud.OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	store, err := crud.NewSQLStore(context.Background(), db, crud.SQLite)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, c.Projects, 2)
	assert.Equal(t, "orbit", c.Projects[0].ID)
	assert.Equal(t, []string{"Go", "gin", "HTMX"}, c.Projects[0].Technologies())
	require.Len(t, c.Skills, 1)
	require.NotNil(t, c.Skills[0].YearsOfExperience)
	assert.Equal(t, 4.0, *c.Skills[0].YearsOfExperience)
	assert.Empty(t, c.Passions)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{"missing id", "skills:\n  - skillName: Go\n", "skills[0]: missing _id"},
		{"duplicate id", "passions:\n  - _id: a\n  - _id: a\n", `passions[1]: duplicate _id "a"`},
		{"bad yaml", "projects: [", "failed to parse content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply_CreatesThenUpdates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	report, err := Apply(ctx, store, c, Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Created: 2}, report[entities.CollectionProjects])
	assert.Equal(t, Stats{Created: 1}, report[entities.CollectionSkills])
	assert.Equal(t, Stats{}, report[entities.CollectionPassions])

	report, err = Apply(ctx, store, c, Options{})
	require.NoError(t, err)
	assert.Equal(t, Stats{Updated: 2}, report[entities.CollectionProjects])

	projects, err := crud.GetAll[entities.Project](ctx, store, entities.CollectionProjects)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Orbit Tracker", projects[0].ProjectTitle)
	assert.Equal(t, "Terminal Mail", projects[1].ProjectTitle)
}

func TestApply_Prune(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, entities.CollectionProjects, crud.Document{crud.FieldID: "retired"})
	require.NoError(t, err)

	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	report, err := Apply(ctx, store, c, Options{Prune: true})
	require.NoError(t, err)
	assert.Equal(t, Stats{Created: 2, Deleted: 1}, report[entities.CollectionProjects])

	_, err = store.Get(ctx, entities.CollectionProjects, "retired")
	assert.ErrorIs(t, err, crud.ErrNotFound)
}

func TestLoad_ShippedContentFile(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "content", "portfolio.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, c.Projects)
	assert.NotEmpty(t, c.Skills)
	assert.NotEmpty(t, c.Passions)
}
