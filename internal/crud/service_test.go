package crud

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/entities"
	"github.com/Zachkp/portfolio/internal/loader"
)

func TestGetAll_DecodesInOrder(t *testing.T) {
	inner := newMemService()
	inner.docs["projects"] = []Document{
		{FieldID: "p2", "projectTitle": "Second"},
		{FieldID: "p1", "projectTitle": "First", "techStack": "Go, HTMX"},
	}

	got, err := GetAll[entities.Project](context.Background(), inner, "projects")
	require.NoError(t, err)

	want := []entities.Project{
		{Meta: entities.Meta{ID: "p2"}, ProjectTitle: "Second"},
		{Meta: entities.Meta{ID: "p1"}, ProjectTitle: "First", TechStack: "Go, HTMX"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetAll mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAll_EmptyCollectionIsEmptySlice(t *testing.T) {
	got, err := GetAll[entities.Skill](context.Background(), newMemService(), "skills")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestGetAll_SkipsRecordsThatDoNotDecode(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	inner := newMemService()
	inner.docs["projects"] = []Document{
		{FieldID: "p1", "projectTitle": "First"},
		{FieldID: "p2", "projectTitle": 7},
		{FieldID: "p3", "projectTitle": "Third", FieldCreatedDate: "2024-01-05"},
	}

	got, err := GetAll[entities.Project](context.Background(), inner, "projects")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
	assert.Equal(t, "2024-01-05", got[1].CreatedDate)

	assert.Contains(t, buf.String(), "record skipped")
	assert.Contains(t, buf.String(), "collection=projects")
	assert.Contains(t, buf.String(), "id=p2")
}

func TestGetAll_LenientSkillYears(t *testing.T) {
	inner := newMemService()
	inner.docs["skills"] = []Document{
		{FieldID: "go", "skillName": "Go", "yearsOfExperience": "5"},
		{FieldID: "sql", "skillName": "SQL", "yearsOfExperience": "many"},
	}

	got, err := GetAll[entities.Skill](context.Background(), inner, "skills")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "5 YRS EXP", got[0].ExperienceLabel())
	assert.Equal(t, "MASTERY", got[1].ExperienceLabel())
}

func TestDecodeAll_ReportsSkippedDocuments(t *testing.T) {
	items, skipped := DecodeAll[entities.Passion]([]Document{
		{FieldID: "a", "topicTitle": []any{"not", "a", "string"}},
		{FieldID: "b", "topicTitle": "Space"},
	})

	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
	require.Len(t, skipped, 1)
	assert.Equal(t, 0, skipped[0].Index)
	assert.Equal(t, "a", skipped[0].ID)
	assert.Error(t, skipped[0].Err)
}

func TestDecodeAll_NoDocumentsIsEmptySlice(t *testing.T) {
	items, skipped := DecodeAll[entities.Project](nil)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Nil(t, skipped)
}

func TestFetcher_FeedsLoader(t *testing.T) {
	inner := newMemService()
	inner.docs["passions"] = []Document{{FieldID: "space", "topicTitle": "Space"}}

	st := loader.Load(context.Background(), "passions", Fetcher[entities.Passion](inner))

	require.Equal(t, loader.StatusLoaded, st.Status)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Space", st.Items[0].TopicTitle)
}

func TestFetcher_BackendErrorFailsLoader(t *testing.T) {
	inner := newMemService()
	inner.failWith = assert.AnError

	st := loader.Load(context.Background(), "passions", Fetcher[entities.Passion](inner))

	assert.Equal(t, loader.StatusFailed, st.Status)
	assert.ErrorIs(t, st.Err, assert.AnError)
}

func TestEncode(t *testing.T) {
	doc, err := Encode(entities.Skill{Meta: entities.Meta{ID: "go"}, SkillName: "Go"})
	require.NoError(t, err)

	assert.Equal(t, Document{FieldID: "go", "skillName": "Go"}, doc)
}

func TestValidateCollection(t *testing.T) {
	assert.NoError(t, ValidateCollection("projects"))
	assert.NoError(t, ValidateCollection("side-projects_2"))
	assert.ErrorIs(t, ValidateCollection(""), ErrInvalidCollection)
	assert.ErrorIs(t, ValidateCollection("9lives"), ErrInvalidCollection)
	assert.ErrorIs(t, ValidateCollection("UPPER"), ErrInvalidCollection)
}
