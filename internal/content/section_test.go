package content

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Zachkp/portfolio/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{}

var errUnreachable = errors.New("store unreachable")

func (brokenStore) List(context.Context, string) ([]store.Document, error) {
	return nil, errUnreachable
}

func (brokenStore) Get(context.Context, string, string) (store.Document, error) {
	return store.Document{}, errUnreachable
}

func (brokenStore) Create(context.Context, string, json.RawMessage) (string, error) {
	return "", errUnreachable
}

func (brokenStore) Overwrite(context.Context, string, string, json.RawMessage) error {
	return errUnreachable
}

func (brokenStore) Delete(context.Context, string, string) error {
	return errUnreachable
}

func openRepo(t *testing.T) (*Repository, *store.SQLite) {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewRepository(s), s
}

func TestSectionsFallBackWhenEmpty(t *testing.T) {
	repo, _ := openRepo(t)
	logger := zerolog.Nop()
	sections := NewSections(repo, &logger)
	ctx := context.Background()

	skills := sections.Skills.Load(ctx)
	assert.True(t, skills.Fallback)
	assert.Equal(t, FallbackSkills, skills.Items)

	experiences := sections.Experiences.Load(ctx)
	assert.True(t, experiences.Fallback)
	assert.Equal(t, FallbackExperiences, experiences.Items)

	projects := sections.Projects.Load(ctx)
	assert.True(t, projects.Fallback)
	assert.Equal(t, FallbackProjects, projects.Items)

	hero := sections.PersonalInfo(ctx)
	assert.True(t, hero.Fallback)
	assert.Equal(t, []PersonalInfo{FallbackPersonalInfo}, hero.Items)
}

func TestSectionsFallBackWhenStoreFails(t *testing.T) {
	logger := zerolog.Nop()
	sections := NewSections(NewRepository(brokenStore{}), &logger)
	ctx := context.Background()

	assert.Equal(t, FallbackSkills, sections.Skills.Load(ctx).Items)
	assert.Equal(t, FallbackExperiences, sections.Experiences.Load(ctx).Items)
	assert.Equal(t, FallbackProjects, sections.Projects.Load(ctx).Items)
	assert.Equal(t, FallbackPersonalInfo, sections.PersonalInfo(ctx).Items[0])
}

func TestFallbackViewsAreCopies(t *testing.T) {
	repo, _ := openRepo(t)
	logger := zerolog.Nop()
	sections := NewSections(repo, &logger)
	ctx := context.Background()

	want := FallbackSkills[0].Name
	view := sections.Skills.Load(ctx)
	view.Items[0].Name = "changed"

	assert.Equal(t, want, FallbackSkills[0].Name)
	assert.Equal(t, want, sections.Skills.Load(ctx).Items[0].Name)
}

func TestSectionsRenderStoreOrder(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()
	for _, name := range []string{"Rust", "Go"} {
		_, err := repo.Skills.Create(ctx, Skill{Name: name, Image: name + ".png"})
		require.NoError(t, err)
	}
	require.NoError(t, repo.SavePersonalInfo(ctx, PersonalInfo{Name: "Zach"}))

	sections := NewSections(repo, nil)
	view := sections.Skills.Load(ctx)
	assert.False(t, view.Fallback)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Rust", view.Items[0].Name)
	assert.Equal(t, "Go", view.Items[1].Name)
	assert.NotEmpty(t, view.Items[0].ID)

	hero := sections.PersonalInfo(ctx)
	assert.False(t, hero.Fallback)
	assert.Equal(t, "Zach", hero.Items[0].Name)
}

func TestDecodeDefaultsMissingLists(t *testing.T) {
	repo, s := openRepo(t)
	ctx := context.Background()
	_, err := s.Create(ctx, store.Experiences, json.RawMessage(`{"company":" Acme ","position":"Dev","period":"2020"}`))
	require.NoError(t, err)
	_, err = s.Create(ctx, store.Projects, json.RawMessage(`{"title":"x","technologies":["Go"," ",""]}`))
	require.NoError(t, err)

	experiences, err := repo.Experiences.List(ctx)
	require.NoError(t, err)
	require.Len(t, experiences, 1)
	assert.Equal(t, "Acme", experiences[0].Company)
	assert.NotNil(t, experiences[0].Responsibilities)
	assert.Empty(t, experiences[0].Responsibilities)

	projects, err := repo.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Go"}, projects[0].Technologies)
	assert.Equal(t, []string{}, projects[0].Responsibilities)
}

func TestSnapshot(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	snap, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.PersonalInfo)
	assert.Empty(t, snap.Skills)

	id, err := repo.Projects.Create(ctx, Project{Title: "Site", Technologies: []string{"Go"}})
	require.NoError(t, err)
	require.NoError(t, repo.SavePersonalInfo(ctx, PersonalInfo{Name: "Zach"}))

	snap, err = repo.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.PersonalInfo)
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, id, snap.Projects[0].ID)

	_, err = NewRepository(brokenStore{}).Snapshot(ctx)
	assert.ErrorIs(t, err, errUnreachable)
}
