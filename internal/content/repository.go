package content

import (
	"context"
	"errors"

	"github.com/Zachkp/portfolio/internal/store"
	"golang.org/x/sync/errgroup"
)

// Repository groups the typed collections of the portfolio.
type Repository struct {
	Skills       *store.Collection[Skill]
	Experiences  *store.Collection[Experience]
	Projects     *store.Collection[Project]
	PersonalInfo *store.Collection[PersonalInfo]
}

func NewRepository(ds store.DocumentStore) *Repository {
	return &Repository{
		Skills:       store.NewCollection(ds, store.Skills, func(s *Skill, id string) { s.ID = id }),
		Experiences:  store.NewCollection(ds, store.Experiences, func(e *Experience, id string) { e.ID = id }),
		Projects:     store.NewCollection(ds, store.Projects, func(p *Project, id string) { p.ID = id }),
		PersonalInfo: store.NewCollection[PersonalInfo](ds, store.PersonalInfo, nil),
	}
}

// GetPersonalInfo returns the singleton or store.ErrNotFound.
func (r *Repository) GetPersonalInfo(ctx context.Context) (PersonalInfo, error) {
	return r.PersonalInfo.Get(ctx, PersonalInfoID)
}

// SavePersonalInfo overwrites the singleton wholesale.
func (r *Repository) SavePersonalInfo(ctx context.Context, info PersonalInfo) error {
	return r.PersonalInfo.Overwrite(ctx, PersonalInfoID, info)
}

// Entry pairs a record with its store id for export.
type Entry[T any] struct {
	ID   string `json:"id"`
	Data T      `json:"data"`
}

// Snapshot is every collection at once, used for export.
type Snapshot struct {
	PersonalInfo *PersonalInfo       `json:"personalInfo,omitempty"`
	Skills       []Entry[Skill]      `json:"skills"`
	Experiences  []Entry[Experience] `json:"experiences"`
	Projects     []Entry[Project]    `json:"projects"`
}

// Snapshot reads all collections concurrently. A missing PersonalInfo is left
// nil; any other read error fails the snapshot.
func (r *Repository) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := r.GetPersonalInfo(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		snap.PersonalInfo = &info
		return nil
	})
	g.Go(func() error {
		skills, err := r.Skills.List(ctx)
		snap.Skills = entries(skills, func(s Skill) string { return s.ID })
		return err
	})
	g.Go(func() error {
		experiences, err := r.Experiences.List(ctx)
		snap.Experiences = entries(experiences, func(e Experience) string { return e.ID })
		return err
	})
	g.Go(func() error {
		projects, err := r.Projects.List(ctx)
		snap.Projects = entries(projects, func(p Project) string { return p.ID })
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func entries[T any](records []T, id func(T) string) []Entry[T] {
	out := make([]Entry[T], 0, len(records))
	for _, rec := range records {
		out = append(out, Entry[T]{ID: id(rec), Data: rec})
	}
	return out
}
