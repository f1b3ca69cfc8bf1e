package content

import (
	"context"
	"errors"
	"slices"

	"github.com/Zachkp/portfolio/internal/store"
	"github.com/rs/zerolog"
)

// View is what a section renders.
type View[T any] struct {
	Items    []T
	Fallback bool
}

// Section loads one slice of the page, falling back to a fixed list when the
// store has nothing to show. Errors are logged and never returned.
type Section[T any] struct {
	Name     string
	Fetch    func(ctx context.Context) ([]T, error)
	Fallback []T
	Logger   *zerolog.Logger
}

func (s Section[T]) Load(ctx context.Context) View[T] {
	items, err := s.Fetch(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error().Err(err).Str("section", s.Name).Msg("failed to fetch section, using fallback")
		}
		return s.fallback()
	}
	if len(items) == 0 {
		return s.fallback()
	}
	return View[T]{Items: items}
}

// fallback copies the list so callers cannot change it for later requests.
func (s Section[T]) fallback() View[T] {
	return View[T]{Items: slices.Clone(s.Fallback), Fallback: true}
}

// Sections are the public page sections wired to a repository.
type Sections struct {
	Skills      Section[Skill]
	Experiences Section[Experience]
	Projects    Section[Project]

	repo   *Repository
	logger *zerolog.Logger
}

func NewSections(repo *Repository, logger *zerolog.Logger) *Sections {
	return &Sections{
		Skills: Section[Skill]{
			Name:     "skills",
			Fetch:    repo.Skills.List,
			Fallback: FallbackSkills,
			Logger:   logger,
		},
		Experiences: Section[Experience]{
			Name:     "experience",
			Fetch:    repo.Experiences.List,
			Fallback: FallbackExperiences,
			Logger:   logger,
		},
		Projects: Section[Project]{
			Name:     "projects",
			Fetch:    repo.Projects.List,
			Fallback: FallbackProjects,
			Logger:   logger,
		},
		repo:   repo,
		logger: logger,
	}
}

// PersonalInfo backs the hero and contact sections. An absent document is not
// an error; a failed read is logged.
func (s *Sections) PersonalInfo(ctx context.Context) View[PersonalInfo] {
	info, err := s.repo.GetPersonalInfo(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) && s.logger != nil {
			s.logger.Error().Err(err).Str("section", "hero").Msg("failed to fetch personal info, using fallback")
		}
		return View[PersonalInfo]{Items: []PersonalInfo{FallbackPersonalInfo}, Fallback: true}
	}
	return View[PersonalInfo]{Items: []PersonalInfo{info}}
}
