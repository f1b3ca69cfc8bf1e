package editor

import (
	"maps"
	"slices"
	"strings"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/errs"
	"github.com/Zachkp/portfolio/internal/listcodec"
	"github.com/Zachkp/portfolio/internal/media"
	"github.com/rs/zerolog"
)

type SkillForm struct {
	Name string `form:"name" validate:"required"`
	// Image is the current reference; a new upload replaces it.
	Image string `form:"image_ref"`
}

type ExperienceForm struct {
	Company          string `form:"company" validate:"required"`
	Position         string `form:"position" validate:"required"`
	Period           string `form:"period" validate:"required"`
	Responsibilities string `form:"responsibilities" validate:"required"`
}

type ProjectForm struct {
	Title            string `form:"title" validate:"required"`
	Description      string `form:"description" validate:"required"`
	Technologies     string `form:"technologies" validate:"required"`
	Responsibilities string `form:"responsibilities" validate:"required"`
	DemoURL          string `form:"demoUrl" validate:"omitempty,url"`
	Image            string `form:"image_ref"`
}

type PersonalInfoForm struct {
	Name        string `form:"name" validate:"required"`
	Title       string `form:"title" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Phone       string `form:"phone" validate:"required"`
	Location    string `form:"location" validate:"required"`
	CVLink      string `form:"cvLink" validate:"required"`
	Description string `form:"description"`
}

var SkillKind = Kind[content.Skill, SkillForm]{
	Noun:           "Skill",
	InvalidMessage: "Please provide both skill name and image",
	Blank:          func() SkillForm { return SkillForm{} },
	FromRecord: func(s content.Skill) SkillForm {
		return SkillForm{Name: s.Name, Image: s.Image}
	},
	Build: func(f SkillForm) content.Skill {
		return content.Skill{Name: strings.TrimSpace(f.Name), Image: strings.TrimSpace(f.Image)}
	},
	RecordID: func(s content.Skill) string { return s.ID },
	Check: func(f SkillForm, _ bool, hasUpload bool) []errs.FieldError {
		var fields []errs.FieldError
		if strings.TrimSpace(f.Name) == "" {
			fields = append(fields, errs.FieldError{Field: "name", Error: "is required"})
		}
		if !hasUpload && strings.TrimSpace(f.Image) == "" {
			fields = append(fields, errs.FieldError{Field: "image", Error: "is required"})
		}
		return fields
	},
	Image: func(f *SkillForm) *string { return &f.Image },
}

var ExperienceKind = Kind[content.Experience, ExperienceForm]{
	Noun:           "Experience",
	InvalidMessage: "Please fill in company, position, period and responsibilities",
	Blank:          func() ExperienceForm { return ExperienceForm{} },
	FromRecord: func(e content.Experience) ExperienceForm {
		return ExperienceForm{
			Company:          e.Company,
			Position:         e.Position,
			Period:           e.Period,
			Responsibilities: listcodec.Lines.Format(e.Responsibilities),
		}
	},
	Build: func(f ExperienceForm) content.Experience {
		return content.Experience{
			Company:          strings.TrimSpace(f.Company),
			Position:         strings.TrimSpace(f.Position),
			Period:           strings.TrimSpace(f.Period),
			Responsibilities: listcodec.Lines.Split(f.Responsibilities),
		}
	},
	RecordID: func(e content.Experience) string { return e.ID },
	Check: func(f ExperienceForm, _, _ bool) []errs.FieldError {
		return blankFields(map[string]string{
			"company":  f.Company,
			"position": f.Position,
			"period":   f.Period,
		}, listField("responsibilities", listcodec.Lines, f.Responsibilities))
	},
}

var ProjectKind = Kind[content.Project, ProjectForm]{
	Noun:           "Project",
	InvalidMessage: "Please fill in title, description, technologies and responsibilities",
	Blank:          func() ProjectForm { return ProjectForm{} },
	FromRecord: func(p content.Project) ProjectForm {
		return ProjectForm{
			Title:            p.Title,
			Description:      p.Description,
			Technologies:     listcodec.Commas.Format(p.Technologies),
			Responsibilities: listcodec.Lines.Format(p.Responsibilities),
			DemoURL:          p.DemoURL,
			Image:            p.Image,
		}
	},
	Build: func(f ProjectForm) content.Project {
		return content.Project{
			Title:            strings.TrimSpace(f.Title),
			Description:      strings.TrimSpace(f.Description),
			Technologies:     listcodec.Commas.Split(f.Technologies),
			Responsibilities: listcodec.Lines.Split(f.Responsibilities),
			DemoURL:          strings.TrimSpace(f.DemoURL),
			Image:            strings.TrimSpace(f.Image),
		}
	},
	RecordID: func(p content.Project) string { return p.ID },
	Check: func(f ProjectForm, _, _ bool) []errs.FieldError {
		return blankFields(map[string]string{
			"title":       f.Title,
			"description": f.Description,
		},
			listField("technologies", listcodec.Commas, f.Technologies),
			listField("responsibilities", listcodec.Lines, f.Responsibilities),
		)
	},
	Image: func(f *ProjectForm) *string { return &f.Image },
}

var PersonalInfoKind = Kind[content.PersonalInfo, PersonalInfoForm]{
	Noun:           "Personal information",
	FixedID:        content.PersonalInfoID,
	InvalidMessage: "Please fill in all required personal information",
	Blank:          func() PersonalInfoForm { return PersonalInfoForm{} },
	FromRecord: func(p content.PersonalInfo) PersonalInfoForm {
		return PersonalInfoForm(p)
	},
	Build: func(f PersonalInfoForm) content.PersonalInfo {
		p := content.PersonalInfo(f)
		p.Normalize()
		return p
	},
	Check: func(f PersonalInfoForm, _, _ bool) []errs.FieldError {
		return blankFields(map[string]string{
			"name":     f.Name,
			"title":    f.Title,
			"phone":    f.Phone,
			"location": f.Location,
			"cvLink":   f.CVLink,
		})
	},
}

// listField returns a field error when text splits to an empty list.
func listField(name string, codec listcodec.Codec, text string) []errs.FieldError {
	if len(codec.Split(text)) == 0 {
		return []errs.FieldError{{Field: name, Error: "is required"}}
	}
	return nil
}

// blankFields flags whitespace-only values, which pass the "required" tag.
func blankFields(values map[string]string, extra ...[]errs.FieldError) []errs.FieldError {
	var fields []errs.FieldError
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if strings.TrimSpace(values[name]) == "" {
			fields = append(fields, errs.FieldError{Field: name, Error: "is required"})
		}
	}
	for _, e := range extra {
		fields = append(fields, e...)
	}
	return fields
}

// Set holds one editor per entity.
type Set struct {
	Skills       *Editor[content.Skill, SkillForm]
	Experiences  *Editor[content.Experience, ExperienceForm]
	Projects     *Editor[content.Project, ProjectForm]
	PersonalInfo *Editor[content.PersonalInfo, PersonalInfoForm]
}

func NewSet(repo *content.Repository, uploader media.Uploader, logger *zerolog.Logger) *Set {
	return &Set{
		Skills:       New(SkillKind, repo.Skills, uploader, logger),
		Experiences:  New(ExperienceKind, repo.Experiences, uploader, logger),
		Projects:     New(ProjectKind, repo.Projects, uploader, logger),
		PersonalInfo: New(PersonalInfoKind, repo.PersonalInfo, uploader, logger),
	}
}
