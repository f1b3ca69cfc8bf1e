// Package content holds the portfolio records and the read path used by the
// public page sections.
package content

import (
	"strings"

	"github.com/Zachkp/portfolio/internal/listcodec"
)

// PersonalInfoID is the fixed id of the PersonalInfo singleton.
const PersonalInfoID = "main"

type PersonalInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	CVLink      string `json:"cvLink"`
	Description string `json:"description"`
}

func (p *PersonalInfo) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Title = strings.TrimSpace(p.Title)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Location = strings.TrimSpace(p.Location)
	p.CVLink = strings.TrimSpace(p.CVLink)
	p.Description = strings.TrimSpace(p.Description)
}

type Skill struct {
	ID    string `json:"-"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (s *Skill) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Image = strings.TrimSpace(s.Image)
}

type Experience struct {
	ID               string   `json:"-"`
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
}

func (e *Experience) Normalize() {
	e.Company = strings.TrimSpace(e.Company)
	e.Position = strings.TrimSpace(e.Position)
	e.Period = strings.TrimSpace(e.Period)
	e.Responsibilities = listcodec.Lines.Clean(e.Responsibilities)
}

type Project struct {
	ID               string   `json:"-"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Technologies     []string `json:"technologies"`
	Responsibilities []string `json:"responsibilities"`
	DemoURL          string   `json:"demoUrl,omitempty"`
	Image            string   `json:"image,omitempty"`
}

func (p *Project) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Technologies = listcodec.Commas.Clean(p.Technologies)
	p.Responsibilities = listcodec.Lines.Clean(p.Responsibilities)
	p.DemoURL = strings.TrimSpace(p.DemoURL)
	p.Image = strings.TrimSpace(p.Image)
}

// HasImage reports whether the project carries an image reference.
func (p Project) HasImage() bool {
	return p.Image != ""
}
