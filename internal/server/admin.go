package server

import (
	"errors"
	"net/http"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/editor"
	"github.com/Zachkp/portfolio/internal/errs"
	"github.com/Zachkp/portfolio/internal/identity"
	"github.com/Zachkp/portfolio/internal/media"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// dashboard is everything the admin page renders.
type dashboard struct {
	Session identity.Session
	Notice  *notify.Notice

	PersonalInfo editor.Draft[editor.PersonalInfoForm]
	Skill        editor.Draft[editor.SkillForm]
	Experience   editor.Draft[editor.ExperienceForm]
	Project      editor.Draft[editor.ProjectForm]

	Skills      []content.Skill
	Experiences []content.Experience
	Projects    []content.Project
}

func (s *Server) setupAdminRoutes() {
	r := s.engine

	r.GET("/admin/login", func(c *gin.Context) {
		if _, ok := s.session(c); ok {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	loginLimit := s.rateLimit(s.Config.Limits.LoginPerMinute, func(c *gin.Context, err *errs.HTTPError) {
		c.HTML(err.Status, "admin-login.html", gin.H{"title": "Admin Login", "error": err.Message})
	})

	r.POST("/admin/login", loginLimit, func(c *gin.Context) {
		email := c.PostForm("email")
		session, token, err := s.Auth.SignIn(email, c.PostForm("password"))
		if err != nil {
			s.Logger.Warn().Str("client", s.hashIP(c.ClientIP())).Msg("failed admin login attempt")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
				"email": email,
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, token, int(s.Auth.TTL().Seconds()), "/admin", "", s.Config.Admin.SecureCookie, true)
		s.Logger.Info().Str("client", s.hashIP(c.ClientIP())).Str("session", session.ID).Msg("admin login successful")
		c.Redirect(http.StatusSeeOther, "/admin")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(sessionCookie, "", -1, "/admin", "", s.Config.Admin.SecureCookie, true)
		s.Logger.Info().Str("client", s.hashIP(c.ClientIP())).Msg("admin logout")
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.requireSession())

	admin.GET("", func(c *gin.Context) {
		d := s.newDashboard(c)
		s.renderDashboard(c, http.StatusOK, d)
	})

	admin.POST("/personal-info", submit(s, s.Editors.PersonalInfo, func(d *dashboard, draft editor.Draft[editor.PersonalInfoForm]) {
		d.PersonalInfo = draft
	}))

	crud(s, admin, "skills", s.Editors.Skills, func(d *dashboard, draft editor.Draft[editor.SkillForm]) {
		d.Skill = draft
	})
	crud(s, admin, "experiences", s.Editors.Experiences, func(d *dashboard, draft editor.Draft[editor.ExperienceForm]) {
		d.Experience = draft
	})
	crud(s, admin, "projects", s.Editors.Projects, func(d *dashboard, draft editor.Draft[editor.ProjectForm]) {
		d.Project = draft
	})

	// Every collection as one JSON document, for backups.
	admin.GET("/export", func(c *gin.Context) {
		snapshot, err := s.Repo.Snapshot(c.Request.Context())
		if err != nil {
			s.Logger.Error().Err(err).Msg("failed to export content")
			notify.Flash(c, notify.Error("Failed to export content"))
			c.Redirect(http.StatusSeeOther, "/admin")
			return
		}

		c.Header("Content-Disposition", "attachment; filename=portfolio-export.json")
		s.Logger.Info().Str("client", s.hashIP(c.ClientIP())).Msg("content exported")
		c.JSON(http.StatusOK, snapshot)
	})
}

// crud registers the edit, create, update and delete routes of one list
// entity under /admin/<name>.
func crud[R, F any](s *Server, g *gin.RouterGroup, name string, ed *editor.Editor[R, F], place func(*dashboard, editor.Draft[F])) {
	g.GET("/"+name+"/:id/edit", func(c *gin.Context) {
		draft, err := ed.Load(c.Request.Context(), c.Param("id"))
		if err != nil {
			notify.Flash(c, notify.Error(errs.From(err, "").Message))
			c.Redirect(http.StatusSeeOther, "/admin")
			return
		}
		d := s.newDashboard(c)
		place(&d, draft)
		s.renderDashboard(c, http.StatusOK, d)
	})

	g.POST("/"+name, submit(s, ed, place))
	g.POST("/"+name+"/:id", submit(s, ed, place))

	remove := func(c *gin.Context) {
		msg, err := ed.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			notify.Flash(c, notify.Error(errs.From(err, "").Message))
		} else {
			notify.Flash(c, notify.Success(msg))
		}
		if c.GetHeader("HX-Request") == "true" {
			c.Header("HX-Redirect", "/admin")
			c.Status(http.StatusOK)
			return
		}
		c.Redirect(http.StatusSeeOther, "/admin")
	}
	g.POST("/"+name+"/:id/delete", remove)
	g.DELETE("/"+name+"/:id/delete", remove)
}

// submit binds the form, runs the editor and either redirects with a success
// notice or re-renders the dashboard with the draft still filled in.
func submit[R, F any](s *Server, ed *editor.Editor[R, F], place func(*dashboard, editor.Draft[F])) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft := ed.Add()
		if id := c.Param("id"); id != "" {
			draft.State = editor.EditingExisting
			draft.ID = id
		}
		if err := c.ShouldBind(&draft.Form); err != nil {
			s.Logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("failed to bind form")
		}

		upload, closeUpload, err := formImage(c)
		if err != nil {
			d := s.newDashboard(c)
			draft.Err = errs.NewBadRequestError("Failed to read uploaded image", nil)
			place(&d, draft)
			d.Notice = notify.Error(draft.Err.Message)
			s.renderDashboard(c, draft.Err.Status, d)
			return
		}
		defer closeUpload()

		result, msg, err := ed.Submit(c.Request.Context(), draft, upload)
		if err != nil {
			httpErr := errs.From(err, "")
			d := s.newDashboard(c)
			place(&d, result)
			d.Notice = notify.Error(httpErr.Message)
			s.renderDashboard(c, httpErr.Status, d)
			return
		}

		notify.Flash(c, notify.Success(msg))
		c.Redirect(http.StatusSeeOther, "/admin")
	}
}

// formImage returns the optional "image" file of a multipart form.
func formImage(c *gin.Context) (*media.File, func(), error) {
	noop := func() {}
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	if header.Size == 0 {
		return nil, noop, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, noop, err
	}
	return &media.File{Filename: header.Filename, Body: f}, func() { _ = f.Close() }, nil
}

// newDashboard loads the four collections in parallel. A failed read leaves
// that part empty and sets an error notice.
func (s *Server) newDashboard(c *gin.Context) dashboard {
	ctx := c.Request.Context()
	session, _ := identity.FromContext(ctx)
	d := dashboard{
		Session:     session,
		Notice:      notify.Pop(c),
		Skill:       s.Editors.Skills.Add(),
		Experience:  s.Editors.Experiences.Add(),
		Project:     s.Editors.Projects.Add(),
		Skills:      []content.Skill{},
		Experiences: []content.Experience{},
		Projects:    []content.Project{},
	}

	var info *content.PersonalInfo
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Repo.GetPersonalInfo(gctx)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		info = &p
		return nil
	})
	g.Go(func() error {
		skills, err := s.Repo.Skills.List(gctx)
		if err == nil {
			d.Skills = skills
		}
		return err
	})
	g.Go(func() error {
		experiences, err := s.Repo.Experiences.List(gctx)
		if err == nil {
			d.Experiences = experiences
		}
		return err
	})
	g.Go(func() error {
		projects, err := s.Repo.Projects.List(gctx)
		if err == nil {
			d.Projects = projects
		}
		return err
	})
	if err := g.Wait(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to load admin dashboard")
		d.Notice = notify.Error("Failed to load content")
	}

	if info != nil {
		d.PersonalInfo = s.Editors.PersonalInfo.Edit(*info)
	} else {
		d.PersonalInfo = s.Editors.PersonalInfo.Add()
	}
	return d
}

func (s *Server) renderDashboard(c *gin.Context, status int, d dashboard) {
	c.HTML(status, "admin-dashboard.html", d)
}
