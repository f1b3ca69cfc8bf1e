package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/errs"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupPublicRoutes() {
	r := s.engine

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"hero": s.Sections.PersonalInfo(c.Request.Context()),
		})
	})

	// HTMX fragments, loaded by the landing page.
	r.GET("/sections/skills", func(c *gin.Context) {
		c.HTML(http.StatusOK, "skills.html", gin.H{
			"view": s.Sections.Skills.Load(c.Request.Context()),
		})
	})

	r.GET("/sections/experience", func(c *gin.Context) {
		c.HTML(http.StatusOK, "experience.html", gin.H{
			"view": s.Sections.Experiences.Load(c.Request.Context()),
		})
	})

	r.GET("/sections/projects", func(c *gin.Context) {
		c.HTML(http.StatusOK, "projects.html", gin.H{
			"view": s.Sections.Projects.Load(c.Request.Context()),
		})
	})

	r.GET("/sections/contact", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", s.contactData(c))
	})

	// htmx only swaps 2xx responses, so the limit notice goes out as 200.
	contactLimit := s.rateLimit(s.Config.Limits.ContactPerMinute, func(c *gin.Context, err *errs.HTTPError) {
		c.HTML(http.StatusOK, "contact-form.html", gin.H{"form": contact.Request{}, "notice": notify.Error(err.Message)})
	})

	// Meeting requests answer with the form fragment: cleared on success,
	// still filled in on failure.
	r.POST("/contact", contactLimit, func(c *gin.Context) {
		var req contact.Request
		if err := c.ShouldBind(&req); err != nil {
			s.Logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("failed to bind form")
		}

		if err := s.Scheduler.Schedule(c.Request.Context(), req); err != nil {
			httpErr := errs.From(err, contact.SendFailedMessage)
			c.HTML(http.StatusOK, "contact-form.html", gin.H{
				"form":   req,
				"notice": notify.Error(httpErr.Message),
				"errors": httpErr,
			})
			return
		}
		c.HTML(http.StatusOK, "contact-form.html", gin.H{
			"form":   contact.Request{},
			"notice": notify.Success(contact.SuccessMessage),
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.Store.Ping(ctx); err != nil {
			s.Logger.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) contactData(c *gin.Context) gin.H {
	return gin.H{
		"owner": s.Sections.PersonalInfo(c.Request.Context()).Items[0],
		"form":  contact.Request{},
	}
}
