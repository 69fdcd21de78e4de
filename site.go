package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/sections"
)

// site serves the HTML page and its HTMX fragments.
type site struct {
	page      *sections.Page
	profile   Profile
	contactTo string
	limiter   *rate.Limiter
	logger    *slog.Logger
}

func newSite(page *sections.Page, profile Profile, contactTo string, perMinute int, logger *slog.Logger) *site {
	return &site{
		page:      page,
		profile:   profile,
		contactTo: contactTo,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		logger:    logger,
	}
}

func (s *site) routes(r *gin.Engine) {
	// Home page: every section starts as a skeleton and fetches itself.
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"profile":  s.profile,
			"sections": s.page.Placeholders(),
		})
	})

	// HTMX section fragment, rendered once the collection settles
	r.GET("/sections/:name", func(c *gin.Context) {
		sec, ok := s.page.Lookup(c.Param("name"))
		if !ok {
			c.String(http.StatusNotFound, "unknown section")
			return
		}
		c.HTML(http.StatusOK, "section.html", sec.Render(c.Request.Context()))
	})

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{})
	})

	// Contact form submission: compose a mailto link, nothing is sent
	r.POST("/contact", func(c *gin.Context) {
		if !s.limiter.Allow() {
			c.HTML(http.StatusTooManyRequests, "contact.html", gin.H{
				"error": "Too many transmissions. Please try again in a minute.",
			})
			return
		}

		var msg contact.Message
		if err := c.ShouldBind(&msg); err != nil {
			c.HTML(http.StatusBadRequest, "contact.html", gin.H{
				"error": "Could not read the form.",
			})
			return
		}

		mail := contact.Compose(s.contactTo, msg)
		link := mail.URL()
		s.logger.Debug("contact link composed", "htmx", c.GetHeader("HX-Request") == "true")

		if c.GetHeader("HX-Request") != "true" {
			c.Redirect(http.StatusSeeOther, link)
			return
		}

		c.Header("HX-Redirect", link)
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"mailto":  link,
			"subject": mail.Subject,
		})
	})
}
