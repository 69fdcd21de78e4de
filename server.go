package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/loader"
	"github.com/Zachkp/portfolio/internal/sections"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

func loadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// newRouter wires the site, the JSON API and health checks onto one engine.
func newRouter(cfg *config.Config, b *backend, logger *slog.Logger) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(newVisitorLog(logger).middleware())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	page := sections.Portfolio(b.reader,
		loader.WithTimeout(cfg.Loader.Timeout),
		loader.WithLogger(logger),
	)
	newSite(page, defaultProfile(cfg.Contact.Email), cfg.Contact.Email, cfg.Contact.RatePerMinute, logger).routes(r)
	setupAPIRoutes(r, b.reader, logger)

	r.GET("/health", func(c *gin.Context) {
		if b.pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := b.pinger.Ping(ctx); err != nil {
				logger.Warn("health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"backend": cfg.Data.Backend,
			"version": cfg.App.Version,
		})
	})

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "HX-Request", "HX-Trigger", "HX-Target", "HX-Current-URL"},
		ExposeHeaders: []string{"HX-Redirect"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// serve runs the HTTP server until ctx ends, then drains in-flight requests.
func serve(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
