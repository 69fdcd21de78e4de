package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/crud"
)

// visitorLog writes one structured line per request with the client IP
// hashed. The salt is per process, so hashes cannot be joined across
// restarts.
type visitorLog struct {
	salt   string
	logger *slog.Logger
}

func newVisitorLog(logger *slog.Logger) *visitorLog {
	return &visitorLog{salt: randomHex(16), logger: logger}
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashIP is stable for one IP within a process.
func (v *visitorLog) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + v.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// untracked paths are served without a log line.
func untracked(path string) bool {
	return strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/images/") ||
		strings.HasPrefix(path, "/favicon") ||
		path == "/health"
}

func (v *visitorLog) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if untracked(path) {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		v.logger.Info("request",
			"visitor", v.hashIP(c.ClientIP()),
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"htmx", c.GetHeader("HX-Request") == "true",
		)
	}
}

// setupAPIRoutes exposes the read side of the data service as JSON, in the
// shape crud.Client consumes.
func setupAPIRoutes(r *gin.Engine, reader crud.Reader, logger *slog.Logger) {
	api := r.Group("/api/collections")

	api.GET("", func(c *gin.Context) {
		names, err := reader.Collections(c.Request.Context())
		if err != nil {
			apiError(c, logger, err)
			return
		}
		if names == nil {
			names = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"collections": names})
	})

	api.GET("/:name", func(c *gin.Context) {
		res, err := reader.GetAll(c.Request.Context(), c.Param("name"))
		if err != nil {
			apiError(c, logger, err)
			return
		}
		if res.Items == nil {
			res.Items = []crud.Document{}
		}
		c.JSON(http.StatusOK, res)
	})

	api.GET("/:name/:id", func(c *gin.Context) {
		doc, err := reader.Get(c.Request.Context(), c.Param("name"), c.Param("id"))
		if err != nil {
			apiError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})
}

func apiError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, crud.ErrInvalidCollection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, crud.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		logger.Error("collection request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read collection"})
	}
}
