package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"launcher/config"
	"launcher/service"
)

// NewRouter builds the gin engine serving the API under /api and, when
// configured, the front end from cfg.StaticDir.
func NewRouter(svc *service.Services, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), RequestMetrics())

	if cfg.CORSEnabled {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:   []string{"Content-Length"},
		}))
	}

	New(svc).Register(r.Group("/api"))

	if cfg.StaticDir != "" {
		r.NoRoute(staticFallback(cfg.StaticDir))
	}
	return r
}

// staticFallback serves files from dir for non-API paths, falling back to
// index.html so client-side routes resolve.
func staticFallback(dir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || (c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(path))); err != nil {
			c.File(filepath.Join(dir, "index.html"))
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
