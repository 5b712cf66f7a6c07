package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"intake-backend/internal/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Router mounts the API, the probe and the static frontend.
func Router(h *handlers.IntakeHandler, staticDir string, log *logrus.Entry) *gin.Engine {
	route := gin.New()
	route.Use(requestLogger(log), gin.Recovery(), cors.Default())

	api := route.Group("/api")
	api.POST("/salvar", h.Submit)
	api.GET("/pacientes", h.List)
	api.GET("/pacientes/:id", h.Detail)
	api.DELETE("/pacientes/:id", h.Delete)
	api.PUT("/pacientes/:id/favorito", h.ToggleFavorite)
	api.GET("/exportar-csv", h.ExportCSV)

	route.GET("/read-probe", h.ReadProbe)

	route.GET("/", page(staticDir, "index.html"))
	route.GET("/admin", page(staticDir, "admin.html"))
	route.GET("/quiroabout", page(staticDir, "quiroabout.html"))
	route.NoRoute(staticFiles(staticDir))

	return route
}

func page(dir, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		serveFile(c, dir, name)
	}
}

func staticFiles(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "not found"})
			return
		}
		serveFile(c, dir, c.Request.URL.Path)
	}
}

// serveFile sends a regular file below dir. path.Clean on a rooted path drops
// any ".." segments.
func serveFile(c *gin.Context, dir, name string) {
	full := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "not found"})
		return
	}
	c.File(full)
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
