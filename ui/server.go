package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"

	"spacexdash/internal"
	"spacexdash/ports"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server represents the web server for the launch dashboard
type Server struct {
	router    *gin.Engine
	dashboard ports.DashboardService
	templates *template.Template
	about     template.HTML
	logger    *internal.Logger
}

// NewServer parses the embedded templates and registers routes.
// ginMode is one of gin's debug, release or test modes.
func NewServer(dashboard ports.DashboardService, ginMode string) (*Server, error) {
	gin.SetMode(ginMode)

	s := &Server{
		router:    gin.New(),
		dashboard: dashboard,
		logger:    internal.DefaultLogger.With("UI"),
	}
	s.router.Use(gin.Logger(), gin.Recovery())

	funcMap := template.FuncMap{
		"comma": func(v float64) string { return humanize.Comma(int64(math.Round(v))) },
		"pct":   func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	}

	var err error
	s.templates, err = template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	about, err := embeddedFiles.ReadFile("templates/about.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read about panel: %w", err)
	}
	s.about = renderMarkdown(about)

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()

	return s, nil
}

// renderMarkdown converts the bundled about text to HTML. The input is a
// compiled-in asset, so the output is trusted.
func renderMarkdown(md []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank})
	return template.HTML(markdown.ToHTML(md, p, renderer))
}

// setupMiddleware serves static assets from the embedded filesystem
func (s *Server) setupMiddleware() error {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/charts", s.handleCharts)
	api.GET("/summary", s.handleSummary)
	api.GET("/sites", s.handleSites)
	api.GET("/controls", s.handleControls)
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// renderTemplate renders into a buffer first so a failing template never
// leaves a half-written page behind
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.logger.Error("template %s: %v", templateName, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "code": "INTERNAL_ERROR"})
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// HTMX helpers
func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
