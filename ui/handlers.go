package ui

import (
	"html/template"
	"net/http"

	"spacexdash/domain/launch"
	"spacexdash/internal/aggregate"
	"spacexdash/internal/errors"
	"spacexdash/ports"

	"github.com/gin-gonic/gin"
)

// indexPage is the data behind templates/index.html
type indexPage struct {
	Title    string
	Options  []aggregate.Option
	Controls aggregate.RangeControls
	Selected string
	Label    string
	About    template.HTML
	Health   ports.DatasetHealth
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", indexPage{
		Title:    "SpaceX Launch Records Dashboard",
		Options:  s.dashboard.SiteOptions(),
		Controls: s.dashboard.RangeControls(),
		Selected: launch.AllSites,
		Label:    "You have selected " + launch.AllSites,
		About:    s.about,
		Health:   s.dashboard.Health(),
	})
}

// selection parses site/low/high query parameters
func (s *Server) selection(c *gin.Context) (launch.Selection, error) {
	return s.dashboard.ParseSelection(c.Query("site"), c.Query("low"), c.Query("high"))
}

func (s *Server) handleCharts(c *gin.Context) {
	sel, err := s.selection(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	charts, err := s.dashboard.Charts(sel)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, charts)
}

func (s *Server) handleSummary(c *gin.Context) {
	sel, err := s.selection(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	summary, err := s.dashboard.Summary(sel)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if isHTMX(c) {
		s.renderTemplate(c, http.StatusOK, "summary.html", summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleSites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": s.dashboard.SiteOptions()})
}

func (s *Server) handleControls(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.RangeControls())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "dataset": s.dashboard.Health()})
}

// respondError reports a failed recomputation to the page without dropping the session
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal error"
	}

	if isHTMX(c) {
		c.Data(status, "text/html; charset=utf-8", []byte(`<p class="error">`+template.HTMLEscapeString(message)+`</p>`))
		return
	}
	c.JSON(status, gin.H{"error": message, "code": errors.GetCode(err)})
}
