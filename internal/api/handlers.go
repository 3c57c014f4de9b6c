package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (r *Router) handleCharts(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	r.charts(w, req, q.Get("site"))
}

// handleSiteCharts takes the site from the path, e.g. /api/sites/KSC%20LC-39A/charts
func (r *Router) handleSiteCharts(w http.ResponseWriter, req *http.Request) {
	r.charts(w, req, chi.URLParam(req, "site"))
}

func (r *Router) charts(w http.ResponseWriter, req *http.Request, site string) {
	q := req.URL.Query()
	sel, err := r.dashboard.ParseSelection(site, q.Get("low"), q.Get("high"))
	if err != nil {
		r.writeError(w, req, err)
		return
	}

	charts, err := r.dashboard.Charts(sel)
	if err != nil {
		r.writeError(w, req, err)
		return
	}
	r.writeJSON(w, http.StatusOK, charts)
}

func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	sel, err := r.dashboard.ParseSelection(q.Get("site"), q.Get("low"), q.Get("high"))
	if err != nil {
		r.writeError(w, req, err)
		return
	}

	summary, err := r.dashboard.Summary(sel)
	if err != nil {
		r.writeError(w, req, err)
		return
	}
	r.writeJSON(w, http.StatusOK, summary)
}

func (r *Router) handleSites(w http.ResponseWriter, req *http.Request) {
	r.writeJSON(w, http.StatusOK, map[string]interface{}{"options": r.dashboard.SiteOptions()})
}

func (r *Router) handleControls(w http.ResponseWriter, req *http.Request) {
	r.writeJSON(w, http.StatusOK, r.dashboard.RangeControls())
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	r.writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "dataset": r.dashboard.Health()})
}
