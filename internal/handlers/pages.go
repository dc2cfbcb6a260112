package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/catalog"
	"github.com/shikamusenge/sumtech-clients/internal/session"
)

// ContentHandler serves the fetch-and-render pages: one backend read, then
// in-memory narrowing driven by query parameters. A failed fetch renders the
// page's error state; an empty result after filtering renders its own
// message; the two are never conflated.
type ContentHandler struct {
	API          *api.Client
	Session      *session.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ContentHandler) Events(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("events.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	filter := catalog.EventFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = catalog.EventsAll
	}
	term := r.URL.Query().Get("q")

	data := map[string]interface{}{
		"User":   h.Session.User(),
		"Filter": string(filter),
		"Query":  term,
	}

	events, err := h.API.Events(r.Context())
	if err != nil {
		data["Error"] = "Failed to fetch events"
	} else {
		data["Events"] = catalog.FilterEvents(events, filter, term, time.Now())
		data["Suggestions"] = catalog.Suggestions(catalog.EventTitles(events), term, 5)
	}
	tmpl.Execute(w, data)
}

func (h *ContentHandler) Careers(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("careers.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User": h.Session.User(),
	}
	careers, err := h.API.Careers(r.Context())
	if err != nil {
		data["Error"] = "Failed to fetch career openings"
	} else {
		data["Careers"] = careers
	}
	tmpl.Execute(w, data)
}

func (h *ContentHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("blogs.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User": h.Session.User(),
	}
	blogs, err := h.API.Blogs(r.Context())
	if err != nil {
		data["Error"] = "Failed to fetch blog posts"
	} else {
		data["Blogs"] = blogs
	}
	tmpl.Execute(w, data)
}

func (h *ContentHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("portfolio.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	category := r.URL.Query().Get("category")
	term := r.URL.Query().Get("q")

	tmpl.Execute(w, map[string]interface{}{
		"User":       h.Session.User(),
		"Category":   category,
		"Query":      term,
		"Categories": catalog.ProjectCategories(catalog.Projects),
		"Projects":   catalog.FilterProjects(catalog.Projects, category, term),
	})
}
