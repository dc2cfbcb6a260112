package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/cart"
	"github.com/shikamusenge/sumtech-clients/internal/models"
	"github.com/shikamusenge/sumtech-clients/internal/session"
)

type HomeHandler struct {
	API          *api.Client
	Session      *session.Store
	Cart         *cart.Sync
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	// The marketing page still renders when the backend is down; the featured
	// strip is just empty.
	var featured []models.Product
	products, err := h.API.Products(r.Context())
	if err != nil {
		slog.Warn("Failed to fetch featured products", "error", err)
	} else {
		featured = products
		if len(featured) > 4 {
			featured = featured[:4]
		}
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"User":      h.Session.User(),
		"Featured":  featured,
		"CartCount": h.Cart.ItemCount(),
		"Flashes":   GetFlash(publicSession),
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("notfound.html")
	if tmpl == nil {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	tmpl.Execute(w, map[string]interface{}{
		"User": h.Session.User(),
		"Path": r.URL.Path,
	})
}
