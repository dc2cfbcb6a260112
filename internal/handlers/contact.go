package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/models"
	"github.com/shikamusenge/sumtech-clients/internal/session"
)

type ContactHandler struct {
	API          *api.Client
	Session      *session.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ContactHandler) ContactGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("contact.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"User":      h.Session.User(),
		"Flashes":   GetFlash(publicSession),
		"CsrfField": csrf.TemplateField(r),
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ContactHandler) ContactPost(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	if err := r.ParseForm(); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}

	msg := models.Message{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Subject: r.FormValue("subject"),
		Message: r.FormValue("message"),
	}

	// Validation
	errs := make(map[string]string)
	if msg.Name == "" {
		errs["name"] = "Your name is required."
	}
	if msg.Email == "" {
		errs["email"] = "Email address is required."
	} else if !isValidEmail(msg.Email) {
		errs["email"] = "Please enter a valid email address."
	}
	if msg.Message == "" {
		errs["message"] = "A message is required."
	}
	if len(errs) > 0 {
		for _, m := range errs {
			publicSession.AddFlash(FlashMessage{Type: "error", Message: m})
		}
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}

	if err := h.API.SendMessage(r.Context(), msg); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Failed to send your message. Please try again."})
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}

	publicSession.AddFlash(FlashMessage{Type: "success", Message: "Message sent! We will get back to you soon."})
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

// Basic email validation regex
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,4}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// backendMessage extracts the backend's error payload for display, falling
// back to a generic line for transport errors.
func backendMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "could not reach the server"
}
