package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shikamusenge/sumtech-clients/internal/cart"
	"github.com/shikamusenge/sumtech-clients/internal/models"
	"github.com/shikamusenge/sumtech-clients/internal/session"
)

// AuthHandler serves login, registration and the profile page. Credentials
// are never stored or verified here; they are forwarded to the backend and
// only the resulting session is kept.
type AuthHandler struct {
	Session      *session.Store
	Cart         *cart.Sync
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	if h.Session.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Flashes":   GetFlash(publicSession),
		"CsrfField": csrf.TemplateField(r),
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	creds := models.Credentials{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if creds.Email == "" || creds.Password == "" {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Email and password are required."})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Session.Login(r.Context(), creds); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Login failed: " + backendMessage(err)})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// Pull the cart this account left behind.
	if err := h.Cart.Refresh(r.Context()); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Signed in, but the cart could not be fetched yet."})
	}
	publicSession.AddFlash(FlashMessage{Type: "success", Message: "Welcome back!"})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	if h.Session.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	tmpl := h.Templates.Get("register.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Flashes":   GetFlash(publicSession),
		"CsrfField": csrf.TemplateField(r),
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	reg := models.Registration{
		Username:    r.FormValue("username"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		DateOfBirth: r.FormValue("date_of_birth"),
		Gender:      r.FormValue("gender"),
		PhoneNumber: r.FormValue("phone_number"),
	}

	// Local validation first; nothing leaves the process until it passes.
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Username, email and password are required."})
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if reg.Password != r.FormValue("confirm_password") {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Passwords do not match."})
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if err := h.Session.Register(r.Context(), reg); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Registration failed: " + backendMessage(err)})
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if h.Session.Authenticated() {
		publicSession.AddFlash(FlashMessage{Type: "success", Message: "Account created, you are signed in."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	publicSession.AddFlash(FlashMessage{Type: "success", Message: "Account created. Please sign in."})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	h.Session.Logout(r.Context())
	// The mirror belongs to the session that just ended.
	h.Cart.Reset()

	publicSession.AddFlash(FlashMessage{Type: "success", Message: "Signed out."})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) ProfileGet(w http.ResponseWriter, r *http.Request) {
	user := h.Session.User()
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	tmpl := h.Templates.Get("profile.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"User":      user,
		"Flashes":   GetFlash(publicSession),
		"CsrfField": csrf.TemplateField(r),
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) ProfilePost(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	if !h.Session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	update := models.ProfileUpdate{
		Username:    r.FormValue("username"),
		Email:       r.FormValue("email"),
		DateOfBirth: r.FormValue("date_of_birth"),
		Gender:      r.FormValue("gender"),
		PhoneNumber: r.FormValue("phone_number"),
	}
	if err := h.Session.UpdateProfile(r.Context(), update); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Profile update failed: " + backendMessage(err)})
	} else {
		publicSession.AddFlash(FlashMessage{Type: "success", Message: "Profile updated."})
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *AuthHandler) PasswordPost(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	if !h.Session.Authenticated() {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	newPassword := r.FormValue("new_password")
	if newPassword == "" {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "New password is required."})
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	if newPassword != r.FormValue("confirm_password") {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Passwords do not match."})
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	change := models.PasswordChange{
		CurrentPassword: r.FormValue("current_password"),
		NewPassword:     newPassword,
	}
	if err := h.Session.UpdatePassword(r.Context(), change); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Password change failed: " + backendMessage(err)})
	} else {
		publicSession.AddFlash(FlashMessage{Type: "success", Message: "Password changed."})
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}
