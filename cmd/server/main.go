package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/cart"
	"github.com/shikamusenge/sumtech-clients/internal/config"
	"github.com/shikamusenge/sumtech-clients/internal/handlers"
	"github.com/shikamusenge/sumtech-clients/internal/order"
	"github.com/shikamusenge/sumtech-clients/internal/session"
	"github.com/shikamusenge/sumtech-clients/internal/store"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Local storage (session token)
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize local store", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to init local schema", "error", err)
		os.Exit(1)
	}

	// 3. Backend client and the client-side modules built on it
	backend := api.NewClient(cfg.BackendURL, db)
	sessionState := session.NewStore(backend, db)
	cartSync := cart.NewSync(backend, sessionState, cfg.PollInterval)
	checkout := order.NewFlow(backend, sessionState, cartSync)

	// Validate any stored token before serving a single page, then pull the
	// session's cart.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	sessionState.CheckSession(startupCtx)
	if err := cartSync.Refresh(startupCtx); err != nil {
		slog.Warn("Initial cart fetch failed", "error", err)
	}
	cancelStartup()
	if user := sessionState.User(); user != nil {
		slog.Info("Resumed session", "username", user.Username)
	}

	// Cart polling loop; stopped on shutdown via pollCtx.
	pollCtx, stopPolling := context.WithCancel(context.Background())
	go cartSync.Run(pollCtx)

	// 4. Browser session setup (flash messages, CSRF base)
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 5. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 6. Setup Handlers
	homeHandler := &handlers.HomeHandler{
		API:          backend,
		Session:      sessionState,
		Cart:         cartSync,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	contentHandler := &handlers.ContentHandler{
		API:          backend,
		Session:      sessionState,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	shopHandler := &handlers.ShopHandler{
		API:          backend,
		Session:      sessionState,
		Cart:         cartSync,
		Flow:         checkout,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	authHandler := &handlers.AuthHandler{
		Session:      sessionState,
		Cart:         cartSync,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	contactHandler := &handlers.ContactHandler{
		API:          backend,
		Session:      sessionState,
		Templates:    templates,
		SessionStore: sessionStore,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiter for form submissions
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Pages
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("/events", contentHandler.Events)
	mux.HandleFunc("/careers", contentHandler.Careers)
	mux.HandleFunc("/blogs", contentHandler.Blogs)
	mux.HandleFunc("/portfolio", contentHandler.Portfolio)
	mux.HandleFunc("/contact", contactHandler.ContactGet)
	mux.HandleFunc("POST /contact", rateLimiter.Middleware(contactHandler.ContactPost))

	// Auth
	mux.HandleFunc("/login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("/register", authHandler.RegisterGet)
	mux.HandleFunc("POST /register", rateLimiter.Middleware(authHandler.RegisterPost))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("/profile", authHandler.ProfileGet)
	mux.HandleFunc("POST /profile", authHandler.ProfilePost)
	mux.HandleFunc("POST /profile/password", authHandler.PasswordPost)

	// Shop: cart and checkout
	mux.HandleFunc("/shop", shopHandler.Shop)
	mux.HandleFunc("POST /shop/cart/add", shopHandler.AddToCart)
	mux.HandleFunc("POST /shop/cart/update", shopHandler.UpdateQuantity)
	mux.HandleFunc("POST /shop/cart/remove", shopHandler.RemoveFromCart)
	mux.HandleFunc("/shop/checkout", shopHandler.CheckoutForm)
	mux.HandleFunc("POST /shop/checkout", rateLimiter.Middleware(shopHandler.SubmitCheckout))
	mux.HandleFunc("POST /shop/checkout/cancel", shopHandler.CancelCheckout)
	mux.HandleFunc("/shop/orders", shopHandler.Orders)

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")
	stopPolling()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
