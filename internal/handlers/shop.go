package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/cart"
	"github.com/shikamusenge/sumtech-clients/internal/catalog"
	"github.com/shikamusenge/sumtech-clients/internal/models"
	"github.com/shikamusenge/sumtech-clients/internal/order"
	"github.com/shikamusenge/sumtech-clients/internal/session"
)

// ShopHandler serves the store page and every cart and checkout action.
type ShopHandler struct {
	API          *api.Client
	Session      *session.Store
	Cart         *cart.Sync
	Flow         *order.Flow
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ShopHandler) Shop(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("shop.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	publicSession, _ := h.SessionStore.Get(r, "public-session")
	term := r.URL.Query().Get("q")

	data := map[string]interface{}{
		"User":        h.Session.User(),
		"Query":       term,
		"Cart":        h.Cart.Snapshot(),
		"CartCount":   h.Cart.ItemCount(),
		"TotalAmount": h.Cart.TotalAmount(),
		"Flashes":     GetFlash(publicSession),
		"CsrfField":   csrf.TemplateField(r),
	}

	products, err := h.API.Products(r.Context())
	if err != nil {
		data["Error"] = "Failed to fetch products"
	} else {
		data["Products"] = catalog.SearchProducts(products, term)
		data["Suggestions"] = catalog.Suggestions(catalog.ProductTitles(products), term, 5)
	}

	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	productID := r.FormValue("product_id")
	if productID == "" {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Missing product."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	err := h.Cart.AddItem(r.Context(), productID, 1)
	switch {
	case errors.Is(err, cart.ErrNotAuthenticated):
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Please login to add items to cart."})
	case err != nil:
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Failed to add item to cart."})
	default:
		publicSession.AddFlash(FlashMessage{Type: "success", Message: "Item added to cart."})
	}
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

// UpdateQuantity handles the +/- buttons on a cart line. Decrementing the
// last unit removes the line; the quantity never sits at 0.
func (h *ShopHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	productID := r.FormValue("product_id")
	action := r.FormValue("action")

	var err error
	switch action {
	case "increment":
		current := h.Cart.Snapshot().Quantity(productID)
		err = h.Cart.SetQuantity(r.Context(), productID, current+1)
	case "decrement":
		err = h.Cart.Decrement(r.Context(), productID)
	default:
		qty, convErr := strconv.Atoi(r.FormValue("quantity"))
		if convErr != nil {
			publicSession.AddFlash(FlashMessage{Type: "error", Message: "Invalid quantity."})
			http.Redirect(w, r, "/shop", http.StatusSeeOther)
			return
		}
		err = h.Cart.SetQuantity(r.Context(), productID, qty)
	}

	switch {
	case errors.Is(err, cart.ErrQuantityTooLow):
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Quantity must be at least 1."})
	case errors.Is(err, cart.ErrNotAuthenticated):
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Please login to use the cart."})
	case err != nil:
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Failed to update quantity."})
	}
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

func (h *ShopHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	if err := h.Cart.RemoveItem(r.Context(), r.FormValue("product_id")); err != nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Failed to remove item from cart."})
	}
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

// CheckoutForm starts (or resumes) the checkout wizard. The preconditions are
// enforced by the flow itself; a refused start redirects back to the shop
// without ever touching the backend.
func (h *ShopHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")

	if h.Flow.State() == order.Idle {
		if err := h.Flow.Begin(); err != nil {
			switch {
			case errors.Is(err, order.ErrNotAuthenticated):
				publicSession.AddFlash(FlashMessage{Type: "error", Message: "Please login to create an order."})
			case errors.Is(err, order.ErrEmptyCart):
				publicSession.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
			default:
				publicSession.AddFlash(FlashMessage{Type: "error", Message: "Unable to start checkout."})
			}
			publicSession.Save(r, w)
			http.Redirect(w, r, "/shop", http.StatusSeeOther)
			return
		}
	}

	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	// Values entered on a failed attempt come back; the phone field falls
	// back to the profile's number.
	delivery := h.Flow.Delivery()
	if delivery.PhoneNumber == "" {
		if user := h.Session.User(); user != nil {
			delivery.PhoneNumber = user.PhoneNumber
		}
	}

	data := map[string]interface{}{
		"User":        h.Session.User(),
		"Cart":        h.Cart.Snapshot(),
		"TotalAmount": h.Cart.TotalAmount(),
		"Delivery":    delivery,
		"Flashes":     GetFlash(publicSession),
		"CsrfField":   csrf.TemplateField(r),
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	defer publicSession.Save(r, w)

	delivery := models.DeliveryRequest{
		DeliveryLocation: r.FormValue("delivery_location"),
		PhoneNumber:      r.FormValue("phone_number"),
	}

	_, err := h.Flow.Submit(r.Context(), delivery)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidMapLink):
			publicSession.AddFlash(FlashMessage{Type: "error", Message: "Please provide a valid Google Maps link (google.com/maps, maps.google.com, maps.app.goo.gl or goo.gl/maps)."})
		case errors.Is(err, order.ErrMissingPhone):
			publicSession.AddFlash(FlashMessage{Type: "error", Message: "Please provide a valid phone number."})
		case errors.Is(err, order.ErrNotCollecting):
			http.Redirect(w, r, "/shop", http.StatusSeeOther)
			return
		default:
			publicSession.AddFlash(FlashMessage{Type: "error", Message: "Failed to place order. Please try again."})
		}
		http.Redirect(w, r, "/shop/checkout", http.StatusSeeOther)
		return
	}

	publicSession.AddFlash(FlashMessage{Type: "success", Message: "Order placed successfully!"})
	http.Redirect(w, r, "/shop/orders", http.StatusSeeOther)
}

func (h *ShopHandler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	h.Flow.Cancel()
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

func (h *ShopHandler) Orders(w http.ResponseWriter, r *http.Request) {
	publicSession, _ := h.SessionStore.Get(r, "public-session")

	if h.Session.User() == nil {
		publicSession.AddFlash(FlashMessage{Type: "error", Message: "Please login to see your orders."})
		publicSession.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"User":    h.Session.User(),
		"Flashes": GetFlash(publicSession),
	}
	// A failed fetch still shows the locally known history (e.g. an order
	// placed moments ago).
	if err := h.Flow.LoadOrders(r.Context()); err != nil {
		data["Error"] = "Failed to fetch orders"
	}
	data["Orders"] = h.Flow.Orders()

	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}
