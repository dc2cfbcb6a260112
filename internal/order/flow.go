// Package order drives checkout: a short-lived wizard that turns the current
// cart plus delivery details into a placed order.
package order

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// State of the checkout wizard.
//
//	Idle -> CollectingDeliveryInfo -> Submitting -> Idle        (success)
//	                             ^---- Submitting               (failure)
type State int

const (
	Idle State = iota
	CollectingDeliveryInfo
	Submitting
)

func (s State) String() string {
	switch s {
	case CollectingDeliveryInfo:
		return "collecting-delivery-info"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

var (
	ErrNotAuthenticated = errors.New("order: sign in to place an order")
	ErrEmptyCart        = errors.New("order: cart is empty")
	ErrInvalidMapLink   = errors.New("order: delivery location must be a Google Maps link")
	ErrMissingPhone     = errors.New("order: phone number is required")
	ErrNotCollecting    = errors.New("order: checkout has not been started")
)

// Accepted delivery links: google.*/maps, maps.google.*, and the two
// short-link hosts. Scheme and www are optional.
var mapLinkPattern = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(google\.[a-z]+/maps|maps\.google\.[a-z]+|maps\.app\.goo\.gl|goo\.gl/maps)`)

// ValidDeliveryLocation reports whether link points at a known map host.
func ValidDeliveryLocation(link string) bool {
	return link != "" && mapLinkPattern.MatchString(link)
}

// CartModule is the slice of the cart module checkout needs.
type CartModule interface {
	Snapshot() models.Cart
	Reset()
}

type SessionSource interface {
	User() *models.User
}

// Flow is the checkout state machine plus the local order history it feeds.
type Flow struct {
	api     *api.Client
	session SessionSource
	cart    CartModule

	mu       sync.Mutex
	state    State
	delivery models.DeliveryRequest
	orders   []models.Order
}

func NewFlow(client *api.Client, session SessionSource, cart CartModule) *Flow {
	return &Flow{api: client, session: session, cart: cart}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Delivery returns the values entered so far. They survive a failed submit so
// the user can correct and retry without retyping.
func (f *Flow) Delivery() models.DeliveryRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delivery
}

// Begin starts checkout. Both preconditions are checked before the transition
// and neither touches the network: an unauthenticated or empty-cart attempt
// leaves the flow in Idle.
func (f *Flow) Begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session.User() == nil {
		return ErrNotAuthenticated
	}
	if len(f.cart.Snapshot().Items) == 0 {
		return ErrEmptyCart
	}
	f.state = CollectingDeliveryInfo
	return nil
}

// Cancel abandons checkout and discards the entered delivery details.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = Idle
	f.delivery = models.DeliveryRequest{}
}

// Submit validates the delivery details locally and posts the order. On
// success the cart mirror is reset, the order is prepended to the local
// history and the flow returns to Idle. On a backend failure the flow drops
// back to CollectingDeliveryInfo with the entered values intact; nothing is
// retried automatically.
func (f *Flow) Submit(ctx context.Context, delivery models.DeliveryRequest) (*models.Order, error) {
	f.mu.Lock()
	if f.state != CollectingDeliveryInfo {
		f.mu.Unlock()
		return nil, ErrNotCollecting
	}
	f.delivery = delivery

	if !ValidDeliveryLocation(delivery.DeliveryLocation) {
		f.mu.Unlock()
		return nil, ErrInvalidMapLink
	}
	if strings.TrimSpace(delivery.PhoneNumber) == "" {
		f.mu.Unlock()
		return nil, ErrMissingPhone
	}

	user := f.session.User()
	if user == nil {
		// Session vanished between Begin and Submit.
		f.state = Idle
		f.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	snapshot := f.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		f.state = Idle
		f.mu.Unlock()
		return nil, ErrEmptyCart
	}
	f.state = Submitting
	f.mu.Unlock()

	placed, err := f.api.CreateOrder(ctx, user.ID, snapshot.ID, delivery)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = CollectingDeliveryInfo
		return nil, err
	}

	f.cart.Reset()
	f.orders = append([]models.Order{*placed}, f.orders...)
	f.delivery = models.DeliveryRequest{}
	f.state = Idle
	return placed, nil
}

// LoadOrders fetches the user's order history from the backend.
func (f *Flow) LoadOrders(ctx context.Context) error {
	user := f.session.User()
	if user == nil {
		return ErrNotAuthenticated
	}
	orders, err := f.api.Orders(ctx, user.ID)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = orders
	return nil
}

// Orders returns the local order history, newest first.
func (f *Flow) Orders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Order(nil), f.orders...)
}
