// Package cart keeps a local mirror of the backend's per-user cart. The
// backend is always right: every response replaces the mirror wholesale, and
// no optimistic update is ever applied while a call is in flight.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/models"
)

var (
	ErrNotAuthenticated = errors.New("cart: sign in to use the cart")
	ErrQuantityTooLow   = errors.New("cart: quantity must be at least 1")
)

// DefaultPollInterval matches the refresh cadence of the original storefront.
const DefaultPollInterval = 5 * time.Second

// SessionSource reports whose cart this is. A nil user means no session, and
// every cart operation becomes a no-op or ErrNotAuthenticated.
type SessionSource interface {
	User() *models.User
}

// Sync mirrors the server cart. Mutations are not queued or serialized: when
// two overlap, the later-arriving response wins, which is safe only because
// every response carries the complete cart.
type Sync struct {
	api     *api.Client
	session SessionSource
	every   time.Duration

	mu   sync.RWMutex
	cart models.Cart
}

func NewSync(client *api.Client, session SessionSource, every time.Duration) *Sync {
	if every <= 0 {
		every = DefaultPollInterval
	}
	return &Sync{api: client, session: session, every: every}
}

// Snapshot returns a copy of the mirrored cart.
func (s *Sync) Snapshot() models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.cart
	out.Items = append([]models.CartItem(nil), s.cart.Items...)
	return out
}

// ItemCount is the displayed badge count: the sum of line quantities.
func (s *Sync) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.ItemCount()
}

// TotalAmount is the displayed estimate of the cart value. The backend
// recomputes the real total at order time.
func (s *Sync) TotalAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.TotalAmount()
}

// Refresh replaces the mirror with the backend's cart. Without a session it
// does nothing; a signed-out user has no cart to mirror.
func (s *Sync) Refresh(ctx context.Context) error {
	user := s.session.User()
	if user == nil {
		return nil
	}
	fresh, err := s.api.Cart(ctx, user.ID)
	if err != nil {
		return err
	}
	s.replace(ctx, fresh)
	return nil
}

// AddItem puts quantity of a product in the cart. Quantities below 1 are
// lifted to 1; the backend merges duplicate lines itself.
func (s *Sync) AddItem(ctx context.Context, productID string, quantity int) error {
	user := s.session.User()
	if user == nil {
		return ErrNotAuthenticated
	}
	if quantity < 1 {
		quantity = 1
	}
	fresh, err := s.api.AddCartItem(ctx, user.ID, productID, quantity)
	if err != nil {
		return err
	}
	s.replace(ctx, fresh)
	return nil
}

// SetQuantity changes a line's quantity. A target below 1 is rejected before
// any network call; lines leave the cart through RemoveItem, never by sitting
// at zero.
func (s *Sync) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}
	user := s.session.User()
	if user == nil {
		return ErrNotAuthenticated
	}
	fresh, err := s.api.UpdateCartItem(ctx, user.ID, productID, quantity)
	if err != nil {
		return err
	}
	s.replace(ctx, fresh)
	return nil
}

func (s *Sync) RemoveItem(ctx context.Context, productID string) error {
	user := s.session.User()
	if user == nil {
		return ErrNotAuthenticated
	}
	fresh, err := s.api.RemoveCartItem(ctx, user.ID, productID)
	if err != nil {
		return err
	}
	s.replace(ctx, fresh)
	return nil
}

// Decrement lowers a line's quantity by one. At quantity 1 the line is
// removed instead of being held at 0.
func (s *Sync) Decrement(ctx context.Context, productID string) error {
	current := s.Snapshot().Quantity(productID)
	if current == 0 {
		return nil
	}
	if current == 1 {
		return s.RemoveItem(ctx, productID)
	}
	return s.SetQuantity(ctx, productID, current-1)
}

// Reset empties the local mirror only. Used after order placement, when the
// backend has already cleared its side.
func (s *Sync) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = models.Cart{}
}

// Run re-fetches the cart on a fixed interval until ctx is cancelled, so
// changes made elsewhere (another device, a stock adjustment) converge into
// view. Mutation responses reconcile the mirror directly; they do not wait
// for, or reset, the timer.
func (s *Sync) Run(ctx context.Context) {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				slog.Debug("Cart poll failed", "error", err)
			}
		}
	}
}

// replace installs a response as the new mirror, unless ctx was cancelled
// while the call was in flight: a late response must not be written into a
// mirror whose owner has moved on.
func (s *Sync) replace(ctx context.Context, fresh *models.Cart) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if fresh == nil {
		s.cart = models.Cart{}
		return
	}
	s.cart = *fresh
}
