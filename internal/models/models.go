package models

import (
	"time"
)

// User is the backend's client account document.
type User struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
}

type Product struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	InStock     bool     `json:"inStock"`
}

// CartItem is one line of the server-side cart, denormalized with the
// product's display fields.
type CartItem struct {
	ProductID string   `json:"product"`
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Images    []string `json:"images"`
	Quantity  int      `json:"quantity"`
}

// Cart mirrors the per-user basket held by the backend. The backend copy is
// authoritative; local copies are display state only.
type Cart struct {
	ID     string     `json:"_id"`
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// ItemCount is the sum of line quantities.
func (c Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount is sum(price * quantity) over the lines. Display estimate only;
// the backend computes the charged amount when the order is placed.
func (c Cart) TotalAmount() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Quantity returns the quantity of the given product, 0 when absent.
func (c Cart) Quantity(productID string) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

func (c Cart) Has(productID string) bool {
	return c.Quantity(productID) > 0
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderItem snapshots a cart line at the moment of purchase.
type OrderItem struct {
	ProductID      string  `json:"product"`
	Title          string  `json:"title"`
	PurchasedPrice float64 `json:"purchasedPrice"`
	Quantity       int     `json:"quantity"`
}

// Order is immutable from the client's perspective once placed; only Status
// moves, and only the backend moves it.
type Order struct {
	ID               string      `json:"_id"`
	UserID           string      `json:"userId"`
	Items            []OrderItem `json:"items"`
	TotalAmount      float64     `json:"totalAmount"`
	DeliveryLocation string      `json:"deliveryLocation"`
	PhoneNumber      string      `json:"phoneNumber"`
	Status           OrderStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// DeliveryRequest is the checkout form payload. Validated locally, sent once,
// never persisted.
type DeliveryRequest struct {
	DeliveryLocation string `json:"deliveryLocation"`
	PhoneNumber      string `json:"phoneNumber"`
}

type Event struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
}

type Career struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Type        string `json:"type"` // "Full-time", "Part-time", "Contract"
	Description string `json:"description"`
}

type Blog struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// Project is a portfolio entry. The list lives in-process; the backend has no
// portfolio endpoint.
type Project struct {
	Title        string
	Category     string
	Description  string
	Technologies []string
	Client       string
	Year         string
	Results      string
}

// Message is a contact-form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the new-account request body.
type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
}

// ProfileUpdate is the PUT /user request body.
type ProfileUpdate struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
}

// PasswordChange is the PUT /user/password request body.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
