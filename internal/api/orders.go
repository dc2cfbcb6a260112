package api

import (
	"context"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

func (c *Client) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/orders/"+userID, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type createOrderRequest struct {
	UserID           string `json:"userId"`
	CartID           string `json:"cartId"`
	DeliveryLocation string `json:"deliveryLocation"`
	PhoneNumber      string `json:"phoneNumber"`
}

// CreateOrder turns the user's current cart into an order. The backend
// snapshots the items, computes the charged total and clears its cart; the
// returned order is the record of all three.
func (c *Client) CreateOrder(ctx context.Context, userID, cartID string, delivery models.DeliveryRequest) (*models.Order, error) {
	var order models.Order
	req := createOrderRequest{
		UserID:           userID,
		CartID:           cartID,
		DeliveryLocation: delivery.DeliveryLocation,
		PhoneNumber:      delivery.PhoneNumber,
	}
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
