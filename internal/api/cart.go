package api

import (
	"context"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// Cart fetches the authoritative cart for a user. A user without a cart gets
// an empty one, not an error.
func (c *Client) Cart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.get(ctx, "/cart/"+userID, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

type addCartItemRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem posts a new line (or a quantity bump for an existing one) and
// returns the full cart as the backend now sees it.
func (c *Client) AddCartItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	req := addCartItemRequest{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := c.post(ctx, "/cart", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (c *Client) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	if err := c.put(ctx, "/cart/"+userID+"/"+productID, updateCartItemRequest{Quantity: quantity}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.delete(ctx, "/cart/"+userID+"/"+productID, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
