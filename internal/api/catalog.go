package api

import (
	"context"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Events(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.get(ctx, "/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) Careers(ctx context.Context) ([]models.Career, error) {
	var careers []models.Career
	if err := c.get(ctx, "/careers", &careers); err != nil {
		return nil, err
	}
	return careers, nil
}

func (c *Client) Blogs(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := c.get(ctx, "/blogs", &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}
