package api

import (
	"context"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// SendMessage submits the contact form.
func (c *Client) SendMessage(ctx context.Context, msg models.Message) error {
	return c.post(ctx, "/messages", msg, nil)
}
