package api

import (
	"context"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// LoginResult is what POST /login returns. Depending on the backend revision
// it carries a token, a user object, or both; callers must handle either
// being absent.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.post(ctx, "/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.post(ctx, "/register", reg, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/logout", struct{}{}, nil)
}

// CurrentUser validates the stored token against the backend and returns the
// session's user.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var wrapper struct {
		User *models.User `json:"user"`
	}
	if err := c.get(ctx, "/user", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var wrapper struct {
		User *models.User `json:"user"`
	}
	if err := c.put(ctx, "/user", update, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.User, nil
}

func (c *Client) UpdatePassword(ctx context.Context, change models.PasswordChange) error {
	return c.put(ctx, "/user/password", change, nil)
}
