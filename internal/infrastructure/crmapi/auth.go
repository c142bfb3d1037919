package crmapi

import (
	"context"
	"net/http"

	"github.com/crmdesk/portal/internal/core/domain"
)

const (
	loginPath  = "/auth/login/"
	logoutPath = "/auth/logout/"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts the credentials and returns the decoded body. Persisting the
// returned token is up to the caller.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.do(ctx, "login", http.MethodPost, loginPath, nil, credentials{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the token of the session carried by ctx. The response body
// is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, logoutPath, nil, nil, nil)
}
