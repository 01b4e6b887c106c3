package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
)

// Login exchanges the identifier and secret for a bearer token
// (OAuth2 password grant against /auth/login). The token is returned, not
// stored.
func (c *HTTPClient) Login(ctx context.Context, identifier, secret string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.endpoint("auth/login", nil),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := conf.PasswordCredentialsToken(ctx, identifier, secret)
	if err != nil {
		return "", c.loginError(ctx, err)
	}
	if tok.TokenType != "" && !strings.EqualFold(tok.TokenType, "bearer") {
		return "", malformed("unexpected token type %q", tok.TokenType)
	}
	return tok.AccessToken, nil
}

func (c *HTTPClient) loginError(ctx context.Context, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		status := http.StatusBadRequest
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		return statusError(status, re.Body)
	}

	var ue *url.Error
	if errors.As(err, &ue) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		c.log.Warn(ctx, "login request failed", "err", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if strings.Contains(err.Error(), "missing access_token") {
		return malformed("login: missing access_token")
	}
	// the remaining oauth2 failures are bodies it could not parse
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// Me returns the identity behind the current token.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out userResponse
	if err := c.doJSON(ctx, http.MethodGet, "auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var out userResponse
	if err := c.doJSON(ctx, http.MethodPost, "auth/register", nil, reg, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
