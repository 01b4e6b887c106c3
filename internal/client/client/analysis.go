package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
)

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var out statsResponse
	if err := c.doJSON(ctx, http.MethodGet, "analysis/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

func (c *HTTPClient) WrongAnswers(ctx context.Context) ([]models.WrongAnswer, error) {
	var out wrongAnswerList
	if err := c.doJSON(ctx, http.MethodGet, "analysis/wrong-answers", nil, nil, &out); err != nil {
		return nil, err
	}
	return []models.WrongAnswer(out), nil
}

func (c *HTTPClient) Progress(ctx context.Context) (*models.Progress, error) {
	var out progressResponse
	if err := c.doJSON(ctx, http.MethodGet, "analysis/progress", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Progress, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var out userResponse
	if err := c.doJSON(ctx, http.MethodGet, "user/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	var out userResponse
	if err := c.doJSON(ctx, http.MethodPut, "user/profile", nil, in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Ping checks GET /health, which lives at the server root rather than under
// the API prefix.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var out healthResponse
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &out)
}
