package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/drivequiz/internal/client/repositories/attempts"
)

// DefaultHistoryLimit is used when no limit is given.
const DefaultHistoryLimit = 10

// HistoryService reads the local journal of graded answers. It never
// touches the network.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]attempts.Attempt, error)
	Mistakes(ctx context.Context, limit int) ([]attempts.Attempt, error)
	Summary(ctx context.Context) ([]attempts.CategorySummary, error)
}

type historyService struct {
	repo attempts.Repository
}

func NewHistoryService(repo attempts.Repository) HistoryService {
	return &historyService{repo: repo}
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return DefaultHistoryLimit
	}
	return n
}

func (h *historyService) Recent(ctx context.Context, limit int) ([]attempts.Attempt, error) {
	out, err := h.repo.Recent(ctx, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return out, nil
}

func (h *historyService) Mistakes(ctx context.Context, limit int) ([]attempts.Attempt, error) {
	out, err := h.repo.Mistakes(ctx, limitOrDefault(limit))
	if err != nil {
		return nil, fmt.Errorf("read mistakes: %w", err)
	}
	return out, nil
}

func (h *historyService) Summary(ctx context.Context) ([]attempts.CategorySummary, error) {
	out, err := h.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	return out, nil
}
