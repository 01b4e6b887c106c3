// Package services contains application services for the drivequiz client.
// This file defines the analysis service: the progress dashboard and the
// user profile.
package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/drivequiz/internal/client/models"
)

// AnalysisAPI is the subset of the API client the analysis service needs.
type AnalysisAPI interface {
	Stats(ctx context.Context) (*models.Stats, error)
	WrongAnswers(ctx context.Context) ([]models.WrongAnswer, error)
	Progress(ctx context.Context) (*models.Progress, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
}

// AnalysisService defines the read side of the user's learning progress.
//
// Contract:
//   - Dashboard: stats, wrong answers and progress, fetched concurrently.
//     The first failure cancels the other requests and is returned.
//   - WrongAnswers / Progress: one section on its own.
//   - Profile / UpdateProfile: read and change the account profile.
type AnalysisService interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	WrongAnswers(ctx context.Context) ([]models.WrongAnswer, error)
	Progress(ctx context.Context) (*models.Progress, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
}

type analysisService struct {
	api AnalysisAPI
}

func NewAnalysisService(api AnalysisAPI) AnalysisService {
	return &analysisService{api: api}
}

func (s *analysisService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var (
		d        models.Dashboard
		stats    *models.Stats
		progress *models.Progress
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stats, err = s.api.Stats(ctx); err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if d.WrongAnswers, err = s.api.WrongAnswers(ctx); err != nil {
			return fmt.Errorf("wrong answers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if progress, err = s.api.Progress(ctx); err != nil {
			return fmt.Errorf("progress: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats != nil {
		d.Stats = *stats
	}
	if progress != nil {
		d.Progress = *progress
	}
	if d.WrongAnswers == nil {
		d.WrongAnswers = []models.WrongAnswer{}
	}
	return &d, nil
}

func (s *analysisService) WrongAnswers(ctx context.Context) ([]models.WrongAnswer, error) {
	out, err := s.api.WrongAnswers(ctx)
	if err != nil {
		return nil, fmt.Errorf("wrong answers: %w", err)
	}
	return out, nil
}

func (s *analysisService) Progress(ctx context.Context) (*models.Progress, error) {
	p, err := s.api.Progress(ctx)
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	return p, nil
}

func (s *analysisService) Profile(ctx context.Context) (*models.User, error) {
	u, err := s.api.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return u, nil
}

// UpdateProfile rejects an update that changes nothing without calling the
// server.
func (s *analysisService) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	if in.Email == "" && in.Username == "" {
		return nil, ErrEmptyUpdate
	}
	u, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}
