package credentials

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/drivequiz/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/drivequiz/internal/common"
)

// SQLiteStore keeps the token in the metadata table of the local database.
type SQLiteStore struct {
	repo metadata.Repository
}

func NewSQLiteStore(repo metadata.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.repo.Set(ctx, common.CredentialKey, []byte(token)); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Read(ctx context.Context) (string, bool, error) {
	v, err := s.repo.Get(ctx, common.CredentialKey)
	if err != nil {
		return "", false, fmt.Errorf("read credential: %w", err)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.CredentialKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClearIf(ctx context.Context, token string) (bool, error) {
	ok, err := s.repo.DeleteIf(ctx, common.CredentialKey, []byte(token))
	if err != nil {
		return false, fmt.Errorf("clear credential: %w", err)
	}
	return ok, nil
}
