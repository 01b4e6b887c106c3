package attempts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/drivequiz/internal/dbx"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// Add stores the attempt and bumps the category counters in one transaction.
func (r *SQLiteRepository) Add(ctx context.Context, a *Attempt) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now().UTC()
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO attempts (quiz_id, category, question, selected, correct, is_correct, ai_generated, recorded, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.QuizID, a.Category, a.Question, a.Selected, a.Correct,
			a.IsCorrect, a.AIGenerated, a.Recorded, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}
		a.ID = id

		correct := 0
		if a.IsCorrect {
			correct = 1
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO attempt_stats (category, total, correct) VALUES (?, 1, ?)
			ON CONFLICT(category) DO UPDATE SET
				total = total + 1,
				correct = correct + excluded.correct`,
			a.Category, correct)
		if err != nil {
			return fmt.Errorf("update attempt stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *SQLiteRepository) MarkRecorded(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE attempts SET recorded = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark attempt %d recorded: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	return r.query(ctx, `SELECT id, quiz_id, category, question, selected, correct, is_correct, ai_generated, recorded, created_at
		FROM attempts ORDER BY id DESC LIMIT ?`, limit)
}

func (r *SQLiteRepository) Mistakes(ctx context.Context, limit int) ([]Attempt, error) {
	return r.query(ctx, `SELECT id, quiz_id, category, question, selected, correct, is_correct, ai_generated, recorded, created_at
		FROM attempts WHERE is_correct = 0 ORDER BY id DESC LIMIT ?`, limit)
}

func (r *SQLiteRepository) Summary(ctx context.Context) ([]CategorySummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, total, correct FROM attempt_stats ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query attempt stats: %w", err)
	}
	defer rows.Close()

	var out []CategorySummary
	for rows.Next() {
		var s CategorySummary
		if err := rows.Scan(&s.Category, &s.Total, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan attempt stats: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt stats: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) query(ctx context.Context, q string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.QuizID, &a.Category, &a.Question, &a.Selected, &a.Correct,
			&a.IsCorrect, &a.AIGenerated, &a.Recorded, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}
