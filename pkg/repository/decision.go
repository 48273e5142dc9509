package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/speednorm/pkg/domain"
)

// DecisionRepository keeps the journal of classification decisions
type DecisionRepository struct {
	db *sqlx.DB
}

// NewDecisionRepository creates a new decision repository
func NewDecisionRepository(db *sqlx.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

type decisionSQL struct {
	ID        int64     `db:"id"`
	ContentID string    `db:"content_id"`
	Title     string    `db:"title"`
	Channel   string    `db:"channel"`
	Matched   bool      `db:"matched"`
	Rule      string    `db:"rule"`
	Keyword   string    `db:"keyword"`
	Rate      float64   `db:"rate"`
	DecidedAt time.Time `db:"decided_at"`
}

func (d decisionSQL) toDomain() domain.Decision {
	return domain.Decision{
		ID:        d.ID,
		ContentID: d.ContentID,
		Title:     d.Title,
		Channel:   d.Channel,
		Match:     d.Matched,
		Rule:      domain.Rule(d.Rule),
		Keyword:   d.Keyword,
		Rate:      d.Rate,
		DecidedAt: d.DecidedAt,
	}
}

// RecordDecision appends a decision to the journal
func (r *DecisionRepository) RecordDecision(ctx context.Context, d domain.Decision) error {
	if d.DecidedAt.IsZero() {
		d.DecidedAt = time.Now()
	}
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO decisions (content_id, title, channel, matched, rule, keyword, rate, decided_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := r.db.ExecContext(ctx, query, d.ContentID, d.Title, d.Channel, d.Match,
			string(d.Rule), d.Keyword, d.Rate, d.DecidedAt.UTC())
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("record decision: %w", err)}
		}
		return nil
	})
}

// RecentDecisions returns up to limit decisions, newest first
func (r *DecisionRepository) RecentDecisions(ctx context.Context, limit int) ([]domain.Decision, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []decisionSQL
	query := `
		SELECT id, content_id, title, channel, matched, rule, keyword, rate, decided_at
		FROM decisions
		ORDER BY decided_at DESC, id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get recent decisions: %w", err)
	}
	res := make([]domain.Decision, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// PruneDecisions drops decisions older than the cutoff and returns how many were removed
func (r *DecisionRepository) PruneDecisions(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM decisions WHERE decided_at < ?", olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune decisions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune decisions rows: %w", err)
	}
	return n, nil
}
