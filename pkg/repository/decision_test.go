package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/speednorm/pkg/domain"
)

func TestDecisionRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	decisions := []domain.Decision{
		{ContentID: "a1", Title: "Artist - Song", Channel: "Artist", Match: true, Rule: domain.RuleTitleFormat, Rate: 1.0, DecidedAt: base},
		{ContentID: "b2", Title: "Weekly Vlog", Channel: "Someone", Rule: domain.RuleNone, Rate: 1.5, DecidedAt: base.Add(time.Minute)},
		{ContentID: "c3", Title: "best cover", Channel: "X", Match: true, Rule: domain.RuleTitleKeyword, Keyword: "cover",
			Rate: 1.0, DecidedAt: base.Add(2 * time.Minute)},
	}
	for _, d := range decisions {
		require.NoError(t, repos.Decision.RecordDecision(ctx, d))
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := repos.Decision.RecentDecisions(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "c3", got[0].ContentID)
		assert.Equal(t, "b2", got[1].ContentID)
		assert.Equal(t, "a1", got[2].ContentID)

		assert.NotZero(t, got[0].ID)
		assert.True(t, got[0].Match)
		assert.Equal(t, domain.RuleTitleKeyword, got[0].Rule)
		assert.Equal(t, "cover", got[0].Keyword)
		assert.InDelta(t, 1.0, got[0].Rate, 1e-9)
		assert.True(t, got[0].DecidedAt.Equal(base.Add(2*time.Minute)), "got %v", got[0].DecidedAt)

		assert.False(t, got[1].Match)
		assert.Equal(t, domain.RuleNone, got[1].Rule)
		assert.InDelta(t, 1.5, got[1].Rate, 1e-9)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repos.Decision.RecentDecisions(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "c3", got[0].ContentID)
	})

	t.Run("default limit", func(t *testing.T) {
		got, err := repos.Decision.RecentDecisions(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("prune", func(t *testing.T) {
		n, err := repos.Decision.PruneDecisions(ctx, base.Add(90*time.Second))
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := repos.Decision.RecentDecisions(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "c3", got[0].ContentID)
	})
}

func TestDecisionRepository_DefaultTimestamp(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	require.NoError(t, repos.Decision.RecordDecision(ctx, domain.Decision{ContentID: "x", Rule: domain.RuleNone}))

	got, err := repos.Decision.RecentDecisions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].DecidedAt.After(before), "decided at %v", got[0].DecidedAt)
}
