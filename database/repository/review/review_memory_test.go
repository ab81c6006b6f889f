package reviewRepo

import (
	"context"
	"testing"

	"roadguard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUpsertKeepsOneRowPerReviewer(t *testing.T) {
	repo := NewMemoryReviewRepo()
	ctx := context.Background()

	first, err := repo.Upsert(ctx, &models.Review{WorkshopID: "ws", UserID: "u1", Rating: 2, Comment: "slow"})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, &models.Review{WorkshopID: "ws", UserID: "u1", Rating: 5, Comment: "fixed it"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "fixed it", second.Comment)
	assert.Equal(t, 1, repo.Count())
}

func TestMemoryAggregate(t *testing.T) {
	repo := NewMemoryReviewRepo()
	ctx := context.Background()

	agg, err := repo.Aggregate(ctx, "ws")
	require.NoError(t, err)
	assert.Equal(t, models.RatingAggregate{}, agg)

	for user, rating := range map[string]int{"u1": 5, "u2": 4, "u3": 3} {
		_, err := repo.Upsert(ctx, &models.Review{WorkshopID: "ws", UserID: user, Rating: rating})
		require.NoError(t, err)
	}
	_, err = repo.Upsert(ctx, &models.Review{WorkshopID: "other", UserID: "u1", Rating: 1})
	require.NoError(t, err)

	agg, err = repo.Aggregate(ctx, "ws")
	require.NoError(t, err)
	assert.Equal(t, 3, agg.Count)
	assert.InDelta(t, 4.0, agg.Avg, 1e-9)

	list, err := repo.ListByWorkshop(ctx, "ws")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
