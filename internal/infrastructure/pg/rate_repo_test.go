package pg_test

import (
	"context"
	"testing"

	"quotes-aggregator/internal/domain"
	"quotes-aggregator/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
)

func TestRateRepo_LatestPerSource(t *testing.T) {
	db, teardown := withPostgres(t)
	defer teardown()

	ctx := context.Background()
	repo := pg.NewRateRepo(db)

	empty, err := repo.LatestPerSource(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	var last domain.RateSample
	for _, s := range []domain.RateSample{
		{Source: "https://a.example", Buy: 1, Sell: 1.5},
		{Source: "https://b.example", Buy: 2, Sell: 2.5},
		{Source: "https://a.example", Buy: 3, Sell: 3.5},
	} {
		stored, err := repo.Append(ctx, s)
		require.NoError(t, err)
		require.Greater(t, stored.Seq, last.Seq)
		require.False(t, stored.CreatedAt.IsZero())
		last = stored
	}

	got, err := repo.LatestPerSource(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "https://b.example", got[0].Source)
	require.Equal(t, 2.0, got[0].Buy)
	require.Equal(t, "https://a.example", got[1].Source)
	require.Equal(t, 3.0, got[1].Buy)
	require.Equal(t, 3.5, got[1].Sell)

	require.NoError(t, repo.Ping(ctx))
}
