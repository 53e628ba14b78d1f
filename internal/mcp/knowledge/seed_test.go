package knowledge

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcpost/mcpost/internal/embedding/mock_embedding"
)

func seedEmbedder(t *testing.T) *mock_embedding.MockEmbedder {
	t.Helper()
	emb := mock_embedding.NewMockEmbedder(gomock.NewController(t))
	emb.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(testVec(), nil).AnyTimes()
	return emb
}

func TestSeed(t *testing.T) {
	st := testStore(t)
	ctx := t.Context()

	var calls atomic.Int32
	var sawFinal atomic.Bool
	progress := func(total, count int) {
		assert.Equal(t, 3, total)
		calls.Add(1)
		if count == total {
			sawFinal.Store(true)
		}
	}
	require.NoError(t, Seed(ctx, st, seedEmbedder(t), SeedOptions{Depots: 3, Readings: 5}, progress))

	assert.EqualValues(t, 3, calls.Load())
	assert.True(t, sawFinal.Load())

	dd, err := st.Depots(ctx)
	require.NoError(t, err)
	assert.Len(t, dd, 3)

	for _, id := range []string{"d000", "d001", "d002"} {
		rr, err := st.Readings(ctx, id, 10)
		require.NoError(t, err)
		assert.Len(t, rr, 5, "depot %s", id)
	}
}

func TestSeed_clear(t *testing.T) {
	st := testStore(t)
	ctx := t.Context()

	require.NoError(t, Seed(ctx, st, seedEmbedder(t), SeedOptions{Depots: 2, Readings: 1}, nil))
	// without Clear the second run collides with the existing depot ids
	require.Error(t, Seed(ctx, st, seedEmbedder(t), SeedOptions{Depots: 2, Readings: 1}, nil))

	require.NoError(t, Seed(ctx, st, seedEmbedder(t), SeedOptions{Depots: 4, Readings: 1, Clear: true}, nil))
	dd, err := st.Depots(ctx)
	require.NoError(t, err)
	assert.Len(t, dd, 4)
}
