package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabraldasilvac/KNN-Algorithm-Project/pkg/sweep"
)

func TestSaveAndRecent(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer st.Close()

	older := Run{
		StartedAt:    time.Unix(100, 0),
		Dataset:      "iris.data",
		Seed:         1,
		TestFraction: 0.3,
		Scaling:      "none",
		Result: sweep.Result{
			Scores:  []sweep.Score{{K: 1, Accuracy: 90}, {K: 3, Accuracy: 95}},
			Best:    sweep.Score{K: 3, Accuracy: 95},
			Elapsed: 20 * time.Millisecond,
		},
	}
	id, err := st.Save(ctx, older)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	newer := older
	newer.ID = "fixed-id"
	newer.StartedAt = time.Unix(200, 0)
	newer.Scaling = "standard"
	got, err := st.Save(ctx, newer)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", got)

	runs, err := st.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "fixed-id", runs[0].ID)
	assert.Equal(t, "standard", runs[0].Scaling)
	assert.Equal(t, id, runs[1].ID)
	assert.Equal(t, older.Result, runs[1].Result)
	assert.True(t, older.StartedAt.Equal(runs[1].StartedAt))

	runs, err = st.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSaveDuplicateIDFails(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer st.Close()

	run := Run{ID: "dup", StartedAt: time.Now(), Result: sweep.Result{Best: sweep.Score{K: 1}}}
	_, err = st.Save(ctx, run)
	require.NoError(t, err)
	_, err = st.Save(ctx, run)
	assert.Error(t, err)
}
