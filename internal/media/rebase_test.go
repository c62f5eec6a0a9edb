package media

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flipr/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRebaseRewritesRelativeURLs(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	p, err := st.CreateProject(ctx, "site", "a project", "/uploads/x.jpg")
	require.NoError(t, err)
	c, err := st.CreateClient(ctx, "jane", "ceo", "a client", "uploads/y.png")
	require.NoError(t, err)

	report, err := Rebase(ctx, st, "https://cdn.example.com", zap.NewNop())
	require.NoError(t, err)
	require.False(t, report.Failed())
	assert.Len(t, report.Rewritten, 2)

	rows, err := st.ImageRows(ctx, store.CollectionProjects)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, p.ID, rows[0].ID)
	assert.Equal(t, "https://cdn.example.com/uploads/x.jpg", rows[0].URL)

	rows, err = st.ImageRows(ctx, store.CollectionClients)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, c.ID, rows[0].ID)
	assert.Equal(t, "https://cdn.example.com/uploads/y.png", rows[0].URL)
}

func TestRebaseIdempotent(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.CreateProject(ctx, "site", "a project", "/uploads/x.jpg")
	require.NoError(t, err)

	first, err := Rebase(ctx, st, "https://cdn.example.com", zap.NewNop())
	require.NoError(t, err)
	require.Len(t, first.Rewritten, 1)

	stateAfterFirst, err := st.ImageRows(ctx, store.CollectionProjects)
	require.NoError(t, err)

	second, err := Rebase(ctx, st, "https://cdn.example.com", zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, second.Rewritten, "second run must rewrite nothing")

	stateAfterSecond, err := st.ImageRows(ctx, store.CollectionProjects)
	require.NoError(t, err)
	assert.Equal(t, stateAfterFirst, stateAfterSecond)
}

func TestRebaseSkipsAbsoluteURLs(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	// Already absolute, even on a different host: never touched.
	_, err := st.CreateProject(ctx, "site", "a project", "http://old-host.example/uploads/x.jpg")
	require.NoError(t, err)
	_, err = st.CreateClient(ctx, "jane", "ceo", "a client", "https://other.example/uploads/y.png")
	require.NoError(t, err)

	report, err := Rebase(ctx, st, "https://cdn.example.com", zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, report.Rewritten)
	assert.Equal(t, 2, report.Skipped)

	rows, err := st.ImageRows(ctx, store.CollectionProjects)
	require.NoError(t, err)
	assert.Equal(t, "http://old-host.example/uploads/x.jpg", rows[0].URL)
}

func TestRebaseRequiresBase(t *testing.T) {
	st := openTestStore(t)
	for _, base := range []string{"", "   "} {
		_, err := Rebase(context.Background(), st, base, zap.NewNop())
		assert.Error(t, err)
	}
}

// flakySource fails the update for one specific record.
type flakySource struct {
	rows   map[string][]store.ImageRow
	failID string
	saved  map[string]string
}

func (f *flakySource) ImageRows(_ context.Context, collection string) ([]store.ImageRow, error) {
	return f.rows[collection], nil
}

func (f *flakySource) SetImageURL(_ context.Context, _, id, url string) error {
	if id == f.failID {
		return errors.New("disk on fire")
	}
	f.saved[id] = url
	return nil
}

func TestRebaseContinuesPastFailures(t *testing.T) {
	src := &flakySource{
		rows: map[string][]store.ImageRow{
			store.CollectionProjects: {
				{ID: "p1", URL: "/uploads/a.jpg"},
				{ID: "p2", URL: "/uploads/b.jpg"},
				{ID: "p3", URL: "/uploads/c.jpg"},
			},
		},
		failID: "p2",
		saved:  map[string]string{},
	}

	report, err := Rebase(context.Background(), src, "https://cdn.example.com", zap.NewNop())
	require.NoError(t, err)

	assert.True(t, report.Failed())
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "p2", report.Failures[0].ID)

	// p3 was still processed after p2 failed.
	assert.Len(t, report.Rewritten, 2)
	assert.Equal(t, "https://cdn.example.com/uploads/c.jpg", src.saved["p3"])
}
