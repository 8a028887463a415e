package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/spicedocs"
	"github.com/fwojciec/spicedocs/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(path, title, content string) *spicedocs.Document {
	return &spicedocs.Document{
		Path:         path,
		Title:        title,
		Content:      content,
		URL:          path,
		LastModified: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDocumentService_UpsertDocument(t *testing.T) {
	t.Parallel()

	t.Run("creates and retrieves a document", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(openDB(t))
		ctx := context.Background()

		doc := testDoc("req/time.html", "Time Systems", "ephemeris time and UTC")
		require.NoError(t, svc.UpsertDocument(ctx, doc))
		assert.NotEmpty(t, doc.ContentHash)

		got, err := svc.FindDocumentByPath(ctx, "req/time.html")
		require.NoError(t, err)
		assert.Equal(t, "Time Systems", got.Title)
		assert.Equal(t, "ephemeris time and UTC", got.Content)
		assert.Equal(t, doc.ContentHash, got.ContentHash)
		assert.Equal(t, doc.LastModified, got.LastModified)
	})

	t.Run("re-upserting the same path replaces the record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(openDB(t))
		ctx := context.Background()

		require.NoError(t, svc.UpsertDocument(ctx, testDoc("a.html", "Old Title", "old content")))
		require.NoError(t, svc.UpsertDocument(ctx, testDoc("a.html", "New Title", "new content")))

		got, err := svc.FindDocumentByPath(ctx, "a.html")
		require.NoError(t, err)
		assert.Equal(t, "New Title", got.Title)

		count, err := svc.CountDocuments(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects a document without a path", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(openDB(t))
		err := svc.UpsertDocument(context.Background(), &spicedocs.Document{Title: "No Path"})
		require.Error(t, err)
		assert.Equal(t, spicedocs.EINVALID, spicedocs.ErrorCode(err))
	})
}

func TestDocumentService_FindDocumentByPath(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for a missing path", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewDocumentService(openDB(t))
		_, err := svc.FindDocumentByPath(context.Background(), "nope.html")
		require.Error(t, err)
		assert.Equal(t, spicedocs.ENOTFOUND, spicedocs.ErrorCode(err))
	})
}

func TestDocumentService_FindDocuments(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.DocumentService {
		t.Helper()
		svc := sqlite.NewDocumentService(openDB(t))
		ctx := context.Background()
		for _, p := range []string{"index.html", "req/time.html", "req/kernel.html", "ug/mkspk.html"} {
			require.NoError(t, svc.UpsertDocument(ctx, testDoc(p, "Title "+p, "content")))
		}
		return svc
	}

	t.Run("returns all documents ordered by path", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		docs, err := svc.FindDocuments(context.Background(), spicedocs.DocumentFilter{})
		require.NoError(t, err)
		require.Len(t, docs, 4)
		assert.Equal(t, "index.html", docs[0].Path)
		assert.Equal(t, "req/kernel.html", docs[1].Path)
		assert.Equal(t, "req/time.html", docs[2].Path)
		assert.Equal(t, "ug/mkspk.html", docs[3].Path)
	})

	t.Run("filters with a glob pattern", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		glob := "req/*"
		docs, err := svc.FindDocuments(context.Background(), spicedocs.DocumentFilter{PathGlob: &glob})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "req/kernel.html", docs[0].Path)
		assert.Equal(t, "req/time.html", docs[1].Path)
	})

	t.Run("unmatchable pattern yields zero rows not an error", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		glob := "zzz/[*"
		docs, err := svc.FindDocuments(context.Background(), spicedocs.DocumentFilter{PathGlob: &glob})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("respects the limit", func(t *testing.T) {
		t.Parallel()

		svc := seed(t)
		docs, err := svc.FindDocuments(context.Background(), spicedocs.DocumentFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})
}

func TestDocumentService_CountDocuments(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewDocumentService(openDB(t))
	ctx := context.Background()

	count, err := svc.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.UpsertDocument(ctx, testDoc("a.html", "A", "a")))
	require.NoError(t, svc.UpsertDocument(ctx, testDoc("b.html", "B", "b")))

	count, err = svc.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
