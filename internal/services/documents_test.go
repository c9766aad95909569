package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/extract"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingArchive struct{ calls int }

func (a *failingArchive) Put(context.Context, string, string, []byte) (string, error) {
	a.calls++
	return "", errors.New("bucket gone")
}

func signedUp(t *testing.T, f *fixture, identity string) {
	t.Helper()
	require.NoError(t, f.creds.CreateAccount(context.Background(), identity, "pw"))
}

func countDocuments(t *testing.T, db *sql.DB, owner, name string) int64 {
	t.Helper()
	var n int64
	err := db.QueryRow("SELECT COUNT(*) FROM documents WHERE owner_identity = ? AND document_name = ?", owner, name).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestNewDocumentCache_UnknownPolicy(t *testing.T) {
	db, m := setupDB(t)
	_, err := NewDocumentCache(db, m, &countingExtractor{}, nil, "sometimes", logging.Nop())
	require.Error(t, err)
}

func TestDocumentCache_CacheExtractsOnce(t *testing.T) {
	f := newFixture(t, CachePolicyCache)
	signedUp(t, f, "a@x.com")
	ctx := context.Background()
	doc := extract.Document{Name: "report.pdf", Content: []byte("Title: Foo\n")}

	for i := 0; i < 3; i++ {
		text, err := f.cache.GetOrExtract(ctx, "a@x.com", doc)
		require.NoError(t, err)
		assert.Equal(t, "Title: Foo\n", text)
	}

	assert.EqualValues(t, 1, f.extract.calls.Load())
	n := countDocuments(t, f.db, "a@x.com", "report.pdf")
	assert.EqualValues(t, 1, n)
}

func TestDocumentCache_CacheIgnoresNewContentUnderSameName(t *testing.T) {
	f := newFixture(t, CachePolicyCache)
	signedUp(t, f, "a@x.com")
	ctx := context.Background()

	_, err := f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "r.pdf", Content: []byte("first")})
	require.NoError(t, err)

	text, err := f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "r.pdf", Content: []byte("second")})
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestDocumentCache_KeyedByOwnerAndBaseName(t *testing.T) {
	f := newFixture(t, CachePolicyCache)
	signedUp(t, f, "a@x.com")
	signedUp(t, f, "b@x.com")
	ctx := context.Background()

	_, err := f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "/tmp/up/r.pdf", Content: []byte("a")})
	require.NoError(t, err)

	text, err := f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: `C:\other\r.pdf`, Content: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "a", text)

	text, err = f.cache.GetOrExtract(ctx, "b@x.com", extract.Document{Name: "r.pdf", Content: []byte("b")})
	require.NoError(t, err)
	assert.Equal(t, "b", text)

	assert.EqualValues(t, 2, f.extract.calls.Load())
}

func TestDocumentCache_AlwaysExtractsEveryTime(t *testing.T) {
	f := newFixture(t, CachePolicyAlways)
	signedUp(t, f, "a@x.com")
	ctx := context.Background()
	doc := extract.Document{Name: "report.pdf", Content: []byte("Title: Foo\n")}

	for i := 0; i < 2; i++ {
		_, err := f.cache.GetOrExtract(ctx, "a@x.com", doc)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 2, f.extract.calls.Load())
	n := countDocuments(t, f.db, "a@x.com", "report.pdf")
	assert.EqualValues(t, 2, n)
}

func TestDocumentCache_ConcurrentMissesShareExtraction(t *testing.T) {
	f := newFixture(t, CachePolicyCache)
	signedUp(t, f, "a@x.com")
	f.extract.fn = func(doc extract.Document) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return string(doc.Content), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]string, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.cache.GetOrExtract(context.Background(), "a@x.com",
				extract.Document{Name: "r.pdf", Content: []byte("text")})
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "text", results[i])
	}
	assert.EqualValues(t, 1, f.extract.calls.Load())
}

func TestDocumentCache_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	f := newFixture(t, CachePolicyCache)
	signedUp(t, f, "a@x.com")

	started := make(chan struct{})
	release := make(chan struct{})
	f.extract.fn = func(doc extract.Document) (string, error) {
		close(started)
		<-release
		return string(doc.Content), nil
	}
	doc := extract.Document{Name: "r.pdf", Content: []byte("text")}

	type result struct {
		text string
		err  error
	}
	first := make(chan result, 1)
	second := make(chan result, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		text, err := f.cache.GetOrExtract(ctx, "a@x.com", doc)
		first <- result{text, err}
	}()
	<-started

	go func() {
		text, err := f.cache.GetOrExtract(context.Background(), "a@x.com", doc)
		second <- result{text, err}
	}()
	// let the second caller join the in-flight extraction
	time.Sleep(50 * time.Millisecond)

	cancel()
	select {
	case r := <-first:
		require.ErrorIs(t, r.err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case r := <-second:
		require.NoError(t, r.err)
		assert.Equal(t, "text", r.text)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never got the result")
	}

	assert.EqualValues(t, 1, f.extract.calls.Load())
	assert.EqualValues(t, 1, countDocuments(t, f.db, "a@x.com", "r.pdf"))
}

func TestDocumentCache_ExtractionErrorStoresNothing(t *testing.T) {
	f := newFixture(t, CachePolicyCache)
	signedUp(t, f, "a@x.com")
	f.extract.fn = func(extract.Document) (string, error) {
		return "", common.ErrorExtraction
	}
	ctx := context.Background()

	_, err := f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "bad.pdf", Content: []byte("junk")})
	require.ErrorIs(t, err, common.ErrorExtraction)

	n := countDocuments(t, f.db, "a@x.com", "bad.pdf")
	assert.Zero(t, n)
}

func TestDocumentCache_ArchiveFailureIsNotFatal(t *testing.T) {
	db, m := setupDB(t)
	arch := &failingArchive{}
	ex := &countingExtractor{}
	cache, err := NewDocumentCache(db, m, ex, arch, CachePolicyCache, logging.Nop())
	require.NoError(t, err)
	ctx := context.Background()
	_, err = db.ExecContext(ctx, "INSERT INTO users (identity, secret) VALUES ('a@x.com', x'00')")
	require.NoError(t, err)

	text, err := cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "r.txt", Content: []byte("hello")})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, 1, arch.calls)
}

func TestDocumentCache_RecordStoredDuringExtractionWins(t *testing.T) {
	f := newFixture(t, CachePolicyCache)
	signedUp(t, f, "a@x.com")
	ctx := context.Background()

	f.extract.fn = func(doc extract.Document) (string, error) {
		// another process stores the same pair first
		_, err := f.db.ExecContext(ctx,
			"INSERT INTO documents (owner_identity, document_name, document_text) VALUES (?, ?, ?)",
			"a@x.com", "r.pdf", "theirs")
		require.NoError(t, err)
		return "ours", nil
	}

	text, err := f.cache.GetOrExtract(ctx, "a@x.com", extract.Document{Name: "r.pdf", Content: []byte("ours")})
	require.NoError(t, err)
	assert.Equal(t, "theirs", text)

	n := countDocuments(t, f.db, "a@x.com", "r.pdf")
	assert.EqualValues(t, 1, n)
}
