package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apetrov/notewise/internal/logging"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(srv.URL, 5*time.Second, time.Hour, time.Hour, testLogger())
	t.Cleanup(c.Session().Stop)
	return c
}

// fakeTokenSource counts invocations and returns a fixed sequence of
// tokens (the last one repeats once the sequence is exhausted).
type fakeTokenSource struct {
	mu     sync.Mutex
	calls  int
	tokens []string
	err    error
}

func (f *fakeTokenSource) Source() TokenSource {
	return func(ctx context.Context) (string, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls++
		if f.err != nil {
			return "", f.err
		}
		i := f.calls - 1
		if i >= len(f.tokens) {
			i = len(f.tokens) - 1
		}
		return f.tokens[i], nil
	}
}

func (f *fakeTokenSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// ---- token resolution gate ----

func TestResolveToken_ConcurrentCallers_SingleProviderCall(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	const callers = 16

	var calls atomic.Int32
	release := make(chan struct{})
	ts := TokenSource(func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "tok-shared", nil
	})

	results := make([]string, callers)
	errs := make([]error, callers)

	var started, finished sync.WaitGroup
	started.Add(callers)
	finished.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer finished.Done()
			started.Done()
			results[i], errs[i] = c.ResolveToken(context.Background(), ts)
		}(i)
	}

	started.Wait()
	// Give every goroutine a chance to reach the gate before the
	// in-flight call completes.
	time.Sleep(50 * time.Millisecond)
	close(release)
	finished.Wait()

	require.Equal(t, int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "tok-shared", results[i])
	}
}

func TestResolveToken_EmptyToken_AuthResolutionError(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())
	fts := &fakeTokenSource{tokens: []string{""}}

	_, err := c.ResolveToken(context.Background(), fts.Source())
	require.ErrorIs(t, err, ErrAuthResolution)
}

func TestResolveToken_SourceError_AuthResolutionError(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())
	fts := &fakeTokenSource{err: errors.New("provider down")}

	_, err := c.ResolveToken(context.Background(), fts.Source())
	require.ErrorIs(t, err, ErrAuthResolution)
}

// ---- request executor ----

func TestDo_InjectsBearerAndContentType(t *testing.T) {
	var gotAuth, gotContentType string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"message":"ok"}`))
	}))

	fts := &fakeTokenSource{tokens: []string{"tok-1"}}
	err := c.do(context.Background(), http.MethodGet, "/notes", nil, fts.Source(), nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.Equal(t, "application/json", gotContentType)
}

func TestDo_ExpiredToken_RetriesOnceWithFreshToken(t *testing.T) {
	var mu sync.Mutex
	var seenTokens []string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seenTokens = append(seenTokens, r.Header.Get("Authorization"))
		attempt := len(seenTokens)
		mu.Unlock()

		if attempt == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid or expired token","debug":"Token verification failed - please refresh your session"}`))
			return
		}
		w.Write([]byte(`{"message":"ok"}`))
	}))

	fts := &fakeTokenSource{tokens: []string{"tok-old", "tok-new"}}
	err := c.do(context.Background(), http.MethodGet, "/notes", nil, fts.Source(), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer tok-old", "Bearer tok-new"}, seenTokens)
	require.Equal(t, 2, fts.Calls())
}

func TestDo_Plain401_NoRetry(t *testing.T) {
	var requests atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Authorization header is required"}`))
	}))

	fts := &fakeTokenSource{tokens: []string{"tok"}}
	err := c.do(context.Background(), http.MethodGet, "/notes", nil, fts.Source(), nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, int32(1), requests.Load())
	require.Equal(t, 1, fts.Calls())
}

func TestDo_RetryFails_OriginalStatusSurfaced(t *testing.T) {
	var requests atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid or expired token","debug":"Token verification failed - please refresh your session"}`))
	}))

	fts := &fakeTokenSource{tokens: []string{"tok-a", "tok-b"}}
	err := c.do(context.Background(), http.MethodGet, "/notes", nil, fts.Source(), nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	// Exactly one retry: two requests total, never a loop.
	require.Equal(t, int32(2), requests.Load())
}

func TestDo_ServerMessagePreferred(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"title is required"}`))
	}))

	err := c.do(context.Background(), http.MethodPost, "/notes", nil, nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "title is required", apiErr.Message)
}

func TestDo_UnparsableErrorBody_GenericMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))

	err := c.do(context.Background(), http.MethodGet, "/notes", nil, nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.Equal(t, "HTTP 500: Internal Server Error", apiErr.Message)
}

func TestDo_TokenFailure_NoRequestIssued(t *testing.T) {
	var requests atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))

	fts := &fakeTokenSource{err: errors.New("identity provider unreachable")}
	err := c.do(context.Background(), http.MethodGet, "/notes", nil, fts.Source(), nil)
	require.ErrorIs(t, err, ErrAuthResolution)
	require.Equal(t, int32(0), requests.Load())
}
