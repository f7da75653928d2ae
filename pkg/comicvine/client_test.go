package comicvine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joetting/comic-search/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, interval time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Options{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Interval: interval,
	})
}

func TestIssue(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/issue/4000-6966/", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Write([]byte(`{
			"error": "OK",
			"results": {
				"id": 6966,
				"name": "Days of Future Past",
				"issue_number": "141",
				"cover_date": "1981-01-01",
				"volume": {"id": 1487, "name": "Uncanny X-Men"},
				"person_credits": [
					{"id": 4040, "name": "Chris Claremont", "role": "writer"},
					{"id": 5564, "name": "John Byrne", "role": "penciler, inker"}
				],
				"character_credits": [{"name": "Wolverine"}],
				"story_arc_credits": [{"name": "Days of Future Past"}]
			}
		}`))
	}, time.Millisecond)

	issue, err := client.Issue(context.Background(), 6966)
	require.NoError(t, err)
	assert.Equal(t, 6966, issue.ID)
	assert.Equal(t, "Days of Future Past", issue.Name)
	assert.Equal(t, "141", issue.IssueNumber)
	assert.Equal(t, 1487, issue.Volume.ID)
	require.Len(t, issue.PersonCredits, 2)
	assert.Equal(t, "penciler, inker", issue.PersonCredits[1].Role)
	require.Len(t, issue.CharacterCredits, 1)
	assert.Equal(t, "Wolverine", issue.CharacterCredits[0].Name)
}

func TestDomainError(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Invalid API Key", "results": []}`))
	}, time.Millisecond)

	_, err := client.Search(context.Background(), "x-men")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.Domain("")))
	assert.Contains(t, err.Error(), "Invalid API Key")
}

func TestHTTPStatusError(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, time.Millisecond)

	_, err := client.Issue(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.HTTPStatus(0)))

	typed := &errcodes.Error{}
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, http.StatusTooManyRequests, typed.HTTPCode)
}

func TestDecodeError(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "OK", "results": `))
	}, time.Millisecond)

	_, err := client.Issue(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.Decode(nil)))
}

func TestMissingAPIKey(t *testing.T) {
	t.Parallel()
	client := New(Options{})

	_, err := client.Issue(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.NotConfigured("")))
}

func TestRequestSpacing(t *testing.T) {
	t.Parallel()
	interval := 60 * time.Millisecond
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "OK", "results": {"id": 1}}`))
	}, interval)

	start := time.Now()
	_, err := client.Issue(context.Background(), 1)
	require.NoError(t, err)
	_, err = client.Issue(context.Background(), 1)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), interval)
}

func TestCancelDuringSpacingDelay(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "OK", "results": {"id": 1}}`))
	}, time.Minute)

	// First request consumes the burst token immediately.
	_, err := client.Issue(context.Background(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err = client.Issue(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.Cancelled()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestSingleFlightSerialization(t *testing.T) {
	t.Parallel()
	interval := 40 * time.Millisecond
	var active, overlapped atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if active.Add(1) > 1 {
			overlapped.Store(1)
		}
		time.Sleep(5 * time.Millisecond)
		active.Add(-1)
		w.Write([]byte(`{"error": "OK", "results": {"id": 1}}`))
	}, interval)

	done := make(chan error, 3)
	start := time.Now()
	for i := 0; i < 3; i++ {
		go func() {
			_, err := client.Issue(context.Background(), 1)
			done <- err
		}()
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, <-done)
	}

	// Three serialized requests need at least two full spacing intervals,
	// and the server must never see overlapping requests.
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
	assert.Zero(t, overlapped.Load())
}
