package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpulse/internal/domain"
	"github.com/runoshun/taskpulse/internal/testutil"
)

var fetchTime = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestClient(t *testing.T, srv *httptest.Server, token string) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL: srv.URL,
		Token:   token,
		Clock:   &testutil.MockClock{NowTime: fetchTime},
	})
	require.NoError(t, err)
	return c
}

func TestClient_Snapshot_Paginated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"next": null, "results": [{"id": 3, "title": "c", "priority": "low", "completed": true, "created_at": "2025-06-01T00:00:00Z"}]}`)
			return
		}
		fmt.Fprint(w, `{"next": "/api/tasks/?page=2", "results": [
			{"id": 1, "title": "a", "priority": "high", "completed": false, "created_at": "2025-06-01T00:00:00Z", "category": 7},
			{"id": 2, "title": "b", "priority": "medium", "completed": false, "created_at": "2025-06-02T00:00:00Z", "due_date": "2025-06-10T00:00:00Z"}
		]}`)
	})
	mux.HandleFunc("GET /api/categories/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"id": 7, "name": "Work"}]`)
	})
	mux.HandleFunc("GET /api/lists/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"next": null, "results": []}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	snap, err := newTestClient(t, srv, "").Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Tasks, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{snap.Tasks[0].ID, snap.Tasks[1].ID, snap.Tasks[2].ID})
	assert.True(t, snap.Tasks[0].InCategory(7))
	assert.True(t, snap.Tasks[1].HasDueDate())
	require.Len(t, snap.Categories, 1)
	assert.Equal(t, "Work", snap.Categories[0].Name)
	assert.NotNil(t, snap.Lists)
	assert.Empty(t, snap.Lists)
	assert.Equal(t, fetchTime, snap.FetchedAt)
}

func TestClient_Snapshot_Headers(t *testing.T) {
	var (
		mu      sync.Mutex
		headers []http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Clone())
		mu.Unlock()
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "abc123").Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, headers, 3)
	seen := map[string]bool{}
	for _, h := range headers {
		assert.Equal(t, "Token abc123", h.Get("Authorization"))
		assert.Equal(t, "application/json", h.Get("Accept"))
		id := h.Get("X-Request-ID")
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		seen[id] = true
	}
	assert.Len(t, seen, 3)
}

func TestClient_Snapshot_NoTokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Snapshot(context.Background())
	require.NoError(t, err)
}

func TestClient_Snapshot_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail": "Invalid token."}`, domain.ErrUnauthorized},
		{"server error", http.StatusInternalServerError, `boom`, domain.ErrAPIUnavailable},
		{"not found", http.StatusNotFound, `{}`, domain.ErrAPIUnavailable},
		{"bad json", http.StatusOK, `{"results": [`, domain.ErrInvalidSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != TasksPath {
					fmt.Fprint(w, `[]`)
					return
				}
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv, "t").Snapshot(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Snapshot_StatusInMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_Snapshot_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := newTestClient(t, srv, "")
	srv.Close()

	_, err := c.Snapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
}

func TestClient_Snapshot_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Snapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
}

func TestClient_Snapshot_EndlessPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != TasksPath {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, `{"next": "/api/tasks/", "results": []}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "").Snapshot(context.Background())
	assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, domain.ErrMissingAPIBaseURL)

	_, err = New(Options{BaseURL: "localhost"})
	assert.Error(t, err)

	c, err := New(Options{BaseURL: "http://localhost:8000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/tasks/", c.base.JoinPath(TasksPath).String())
}

func TestClient_Snapshot_ForeignNextLink(t *testing.T) {
	var foreignHits atomic.Int32
	var foreignAuth atomic.Value
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignHits.Add(1)
		foreignAuth.Store(r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"next": null, "results": []}`)
	}))
	defer foreign.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != TasksPath {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprintf(w, `{"next": %q, "results": []}`, foreign.URL+TasksPath+"?page=2")
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, "secret").Snapshot(context.Background())
	require.ErrorIs(t, err, domain.ErrAPIUnavailable)
	assert.Contains(t, err.Error(), "leaves")
	assert.Zero(t, foreignHits.Load())
	assert.Nil(t, foreignAuth.Load())
}

func TestClient_Snapshot_AbsoluteNextLinkSameOrigin(t *testing.T) {
	var srv *httptest.Server
	var auth sync.Map
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.URL.String(), r.Header.Get("Authorization"))
		switch {
		case r.URL.Path != TasksPath:
			fmt.Fprint(w, `[]`)
		case r.URL.Query().Get("page") == "2":
			fmt.Fprint(w, `{"next": null, "results": [{"id": 2, "title": "b", "priority": "low", "completed": false, "created_at": "2025-06-01T00:00:00Z"}]}`)
		default:
			fmt.Fprintf(w, `{"next": %q, "results": [{"id": 1, "title": "a", "priority": "high", "completed": false, "created_at": "2025-06-01T00:00:00Z"}]}`, srv.URL+TasksPath+"?page=2")
		}
	}))
	defer srv.Close()

	snap, err := newTestClient(t, srv, "secret").Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Tasks, 2)

	got, ok := auth.Load(TasksPath + "?page=2")
	require.True(t, ok)
	assert.Equal(t, "Token secret", got)
}

func TestClient_Resolve(t *testing.T) {
	c, err := New(Options{BaseURL: "http://localhost:8000"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{name: "relative path", ref: "/api/tasks/?page=2", want: "http://localhost:8000/api/tasks/?page=2"},
		{name: "absolute same origin", ref: "http://LOCALHOST:8000/api/tasks/?page=3", want: "http://LOCALHOST:8000/api/tasks/?page=3"},
		{name: "other host", ref: "http://evil.example.com/api/tasks/", wantErr: true},
		{name: "other port", ref: "http://localhost:9000/api/tasks/", wantErr: true},
		{name: "other scheme", ref: "https://localhost:8000/api/tasks/", wantErr: true},
		{name: "scheme relative", ref: "//evil.example.com/api/tasks/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.resolve(tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrAPIUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
