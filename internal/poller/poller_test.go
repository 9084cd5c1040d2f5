package poller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	var g Gate
	assert.False(t, g.Paused())
	g.Pause()
	assert.True(t, g.Paused())
	g.Resume()
	assert.False(t, g.Paused())
	assert.True(t, g.Toggle())
	assert.False(t, g.Toggle())

	var nilGate *Gate
	assert.False(t, nilGate.Paused())
}

func TestPollerSkipsWhilePaused(t *testing.T) {
	var fetches atomic.Int32
	gate := &Gate{}
	gate.Pause()

	p := &Poller[int]{
		Interval: 5 * time.Millisecond,
		Gate:     gate,
		Fetch: func(context.Context) (int, error) {
			return int(fetches.Add(1)), nil
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), fetches.Load(), "no fetch while paused")

	gate.Resume()
	require.Eventually(t, func() bool { return fetches.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, p.Connected())
}

func TestPollerTracksConnectivity(t *testing.T) {
	var mu sync.Mutex
	fail := true
	var errs, snaps atomic.Int32

	p := &Poller[string]{
		Interval: 5 * time.Millisecond,
		Fetch: func(context.Context) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			if fail {
				return "", errors.New("connection refused")
			}
			return "ok", nil
		},
		OnError:    func(error) { errs.Add(1) },
		OnSnapshot: func(string) { snaps.Add(1) },
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	require.Eventually(t, func() bool { return errs.Load() >= 1 }, time.Second, 5*time.Millisecond)
	assert.False(t, p.Connected())

	mu.Lock()
	fail = false
	mu.Unlock()
	require.Eventually(t, p.Connected, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, snaps.Load(), int32(1))
}

func TestClientFetchScoreboard(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/game", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":4,"home_team":"Eagles","away_team":"Hawks","home_score":7,"quarter":2,"time_left":431,"down":3,"distance":4,"yard_line":62,"possession":"home"}`))
	})
	mux.HandleFunc("GET /api/v1/plays/4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":9,"game_id":4,"play_text":"Sam Ortiz +7 yard rush","team":"Eagles"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sb, err := NewClient(srv.URL+"/", nil).FetchScoreboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Eagles", sb.Game.HomeTeam)
	assert.Equal(t, 62, sb.Game.YardLine)
	require.Len(t, sb.Plays, 1)
	assert.Equal(t, "Sam Ortiz +7 yard rush", sb.Plays[0].Text)
}

func TestClientReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).FetchScoreboard(context.Background())
	assert.ErrorContains(t, err, "status 503")
}
