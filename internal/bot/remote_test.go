package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/headsup/internal/game"
)

// wsBot starts a websocket server that answers each request with reply.
// A nil reply never answers.
func wsBot(t *testing.T, reply func(req remoteRequest) any) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req remoteRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if reply == nil {
				continue
			}
			if err := conn.WriteJSON(reply(req)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRemoteDecide(t *testing.T) {
	t.Parallel()

	got := make(chan remoteRequest, 2)
	url := wsBot(t, func(req remoteRequest) any {
		got <- req
		return map[string]any{"action": req.State.MinRaiseTo, "memory": "bmV3"}
	})

	r, err := DialRemote(context.Background(), url, testLogger())
	require.NoError(t, err)
	defer r.Close()

	snap := snapshotAfter(t, "As Ad 7c 2d "+board)
	action, mem, err := r.Decide(context.Background(), snap, game.Memory("old"))
	require.NoError(t, err)
	assert.Equal(t, 200, action)
	assert.Equal(t, game.Memory("new"), mem)

	action, _, err = r.Decide(context.Background(), snap, mem)
	require.NoError(t, err)
	assert.Equal(t, 200, action, "connection is reused")

	first, second := <-got, <-got
	assert.Equal(t, "decide", first.Type)
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)
	assert.Equal(t, game.Memory("old"), first.Memory)
	assert.Equal(t, game.Memory("new"), second.Memory)
}

func TestRemoteKeepsMemoryWhenOmitted(t *testing.T) {
	t.Parallel()

	url := wsBot(t, func(remoteRequest) any { return map[string]int{"action": 100} })
	r, err := DialRemote(context.Background(), url, testLogger())
	require.NoError(t, err)
	defer r.Close()

	action, mem, err := r.Decide(context.Background(), snapshotAfter(t, "As Ad 7c 2d "+board), game.Memory("keep"))
	require.NoError(t, err)
	assert.Equal(t, 100, action)
	assert.Equal(t, game.Memory("keep"), mem)
}

func TestRemoteBadReply(t *testing.T) {
	t.Parallel()

	url := wsBot(t, func(remoteRequest) any { return map[string]string{"memory": ""} })
	r, err := DialRemote(context.Background(), url, testLogger())
	require.NoError(t, err)
	defer r.Close()

	_, _, err = r.Decide(context.Background(), snapshotAfter(t, "As Ad 7c 2d "+board), nil)
	assert.ErrorIs(t, err, ErrBadReply)
}

func TestRemoteContextCancel(t *testing.T) {
	t.Parallel()

	r, err := DialRemote(context.Background(), wsBot(t, nil), testLogger())
	require.NoError(t, err)
	defer r.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err = r.Decide(ctx, snapshotAfter(t, "As Ad 7c 2d "+board), nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDialRemoteFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := DialRemote(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), testLogger())
	assert.Error(t, err)
}

func TestRemoteAgainstServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewServer(func() game.Decider { return CallingStation{} }, testLogger()))
	defer srv.Close()

	r, err := DialRemote(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), testLogger())
	require.NoError(t, err)
	defer r.Close()

	action, mem, err := r.Decide(context.Background(), snapshotAfter(t, "As Ad 7c 2d "+board), game.Memory("m"))
	require.NoError(t, err)
	assert.Equal(t, 100, action)
	assert.Equal(t, game.Memory("m"), mem)
}

func TestServerFailingDeciderFolds(t *testing.T) {
	t.Parallel()

	failing := game.DeciderFunc(func(context.Context, game.Snapshot, game.Memory) (int, game.Memory, error) {
		return 0, nil, ErrBadReply
	})
	srv := httptest.NewServer(NewServer(func() game.Decider { return failing }, testLogger()))
	defer srv.Close()

	r, err := DialRemote(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), testLogger())
	require.NoError(t, err)
	defer r.Close()

	_, _, err = r.Decide(context.Background(), snapshotAfter(t, "As Ad 7c 2d "+board), nil)
	assert.ErrorIs(t, err, ErrBadReply)
}

func TestRemoteRecoversAfterSlowReply(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	slowFirst := game.DeciderFunc(func(ctx context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
		if calls.Add(1) == 1 {
			time.Sleep(300 * time.Millisecond)
			return game.FoldAmount, mem, nil
		}
		return CallingStation{}.Decide(ctx, snap, mem)
	})
	srv := httptest.NewServer(NewServer(func() game.Decider { return slowFirst }, testLogger()))
	defer srv.Close()

	r, err := DialRemote(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), testLogger())
	require.NoError(t, err)
	defer r.Close()

	snap := snapshotAfter(t, "As Ad 7c 2d "+board)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err = r.Decide(ctx, snap, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	for i := range 3 {
		action, _, err := r.Decide(context.Background(), snap, nil)
		require.NoError(t, err, "decision %d", i)
		assert.Equal(t, 100, action, "late fold reply is dropped")
	}
}

func TestRemoteDropsLateReplyWithoutID(t *testing.T) {
	t.Parallel()

	n := 0
	url := wsBot(t, func(remoteRequest) any {
		n++
		if n == 1 {
			time.Sleep(200 * time.Millisecond)
			return map[string]int{"action": game.FoldAmount}
		}
		return map[string]int{"action": 100}
	})
	r, err := DialRemote(context.Background(), url, testLogger())
	require.NoError(t, err)
	defer r.Close()

	snap := snapshotAfter(t, "As Ad 7c 2d "+board)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err = r.Decide(ctx, snap, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	action, _, err := r.Decide(context.Background(), snap, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, action)
}

func TestRemoteUndecodableReplyKeepsConnection(t *testing.T) {
	t.Parallel()

	n := 0
	url := wsBot(t, func(remoteRequest) any {
		n++
		if n == 1 {
			return "not an object"
		}
		return map[string]int{"action": 100}
	})
	r, err := DialRemote(context.Background(), url, testLogger())
	require.NoError(t, err)
	defer r.Close()

	snap := snapshotAfter(t, "As Ad 7c 2d "+board)
	_, _, err = r.Decide(context.Background(), snap, nil)
	assert.ErrorIs(t, err, ErrBadReply)

	action, _, err := r.Decide(context.Background(), snap, nil)
	require.NoError(t, err)
	assert.Equal(t, 100, action)
}
