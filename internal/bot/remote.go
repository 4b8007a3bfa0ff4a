package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/headsup/internal/game"
)

const writeWait = 10 * time.Second

var errConnClosed = errors.New("connection closed")

// Remote is a bot reached over a websocket. One connection serves the whole
// match; each decision is one request and one reply. Requests carry an id
// and replies to decisions that already gave up are dropped.
type Remote struct {
	url    string
	conn   *websocket.Conn
	logger *log.Logger

	replies chan remoteReply
	done    chan struct{} // closed when the read loop exits
	readErr error
	closing chan struct{}
	once    sync.Once

	mu         sync.Mutex // serialises decisions
	seq        uint64
	unanswered int
}

type remoteRequest struct {
	ID     uint64        `json:"id,omitempty"`
	Type   string        `json:"type"`
	State  game.Snapshot `json:"state"`
	Memory game.Memory   `json:"memory"`
}

type remoteReply struct {
	ID uint64 `json:"id,omitempty"`
	botReply

	err error // the message could not be decoded
}

// DialRemote connects to the bot at a ws:// or wss:// URL.
func DialRemote(ctx context.Context, url string, logger *log.Logger) (*Remote, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	logger = logger.WithPrefix("remote").With("url", url)
	logger.Info("Connected to remote bot")
	r := &Remote{
		url:     url,
		conn:    conn,
		logger:  logger,
		replies: make(chan remoteReply),
		done:    make(chan struct{}),
		closing: make(chan struct{}),
	}
	go r.readLoop()
	return r, nil
}

// readLoop owns every read on the connection. Timeouts never touch the read
// deadline, so one slow reply leaves the connection usable.
func (r *Remote) readLoop() {
	defer close(r.done)
	for {
		_, rd, err := r.conn.NextReader()
		if err != nil {
			select {
			case <-r.closing:
				r.readErr = errConnClosed
			default:
				r.readErr = err
				r.logger.Warn("Connection lost", "error", err)
			}
			return
		}
		var reply remoteReply
		if err := json.NewDecoder(rd).Decode(&reply); err != nil {
			reply = remoteReply{err: err}
		}
		select {
		case r.replies <- reply:
		case <-r.closing:
			r.readErr = errConnClosed
			return
		}
	}
}

// Decide sends the snapshot and waits for the bot's reply.
func (r *Remote) Decide(ctx context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	id := r.seq
	_ = r.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := r.conn.WriteJSON(remoteRequest{ID: id, Type: "decide", State: snap, Memory: mem}); err != nil {
		return 0, nil, fmt.Errorf("sending request: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			r.unanswered++
			return 0, nil, ctx.Err()
		case <-r.done:
			return 0, nil, fmt.Errorf("%w: %w", ErrBadReply, r.readErr)
		case reply := <-r.replies:
			if r.late(reply, id) {
				r.logger.Debug("Dropping late reply", "id", reply.ID, "want", id)
				continue
			}
			if reply.err != nil {
				return 0, nil, fmt.Errorf("%w: %w", ErrBadReply, reply.err)
			}
			if reply.Action == nil {
				return 0, nil, fmt.Errorf("%w: no action", ErrBadReply)
			}
			if reply.Memory == nil {
				reply.Memory = mem
			}
			r.logger.Debug("Received decision", "id", id, "action", *reply.Action)
			return *reply.Action, reply.Memory, nil
		}
	}
}

// late reports whether reply answers an earlier request than id. Bots that
// echo the id are matched on it; for the rest one reply is skipped per
// request that went unanswered.
func (r *Remote) late(reply remoteReply, id uint64) bool {
	if reply.ID != 0 {
		if reply.ID == id {
			r.unanswered = 0
			return false
		}
		r.unanswered = max(r.unanswered-1, 0)
		return true
	}
	if r.unanswered > 0 {
		r.unanswered--
		return true
	}
	return false
}

// Close sends a close frame and closes the connection.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	r.once.Do(func() {
		close(r.closing)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match over")
		_ = r.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		err = r.conn.Close()
		<-r.done
	})
	return err
}
