package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/game"
)

// Process runs an external bot once per decision. The bot reads a JSON
// request on stdin and prints its action on stdout, either as a bare integer
// or as {"action": n, "memory": "<base64>"}.
type Process struct {
	path    string
	command []string
	logger  *log.Logger
}

type processRequest struct {
	State  game.Snapshot `json:"state"`
	Memory game.Memory   `json:"memory"`
}

type botReply struct {
	Action *int        `json:"action"`
	Memory game.Memory `json:"memory"`
}

// NewProcess creates a decider for the bot at path. Python, JavaScript and
// shell files run through their interpreter; anything else is executed
// directly.
func NewProcess(path string, logger *log.Logger) (*Process, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownBot, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnknownBot, path)
	}

	return &Process{
		path:    abs,
		command: interpreterFor(abs),
		logger:  logger.WithPrefix("process").With("bot", filepath.Base(abs)),
	}, nil
}

func interpreterFor(path string) []string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return []string{"python3", path}
	case ".js", ".mjs":
		return []string{"node", path}
	case ".sh":
		return []string{"sh", path}
	default:
		return []string{path}
	}
}

// Command returns the command line used to run the bot.
func (p *Process) Command() []string {
	return append([]string(nil), p.command...)
}

// Decide runs the bot with the snapshot and memory on stdin.
func (p *Process) Decide(ctx context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	req, err := json.Marshal(processRequest{State: snap, Memory: mem})
	if err != nil {
		return 0, nil, err
	}

	cmd := exec.CommandContext(ctx, p.command[0], p.command[1:]...)
	cmd.Dir = filepath.Dir(p.path)
	cmd.Stdin = bytes.NewReader(req)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, nil, fmt.Errorf("running %s: %w: %s", filepath.Base(p.path), err, strings.TrimSpace(stderr.String()))
	}
	if stderr.Len() > 0 {
		p.logger.Debug("Bot stderr", "output", strings.TrimSpace(stderr.String()))
	}
	return parseReply(stdout.Bytes(), mem)
}

// parseReply decodes a bot's answer. Only the last non-empty line counts, so
// bots may print diagnostics first. A reply without memory keeps mem.
func parseReply(out []byte, mem game.Memory) (int, game.Memory, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return 0, nil, fmt.Errorf("%w: empty output", ErrBadReply)
	}

	if strings.HasPrefix(last, "{") {
		var r botReply
		if err := json.Unmarshal([]byte(last), &r); err != nil {
			return 0, nil, fmt.Errorf("%w: %w", ErrBadReply, err)
		}
		if r.Action == nil {
			return 0, nil, fmt.Errorf("%w: no action in %q", ErrBadReply, last)
		}
		if r.Memory == nil {
			r.Memory = mem
		}
		return *r.Action, r.Memory, nil
	}

	action, err := strconv.Atoi(last)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %q", ErrBadReply, last)
	}
	return action, mem, nil
}
