package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/headsup/internal/game"
)

// Built-in bot names and their aliases.
var builtins = map[string]string{
	"random":          "random",
	"rnd":             "random",
	"calling-station": "calling-station",
	"calling":         "calling-station",
	"cs":              "calling-station",
	"tight":           "tight",
}

// ResolveOptions configures how bot specs become deciders.
type ResolveOptions struct {
	Timeout time.Duration // per decision, external bots only; 0 disables
	Clock   quartz.Clock
	Rng     *rand.Rand
	Logger  *log.Logger
}

// Resolve turns a bot spec into a decider. A spec is a built-in name, a
// ws:// or wss:// URL, or a path to an executable bot. External bots are
// wrapped with the decision timeout. Callers should Close the result.
func Resolve(ctx context.Context, spec string, opts ResolveOptions) (game.Decider, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("%w: empty bot spec", ErrUnknownBot)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if name, ok := builtins[strings.ToLower(spec)]; ok {
		switch name {
		case "random":
			return NewRandom(rng), nil
		case "calling-station":
			return CallingStation{}, nil
		case "tight":
			return NewTight(rng, logger), nil
		}
	}

	var d game.Decider
	switch {
	case strings.HasPrefix(spec, "ws://"), strings.HasPrefix(spec, "wss://"):
		remote, err := DialRemote(ctx, spec, logger)
		if err != nil {
			return nil, err
		}
		d = remote
	default:
		p, err := NewProcess(spec, logger)
		if err != nil {
			return nil, fmt.Errorf("%w (built-ins: %s)", err, strings.Join(BuiltinNames(), ", "))
		}
		d = p
	}

	if opts.Timeout > 0 {
		d = WithTimeout(d, opts.Timeout, opts.Clock)
	}
	return d, nil
}

// BuiltinNames lists the canonical built-in bot names.
func BuiltinNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, name := range builtins {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
