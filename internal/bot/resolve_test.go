package bot

import (
	"context"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltins(t *testing.T) {
	t.Parallel()

	opts := ResolveOptions{Rng: rand.New(rand.NewPCG(1, 1)), Logger: testLogger(), Timeout: time.Second}
	tests := []struct {
		spec string
		want any
	}{
		{"random", &Random{}},
		{"RND", &Random{}},
		{"calling-station", CallingStation{}},
		{"cs", CallingStation{}},
		{" calling ", CallingStation{}},
		{"tight", &Tight{}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()
			d, err := Resolve(context.Background(), tt.spec, opts)
			require.NoError(t, err)
			assert.IsType(t, tt.want, d, "built-ins are not wrapped with a timeout")
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	_, err := Resolve(context.Background(), "", ResolveOptions{Logger: testLogger()})
	assert.ErrorIs(t, err, ErrUnknownBot)

	_, err = Resolve(context.Background(), filepath.Join(t.TempDir(), "nope"), ResolveOptions{Logger: testLogger()})
	assert.ErrorIs(t, err, ErrUnknownBot)
	assert.Contains(t, err.Error(), "calling-station")
}

func TestResolveProcess(t *testing.T) {
	t.Parallel()

	path := writeBot(t, "echo 0\n")

	d, err := Resolve(context.Background(), path, ResolveOptions{Logger: testLogger()})
	require.NoError(t, err)
	assert.IsType(t, &Process{}, d)

	d, err = Resolve(context.Background(), path, ResolveOptions{Logger: testLogger(), Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &timeoutDecider{}, d)
}

func TestResolveRemote(t *testing.T) {
	t.Parallel()

	d, err := Resolve(context.Background(), wsBot(t, nil), ResolveOptions{Logger: testLogger()})
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, d)
	assert.NoError(t, Close(d))

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err = Resolve(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"), ResolveOptions{Logger: testLogger()})
	assert.Error(t, err)
}

func TestBuiltinNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"calling-station", "random", "tight"}, BuiltinNames())
}
