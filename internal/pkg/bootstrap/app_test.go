package bootstrap

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRunServesAndShutsDown(t *testing.T) {
	port := freePort(t)
	ctx, cancel := context.WithCancel(context.Background())

	var cleaned []string
	started := make(chan struct{})
	info := AppInfo{
		ServiceName: "bootstrap-test",
		Port:        port,
		RegisterHandlers: func(appCtx AppCtx) {
			require.NotNil(t, appCtx.Config)
			appCtx.Mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		},
		Background: []func(ctx context.Context) error{
			func(ctx context.Context) error {
				close(started)
				<-ctx.Done()
				return nil
			},
		},
		Cleanup: []func(ctx context.Context) error{
			func(context.Context) error { cleaned = append(cleaned, "first"); return nil },
			func(context.Context) error { cleaned = append(cleaned, "second"); return nil },
		},
	}

	done := make(chan error, 1)
	go func() { done <- Run(ctx, info) }()
	<-started

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, []string{"second", "first"}, cleaned)
}

func TestRunStopsOnBackgroundError(t *testing.T) {
	info := AppInfo{
		ServiceName: "bootstrap-test",
		Port:        freePort(t),
		Background: []func(ctx context.Context) error{
			func(context.Context) error { return errors.New("worker crashed") },
		},
	}
	err := Run(context.Background(), info)
	assert.ErrorContains(t, err, "worker crashed")
}
