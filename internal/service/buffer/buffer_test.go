package buffer

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestTarget(t *testing.T) {
	tests := []struct {
		name   string
		query  url.Values
		want   string
		wantOK bool
	}{
		{"id", url.Values{"id": {"abc"}}, "/index?id=abc", true},
		{"data", url.Values{"data": {"eyJhIjoxfQ"}}, "/index?data=eyJhIjoxfQ", true},
		{"id wins", url.Values{"id": {"abc"}, "data": {"xyz"}}, "/index?id=abc", true},
		{"escaped", url.Values{"data": {"a+b/c="}}, "/index?data=a%2Bb%2Fc%3D", true},
		{"empty", url.Values{}, "", false},
		{"blank id", url.Values{"id": {""}}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Target(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransitionFires(t *testing.T) {
	done := make(chan string, 1)
	tr := Start(url.Values{"id": {"abc"}}, 10*time.Millisecond, func(target string) { done <- target })
	require.NotNil(t, tr)
	assert.Equal(t, "/index?id=abc", tr.Target())

	select {
	case got := <-done:
		assert.Equal(t, "/index?id=abc", got)
	case <-time.After(time.Second):
		t.Fatal("transition did not fire")
	}
	assert.False(t, tr.Stop())
}

func TestTransitionStopBeforeFire(t *testing.T) {
	fired := make(chan struct{}, 1)
	tr := Start(url.Values{"data": {"tok"}}, 50*time.Millisecond, func(string) { fired <- struct{}{} })
	require.NotNil(t, tr)
	assert.True(t, tr.Stop())
	assert.False(t, tr.Stop())

	select {
	case <-fired:
		t.Fatal("navigate called after Stop")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTransitionDeadEnd(t *testing.T) {
	tr := Start(url.Values{}, time.Millisecond, func(string) { t.Fatal("unexpected navigation") })
	assert.Nil(t, tr)
	assert.False(t, tr.Stop())
}
