package probe

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neowatch/internal/model"
)

func TestProbeCountValidation(t *testing.T) {
	runner := NewRunner(2, 20, 5*time.Second)

	for _, count := range []int{0, -1, 21} {
		_, err := runner.Probe(context.Background(), "127.0.0.1", count)
		require.Error(t, err, "count %d", count)
		assert.True(t, model.IsValidationError(err))
	}
}

func TestProbeQueueRespectsCancellation(t *testing.T) {
	runner := NewRunner(1, 20, 5*time.Second)

	// 占满唯一的并发额度
	runner.sem <- struct{}{}
	defer func() { <-runner.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := runner.Probe(ctx, "127.0.0.1", 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIsUnknownHostOutput(t *testing.T) {
	assert.True(t, isUnknownHostOutput("ping: unknown host nope.invalid"))
	assert.True(t, isUnknownHostOutput("ping: nope.invalid: Name or service not known"))
	assert.True(t, isUnknownHostOutput("ping: cannot resolve nope.invalid: Unknown host"))
	assert.True(t, isUnknownHostOutput("ping: nope.invalid: Temporary failure in name resolution"))
	assert.False(t, isUnknownHostOutput("64 bytes from 127.0.0.1: icmp_seq=1 ttl=64 time=0.05 ms"))
}

func TestProbeLoopback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping probe integration test in short mode")
	}
	if _, err := exec.LookPath("ping"); err != nil {
		t.Skip("ping binary not available on PATH")
	}

	runner := NewRunner(2, 20, 5*time.Second)

	result, err := runner.Probe(context.Background(), "127.0.0.1", 2)
	if err != nil {
		// 容器环境可能禁止ICMP socket
		t.Skipf("skipping due to probe failure: %v", err)
	}

	assert.Equal(t, "127.0.0.1", result.IP)
	assert.Equal(t, 2, result.Statistics.Transmitted)
	assert.NotEmpty(t, result.Raw)
}

func TestProbeUnknownHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping probe integration test in short mode")
	}
	if _, err := exec.LookPath("ping"); err != nil {
		t.Skip("ping binary not available on PATH")
	}

	runner := NewRunner(2, 20, 2*time.Second)

	_, err := runner.Probe(context.Background(), "host.that.does.not.exist.invalid", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownHost)
}
