package pool

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCrashUnderKillPolicy is S4: submitting a panicking job under the Kill
// policy must terminate the process with a non-success exit code. Since
// that behavior is an os.Exit call, it can only be observed by re-executing
// this same test binary as a subprocess — the standard Go idiom for testing
// process-exit behavior (see os/exec's TestHelperProcess pattern).
func TestCrashUnderKillPolicy(t *testing.T) {
	if os.Getenv("CELLPOOL_CRASH_CHILD") == "1" {
		runCrashChild()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestCrashUnderKillPolicy")
	cmd.Env = append(os.Environ(), "CELLPOOL_CRASH_CHILD=1")
	err := cmd.Run()

	require.Error(t, err, "child process should exit with a non-success status")
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "error should be an *exec.ExitError")
	assert.False(t, exitErr.Success(), "child process should not exit successfully")
}

// runCrashChild reproduces S4's concrete scenario: size=4, Kill, one
// panicking job plus several normal jobs, then Close. It must never return.
func runCrashChild() {
	p, err := New(4, Kill)
	if err != nil {
		os.Exit(2)
	}

	p.Submit(func() { panic("boom") })
	for i := 0; i < 5; i++ {
		p.Submit(func() {})
	}

	_ = p.Close()

	// Close should never return here: the coordinator calls os.Exit(1)
	// before it can signal done. Reaching this line is itself a failure.
	os.Exit(0)
}
