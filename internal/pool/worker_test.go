package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkerIdleOnStartup verifies S5: starting a worker causes exactly one
// Idle status to be emitted before any instruction is processed.
func TestWorkerIdleOnStartup(t *testing.T) {
	status := make(chan Status, 1)
	w := startWorker(WorkerID(0), status)

	select {
	case st := <-status:
		assert.Equal(t, StatusIdle, st.Kind)
		assert.Equal(t, WorkerID(0), st.WorkerID)
	case <-time.After(time.Second):
		t.Fatal("worker did not announce startup Idle")
	}

	w.inbox <- terminateInstruction()
}

// TestWorkerExecutesJobThenReportsIdle verifies a clean job execution
// produces exactly one subsequent Idle report.
func TestWorkerExecutesJobThenReportsIdle(t *testing.T) {
	status := make(chan Status, 1)
	w := startWorker(WorkerID(3), status)
	require.Equal(t, StatusIdle, (<-status).Kind) // startup announcement

	var ran bool
	w.inbox <- newJobInstruction(func() { ran = true })

	st := <-status
	assert.Equal(t, StatusIdle, st.Kind)
	assert.Equal(t, WorkerID(3), st.WorkerID)
	assert.True(t, ran)

	w.inbox <- terminateInstruction()
}

// TestWorkerPanicReportsPanickedOnce verifies invariant 6: a worker given a
// panicking job emits exactly one Panicked status and nothing after it.
func TestWorkerPanicReportsPanickedOnce(t *testing.T) {
	status := make(chan Status, 1)
	w := startWorker(WorkerID(1), status)
	require.Equal(t, StatusIdle, (<-status).Kind)

	w.inbox <- newJobInstruction(func() { panic("boom") })

	st := <-status
	assert.Equal(t, StatusPanicked, st.Kind)
	assert.Equal(t, WorkerID(1), st.WorkerID)

	select {
	case st := <-status:
		t.Fatalf("expected no status after Panicked, got %+v", st)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestWorkerTerminateEmitsNoStatus verifies a Terminate instruction
// produces no further status report.
func TestWorkerTerminateEmitsNoStatus(t *testing.T) {
	status := make(chan Status, 1)
	w := startWorker(WorkerID(2), status)
	require.Equal(t, StatusIdle, (<-status).Kind)

	w.inbox <- terminateInstruction()

	select {
	case st := <-status:
		t.Fatalf("expected no status after Terminate, got %+v", st)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRunUnderFailureBarrier(t *testing.T) {
	ok := runUnderFailureBarrier(func() {})
	assert.True(t, ok, "clean job should report ok")

	ok = runUnderFailureBarrier(func() { panic("boom") })
	assert.False(t, ok, "panicking job should be contained and reported not-ok")

	ok = runUnderFailureBarrier(func() {
		var m map[string]int
		m["x"] = 1 // nil map write panics
	})
	assert.False(t, ok)
}
