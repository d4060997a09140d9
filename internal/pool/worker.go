// ============================================================================
// Cellpool Worker - Task Execution Unit
// ============================================================================
//
// Package: internal/pool
// File: worker.go
// Function: One long-running goroutine per configured slot. Executes
// Instructions under a failure barrier and reports its own status.
//
// Run loop:
//   1. Announce Idle(id) — this is the startup handshake.
//   2. Wait for an Instruction.
//   3. NewJob -> run it under the failure barrier, report Idle or Panicked.
//      Panicked means the goroutine returns; it never runs again.
//   4. Terminate -> return without reporting anything further.
//
// The failure barrier wraps only the submitted callable, never the status
// send itself: a failure while reporting status is not recoverable and must
// propagate as a process-fatal condition, same as a send to a channel
// nobody is reading.
//
// ============================================================================

package pool

import "log/slog"

var poolLog = slog.Default()

// worker is one execution slot. It owns its instruction inbox; the
// coordinator owns the worker's lifetime and never reads or writes
// w.inbox from any goroutine but itself.
type worker struct {
	id    WorkerID
	inbox chan Instruction
}

// startWorker spawns the goroutine and returns immediately; the new
// goroutine sends its own startup Idle report before processing anything.
func startWorker(id WorkerID, status chan<- Status) *worker {
	w := &worker{
		id:    id,
		inbox: make(chan Instruction),
	}
	poolLog.Info("worker spawned", "worker_id", int(id))
	go w.run(status)
	return w
}

func (w *worker) run(status chan<- Status) {
	status <- Status{Kind: StatusIdle, WorkerID: w.id}

	for instr := range w.inbox {
		if instr.terminate {
			return
		}

		if ok := runUnderFailureBarrier(instr.job); !ok {
			poolLog.Warn("worker job panicked", "worker_id", int(w.id))
			status <- Status{Kind: StatusPanicked, WorkerID: w.id}
			return
		}

		status <- Status{Kind: StatusIdle, WorkerID: w.id}
	}
}

// runUnderFailureBarrier executes job and converts an abnormal unwind into
// a false return instead of letting it propagate. It reports nothing itself
// — that is the caller's job — so the barrier can be reasoned about (and
// tested) independently of the status protocol.
func runUnderFailureBarrier(job Job) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	job()
	return true
}
