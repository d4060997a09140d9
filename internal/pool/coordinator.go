// ============================================================================
// Cellpool Coordinator - Dispatch and Failure Policy Enforcement
// ============================================================================
//
// Package: internal/pool
// File: coordinator.go
// Function: The single long-running goroutine that owns the worker set,
// matches idle workers to pending jobs, and enacts the configured
// PanicPolicy.
//
// State machine:
//   Dispatching --(NewJob, eventual Idle)--> Dispatching
//   Dispatching --(Panicked under Kill)----> Draining
//   Dispatching --(Terminate)---------------> Draining
//   Draining    --(live_workers == 0)-------> Final (may abort if any panic)
//
// Because the coordinator is the only goroutine that ever touches the
// worker slice, none of this needs a lock: the channels already serialize
// everything that matters.
//
// ============================================================================

package pool

import (
	"fmt"
	"os"
)

// recorder receives coordinator lifecycle events for optional
// instrumentation (see internal/metrics). A nil recorder is a silent no-op,
// so the core package never depends on it directly.
type recorder interface {
	Dispatched()
	Panicked()
	Respawned()
	LiveWorkers(n int)
}

type coordinator struct {
	size     int
	policy   PanicPolicy
	orders   <-chan Order
	status   chan Status
	workers  []*worker
	rec      recorder
}

func runCoordinator(size int, policy PanicPolicy, orders <-chan Order, rec recorder) {
	c := &coordinator{
		size:    size,
		policy:  policy,
		orders:  orders,
		status:  make(chan Status),
		workers: make([]*worker, size),
		rec:     rec,
	}
	for i := 0; i < size; i++ {
		c.workers[i] = startWorker(WorkerID(i), c.status)
	}
	c.report(size)

	liveWorkers := size
	panicCount := 0

dispatch:
	for order := range c.orders {
		if order.terminate {
			break dispatch
		}

		job := order.job
		for {
			st := <-c.status
			switch st.Kind {
			case StatusIdle:
				c.workers[st.WorkerID].inbox <- newJobInstruction(job)
				c.notifyDispatched()
				continue dispatch
			case StatusPanicked:
				c.notifyPanicked()
				switch policy {
				case Kill:
					panicCount++
					liveWorkers--
					c.workers[st.WorkerID] = nil
					c.report(liveWorkers)
					break dispatch
				case Respawn:
					poolLog.Warn("respawning worker after panic", "worker_id", int(st.WorkerID))
					c.workers[st.WorkerID] = startWorker(st.WorkerID, c.status)
					c.notifyRespawned()
					c.report(liveWorkers)
					// Keep waiting: the in-hand job is still owed a worker.
				}
			}
		}
	}

	for liveWorkers > 0 {
		st := <-c.status
		switch st.Kind {
		case StatusIdle:
			c.workers[st.WorkerID].inbox <- terminateInstruction()
			liveWorkers--
		case StatusPanicked:
			if policy == Kill {
				panicCount++
			}
			c.notifyPanicked()
			liveWorkers--
		}
		c.report(liveWorkers)
	}

	poolLog.Info("coordinator drained", "live_workers", liveWorkers, "panicked", panicCount)

	if panicCount > 0 {
		fmt.Fprintf(os.Stderr, "Aborting process: %d panicked jobs.\n", panicCount)
		os.Exit(1)
	}
}

func (c *coordinator) notifyDispatched() {
	if c.rec != nil {
		c.rec.Dispatched()
	}
}

func (c *coordinator) notifyPanicked() {
	if c.rec != nil {
		c.rec.Panicked()
	}
}

func (c *coordinator) notifyRespawned() {
	if c.rec != nil {
		c.rec.Respawned()
	}
}

func (c *coordinator) report(liveWorkers int) {
	if c.rec != nil {
		c.rec.LiveWorkers(liveWorkers)
	}
}
