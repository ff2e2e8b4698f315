// Package queue runs background jobs for the storefront.
//
// A job is any type with a Handle() error method. Register the type at
// boot so workers can rebuild it from its JSON payload, then Dispatch:
//
//	type OrderConfirmation struct{ OrderID string }
//	func (j *OrderConfirmation) Handle() error { ... }
//
//	queue.Register("*jobs.OrderConfirmation", func() queue.Job { return &OrderConfirmation{} })
//	queue.Dispatch(&OrderConfirmation{OrderID: id})
//
// Failing jobs are re-queued with a growing delay rather than retried
// in place, so a flaky job never pins a worker. After maxRetry attempts
// the job lands in the failed set.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/metrics"
)

// Job is a unit of background work.
type Job interface {
	Handle() error
}

// Driver stores serialized jobs.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// DelayedDriver is implemented by drivers that can hold a job back
// until its run time. Drivers without it fall back to an in-process
// timer.
type DelayedDriver interface {
	PushDelayed(payload []byte, delay time.Duration) error
}

// envelope is the wire form of a queued job. Attempts counts completed
// runs so re-queued jobs keep their retry history.
type envelope struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

type manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
}

var std = &manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the storage backend. Call before StartWorkers.
func SetDriver(d Driver) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.driver = d
}

// SetMaxRetry sets how many attempts a job gets before it is marked failed.
func SetMaxRetry(n int) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.maxRetry = n
}

// Register maps a type name to a constructor so workers can decode it.
func Register(name string, factory func() Job) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.registry[name] = factory
}

// Dispatch queues job for immediate processing.
func Dispatch(job Job) error {
	env, err := seal(job, 0)
	if err != nil {
		return err
	}
	return std.currentDriver().Push(env)
}

// DispatchAfter queues job to run once delay has passed.
func DispatchAfter(job Job, delay time.Duration) error {
	env, err := seal(job, 0)
	if err != nil {
		return err
	}
	std.pushDelayed(env, delay)
	return nil
}

// FailedJobs returns a snapshot of jobs that exhausted their retries.
func FailedJobs() []FailedJob {
	std.mu.RLock()
	defer std.mu.RUnlock()
	out := make([]FailedJob, len(std.failed))
	copy(out, std.failed)
	return out
}

// StartWorkers launches n workers that drain the queue until ctx is
// cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go std.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func seal(job Job, attempts int) ([]byte, error) {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}
	env, err := json.Marshal(envelope{Type: typeName, Payload: payload, Attempts: attempts})
	if err != nil {
		return nil, fmt.Errorf("queue: marshal envelope: %w", err)
	}
	return env, nil
}

func (m *manager) currentDriver() Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.driver
}

func (m *manager) retryLimit() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxRetry
}

// pushDelayed hands the payload to the driver's delayed queue when it
// has one, otherwise sleeps on a goroutine and pushes normally.
func (m *manager) pushDelayed(env []byte, delay time.Duration) {
	d := m.currentDriver()
	if dd, ok := d.(DelayedDriver); ok {
		if err := dd.PushDelayed(env, delay); err != nil {
			logger.Error("queue: delayed push failed", "error", err)
		}
		return
	}
	go func() {
		time.Sleep(delay)
		if err := m.currentDriver().Push(env); err != nil {
			logger.Error("queue: delayed push failed", "error", err)
		}
	}()
}

func (m *manager) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		raw, err := m.currentDriver().Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw != nil {
			m.process(raw)
		}
	}
}

func (m *manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()
	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	start := time.Now()
	err := job.Handle()
	if err == nil {
		logger.Info("queue: job processed", "type", env.Type)
		metrics.RecordQueueJob(env.Type, "success", start)
		return
	}

	attempts := env.Attempts + 1
	if attempts < m.retryLimit() {
		logger.Warn("queue: job failed, re-queueing",
			"type", env.Type, "attempt", attempts, "error", err)
		if sealed, serr := seal(job, attempts); serr == nil {
			m.pushDelayed(sealed, time.Duration(attempts)*time.Second)
		} else {
			logger.Error("queue: re-queue failed", "type", env.Type, "error", serr)
		}
		return
	}

	m.persistFailed(job, env.Type, err, attempts)
	metrics.RecordQueueJob(env.Type, "failed", start)
	logger.Error("queue: job exhausted retries", "type", env.Type, "error", err)
}
