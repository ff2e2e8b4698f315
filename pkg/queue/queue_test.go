package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/pkg/queue"
)

var (
	mailsSent  atomic.Int32
	alertsSent atomic.Int32
)

type confirmationMail struct {
	OrderID string
}

func (j *confirmationMail) Handle() error {
	mailsSent.Add(1)
	return nil
}

type brokenAlert struct {
	OrderID string
}

func (j *brokenAlert) Handle() error {
	alertsSent.Add(1)
	return errors.New("webhook unreachable")
}

func init() {
	queue.Register("*queue_test.confirmationMail", func() queue.Job { return &confirmationMail{} })
	queue.Register("*queue_test.brokenAlert", func() queue.Job { return &brokenAlert{} })
	queue.StartWorkers(context.Background(), 2)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDispatchRunsJob(t *testing.T) {
	before := mailsSent.Load()
	require.NoError(t, queue.Dispatch(&confirmationMail{OrderID: "order-1"}))
	waitFor(t, func() bool { return mailsSent.Load() > before })
}

func TestDispatchAfterRunsJobLater(t *testing.T) {
	before := mailsSent.Load()
	require.NoError(t, queue.DispatchAfter(&confirmationMail{OrderID: "order-2"}, 50*time.Millisecond))
	waitFor(t, func() bool { return mailsSent.Load() > before })
}

func TestExhaustedJobIsRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	before := len(queue.FailedJobs())
	require.NoError(t, queue.Dispatch(&brokenAlert{OrderID: "order-3"}))
	waitFor(t, func() bool { return len(queue.FailedJobs()) > before })

	failed := queue.FailedJobs()
	last := failed[len(failed)-1]
	assert.Equal(t, 1, last.Attempts)
	assert.EqualError(t, last.Err, "webhook unreachable")
}

func TestDispatchConcurrent(t *testing.T) {
	before := mailsSent.Load()
	for i := 0; i < 20; i++ {
		go func() {
			queue.Dispatch(&confirmationMail{OrderID: "order-n"}) //nolint:errcheck
		}()
	}
	waitFor(t, func() bool { return mailsSent.Load() >= before+20 })
}
