package data

import (
	"context"
	"sync"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
)

// syncQueueSize bounds how many sync attempts may wait per account
const syncQueueSize = 16

// SyncJob is one sync attempt executed by the queue
type SyncJob func(ctx context.Context) error

// SyncQueue runs sync attempts one at a time per account, in arrival order
type SyncQueue struct {
	logger coreport.Logger

	mu       sync.RWMutex
	closed   bool
	queues   map[string]chan *syncRequest
	workerWG sync.WaitGroup
}

type syncRequest struct {
	ctx        context.Context
	name       string
	job        SyncJob
	resultChan chan error
}

// NewSyncQueue creates an empty queue
func NewSyncQueue(logger coreport.Logger) *SyncQueue {
	return &SyncQueue{
		logger: logger,
		queues: make(map[string]chan *syncRequest),
	}
}

// Run enqueues job behind any in-flight attempt for accountID and waits for its result
func (q *SyncQueue) Run(ctx context.Context, accountID, name string, job SyncJob) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return errs.ErrSyncQueueClosed
	}
	queue, ok := q.queues[accountID]
	q.mu.RUnlock()

	if !ok {
		var err error
		if queue, err = q.queueFor(accountID); err != nil {
			return err
		}
	}

	req := &syncRequest{
		ctx:        ctx,
		name:       name,
		job:        job,
		resultChan: make(chan error, 1),
	}

	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return errs.ErrSyncQueueClosed
	}
	select {
	case queue <- req:
		q.mu.RUnlock()
		q.logger.Debug("Sync attempt enqueued", map[string]any{
			"account_id": accountID,
			"operation":  name,
		})
	case <-ctx.Done():
		q.mu.RUnlock()
		q.logger.Warn("Context canceled while enqueueing sync attempt", map[string]any{
			"account_id": accountID,
			"operation":  name,
			"error":      ctx.Err().Error(),
		})
		return ctx.Err()
	}

	// The worker always answers, even for a canceled context, so the
	// attempt is never abandoned halfway through a state transition.
	return <-req.resultChan
}

// queueFor returns the queue of accountID, starting its worker on first use
func (q *SyncQueue) queueFor(accountID string) (chan *syncRequest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, errs.ErrSyncQueueClosed
	}
	if queue, ok := q.queues[accountID]; ok {
		return queue, nil
	}

	queue := make(chan *syncRequest, syncQueueSize)
	q.queues[accountID] = queue
	q.workerWG.Add(1)
	go q.work(accountID, queue)

	q.logger.Info("Started sync worker for account", map[string]any{
		"account_id": accountID,
	})
	return queue, nil
}

func (q *SyncQueue) work(accountID string, queue chan *syncRequest) {
	defer q.workerWG.Done()

	for req := range queue {
		q.logger.Debug("Running sync attempt", map[string]any{
			"account_id": accountID,
			"operation":  req.name,
		})
		req.resultChan <- req.job(req.ctx)
		close(req.resultChan)
	}

	q.logger.Info("Sync worker stopped", map[string]any{
		"account_id": accountID,
	})
}

// Shutdown stops accepting work, drains every queue and waits for the workers
func (q *SyncQueue) Shutdown() {
	q.logger.Info("Shutting down sync queue", nil)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for accountID, queue := range q.queues {
		q.logger.Debug("Closing sync queue for account", map[string]any{
			"account_id": accountID,
		})
		close(queue)
	}
	q.mu.Unlock()

	q.workerWG.Wait()
	q.logger.Info("Sync queue shut down", nil)
}
