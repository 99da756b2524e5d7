package workerpool

import (
	"context"
	"errors"

	"github.com/pitabwire/util"

	"github.com/pitabwire/lens/config"
)

type manager struct {
	pool WorkerPool
}

// NewManager builds a pool manager sized from configuration. Further options
// override the configured defaults.
func NewManager(
	ctx context.Context,
	cfg config.ConfigurationWorkerPool,
	opts ...Option,
) (Manager, error) {
	log := util.Log(ctx)

	poolOpts := defaultWorkerPoolOpts(cfg, log)

	for _, opt := range opts {
		opt(poolOpts)
	}

	pool, err := setupWorkerPool(ctx, poolOpts)
	if err != nil {
		return nil, err
	}

	return &manager{pool: pool}, nil
}

func (m *manager) GetPool() (WorkerPool, error) {
	if m.pool == nil {
		return nil, errors.New("worker pool is not configured")
	}
	return m.pool, nil
}

func (m *manager) Shutdown(_ context.Context) error {
	if m.pool != nil {
		m.pool.Shutdown()
	}
	return nil
}

// SubmitJob submits a job to the worker pool for processing. Callers collect
// the outcome by reading the job's result channel; a job that returns an
// error has that error written to the channel before it closes.
func SubmitJob[T any](ctx context.Context, m Manager, job Job[T]) error {
	if m == nil {
		return errors.New("manager is nil")
	}

	pool, err := m.GetPool()
	if err != nil {
		return err
	}

	task := createJobExecutionTask(ctx, job)
	return pool.Submit(ctx, task)
}

// createJobExecutionTask wraps job execution so the pool always observes a
// closed result channel, whatever the job function does.
func createJobExecutionTask[T any](ctx context.Context, job Job[T]) func() {
	return func() {
		log := util.Log(ctx).WithField("job", job.ID())

		if job.F() == nil {
			log.Error("Job function (job.F()) is nil")
			_ = job.WriteError(ctx, errors.New("job function (job.F()) is nil"))
			job.Close()
			return
		}

		executionErr := job.F()(ctx, job)
		if executionErr != nil &&
			!errors.Is(executionErr, context.Canceled) &&
			!errors.Is(executionErr, ErrWorkerPoolResultChannelIsClosed) {
			log.WithError(executionErr).Error("Job failed")
			_ = job.WriteError(ctx, executionErr)
		}
		job.Close()
	}
}
