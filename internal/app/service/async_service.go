package service

import (
	"context"

	"payroll-bot/pkg/workerpool"
)

// AsyncService выполняет функции на общем пуле воркеров.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

// Go ставит fn в очередь и сразу возвращает канал с будущим результатом.
func (a *AsyncService) Go(ctx context.Context, fn func() (any, error)) <-chan workerpool.Result {
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(ctx, workerpool.Task{Fn: fn, ResultC: resCh}); err != nil {
		resCh <- workerpool.Result{Err: err}
	}
	return resCh
}

// SubmitAsync выполняет fn на пуле и ждёт результат.
func (a *AsyncService) SubmitAsync(ctx context.Context, fn func() (any, error)) (any, error) {
	select {
	case res := <-a.Go(ctx, fn):
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
