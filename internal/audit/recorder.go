package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Recorder sends events on a fresh context bounded by the client timeout,
// so a cancelled request still gets its event out.
type Recorder struct {
	Client *Client
	Logger *zap.Logger

	wg sync.WaitGroup
}

// Go records in the background so a slow webhook never delays the caller.
// Wait blocks until every pending event is delivered or has failed.
func (r *Recorder) Go(action, level string, details map[string]any) {
	if r == nil || !r.Client.Enabled() {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.Record(action, level, details)
	}()
}

func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

func (r *Recorder) Record(action, level string, details map[string]any) {
	if r == nil || !r.Client.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.Client.timeout())
	defer cancel()
	err := r.Client.Send(ctx, Event{
		Action:  action,
		Level:   level,
		Details: details,
		At:      time.Now().UTC(),
	})
	if err != nil && r.Logger != nil {
		r.Logger.Debug("audit event failed", zap.String("action", action), zap.Error(err))
	}
}

func LevelFromStatus(status int) string {
	if status >= 500 {
		return "error"
	}
	if status >= 400 {
		return "warn"
	}
	return "info"
}
