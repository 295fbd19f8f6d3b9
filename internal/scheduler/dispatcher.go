// Package scheduler publishes scheduled posts once their time has come.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clover/internal/logger"
	"clover/internal/repository"

	"github.com/robfig/cron"
)

// DueProcessor claims due posts and records the outcome of fn for each.
type DueProcessor interface {
	ProcessDue(ctx context.Context, now time.Time, limit int, fn repository.DueFunc) (int, error)
}

type Dispatcher struct {
	posts   DueProcessor
	publish repository.DueFunc
	batch   int
	now     func() time.Time

	// sweeping keeps cron ticks from overlapping within one process.
	sweeping sync.Mutex
}

func NewDispatcher(posts DueProcessor, publish repository.DueFunc, batch int) *Dispatcher {
	if batch <= 0 {
		batch = 20
	}
	return &Dispatcher{posts: posts, publish: publish, batch: batch, now: time.Now}
}

// Sweep processes due posts batch by batch until a batch comes back short.
// It returns how many posts were handled.
func (d *Dispatcher) Sweep(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := d.posts.ProcessDue(ctx, d.now(), d.batch, d.publish)
		total += n
		if err != nil {
			return total, fmt.Errorf("processing due posts: %w", err)
		}
		if n < d.batch || ctx.Err() != nil {
			return total, nil
		}
	}
}

func (d *Dispatcher) tick(ctx context.Context) {
	if !d.sweeping.TryLock() {
		logger.Debugf("previous dispatch sweep still running, skipping tick")
		return
	}
	defer d.sweeping.Unlock()

	start := time.Now()
	n, err := d.Sweep(ctx)
	entry := logger.WithFields(logger.Fields{"processed": n, "duration": time.Since(start).String()})
	if err != nil {
		entry.WithError(err).Error("dispatch sweep failed")
		return
	}
	if n > 0 {
		entry.Info("dispatch sweep finished")
	}
}

// Start runs a sweep on every tick of spec until the returned stop function
// is called or ctx is done.
func (d *Dispatcher) Start(ctx context.Context, spec string) (func(), error) {
	c := cron.New()
	if err := c.AddFunc(spec, func() { d.tick(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid dispatch schedule %q: %w", spec, err)
	}
	c.Start()

	logger.WithFields(logger.Fields{"spec": spec, "batch": d.batch}).Info("dispatcher started")

	var once sync.Once
	stop := func() {
		once.Do(func() {
			c.Stop()
			logger.Infof("dispatcher stopped")
		})
	}

	go func() {
		<-ctx.Done()
		stop()
	}()

	return stop, nil
}
