// Package reminder watches the task store and announces tasks coming due.
package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voxdo/voxdo/internal/history"
	"github.com/voxdo/voxdo/internal/models"
	"github.com/voxdo/voxdo/internal/store"
)

// Reminder periodically scans for tasks whose due date falls inside the
// lead window and announces each one once.
type Reminder struct {
	store    *store.Store
	recorder *history.Recorder
	logger   *log.Logger

	lead     time.Duration
	interval time.Duration

	// Announced task IDs, so a task is only announced once per process.
	mu        sync.Mutex
	announced map[string]bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a reminder that looks lead ahead and rescans every interval.
func New(s *store.Store, rec *history.Recorder, logger *log.Logger, lead time.Duration) *Reminder {
	ctx, cancel := context.WithCancel(context.Background())

	return &Reminder{
		store:     s,
		recorder:  rec,
		logger:    logger,
		lead:      lead,
		interval:  time.Minute,
		announced: make(map[string]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins the reminder loop.
func (r *Reminder) Start() {
	r.wg.Add(1)
	go r.loop()
	r.logger.Info("reminder loop started", "lead", r.lead)
}

// Stop gracefully stops the reminder loop.
func (r *Reminder) Stop() {
	r.cancel()
	r.wg.Wait()
	r.logger.Info("reminder loop stopped")
}

func (r *Reminder) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.scan(time.Now())
		}
	}
}

// scan announces tasks due inside [now, now+lead) that have not been
// announced yet. Returns the tasks announced on this pass.
func (r *Reminder) scan(now time.Time) []models.Task {
	tasks, err := r.store.DueTasksBetween(now, now.Add(r.lead))
	if err != nil {
		r.logger.Error("reminder scan failed", "err", err)
		return nil
	}

	var out []models.Task
	for _, task := range tasks {
		r.mu.Lock()
		seen := r.announced[task.ID]
		if !seen {
			r.announced[task.ID] = true
		}
		r.mu.Unlock()
		if seen {
			continue
		}

		r.logger.Info("task due soon",
			"title", task.Title,
			"due", task.DueDate.Format("2006-01-02"),
			"time", task.DueTime,
		)
		r.recorder.Record(task.Transcript, models.ActionList, history.OutcomeOK, task.ID, "reminder: "+task.Title)
		out = append(out, task)
	}
	return out
}
