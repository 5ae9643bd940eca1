package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// PeriodRefresher keeps stored period statuses in step with the calendar.
type PeriodRefresher interface {
	Start(ctx context.Context)
	Stop()
	// Trigger asks for a refresh now. It never blocks.
	Trigger()
}

type periodRefresher struct {
	periods  PeriodService
	interval time.Duration
	kick     chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPeriodRefresher(periods PeriodService, interval time.Duration) PeriodRefresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &periodRefresher{
		periods:  periods,
		interval: interval,
		kick:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

func (w *periodRefresher) Start(ctx context.Context) {
	log.Printf("🚀 Starting period refresher (every %s)\n", w.interval)
	w.wg.Add(1)
	go w.loop(ctx)
}

func (w *periodRefresher) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping period refresher...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Period refresher stopped")
	})
}

func (w *periodRefresher) Trigger() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *periodRefresher) loop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)
	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refresh(ctx)
		case <-w.kick:
			w.refresh(ctx)
		}
	}
}

func (w *periodRefresher) refresh(ctx context.Context) {
	changed, err := w.periods.RefreshAll(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to refresh periods: %v\n", err)
		return
	}
	if changed > 0 {
		log.Printf("🔄 %d period(s) changed status\n", changed)
	}
}
