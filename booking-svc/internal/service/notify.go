package service

import (
	"context"
	"log"
	"sync"
	"time"
)

const defaultNotifyTimeout = 10 * time.Second

// Dispatcher sends operator notifications after a commit. Delivery runs in the
// background and failures are only logged.
type Dispatcher struct {
	notifier   Notifier
	recipients []int64
	timeout    time.Duration
	wg         sync.WaitGroup
}

func NewDispatcher(notifier Notifier, recipients []int64) *Dispatcher {
	return &Dispatcher{
		notifier:   notifier,
		recipients: append([]int64(nil), recipients...),
		timeout:    defaultNotifyTimeout,
	}
}

func (d *Dispatcher) Dispatch(summary string) {
	if d == nil || d.notifier == nil {
		return
	}
	if len(d.recipients) == 0 {
		log.Printf("Warning: no operator recipients configured, skipping notification")
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.notifier.Notify(ctx, d.recipients, summary); err != nil {
			log.Printf("Warning: failed to notify operators: %v", err)
		}
	}()
}

// Wait blocks until in-flight notifications have finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

// LogNotifier is used when no broker is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, recipients []int64, summary string) error {
	log.Printf("Operator notification for %v:\n%s", recipients, summary)
	return nil
}
