// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package start is the process lifecycle: run the one subsystem this
// program has — the REPL loop — under a SIGINT watcher, giving it a
// bounded grace period to notice cancellation and return cleanly before
// the process gives up waiting on it.
package start

import (
	"context"
	"os"
	"os/signal"
	"time"
)

// Func is the shape of a subsystem: run until ctx is canceled, or fail
// sooner, and return.
type Func func(ctx context.Context) error

// Start runs run in its own goroutine and waits for it to finish. A
// SIGINT cancels run's context instead of killing the process outright;
// run then has stopTimeout to return on its own before Start gives up
// and returns anyway, leaving run's goroutine to finish in the
// background.
func Start(ctx context.Context, stopTimeout time.Duration, run Func) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-sigCh:
	}

	cancel()
	select {
	case err := <-done:
		return err
	case <-time.After(stopTimeout):
		return nil
	}
}
