package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext returns a context that is canceled when the target file is
// modified (= written, created, removed, or renamed).
//
// The server watches its own config file with this and restarts itself
// (via graceful shutdown) when an operator rewrites the config.
//
// # Returns
//
// - context.Context: canceled when the target file is modified.
//
// - func(): cancel function. Call it to stop watching.
//
// - error: non-nil when it fails to start watching. Then both others are nil.
func UntilModifyContext(ctx context.Context, targetFilePath string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}
	if err := w.Add(targetFilePath); err != nil {
		w.Close()
		cancel(err)
		return nil, nil, err
	}

	go func() {
		defer w.Close()
		select {
		case <-cctx.Done():
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
