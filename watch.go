package figmadtcg

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// WatchCallback receives the outcome of every conversion run by Watch.
type WatchCallback func(res *Result, err error)

// Watch runs the conversion once, then again every time Options.InputFile
// changes, until ctx is cancelled. Bursts of file events are coalesced.
//
// The containing directory is watched rather than the file itself, so that
// editors replacing the file through a rename are still noticed.
func Watch(ctx context.Context, opts Options, cb WatchCallback) error {
	if opts.InputFile == "" {
		return errors.New("watch requires an input file")
	}
	target, err := filepath.Abs(opts.InputFile)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}
	opts.logInfo("Watching %s for changes...", opts.InputFile)

	cb(Run(opts))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case <-fire:
			fire = nil
			cb(Run(opts))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if opts.Logger != nil {
				opts.Logger.Errorf("watcher: %v", watchErr)
			}
		}
	}
}
