package ml

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

const artifactOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// WatchArtifact reports changes to the model file until ctx is done. The
// loaded model is never swapped; callers decide how to surface the change.
func WatchArtifact(ctx context.Context, path string, onChange func(fsnotify.Event), onError func(error)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// watch the directory so atomic replace-by-rename is still seen
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name, err := filepath.Abs(event.Name)
				if err != nil || name != target {
					continue
				}
				if event.Op&artifactOps != 0 && onChange != nil {
					onChange(event)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(err)
				}
			}
		}
	}()
	return nil
}
