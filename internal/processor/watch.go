package processor

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"gridfix/internal/discover"
)

// Watch reprocesses matching files as they change until ctx is
// canceled. Directories are watched recursively; directories created
// while watching are picked up as well.
func (p *Processor) Watch(ctx context.Context, paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			if err := addRecursive(w, path); err != nil {
				return err
			}
		} else if err := w.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	matcher := discover.NewFinder(p.opts.Extensions, p.opts.RespectGitignore)
	p.log.Info("watching for changes", zap.Strings("paths", paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, ev.Name); err != nil {
						p.log.Warn("cannot watch new directory", zap.String("path", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !matcher.Matches(ev.Name) {
				continue
			}
			res := p.ProcessFile(ev.Name)
			switch {
			case res.Err != nil:
				p.log.Error("file failed", zap.String("path", res.Path), zap.Error(res.Err))
			case res.Changed:
				p.log.Info("file fixed", zap.String("path", res.Path))
			default:
				p.log.Debug("file unchanged", zap.String("path", res.Path))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("watch error", zap.Error(err))
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
