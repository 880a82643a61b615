// Package watch implements a filesystem watch/recompile loop over a
// set of module source files, so a host (the CLI's `run --watch`
// flag, or a notebook shell) can keep a live Universe in sync with
// on-disk edits. Grounded directly on
// github.com/open-policy-agent/opa/filewatcher's FileWatcher: a thin
// fsnotify wrapper that reloads and calls back into the host on every
// relevant filesystem event, generalized here from bundle/policy
// reloading to module recompilation via the compiler package.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/SymaLang/syma/compiler"
	"github.com/SymaLang/syma/term"
)

// OnReload is called after every recompile attempt triggered by a
// filesystem event, whether it succeeded (err == nil, universe set) or
// failed (err != nil).
type OnReload func(universe *term.Term, elapsed time.Duration, err error)

// Watcher recompiles the entry module whenever a watched file changes.
type Watcher struct {
	dirs     []string
	newCompiler func() *compiler.Compiler
	onReload OnReload
}

// New builds a Watcher over dirs (the directories to watch for
// changes) using newCompiler to build a fresh *compiler.Compiler on
// every reload (so edited source text is re-read).
func New(dirs []string, newCompiler func() *compiler.Compiler, onReload OnReload) *Watcher {
	return &Watcher{dirs: dirs, newCompiler: newCompiler, onReload: onReload}
}

// Start begins watching in the background; it returns once the
// watcher is registered, not when ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range w.dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		logrus.WithField("dir", abs).Debug("watch: registering directory")
		if err := fsw.Add(abs); err != nil {
			return err
		}
	}
	go w.loop(ctx, fsw)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()
	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-fsw.Events:
			if !ok {
				return
			}
			if evt.Op&relevant == 0 {
				continue
			}
			logrus.WithField("event", evt.String()).Debug("watch: file event")
			w.reload()
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Error("watch: fsnotify error")
		}
	}
}

func (w *Watcher) reload() {
	t0 := time.Now()
	c := w.newCompiler()
	universe, err := c.Compile()
	w.onReload(universe, time.Since(t0), err)
}
