// Package slipwatch feeds slip screenshots dropped into a directory to
// the intake pipeline. Files are debounced so half-written screenshots
// are not read mid-copy, and handled files move to a processed/
// subdirectory so a restart never re-ingests them.
package slipwatch

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler receives the raw bytes of one stable screenshot file.
type Handler func(ctx context.Context, data []byte, fileName, storePath string) error

// Watcher scans a directory once on start and then follows create events.
type Watcher struct {
	dir     string
	handler Handler
}

func New(dir string, handler Handler) *Watcher {
	return &Watcher{dir: dir, handler: handler}
}

// Run blocks until ctx is done. The initial directory contents are
// processed before event watching begins.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()
	if err := fsw.Add(w.dir); err != nil {
		return err
	}
	log.Printf("[slipwatch] watching %s", w.dir)

	for _, name := range listImageFiles(w.dir) {
		w.handleFile(ctx, name)
	}

	// debounce map of pending files; a file is stable once no new
	// create event has touched it for 300ms
	pending := map[string]time.Time{}
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
				name := filepath.Base(ev.Name)
				if !isSupportedExt(name) {
					continue
				}
				pending[name] = time.Now()
			}
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) > 300*time.Millisecond {
					delete(pending, name)
					w.handleFile(ctx, name)
				}
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[slipwatch] watch error: %v", err)
		}
	}
}

func (w *Watcher) handleFile(ctx context.Context, name string) {
	path := filepath.Join(w.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[slipwatch] read %s: %v", name, err)
		return
	}
	if err := w.handler(ctx, data, name, path); err != nil {
		log.Printf("[slipwatch] intake %s: %v", name, err)
	}
	if err := moveToProcessed(path, name); err != nil {
		log.Printf("[slipwatch] move %s: %v", name, err)
	}
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isSupportedExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

// moveToProcessed attempts an atomic rename into <dir>/processed and
// falls back to copy+remove across filesystems.
func moveToProcessed(srcFullPath, name string) error {
	processedDir := filepath.Join(filepath.Dir(srcFullPath), "processed")
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(processedDir, name)
	if err := os.Rename(srcFullPath, dst); err == nil {
		return nil
	}
	return copyRemove(srcFullPath, dst)
}

func copyRemove(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
