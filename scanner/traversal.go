package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"
)

var errNotDir = errors.New("not a directory")

// AccessError reports a filesystem entry that could not be read during a scan.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

type visitFunc func(rec FileRecord) error

type walker interface {
	Walk(ctx context.Context, root string, fn visitFunc) error
}

// stackWalker walks depth first with an explicit stack, so tree depth is
// bounded by memory rather than by the call stack. Directories, including
// symlinked ones, are always descended; a link cycle does not terminate.
type stackWalker struct {
	limiter *rate.Limiter
}

func (w stackWalker) Walk(ctx context.Context, root string, fn visitFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return &AccessError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &AccessError{Path: root, Err: errNotDir}
	}
	stack := []string{root}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if w.limiter != nil {
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return &AccessError{Path: dir, Err: err}
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			rec, err := statRecord(path, entry)
			if err != nil {
				return &AccessError{Path: path, Err: err}
			}
			if err := fn(rec); err != nil {
				return err
			}
			if rec.IsDir {
				stack = append(stack, path)
			}
		}
	}
	return nil
}

func newWalker(opts Options) walker {
	w := stackWalker{}
	if opts.MaxIOPerSecond > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(opts.MaxIOPerSecond), opts.MaxIOPerSecond)
	}
	return w
}
