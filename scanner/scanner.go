package scanner

import (
	"context"
	"os"
	"strings"
	"time"

	"extcount/logger"
	"extcount/utils"

	"github.com/schollz/progressbar/v3"
)

type Options struct {
	// MaxIOPerSecond caps directory reads per second. Zero disables the limit.
	MaxIOPerSecond int
	// ShowProgress draws a spinner with the number of visited entries.
	ShowProgress bool
}

type Scanner struct {
	opts   Options
	walker walker
}

func New(opts Options) *Scanner {
	return &Scanner{opts: opts, walker: newWalker(opts)}
}

// Count walks root and returns how many files have an extension in
// extensions and a creation time inside [start, end]. A nil bound is open.
// The first unreadable entry aborts the walk with an *AccessError.
func Count(ctx context.Context, extensions []string, root string, start, end *time.Time) (int, error) {
	return New(Options{}).Count(ctx, extensions, root, start, end)
}

func (s *Scanner) Count(ctx context.Context, extensions []string, root string, start, end *time.Time) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	set := utils.NewExtensionSet(extensions)
	window := Window{Start: start, End: end}
	bar := s.newProgress(root)

	var total, visited, undated int
	err := s.walker.Walk(ctx, root, func(rec FileRecord) error {
		visited++
		_ = bar.Add(1)
		if rec.IsDir {
			return nil
		}
		if !set.Contains(utils.FileExtension(rec.Path)) {
			return nil
		}
		if !rec.HasCreated {
			undated++
		}
		if window.Contains(rec) {
			total++
		}
		return nil
	})
	_ = bar.Finish()
	if err != nil {
		return 0, err
	}
	if undated > 0 && !window.Unbounded() {
		logger.Warnf("Creation time unavailable for %d matching files under %s; they were not counted", undated, root)
	}
	logger.Debugf("Scanned %d entries under %s for %s: %d matched", visited, root, strings.Join(extensions, ","), total)
	return total, nil
}

func (s *Scanner) newProgress(root string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Scanning "+root),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetVisibility(s.opts.ShowProgress && progressVisible()),
		progressbar.OptionClearOnFinish(),
	)
}

func progressVisible() bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv("EXTCOUNT_DISABLE_PROGRESS")))
	return value != "1" && value != "true" && value != "yes" && value != "on"
}
