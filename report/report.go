// Package report ties the scanner and the renderers together: it counts each
// extension group under the configured root and writes one report file.
package report

import (
	"context"
	"fmt"
	"time"

	"extcount/config"
	"extcount/logger"
	"extcount/output"
	"extcount/scanner"
	"extcount/utils"
)

type counter interface {
	Count(ctx context.Context, extensions []string, root string, start, end *time.Time) (int, error)
}

type Generator struct {
	counter  counter
	renderFn func(data *output.Data, format string) ([]byte, error)
	nowFn    func() time.Time
}

func New(cfg *config.Config) *Generator {
	return &Generator{
		counter: scanner.New(scanner.Options{
			MaxIOPerSecond: cfg.MaxIOPerSecond,
			ShowProgress:   cfg.ShowProgress,
		}),
		renderFn: output.Render,
		nowFn:    time.Now,
	}
}

// Generate builds a Generator from cfg and runs it once.
func Generate(ctx context.Context, cfg *config.Config) (string, error) {
	return New(cfg).Generate(ctx, cfg)
}

// Generate counts every extension group and writes the report, returning its
// path. An unsupported format is logged and returned as
// output.ErrUnsupportedFormat before anything touches the disk. A scan error
// aborts the run before any file is written.
func (g *Generator) Generate(ctx context.Context, cfg *config.Config) (string, error) {
	metrics := output.Metrics{
		StartTime: g.nowFn().Format(time.RFC3339),
		Root:      cfg.RootDirectory,
		Groups:    len(cfg.ExtensionGroups),
	}

	if _, err := output.ReportSuffix(cfg.Format); err != nil {
		logger.Warnf("Unsupported report format %q, no report written", cfg.Format)
		return "", err
	}
	if _, err := output.EnsureDir(cfg.OutputDir); err != nil {
		return "", err
	}
	if utils.IsPathWithin(cfg.OutputDir, cfg.RootDirectory) {
		logger.Warnf("Output folder %s is inside %s, earlier reports will be counted", cfg.OutputDir, cfg.RootDirectory)
	}

	data := output.NewData()
	for _, group := range cfg.ExtensionGroups {
		count, err := g.counter.Count(ctx, group.Extensions, cfg.RootDirectory, cfg.StartDate, cfg.EndDate)
		if err != nil {
			return "", fmt.Errorf("counting %s: %w", group.Label, err)
		}
		logger.Debugf("%s: %d", group.Label, count)
		data.Add(group.Label, count)
	}

	render := g.renderFn
	if render == nil {
		render = output.Render
	}
	doc, err := render(data, cfg.Format)
	if err != nil {
		logger.Errorf("Rendering %s report failed, no report written: %v", cfg.Format, err)
		return "", err
	}
	path, err := output.WriteReport(cfg.OutputDir, doc, cfg.Format, g.nowFn())
	if err != nil {
		return "", err
	}

	metrics.EndTime = g.nowFn().Format(time.RFC3339)
	metrics.TotalMatched = data.Total()
	metrics.ReportPath = path
	logger.WithFields(metrics.Fields()).Info("Report written")
	return path, nil
}
