package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plannery/plannery-go/internal/app/fanout"
	"github.com/plannery/plannery-go/internal/cache"
)

// Preloader warms the cache for every list resource in one bounded
// concurrent pass, so the first screenful of data renders without a
// waterfall of sequential fetches.
type Preloader struct {
	projects  *ProjectService
	venues    *VenueService
	templates *TemplateService
	tags      *TagService
	workers   int
	logger    *slog.Logger
}

// NewPreloader creates a Preloader over the four resource services.
// workers bounds the fan-out; values below 1 are clamped to 1.
func NewPreloader(projects *ProjectService, venues *VenueService, templates *TemplateService, tags *TagService, workers int, logger *slog.Logger) *Preloader {
	if workers < 1 {
		workers = 1
	}
	return &Preloader{
		projects:  projects,
		venues:    venues,
		templates: templates,
		tags:      tags,
		workers:   workers,
		logger:    logger,
	}
}

// preloadTask names one warmable resource and how to load it.
type preloadTask struct {
	name string
	load func(ctx context.Context) error
}

// Warm fetches every list resource, at most the configured number in
// flight at once. Individual failures don't stop the others; the joined
// error names each resource that failed.
func (p *Preloader) Warm(ctx context.Context) error {
	tasks := []preloadTask{
		{name: resourceProjects, load: asTask(p.projects.List)},
		{name: resourceVenues, load: asTask(p.venues.List)},
		{name: resourceTemplates, load: asTask(p.templates.List)},
		{name: resourceTags, load: asTask(p.tags.List)},
	}

	start := time.Now()
	results := fanout.Run(ctx, p.workers, tasks, func(ctx context.Context, t preloadTask) (struct{}, error) {
		if err := t.load(ctx); err != nil {
			return struct{}{}, fmt.Errorf("warming %s: %w", t.name, err)
		}
		return struct{}{}, nil
	})

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}

	p.logger.InfoContext(ctx, "cache warmed",
		slog.Int("resources", len(tasks)),
		slog.Int("failed", len(errs)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return errors.Join(errs...)
}

// asTask adapts a list read into a bare error-returning loader.
func asTask[T any](list func(context.Context) cache.Result[T]) func(context.Context) error {
	return func(ctx context.Context) error {
		if res := list(ctx); res.IsError() {
			return res.Err
		}
		return nil
	}
}
