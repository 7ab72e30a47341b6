package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/fstvl/internal/contentful"
	"github.com/ziadkadry99/fstvl/internal/history"
	"github.com/ziadkadry99/fstvl/internal/lineup"
	"github.com/ziadkadry99/fstvl/internal/progress"
	"github.com/ziadkadry99/fstvl/internal/render"
)

// Fetcher retrieves an entries collection for a content type.
type Fetcher interface {
	Fetch(ctx context.Context, contentType string) (*contentful.Response, error)
}

// Recorder stores the outcome of a section render.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Options tunes a SiteGenerator.
type Options struct {
	Title            string
	StageOrder       []string
	DayLabels        [2]string
	MaxArtistsPerDay int
	// DistributeDays replaces each artist's linked day with a day picked by
	// list position.
	DistributeDays bool
	// Sections are glob patterns choosing which sections render.
	Sections []string
	Trigger  history.Trigger
	Logger   *zap.Logger
	Reporter progress.Reporter
	Recorder Recorder
}

// SiteGenerator fetches content and renders the page sections.
type SiteGenerator struct {
	fetcher  Fetcher
	renderer *render.Renderer
	opts     Options
	selected []Section
}

// NewSiteGenerator creates a SiteGenerator. It fails only on invalid
// section patterns.
func NewSiteGenerator(fetcher Fetcher, renderer *render.Renderer, opts Options) (*SiteGenerator, error) {
	selected, err := SelectSections(opts.Sections)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if opts.Trigger == "" {
		opts.Trigger = history.TriggerCLI
	}
	return &SiteGenerator{
		fetcher:  fetcher,
		renderer: renderer,
		opts:     opts,
		selected: selected,
	}, nil
}

// Selected returns the sections this generator renders, in page order.
func (g *SiteGenerator) Selected() []Section {
	return append([]Section(nil), g.selected...)
}

// Fragment is the rendered markup for one section.
type Fragment struct {
	Section  Section
	HTML     template.HTML
	Items    int
	Fallback bool
}

// Result holds the fragments of one render.
type Result struct {
	Fragments map[Section]Fragment
}

// HTML returns a section's markup, or nothing if it was not rendered.
func (r *Result) HTML(s Section) template.HTML {
	return r.Fragments[s].HTML
}

// Complete reports whether every section was rendered.
func (r *Result) Complete() bool {
	for _, s := range AllSections {
		if _, ok := r.Fragments[s]; !ok {
			return false
		}
	}
	return true
}

// task is one fetch-and-render unit. The schedule task serves two sections
// from a single fetch.
type task struct {
	contentType string
	sections    []Section
	build       func(resp *contentful.Response, sections []Section) ([]Fragment, error)
}

func (g *SiteGenerator) tasks(sections []Section) []task {
	want := make(map[Section]bool, len(sections))
	for _, s := range sections {
		want[s] = true
	}

	var tasks []task
	if want[SectionArtists] {
		tasks = append(tasks, task{contentType: "artist", sections: []Section{SectionArtists}, build: g.buildArtists})
	}
	if want[SectionStages] {
		tasks = append(tasks, task{contentType: "stage", sections: []Section{SectionStages}, build: g.buildStages})
	}
	var days []Section
	for _, s := range []Section{SectionFriday, SectionSaturday} {
		if want[s] {
			days = append(days, s)
		}
	}
	if len(days) > 0 {
		tasks = append(tasks, task{contentType: "artist", sections: days, build: g.buildSchedule})
	}
	return tasks
}

// Render fetches and renders every selected section. The fetches run
// concurrently and a failed fetch only affects its own sections, which
// show their fallback. Errors are returned for template failures only.
func (g *SiteGenerator) Render(ctx context.Context) (*Result, error) {
	return g.render(ctx, g.selected)
}

// RenderSection renders a single section, whether or not it is selected.
func (g *SiteGenerator) RenderSection(ctx context.Context, s Section) (Fragment, error) {
	res, err := g.render(ctx, []Section{s})
	if err != nil {
		return Fragment{}, err
	}
	return res.Fragments[s], nil
}

func (g *SiteGenerator) render(ctx context.Context, sections []Section) (*Result, error) {
	tasks := g.tasks(sections)
	res := &Result{Fragments: make(map[Section]Fragment, len(sections))}

	var mu sync.Mutex
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = string(s)
	}
	g.opts.Reporter.Start(names)
	defer g.opts.Reporter.Finish()

	eg, egCtx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		eg.Go(func() error {
			frags, err := g.runTask(egCtx, t)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, f := range frags {
				res.Fragments[f.Section] = f
				g.opts.Reporter.Done(string(f.Section), f.Fallback)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (g *SiteGenerator) runTask(ctx context.Context, t task) ([]Fragment, error) {
	start := time.Now()

	var fetchErr string
	resp, err := g.fetcher.Fetch(ctx, t.contentType)
	if err != nil {
		g.opts.Logger.Error("Could not fetch data from API",
			zap.String("content_type", t.contentType),
			zap.Error(err))
		fetchErr = err.Error()
		resp = nil
	}

	frags, err := t.build(resp, t.sections)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	for _, f := range frags {
		status := history.StatusOK
		if f.Fallback {
			status = history.StatusFallback
		}
		g.opts.Logger.Debug("Rendered section",
			zap.String("section", string(f.Section)),
			zap.Int("items", f.Items),
			zap.Bool("fallback", f.Fallback))
		if g.opts.Recorder == nil {
			continue
		}
		run := history.Run{
			Section:     string(f.Section),
			ContentType: t.contentType,
			Trigger:     g.opts.Trigger,
			Status:      status,
			Items:       f.Items,
			Error:       fetchErr,
			Duration:    elapsed,
		}
		if err := g.opts.Recorder.Record(context.WithoutCancel(ctx), run); err != nil {
			g.opts.Logger.Warn("Could not record render run",
				zap.String("section", string(f.Section)),
				zap.Error(err))
		}
	}
	return frags, nil
}

func (g *SiteGenerator) buildArtists(resp *contentful.Response, _ []Section) ([]Fragment, error) {
	artists := lineup.Artists(resp)
	if g.opts.DistributeDays {
		artists = lineup.DistributeDays(artists, g.opts.DayLabels, g.opts.MaxArtistsPerDay)
	}
	html, err := g.renderer.Artists(artists)
	if err != nil {
		return nil, err
	}
	return []Fragment{{Section: SectionArtists, HTML: html, Items: len(artists), Fallback: len(artists) == 0}}, nil
}

func (g *SiteGenerator) buildStages(resp *contentful.Response, _ []Section) ([]Fragment, error) {
	stages := lineup.SortStages(lineup.Stages(resp), g.opts.StageOrder)
	html, err := g.renderer.Stages(stages)
	if err != nil {
		return nil, err
	}
	return []Fragment{{Section: SectionStages, HTML: html, Items: len(stages), Fallback: len(stages) == 0}}, nil
}

func (g *SiteGenerator) buildSchedule(resp *contentful.Response, sections []Section) ([]Fragment, error) {
	frags := make([]Fragment, 0, len(sections))
	for _, s := range sections {
		day := lineup.Friday()
		if s == SectionSaturday {
			day = lineup.Saturday()
		}
		if resp.Empty() {
			frags = append(frags, Fragment{Section: s, HTML: render.ScheduleFallback(day), Fallback: true})
			continue
		}
		html, err := g.renderer.ScheduleBody(day)
		if err != nil {
			return nil, err
		}
		frags = append(frags, Fragment{Section: s, HTML: html, Items: len(day.Slots)})
	}
	return frags, nil
}

// Page assembles the full page from a complete result.
func (g *SiteGenerator) Page(res *Result, menu render.Menu) render.Page {
	return render.Page{
		Title:    g.opts.Title,
		Menu:     menu,
		Artists:  res.HTML(SectionArtists),
		Stages:   res.HTML(SectionStages),
		Friday:   res.HTML(SectionFriday),
		Saturday: res.HTML(SectionSaturday),
	}
}

// Generate renders the selected sections into outputDir, one fragment file
// per section. When every section is selected it also writes index.html
// and the static assets. Returns the written file names.
func (g *SiteGenerator) Generate(ctx context.Context, outputDir string) ([]string, error) {
	res, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string
	write := func(name string, data []byte) error {
		if err := os.WriteFile(filepath.Join(outputDir, name), data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		written = append(written, name)
		return nil
	}

	for _, s := range g.selected {
		if err := write(s.FileName(), []byte(res.HTML(s))); err != nil {
			return nil, err
		}
	}

	if !res.Complete() {
		return written, nil
	}

	var page bytes.Buffer
	if err := g.renderer.WritePage(&page, g.Page(res, render.Menu{})); err != nil {
		return nil, err
	}
	if err := write("index.html", page.Bytes()); err != nil {
		return nil, err
	}
	if err := write("style.css", render.Stylesheet()); err != nil {
		return nil, err
	}
	if err := write("script.js", render.Script()); err != nil {
		return nil, err
	}
	return written, nil
}
