// Package progress reports section renders as they finish.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// Reporter is told which sections a render covers and how each one ended.
type Reporter interface {
	Start(sections []string)
	Done(section string, fallback bool)
	Finish()
}

// NewReporter picks line output under CI and a progress bar otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{Out: os.Stderr}
	}
	return &TerminalReporter{Out: os.Stderr}
}

// tally tracks finished sections and the ones that fell back.
type tally struct {
	total     int
	done      int
	fallbacks []string
}

func (t *tally) start(sections []string) {
	*t = tally{total: len(sections)}
}

func (t *tally) record(section string, fallback bool) {
	t.done++
	if fallback {
		t.fallbacks = append(t.fallbacks, section)
	}
}

func (t *tally) summary() string {
	if len(t.fallbacks) == 0 {
		return fmt.Sprintf("Rendered %d/%d sections", t.done, t.total)
	}
	return fmt.Sprintf("Rendered %d/%d sections, fallback shown for %s",
		t.done, t.total, strings.Join(t.fallbacks, ", "))
}

// TerminalReporter draws a bar that advances once per section.
type TerminalReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
	tally
}

func (r *TerminalReporter) Start(sections []string) {
	r.tally.start(sections)
	r.bar = progressbar.NewOptions(len(sections),
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Done(section string, fallback bool) {
	r.tally.record(section, fallback)
	if r.bar == nil {
		return
	}
	r.bar.Describe(section)
	_ = r.bar.Add(1)
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	_ = r.bar.Finish()
	fmt.Fprintln(r.Out, r.tally.summary())
}

// CIReporter writes one line per section, for logs that cannot redraw.
type CIReporter struct {
	Out io.Writer
	tally
}

func (r *CIReporter) Start(sections []string) {
	r.tally.start(sections)
	fmt.Fprintf(r.Out, "Rendering %s\n", strings.Join(sections, ", "))
}

func (r *CIReporter) Done(section string, fallback bool) {
	r.tally.record(section, fallback)
	status := "ok"
	if fallback {
		status = "fallback"
	}
	fmt.Fprintf(r.Out, "[%d/%d] %s %s\n", r.done, r.total, section, status)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(r.Out, r.tally.summary())
}

// Nop discards progress. Used for renders served over HTTP.
type Nop struct{}

func (Nop) Start([]string)    {}
func (Nop) Done(string, bool) {}
func (Nop) Finish()           {}
