// Package render produces the HTML fragments and page for the festival
// site. All content from the API is escaped by html/template.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/fstvl/internal/lineup"
)

// Fallback markup shown when a section could not be loaded or is empty.
const (
	ArtistsFallback  template.HTML = "<p>Could not load artists or no artists available. Please try again later.</p>"
	StagesFallback   template.HTML = "<p>Could not load stages or no stages available. Please try again later.</p>"
	scheduleFallback               = "Could not load schedule or no schedule available. Please try again later."
)

// ScheduleFallback is the single row that replaces a day's table body. It
// spans the time column plus every stage column.
func ScheduleFallback(day lineup.Day) template.HTML {
	colspan := strconv.Itoa(len(day.Columns) + 1)
	return template.HTML(`<tr><td colspan="` + colspan + `">` + scheduleFallback + `</td></tr>`)
}

// Renderer holds the parsed templates and the description converter.
// It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("fstvl").Parse(fragmentTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment templates: %w", err)
	}
	if _, err := tmpl.New("page").Parse(pageTemplate); err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{tmpl: tmpl, md: newMarkdown()}, nil
}

type artistCard struct {
	lineup.Artist
	DescriptionHTML template.HTML
}

// Artists renders one artist-card per artist, or ArtistsFallback when there
// are none.
func (r *Renderer) Artists(artists []lineup.Artist) (template.HTML, error) {
	if len(artists) == 0 {
		return ArtistsFallback, nil
	}
	cards := make([]artistCard, len(artists))
	for i, a := range artists {
		desc, err := markdownHTML(r.md, a.Description)
		if err != nil {
			return "", fmt.Errorf("artist %q: %w", a.Name, err)
		}
		cards[i] = artistCard{Artist: a, DescriptionHTML: desc}
	}
	return r.execute("artists", cards)
}

type stageCard struct {
	lineup.Stage
	DescriptionHTML template.HTML
}

// Stages renders one stage-card per stage in the given order, or
// StagesFallback when there are none.
func (r *Renderer) Stages(stages []lineup.Stage) (template.HTML, error) {
	if len(stages) == 0 {
		return StagesFallback, nil
	}
	cards := make([]stageCard, len(stages))
	for i, s := range stages {
		desc, err := markdownHTML(r.md, s.Description)
		if err != nil {
			return "", fmt.Errorf("stage %q: %w", s.Name, err)
		}
		cards[i] = stageCard{Stage: s, DescriptionHTML: desc}
	}
	return r.execute("stages", cards)
}

type scheduleCell struct {
	Class     string
	Performer string
}

type scheduleRow struct {
	Time  string
	Cells []scheduleCell
}

// ScheduleBody renders the table rows for a fixed day.
func (r *Renderer) ScheduleBody(day lineup.Day) (template.HTML, error) {
	rows := make([]scheduleRow, len(day.Slots))
	for i, slot := range day.Slots {
		cells := make([]scheduleCell, len(day.Columns))
		for c, col := range day.Columns {
			var performer string
			if c < len(slot.Performers) {
				performer = slot.Performers[c]
			}
			cell := scheduleCell{Performer: performer}
			if performer != "" {
				cell.Class = col.Class
			}
			cells[c] = cell
		}
		rows[i] = scheduleRow{Time: slot.Time, Cells: cells}
	}
	return r.execute("schedule", rows)
}

// Page is the data for the full page.
type Page struct {
	Title    string
	Menu     Menu
	Artists  template.HTML
	Stages   template.HTML
	Friday   template.HTML
	Saturday template.HTML
	// Asset URLs; relative paths work for both the file output and the server.
	StylesheetURL string
	ScriptURL     string
}

type pageView struct {
	Page
	NavLinks        []NavLink
	FridayColumns   []lineup.Column
	SaturdayColumns []lineup.Column
}

// WritePage renders the full page to w.
func (r *Renderer) WritePage(w io.Writer, p Page) error {
	if p.StylesheetURL == "" {
		p.StylesheetURL = "style.css"
	}
	if p.ScriptURL == "" {
		p.ScriptURL = "script.js"
	}
	view := pageView{
		Page:            p,
		NavLinks:        NavLinks,
		FridayColumns:   lineup.Friday().Columns,
		SaturdayColumns: lineup.Saturday().Columns,
	}
	if err := r.tmpl.ExecuteTemplate(w, "page", view); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Stylesheet returns the site CSS.
func Stylesheet() []byte { return []byte(cssContent) }

// Script returns the menu script.
func Script() []byte { return []byte(jsContent) }
