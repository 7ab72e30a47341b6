package site

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Section is one output region of the page.
type Section string

const (
	SectionArtists  Section = "artists"
	SectionStages   Section = "stages"
	SectionFriday   Section = "schedule-friday"
	SectionSaturday Section = "schedule-saturday"
)

// AllSections lists every section in page order.
var AllSections = []Section{SectionArtists, SectionStages, SectionFriday, SectionSaturday}

// ContentType is the content type fetched to render the section. Both
// schedule days fetch artists only to decide whether to show the table.
func (s Section) ContentType() string {
	if s == SectionStages {
		return "stage"
	}
	return "artist"
}

// Container is the page selector the section's markup is written into.
func (s Section) Container() string {
	switch s {
	case SectionArtists:
		return ".artist-list"
	case SectionStages:
		return ".stage-list"
	case SectionFriday:
		return "#schedule-body-friday"
	case SectionSaturday:
		return "#schedule-body-saturday"
	}
	return ""
}

// FileName is the fragment file written for the section.
func (s Section) FileName() string { return string(s) + ".html" }

// ParseSection validates a section name.
func ParseSection(name string) (Section, error) {
	for _, s := range AllSections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", name)
}

// SelectSections returns the sections matching any of the glob patterns, in
// page order. No patterns selects every section.
func SelectSections(patterns []string) ([]Section, error) {
	if len(patterns) == 0 {
		return append([]Section(nil), AllSections...), nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid section pattern %q", p)
		}
	}
	var out []Section
	for _, s := range AllSections {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, string(s)); ok {
				out = append(out, s)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no section matches %v", patterns)
	}
	return out, nil
}
