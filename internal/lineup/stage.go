package lineup

import (
	"sort"

	"github.com/ziadkadry99/fstvl/internal/contentful"
)

// Stage is a stage entry.
type Stage struct {
	Name        string
	Description string
	Area        string
}

type stageFields struct {
	Name        contentful.Text `json:"name"`
	Description contentful.Text `json:"description"`
	Area        contentful.Text `json:"area"`
}

// Stages decodes every item in resp.
func Stages(resp *contentful.Response) []Stage {
	if resp.Empty() {
		return nil
	}
	stages := make([]Stage, 0, len(resp.Items))
	for _, item := range resp.Items {
		var f stageFields
		_ = item.DecodeFields(&f) // keeps whatever decoded before an error
		stages = append(stages, Stage{
			Name:        string(f.Name),
			Description: string(f.Description),
			Area:        string(f.Area),
		})
	}
	return stages
}

// SortStages returns the stages ordered by their position in order.
//
// Names missing from order rank as -1, so they sort ahead of every listed
// stage.
func SortStages(stages []Stage, order []string) []Stage {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, seen := rank[name]; !seen {
			rank[name] = i
		}
	}
	indexOf := func(name string) int {
		if i, ok := rank[name]; ok {
			return i
		}
		return -1
	}

	out := append([]Stage(nil), stages...)
	sort.SliceStable(out, func(i, j int) bool {
		return indexOf(out[i].Name) < indexOf(out[j].Name)
	})
	return out
}
