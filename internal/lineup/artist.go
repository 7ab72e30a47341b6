// Package lineup turns content API entries into festival lineup records.
package lineup

import "github.com/ziadkadry99/fstvl/internal/contentful"

// Fallback labels for links that cannot be resolved.
const (
	NoGenre = "No genre available"
	NoStage = "No stage available"
	NoDay   = "No day available"
)

// Artist is an artist entry with its links resolved to display names.
type Artist struct {
	Name        string
	Description string
	Genre       string
	Stage       string
	Day         string
}

type artistFields struct {
	Name        contentful.Text  `json:"name"`
	Description contentful.Text  `json:"description"`
	Genre       *contentful.Link `json:"genre"`
	Stage       *contentful.Link `json:"stage"`
	Day         *contentful.Link `json:"day"`
}

// Artists resolves every item in resp. Each item yields exactly one Artist.
// Fields are resolved one by one: a field that is missing or malformed gets
// its fallback while the rest of the item is kept.
func Artists(resp *contentful.Response) []Artist {
	if resp.Empty() {
		return nil
	}
	artists := make([]Artist, 0, len(resp.Items))
	for _, item := range resp.Items {
		var f artistFields
		_ = item.DecodeFields(&f) // keeps whatever decoded before an error
		artists = append(artists, Artist{
			Name:        string(f.Name),
			Description: string(f.Description),
			Genre:       resolve(resp.Includes, f.Genre, NoGenre),
			Stage:       resolve(resp.Includes, f.Stage, NoStage),
			Day:         resolve(resp.Includes, f.Day, NoDay),
		})
	}
	return artists
}

func resolve(in contentful.Includes, link *contentful.Link, fallback string) string {
	if link == nil {
		return fallback
	}
	if name, ok := in.Name(link.Sys.ID); ok {
		return name
	}
	return fallback
}

// DistributeDays assigns days by position: the first perDay artists get
// days[0], the rest days[1]. Any resolved day is overwritten. The input
// slice is not modified.
func DistributeDays(artists []Artist, days [2]string, perDay int) []Artist {
	out := make([]Artist, len(artists))
	for i, a := range artists {
		if i < perDay {
			a.Day = days[0]
		} else {
			a.Day = days[1]
		}
		out[i] = a
	}
	return out
}
