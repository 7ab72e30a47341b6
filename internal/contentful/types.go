package contentful

import (
	"encoding/json"
	"fmt"
)

// Sys is the system metadata block carried by every entry and link.
type Sys struct {
	ID       string `json:"id"`
	Type     string `json:"type,omitempty"`
	LinkType string `json:"linkType,omitempty"`
}

// Link references another entry by id.
type Link struct {
	Sys Sys `json:"sys"`
}

// UnmarshalJSON implements json.Unmarshaler. A value that is not a link
// object, such as a plain string, decodes to a link with no id.
func (l *Link) UnmarshalJSON(data []byte) error {
	type plain Link
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*l = Link{}
		return nil
	}
	*l = Link(p)
	return nil
}

// Item is one entry from the primary items list. Fields are decoded lazily
// because their shape depends on the content type.
type Item struct {
	Sys    Sys             `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

// DecodeFields unmarshals the item's fields into v.
func (i Item) DecodeFields(v any) error {
	if len(i.Fields) == 0 {
		return fmt.Errorf("entry %s has no fields", i.Sys.ID)
	}
	if err := json.Unmarshal(i.Fields, v); err != nil {
		return fmt.Errorf("decoding fields of entry %s: %w", i.Sys.ID, err)
	}
	return nil
}

// Entry is a linked record from the includes side list. Only the display
// name is read from linked entries.
type Entry struct {
	Sys    Sys `json:"sys"`
	Fields struct {
		Name Text `json:"name"`
	} `json:"fields"`
}

// Includes holds records linked from the items.
type Includes struct {
	Entry []Entry `json:"Entry"`
}

// Name returns the display name of the first included entry with the given
// id. Entries with an empty name count as missing.
func (in Includes) Name(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, e := range in.Entry {
		if e.Sys.ID == id {
			name := string(e.Fields.Name)
			return name, name != ""
		}
	}
	return "", false
}

// Response is the body of an entries collection request.
type Response struct {
	Total    int      `json:"total"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
	Items    []Item   `json:"items"`
	Includes Includes `json:"includes"`
}

// Empty reports whether r is absent or carries no items.
func (r *Response) Empty() bool {
	return r == nil || len(r.Items) == 0
}

// Text is a string field that tolerates null and non-string values such as
// rich text documents, which decode to the empty string.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

// apiError is the error body returned by the delivery API.
type apiError struct {
	Sys     Sys    `json:"sys"`
	Message string `json:"message"`
}
