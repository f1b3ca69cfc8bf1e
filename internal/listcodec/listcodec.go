// Package listcodec converts between list fields and the free-text form fields
// used to edit them.
package listcodec

import "strings"

// Codec splits text on Sep and joins lists with Join.
//
// Split trims every entry and drops empty ones, so Split(Join(xs)) == xs for
// any list whose entries are already trimmed and non-empty.
type Codec struct {
	Sep  string
	Join string
}

var (
	// Lines is used for responsibilities: one entry per line.
	Lines = Codec{Sep: "\n", Join: "\n"}

	// Commas is used for technologies: "React, Node.js, MongoDB".
	Commas = Codec{Sep: ",", Join: ", "}
)

// Split returns the non-blank, trimmed entries of text in order. The result is
// never nil.
func (c Codec) Split(text string) []string {
	parts := strings.Split(text, c.Sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Format joins items for display in an editable field.
func (c Codec) Format(items []string) string {
	return strings.Join(items, c.Join)
}

// Clean applies the same trim/drop rule as Split to an existing list.
func (c Codec) Clean(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
