package migration

import (
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Request selects what a run translates. Fields[0] and Languages[0] drive the
// skip check.
type Request struct {
	Collection string
	Fields     []string
	Languages  []string
	Force      bool
}

// Validate reports missing collection, fields, or languages.
func (r Request) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Collection, validation.Required),
		validation.Field(&r.Fields, validation.Required, validation.Each(validation.Required)),
		validation.Field(&r.Languages, validation.Required, validation.Each(validation.Required)),
	)
	if err != nil {
		return invalidRequest(err)
	}
	return nil
}

// normalized trims values and drops duplicate languages while keeping order.
func (r Request) normalized() Request {
	out := Request{
		Collection: strings.TrimSpace(r.Collection),
		Force:      r.Force,
	}
	for _, f := range r.Fields {
		if f = strings.TrimSpace(f); f != "" && !slices.Contains(out.Fields, f) {
			out.Fields = append(out.Fields, f)
		}
	}
	for _, l := range r.Languages {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" && !slices.Contains(out.Languages, l) {
			out.Languages = append(out.Languages, l)
		}
	}
	return out
}

func (r Request) primaryField() string    { return r.Fields[0] }
func (r Request) primaryLanguage() string { return r.Languages[0] }
