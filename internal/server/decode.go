package server

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
	"github.com/goliatone/go-formalise/pkg/renderers/vanilla"
)

const (
	actionButton = "button"
	actionDelete = "delete"
	actionChange = "change"
)

var errMalformed = errors.New("malformed form post")

// posted is a decoded form page submission.
type posted struct {
	Page   int
	Values model.Values
	// Prev holds the values fields with dependents had when the page was
	// rendered.
	Prev   map[string]string
	Action string
}

// decodePost reads the body of a rendered page. Keys that do not belong to a
// declared field are dropped.
func decodePost(def model.Form, body url.Values) (posted, error) {
	out := posted{Values: model.Values{}, Prev: map[string]string{}}

	if raw := strings.TrimSpace(body.Get(render.PageKey)); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return posted{}, fmt.Errorf("%w: page %q", errMalformed, raw)
		}
		out.Page = page
	}
	for _, action := range body[render.ActionKey] {
		if action = strings.TrimSpace(action); action != "" {
			out.Action = action
		}
	}

	keys := make([]string, 0, len(body))
	for key := range body {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return pathLess(keys[i], keys[j]) })

	for _, key := range keys {
		value := body.Get(key)
		if name, ok := strings.CutPrefix(key, vanilla.PrevPrefix); ok {
			out.Prev[name] = value
			continue
		}
		if strings.HasPrefix(key, "_") {
			continue
		}
		name, _, _ := strings.Cut(key, ".")
		if _, ok := def.Field(name); !ok {
			continue
		}
		if err := out.Values.Set(key, value); err != nil {
			return posted{}, fmt.Errorf("%w: %w", errMalformed, err)
		}
	}
	return out, nil
}

// pathLess orders dotted paths segment by segment, comparing numeric
// segments as numbers so record 10 is written after record 9.
func pathLess(a, b string) bool {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			return ai < bi
		}
		return as[i] < bs[i]
	}
	return len(as) < len(bs)
}

// applyChanges replays edits of fields with dependents through SetField, so
// their resets run as they would in an interactive session.
func applyChanges(ctrl *form.Controller, p posted) error {
	names := make([]string, 0, len(p.Prev))
	for name := range p.Prev {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		current, ok := p.Values[name]
		if !ok || p.Values.String(name) == p.Prev[name] {
			continue
		}
		if err := ctrl.SetField(name, current); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
	}
	return nil
}

// parseDelete splits "invitees:1" into the array name and record index.
func parseDelete(arg string) (string, int, error) {
	name, rawIndex, ok := strings.Cut(arg, ":")
	if !ok || name == "" {
		return "", 0, fmt.Errorf("%w: delete %q", errMalformed, arg)
	}
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return "", 0, fmt.Errorf("%w: delete %q", errMalformed, arg)
	}
	return name, index, nil
}
