package vanilla

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formalise/pkg/form"
	"github.com/goliatone/go-formalise/pkg/model"
	"github.com/goliatone/go-formalise/pkg/render"
)

// PrevPrefix prefixes hidden inputs that carry the rendered value of fields
// with dependents. The server compares them with the posted value to decide
// whether to apply resets.
const PrevPrefix = "_prev."

type pageView struct {
	FormID      string               `json:"formId"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	PageTitle   string               `json:"pageTitle"`
	Intro       string               `json:"intro,omitempty"`
	Action      string               `json:"action"`
	Page        int                  `json:"page"`
	Total       int                  `json:"total"`
	Segments    []segmentView        `json:"segments,omitempty"`
	Fields      []fieldView          `json:"fields"`
	Buttons     []buttonView         `json:"buttons"`
	Messages    []string             `json:"messages,omitempty"`
	Hidden      []render.HiddenField `json:"hidden,omitempty"`
	Classes     Classes              `json:"classes"`
}

type segmentView struct {
	Label          string `json:"label"`
	State          string `json:"state"`
	Class          string `json:"class"`
	ConnectorClass string `json:"connectorClass,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type fieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Kind        string       `json:"kind"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value"`
	Required    bool         `json:"required"`
	Options     []optionView `json:"options,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
	Records     []recordView `json:"records,omitempty"`
	// Change is the _action value of the refresh control rendered next to
	// fields that reset others.
	Change string `json:"change,omitempty"`
}

type recordView struct {
	Index     int         `json:"index"`
	Label     string      `json:"label"`
	Fields    []fieldView `json:"fields"`
	Removable bool        `json:"removable"`
	Delete    string      `json:"delete,omitempty"`
}

type buttonView struct {
	Label  string `json:"label"`
	Role   string `json:"role"`
	Style  string `json:"style"`
	Action string `json:"action"`
}

func buildPageView(def model.Form, page form.PageContext, options render.RenderOptions, classes Classes) pageView {
	current := def.Pages[page.Page]
	fieldErrors, formErrors := render.SplitErrors(page.Errors)

	view := pageView{
		FormID:      def.ID,
		Title:       def.Title,
		Description: def.Description,
		PageTitle:   current.DisplayTitle(),
		Intro:       sanitizeIntro(current.Intro),
		Action:      options.Action,
		Page:        page.Page,
		Total:       page.Total,
		Messages:    render.MergeFormErrors([]string{page.Message}, formErrors...),
		Classes:     classes.resolve(),
	}

	if current.Progress {
		for _, seg := range page.Progress() {
			view.Segments = append(view.Segments, segmentView{
				Label:          seg.Label(),
				State:          string(seg.State),
				Class:          seg.Class(),
				ConnectorClass: seg.ConnectorClass(),
			})
		}
	}

	hidden := map[string]string{render.PageKey: strconv.Itoa(page.Page)}
	for _, field := range current.Fields {
		view.Fields = append(view.Fields, buildField(field, field.Name, page.Values, fieldErrors))
		if len(field.Resets) > 0 {
			hidden[PrevPrefix+field.Name] = page.Values.String(field.Name)
		}
	}
	for _, carried := range render.CarryFields(def, page.Page, page.Values) {
		hidden[carried.Name] = carried.Value
	}
	view.Hidden = render.SortedHiddenFields(render.MergeHiddenFields(hidden, hiddenFromOptions(options.Hidden)...))

	for index, button := range current.Buttons {
		view.Buttons = append(view.Buttons, buttonView{
			Label:  button.Label,
			Role:   string(button.Role),
			Style:  buttonStyle(button),
			Action: "button:" + strconv.Itoa(index),
		})
	}
	return view
}

func buildField(field model.Field, path string, values model.Values, errs map[string][]string) fieldView {
	kind := field.ResolveKind(values)
	view := fieldView{
		Name:        path,
		ID:          "fl-" + strings.ReplaceAll(path, ".", "-"),
		Label:       field.DisplayLabel(),
		Kind:        string(kind),
		Placeholder: field.Placeholder,
		Required:    field.Required,
		Errors:      errs[path],
	}
	if len(field.Resets) > 0 {
		view.Change = "change:" + path
	}

	if kind == model.KindArray {
		for index := range values.Records(path) {
			recordPath := path + "." + strconv.Itoa(index)
			record := recordView{
				Index:     index,
				Label:     field.ItemPlaceholder(index),
				Removable: form.Removable(field, index),
			}
			if record.Removable {
				record.Delete = "delete:" + path + ":" + strconv.Itoa(index)
			}
			for _, item := range field.Item {
				child := buildField(item, recordPath+"."+item.Name, values, errs)
				if child.Placeholder == "" {
					child.Placeholder = record.Label
				}
				record.Fields = append(record.Fields, child)
			}
			view.Records = append(view.Records, record)
		}
		return view
	}

	view.Value = values.String(path)
	if kind == model.KindSelect {
		for _, option := range field.Options {
			label := option.Label
			if label == "" {
				label = option.Value
			}
			view.Options = append(view.Options, optionView{
				Value:    option.Value,
				Label:    label,
				Selected: option.Value == view.Value,
			})
		}
	}
	return view
}

func buttonStyle(button model.Button) string {
	if button.Style != "" {
		return button.Style
	}
	switch button.Role {
	case model.RoleContinue, model.RoleSubmit:
		return "primary"
	default:
		return "secondary"
	}
}

func hiddenFromOptions(extra map[string]string) []render.HiddenField {
	fields := make([]render.HiddenField, 0, len(extra))
	for name, value := range extra {
		fields = append(fields, render.Hidden(name, value))
	}
	return fields
}
