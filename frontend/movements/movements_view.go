package movements

import (
	"context"
	stdhtml "html"
	"io"

	"github.com/a-h/templ"

	"stockroom/frontend/shared/forms"
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// MovementPage renders the shared movement form for one tab.
func MovementPage(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>`+stdhtml.EscapeString(data.Tab.Title)+`</h1><form method="POST" action="/app/`+data.Tab.Key+`"><div class="form-head">`); err != nil {
			return err
		}
		if err := writeField(w, `<label>Date<input type="date" name="date" value="`+stdhtml.EscapeString(data.Date)+`"></label>`); err != nil {
			return err
		}
		if data.Tab.ShowProject {
			if err := writePickerField(w, "Project", "project", data.Project, inventory.CategoryProjects); err != nil {
				return err
			}
		}
		if data.Tab.ShowContractor {
			if err := writePickerField(w, "Contractor", "contractor", data.Contractor, inventory.CategoryContractors); err != nil {
				return err
			}
		}
		if data.Tab.ShowRequester {
			if err := writePickerField(w, "Requester", "requester", data.Requester, inventory.CategoryRequesters); err != nil {
				return err
			}
		}
		if err := writeField(w, `<label>Note<input type="text" name="note" value="`+stdhtml.EscapeString(data.Note)+`"></label>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		schema := forms.Schema{PickerCategory: inventory.CategoryMaterials, ShowBadge: data.Tab.ShowBadge}
		if err := forms.LineRows(schema, data.Lines).Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<button type="submit" id="submit-btn" class="btn btn-primary" disabled>Submit</button></form>`); err != nil {
			return err
		}
		return html.PickerModal().Render(ctx, w)
	})
	return html.Layout(data.Tab.Title, data.Tab.Key, data.Flash, body)
}

func writeField(w io.Writer, field string) error {
	_, err := io.WriteString(w, field)
	return err
}

func writePickerField(w io.Writer, label, name, value string, category inventory.Category) error {
	_, err := io.WriteString(w,
		`<label>`+label+`<input type="text" name="`+name+`" value="`+stdhtml.EscapeString(value)+`" readonly onclick="openPicker(this, '`+string(category)+`')" placeholder="Tap to choose"></label>`)
	return err
}
