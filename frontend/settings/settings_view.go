package settings

import (
	"context"
	stdhtml "html"
	"io"

	"github.com/a-h/templ"

	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// SettingsPage renders the master-data lists with add, edit, delete
// and CSV import controls.
func SettingsPage(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Settings</h1>`); err != nil {
			return err
		}
		if err := writeMaterials(w, data.Materials); err != nil {
			return err
		}
		if err := writeNameList(w, "Projects", inventory.CategoryProjects, data.Projects); err != nil {
			return err
		}
		if err := writeNameList(w, "Contractors", inventory.CategoryContractors, data.Contractors); err != nil {
			return err
		}
		if err := writeNameList(w, "Requesters", inventory.CategoryRequesters, data.Requesters); err != nil {
			return err
		}
		_, err := io.WriteString(w, confirmScript)
		return err
	})
	return html.Layout("Settings", "settings", data.Flash, body)
}

func writeMaterials(w io.Writer, materials []inventory.MaterialRow) error {
	if _, err := io.WriteString(w, `<section class="master"><h2>Materials</h2>`+
		`<form method="POST" action="/app/settings/materials/import" enctype="multipart/form-data" class="inline-form">`+
		`<input type="file" name="file" accept=".csv" required>`+
		`<button type="submit" class="btn">Import CSV (name,stock,min)</button></form>`+
		`<form method="POST" action="/app/settings/materials" class="inline-form">`+
		`<input type="text" name="name" placeholder="New material" required>`+
		`<input type="text" name="stock" inputmode="decimal" placeholder="Stock">`+
		`<input type="text" name="min" inputmode="decimal" placeholder="Min">`+
		`<button type="submit" class="btn">Add</button></form>`+
		`<table class="master-table"><thead><tr><th>Name</th><th>Stock</th><th>Min</th><th></th></tr></thead><tbody>`); err != nil {
		return err
	}
	for _, m := range materials {
		name := stdhtml.EscapeString(m.Name)
		if _, err := io.WriteString(w, `<tr><td>`+name+`</td>`+
			`<form method="POST" action="/app/settings/materials/levels">`+
			`<input type="hidden" name="name" value="`+name+`">`+
			`<td><input type="text" name="stock" inputmode="decimal" value="`+m.Stock.String()+`"></td>`+
			`<td><input type="text" name="min" inputmode="decimal" value="`+m.Min.String()+`"></td>`+
			`<td><button type="submit" class="btn btn-ghost">Save</button></form>`+
			deleteForm(inventory.CategoryMaterials, m.Name)+
			`</td></tr>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table></section>`)
	return err
}

func writeNameList(w io.Writer, title string, category inventory.Category, items []string) error {
	if _, err := io.WriteString(w, `<section class="master"><h2>`+title+`</h2>`+
		`<form method="POST" action="/app/settings/`+string(category)+`" class="inline-form">`+
		`<input type="text" name="name" placeholder="New `+string(category)+`" required>`+
		`<button type="submit" class="btn">Add</button></form><ul class="master-list">`); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := io.WriteString(w, `<li>`+stdhtml.EscapeString(item)+deleteForm(category, item)+`</li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></section>`)
	return err
}

func deleteForm(category inventory.Category, name string) string {
	escaped := stdhtml.EscapeString(name)
	return `<form method="POST" action="/app/settings/` + string(category) + `/delete" class="inline-form" onsubmit="return confirmDelete(this, '` + escaped + `')">` +
		`<input type="hidden" name="name" value="` + escaped + `">` +
		`<input type="hidden" name="confirm" value="">` +
		`<button type="submit" class="btn btn-ghost">Delete</button></form>`
}

const confirmScript = `<script>
function confirmDelete(form, name) {
  if (!window.confirm('Delete "' + name + '"?')) return false;
  form.querySelector("input[name='confirm']").value = "yes";
  return true;
}
</script>`
