package purchase

import (
	"context"
	stdhtml "html"
	"io"

	"github.com/a-h/templ"

	"stockroom/frontend/shared/forms"
	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// PurchasePage renders the request form and the expandable history
// list.
func PurchasePage(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeForm(ctx, w, data); err != nil {
			return err
		}
		if err := writeHistory(w, data.History); err != nil {
			return err
		}
		if _, err := io.WriteString(w, historyScript); err != nil {
			return err
		}
		return html.PickerModal().Render(ctx, w)
	})
	return html.Layout("Purchase Requests", "purchase", data.Flash, body)
}

func writeForm(ctx context.Context, w io.Writer, data PageData) error {
	if _, err := io.WriteString(w, `<h1>Purchase Request</h1><form method="POST" action="/app/purchase"><div class="form-head">`+
		`<label>Date<input type="date" name="date" value="`+stdhtml.EscapeString(data.Date)+`"></label>`+
		`<label>Need by<input type="date" name="need_by" value="`+stdhtml.EscapeString(data.NeedBy)+`"></label>`+
		`<label>Priority<select name="priority">`); err != nil {
		return err
	}
	for _, p := range Priorities {
		selected := ""
		if p == data.Priority {
			selected = ` selected`
		}
		if _, err := io.WriteString(w, `<option`+selected+`>`+p+`</option>`); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</select></label>`+
		pickerField("Project", "project", data.Project, inventory.CategoryProjects)+
		pickerField("Contractor", "contractor", data.Contractor, inventory.CategoryContractors)+
		pickerField("Requester", "requester", data.Requester, inventory.CategoryRequesters)+
		`<label>Note<input type="text" name="note" value="`+stdhtml.EscapeString(data.Note)+`"></label>`+
		`</div>`); err != nil {
		return err
	}

	schema := forms.Schema{PickerCategory: inventory.CategoryMaterials}
	if err := forms.LineRows(schema, data.Lines).Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, `<button type="submit" id="submit-btn" class="btn btn-primary" disabled>Request</button></form>`)
	return err
}

func pickerField(label, name, value string, category inventory.Category) string {
	return `<label>` + label + `<input type="text" name="` + name + `" value="` + stdhtml.EscapeString(value) + `" readonly onclick="openPicker(this, '` + string(category) + `')" placeholder="Tap to choose"></label>`
}

func writeHistory(w io.Writer, history []inventory.PurchaseSummary) error {
	if _, err := io.WriteString(w, `<h2>History</h2>`); err != nil {
		return err
	}
	if len(history) == 0 {
		_, err := io.WriteString(w, `<p class="empty">No purchase requests yet</p>`)
		return err
	}
	if _, err := io.WriteString(w, `<ul class="history">`); err != nil {
		return err
	}
	for _, h := range history {
		docNo := stdhtml.EscapeString(h.DocNo)
		if _, err := io.WriteString(w, `<li class="history-item">`+
			`<button type="button" class="history-head" onclick="toggleHistory('`+docNo+`')">`+
			docNo+` &middot; `+stdhtml.EscapeString(h.Date)+` &middot; `+stdhtml.EscapeString(string(h.Status))+
			`</button><div class="history-detail" id="detail-`+docNo+`" hidden>`+
			`<p>`+stdhtml.EscapeString(h.Requester)+` / `+stdhtml.EscapeString(h.Project)+` / `+stdhtml.EscapeString(h.Priority)+`</p>`+
			`<ul class="history-lines" id="lines-`+docNo+`"></ul>`); err != nil {
			return err
		}
		if err := writeStatusForm(w, h); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</div></li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}

func writeStatusForm(w io.Writer, h inventory.PurchaseSummary) error {
	next := NextStatuses(h.Status)
	if len(next) == 0 {
		return nil
	}
	docNo := stdhtml.EscapeString(h.DocNo)
	if _, err := io.WriteString(w, `<form method="POST" action="/app/purchase/`+docNo+`/status" class="status-form"><select name="status">`); err != nil {
		return err
	}
	for _, s := range next {
		if _, err := io.WriteString(w, `<option>`+string(s)+`</option>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</select><button type="submit" class="btn">Update</button></form>`)
	return err
}

const historyScript = `<script>
const loadedLines = {};

async function toggleHistory(docNo) {
  const detail = document.getElementById("detail-" + docNo);
  if (!detail) return;
  if (!detail.hidden) {
    detail.hidden = true;
    return;
  }
  detail.hidden = false;
  if (loadedLines[docNo]) return;
  const list = document.getElementById("lines-" + docNo);
  if (!list) return;
  try {
    const resp = await fetch("/app/api/purchase/" + encodeURIComponent(docNo) + "/lines");
    if (!resp.ok) throw new Error("load failed");
    const lines = await resp.json();
    list.innerHTML = "";
    lines.forEach(function (l) {
      const li = document.createElement("li");
      li.textContent = l.name + " × " + l.qty;
      list.appendChild(li);
    });
    loadedLines[docNo] = true;
  } catch (err) {
    list.innerHTML = "<li>Could not load lines</li>";
  }
}
</script>`
