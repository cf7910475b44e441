package forms

import (
	"context"
	stdhtml "html"
	"io"

	"github.com/a-h/templ"

	"stockroom/inventory"
)

// LineRows renders the repeatable (material, quantity) rows plus the
// row add/remove script. Passing previously entered lines re-echoes
// the form after a failed submit; an empty slice yields the single
// empty row every tab starts with.
func LineRows(schema Schema, lines []inventory.LineItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(lines) == 0 {
			lines = []inventory.LineItem{{}}
		}

		badge := "0"
		if schema.ShowBadge {
			badge = "1"
		}
		if _, err := io.WriteString(w,
			`<div id="line-form" data-category="`+string(schema.PickerCategory)+`" data-badge="`+badge+`"><div id="line-rows">`); err != nil {
			return err
		}
		for _, line := range lines {
			if err := writeRow(w, schema, line); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w,
			`</div><button type="button" class="btn btn-ghost" onclick="addLineRow()">+ Add line</button></div>`); err != nil {
			return err
		}
		_, err := io.WriteString(w, lineFormScript)
		return err
	})
}

func writeRow(w io.Writer, schema Schema, line inventory.LineItem) error {
	// Re-echo the quantity even on a nameless row so a typed value
	// survives a failed submit. Untouched empty rows stay blank.
	qty := ""
	if line.Valid() || !line.Qty.IsZero() {
		qty = line.Qty.String()
	}
	var badge string
	if schema.ShowBadge {
		badge = `<span class="badge badge-none line-badge">-</span>`
	}
	_, err := io.WriteString(w, `<div class="line-row">`+
		`<input type="text" name="line_name" class="line-name" placeholder="Material" readonly value="`+stdhtml.EscapeString(line.Name)+`" onclick="openPicker(this, '`+string(schema.PickerCategory)+`')">`+
		`<input type="text" name="line_qty" class="line-qty" inputmode="decimal" placeholder="0" value="`+stdhtml.EscapeString(qty)+`">`+
		badge+
		`<button type="button" class="btn btn-ghost" onclick="removeLineRow(this)">&times;</button>`+
		`</div>`)
	return err
}

const lineFormScript = `<script>
function lineRowTemplate() {
  const rows = document.getElementById("line-rows");
  return rows ? rows.querySelector(".line-row") : null;
}

function addLineRow() {
  const rows = document.getElementById("line-rows");
  const tpl = lineRowTemplate();
  if (!rows || !tpl) return;
  const row = tpl.cloneNode(true);
  row.querySelectorAll("input").forEach(function (inp) { inp.value = ""; });
  const b = row.querySelector(".line-badge");
  if (b) { b.textContent = "-"; b.className = "badge badge-none line-badge"; }
  rows.appendChild(row);
  updateSubmitState();
}

function removeLineRow(btn) {
  const rows = document.getElementById("line-rows");
  const row = btn.closest(".line-row");
  if (!rows || !row) return;
  if (rows.querySelectorAll(".line-row").length === 1) {
    row.querySelectorAll("input").forEach(function (inp) { inp.value = ""; });
  } else {
    row.remove();
  }
  updateSubmitState();
}

function validLineCount() {
  let n = 0;
  document.querySelectorAll("#line-rows .line-name").forEach(function (inp) {
    if (inp.value.trim() !== "") n++;
  });
  return n;
}

function updateSubmitState() {
  const submit = document.getElementById("submit-btn");
  if (submit) submit.disabled = validLineCount() === 0;
}

async function refreshRowBadge(nameInput) {
  const form = document.getElementById("line-form");
  if (!form || form.dataset.badge !== "1") return;
  const row = nameInput.closest(".line-row");
  const badge = row ? row.querySelector(".line-badge") : null;
  const name = nameInput.value.trim();
  if (!badge || name === "") return;
  try {
    const resp = await fetch("/app/api/stock?name=" + encodeURIComponent(name));
    if (!resp.ok) return;
    const data = await resp.json();
    badge.textContent = data.stock + " / min " + data.min;
    badge.className = "badge badge-" + data.level + " line-badge";
  } catch (err) {
    /* slow or failed lookup keeps the previous badge */
  }
}

(function attachLineFormEvents() {
  const form = document.getElementById("line-form");
  if (!form) return;
  form.addEventListener("input", updateSubmitState);
  form.addEventListener("change", function (e) {
    if (e.target.classList.contains("line-name")) refreshRowBadge(e.target);
  });
  const host = form.closest("form");
  if (host) {
    host.addEventListener("submit", function () {
      const submit = document.getElementById("submit-btn");
      if (submit) submit.disabled = true;
    });
  }
  updateSubmitState();
})();
</script>`
