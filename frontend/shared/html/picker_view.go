package html

import "github.com/a-h/templ"

// PickerModal is the shared search-select dialog. A page includes it
// once; inputs opt in with onclick="openPicker(this, 'materials')".
// Selection writes the chosen name back into the originating input and
// dispatches a change event; cancel, backdrop click and Escape close
// without touching the input.
func PickerModal() templ.Component {
	return templ.Raw(pickerModalHTML)
}

const pickerModalHTML = `<dialog id="picker-modal" class="modal">
  <div class="modal-box">
    <input type="text" id="picker-search" placeholder="Type to search..." autocomplete="off">
    <ul id="picker-results" class="picker-results"></ul>
    <p id="picker-status" class="picker-status"></p>
    <div class="modal-action">
      <button class="btn" type="button" onclick="closePicker()">Cancel</button>
    </div>
  </div>
</dialog>
<script>
let pickerInput = null;
let pickerCategory = "";

function openPicker(input, category) {
  pickerInput = input;
  pickerCategory = category;
  const modal = document.getElementById("picker-modal");
  const search = document.getElementById("picker-search");
  if (!modal || !search) return;
  search.value = "";
  modal.showModal();
  search.focus();
  runPickerSearch("");
}

function closePicker() {
  const modal = document.getElementById("picker-modal");
  if (modal && modal.open) modal.close();
}

function pickEntry(name) {
  if (pickerInput) {
    pickerInput.value = name;
    pickerInput.dispatchEvent(new Event("change", { bubbles: true }));
    pickerInput.dispatchEvent(new Event("input", { bubbles: true }));
  }
  closePicker();
}

function setPickerStatus(msg) {
  const el = document.getElementById("picker-status");
  if (el) el.textContent = msg;
}

async function runPickerSearch(q) {
  const list = document.getElementById("picker-results");
  if (!list) return;
  try {
    const resp = await fetch("/app/api/picker/" + pickerCategory + "?q=" + encodeURIComponent(q));
    if (!resp.ok) throw new Error("search failed");
    const data = await resp.json();
    renderPickerResults(list, data, q);
  } catch (err) {
    setPickerStatus("Search failed");
  }
}

function renderPickerResults(list, data, q) {
  list.innerHTML = "";
  setPickerStatus("");
  (data.entries || []).forEach(function (e) {
    const li = document.createElement("li");
    const btn = document.createElement("button");
    btn.type = "button";
    btn.className = "picker-row";
    btn.textContent = e.hasStock ? e.name + "  (stock: " + e.stock + ")" : e.name;
    btn.onclick = function () { pickEntry(e.name); };
    li.appendChild(btn);
    list.appendChild(li);
  });
  if (data.quickAdd) {
    const li = document.createElement("li");
    const btn = document.createElement("button");
    btn.type = "button";
    btn.className = "picker-row picker-add";
    btn.textContent = '+ Add "' + q + '"';
    btn.onclick = function () { quickAddEntry(q); };
    li.appendChild(btn);
    list.appendChild(li);
  } else if ((data.entries || []).length === 0) {
    setPickerStatus("No matches");
  }
}

async function quickAddEntry(name) {
  try {
    const body = new URLSearchParams();
    body.set("name", name);
    const resp = await fetch("/app/api/picker/" + pickerCategory, { method: "POST", body: body });
    const data = await resp.json();
    if (data.ok) {
      pickEntry(data.name);
      return;
    }
    setPickerStatus(data.message || "Could not add entry");
  } catch (err) {
    setPickerStatus("Could not add entry");
  }
}

(function attachPickerEvents() {
  const search = document.getElementById("picker-search");
  if (search) {
    search.addEventListener("input", function () { runPickerSearch(search.value); });
  }
  const modal = document.getElementById("picker-modal");
  if (modal) {
    modal.addEventListener("click", function (e) {
      if (e.target === modal) closePicker();
    });
  }
})();
</script>`
