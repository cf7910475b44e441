package html

import (
	"context"
	stdhtml "html"
	"io"

	"github.com/a-h/templ"
)

// Flash carries the PRG status/error message a page shows as a toast.
type Flash struct {
	Status string
	Error  string
}

type navTab struct {
	Label string
	Path  string
	Key   string
}

var navTabs = []navTab{
	{Label: "Dashboard", Path: "/app/dashboard", Key: "dashboard"},
	{Label: "Stock In", Path: "/app/in", Key: "in"},
	{Label: "Stock Out", Path: "/app/out", Key: "out"},
	{Label: "Adjust", Path: "/app/adjust", Key: "adjust"},
	{Label: "Purchase", Path: "/app/purchase", Key: "purchase"},
	{Label: "Report", Path: "/app/report", Key: "report"},
	{Label: "Settings", Path: "/app/settings", Key: "settings"},
	{Label: "Help", Path: "/app/help", Key: "help"},
}

// Layout wraps a page body in the app chrome: head, tab nav, toast.
func Layout(title, active string, flash Flash, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, stdhtml.EscapeString(title)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</title><link rel="stylesheet" href="/assets/app.css"></head><body><header class="topnav"><span class="brand">Stockroom</span><nav>`); err != nil {
			return err
		}
		for _, tab := range navTabs {
			cls := "tab"
			if tab.Key == active {
				cls = "tab active"
			}
			if _, err := io.WriteString(w, `<a class="`+cls+`" href="`+tab.Path+`">`+stdhtml.EscapeString(tab.Label)+`</a>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav></header><main class="page">`); err != nil {
			return err
		}
		if err := renderToast(w, flash); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>`+toastScript+`</body></html>`)
		return err
	})
}

func renderToast(w io.Writer, flash Flash) error {
	if flash.Error != "" {
		_, err := io.WriteString(w, `<div class="toast toast-error" id="toast">`+stdhtml.EscapeString(flash.Error)+`</div>`)
		return err
	}
	if flash.Status != "" {
		_, err := io.WriteString(w, `<div class="toast toast-ok" id="toast">`+stdhtml.EscapeString(flash.Status)+`</div>`)
		return err
	}
	return nil
}

const toastScript = `<script>
(function () {
  var toast = document.getElementById("toast");
  if (!toast) return;
  setTimeout(function () { toast.classList.add("fade"); }, 4000);
})();
</script>`
