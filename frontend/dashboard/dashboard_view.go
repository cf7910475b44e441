package dashboard

import (
	"context"
	stdhtml "html"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

// DashboardPage renders the summary panels.
func DashboardPage(data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Dashboard</h1><div class="panels">`); err != nil {
			return err
		}
		if err := writeLowStock(w, data.LowStock); err != nil {
			return err
		}
		if err := writePurchases(w, data.Purchases); err != nil {
			return err
		}
		if err := writeTopContractors(w, data.TopContractors); err != nil {
			return err
		}
		if err := writeTopItems(w, data.TopItems); err != nil {
			return err
		}
		if err := writeRecent(w, data.Recent); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
	return html.Layout("Dashboard", "dashboard", data.Flash, body)
}

func writeLowStock(w io.Writer, rows []inventory.MaterialRow) error {
	if _, err := io.WriteString(w, `<section class="panel"><h2>Low Stock</h2>`); err != nil {
		return err
	}
	if len(rows) == 0 {
		return writeEmpty(w, "Nothing running low")
	}
	if _, err := io.WriteString(w, `<ul>`); err != nil {
		return err
	}
	for _, m := range rows {
		level := inventory.BadgeFor(m.Stock, m.Min)
		if _, err := io.WriteString(w, `<li><span class="badge badge-`+string(level)+`">`+m.Stock.String()+`</span> `+
			stdhtml.EscapeString(m.Name)+` (min `+m.Min.String()+`)</li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></section>`)
	return err
}

func writePurchases(w io.Writer, rows []inventory.StatusCount) error {
	if _, err := io.WriteString(w, `<section class="panel"><h2>Purchases</h2>`); err != nil {
		return err
	}
	if len(rows) == 0 {
		return writeEmpty(w, "No purchase requests")
	}
	if _, err := io.WriteString(w, `<ul>`); err != nil {
		return err
	}
	for _, s := range rows {
		if _, err := io.WriteString(w, `<li>`+string(s.Status)+` &middot; `+strconv.Itoa(s.Docs)+`</li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></section>`)
	return err
}

func writeTopContractors(w io.Writer, rows []inventory.ContractorStat) error {
	if _, err := io.WriteString(w, `<section class="panel"><h2>Top Contractors</h2>`); err != nil {
		return err
	}
	if len(rows) == 0 {
		return writeEmpty(w, "No issues recorded")
	}
	if _, err := io.WriteString(w, `<ul>`); err != nil {
		return err
	}
	for _, c := range rows {
		if _, err := io.WriteString(w, `<li>`+stdhtml.EscapeString(c.Name)+` &middot; `+strconv.Itoa(c.Moves)+` issues</li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></section>`)
	return err
}

func writeTopItems(w io.Writer, rows []inventory.ItemStat) error {
	if _, err := io.WriteString(w, `<section class="panel"><h2>Top Items</h2>`); err != nil {
		return err
	}
	if len(rows) == 0 {
		return writeEmpty(w, "No issues recorded")
	}
	if _, err := io.WriteString(w, `<ul>`); err != nil {
		return err
	}
	for _, i := range rows {
		if _, err := io.WriteString(w, `<li>`+stdhtml.EscapeString(i.Name)+` &middot; `+i.Qty.String()+`</li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></section>`)
	return err
}

func writeRecent(w io.Writer, rows []inventory.MovementRow) error {
	if _, err := io.WriteString(w, `<section class="panel panel-wide"><h2>Recent Movements</h2>`); err != nil {
		return err
	}
	if len(rows) == 0 {
		return writeEmpty(w, "No movements yet")
	}
	if _, err := io.WriteString(w, `<ul>`); err != nil {
		return err
	}
	for _, m := range rows {
		if _, err := io.WriteString(w, `<li>`+stdhtml.EscapeString(m.Date)+` `+string(m.Type)+` `+
			stdhtml.EscapeString(m.Material)+` &times; `+m.Qty.String()+
			` <a href="/app/documents/`+stdhtml.EscapeString(m.DocNo)+`.pdf">`+stdhtml.EscapeString(m.DocNo)+`</a></li>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul></section>`)
	return err
}

func writeEmpty(w io.Writer, msg string) error {
	_, err := io.WriteString(w, `<p class="empty">`+msg+`</p></section>`)
	return err
}
