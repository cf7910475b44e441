package help

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"stockroom/frontend/shared/html"
)

const helpBody = `
<h1>How to use Stockroom</h1>

<div class="panel">
<h2>Recording movements</h2>
<p>Use <strong>Stock In</strong> when goods arrive, <strong>Stock Out</strong> when
they are issued to a contractor, and <strong>Adjust</strong> after a physical count.
Every form works the same way: fill in the header, add one line per material and
press the submit button. A line needs a material name to count; a quantity of
zero is allowed. The submit button stays disabled until at least one line has a
name.</p>
<p>On Stock Out each line shows a colored dot: red means the material is at or
below its minimum, yellow means it is getting close, green means stock is fine.</p>
</div>

<div class="panel">
<h2>Picking names</h2>
<p>Click any name field to open the picker. Type to narrow the list; every word
you type has to appear somewhere in the name, in any order. Contractor and
requester pickers offer an <em>Add</em> button when nothing matches, so new
people can be added on the spot. Materials and projects are maintained under
Settings.</p>
</div>

<div class="panel">
<h2>Purchase requests</h2>
<p>The Purchase tab files a request instead of moving stock. Requests start as
<strong>Requested</strong> and move through Approved, Ordered and Received; a
request can be Cancelled at any point before it is Received. Click a request in
the history list to see its lines and change its status.</p>
</div>

<div class="panel">
<h2>Reports and documents</h2>
<p>The Report tab filters past movements by date, material, project and type,
with totals for in and out. Use <em>Download XLSX</em> to take the result into a
spreadsheet. Every saved movement also has a printable PDF, linked from the
dashboard's recent activity list.</p>
</div>
`

// HelpPage renders the static usage guide.
func HelpPage() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, helpBody)
		return err
	})
	return html.Layout("Help", "", html.Flash{}, body)
}
