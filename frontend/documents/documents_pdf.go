package documents

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"stockroom/inventory"
)

// renderMovementPDF builds a printable A5 movement document: header
// fields, the line table and a Code128 barcode of the document number
// for the warehouse scanner.
func renderMovementPDF(docNo string, doc inventory.MovementBatch, printedAt time.Time) ([]byte, error) {
	barcodePNG, err := renderCode128PNG(docNo, 900, 200)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Movement "+docNo, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, string(doc.Type)+" "+docNo, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Date: "+doc.Date, "", 1, "L", false, 0, "")
	if doc.Project != "" {
		pdf.CellFormat(0, 6, "Project: "+doc.Project, "", 1, "L", false, 0, "")
	}
	if doc.Contractor != "" {
		pdf.CellFormat(0, 6, "Contractor: "+doc.Contractor, "", 1, "L", false, 0, "")
	}
	if doc.Requester != "" {
		pdf.CellFormat(0, 6, "Requester: "+doc.Requester, "", 1, "L", false, 0, "")
	}
	if doc.Note != "" {
		pdf.CellFormat(0, 6, "Note: "+doc.Note, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, "Printed: "+printedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 8, "Material", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Qty", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range doc.Lines {
		pdf.CellFormat(100, 7, line.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, line.Qty.String(), "", 1, "R", false, 0, "")
	}

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("doc-barcode-"+docNo, opt, bytes.NewReader(barcodePNG))
	pageW, pageH := pdf.GetPageSize()
	imgW := 90.0
	imgH := 20.0
	pdf.ImageOptions("doc-barcode-"+docNo, (pageW-imgW)/2, pageH-40, imgW, imgH, false, opt, 0, "")

	pdf.SetY(pageH - 18)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, docNo, "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
