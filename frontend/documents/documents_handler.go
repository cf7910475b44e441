package documents

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"stockroom/inventory"
)

// MovementDocumentPDFHandler serves GET /documents/{docNo}.pdf.
func MovementDocumentPDFHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docNo := strings.TrimSuffix(chi.URLParam(r, "docNo"), ".pdf")
		if docNo == "" {
			http.Error(w, "document number is required", http.StatusBadRequest)
			return
		}

		doc, err := backend.MovementDoc(r.Context(), docNo)
		if err != nil {
			if errors.Is(err, inventory.ErrNotFound) {
				http.Error(w, "document not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to load document", http.StatusInternalServerError)
			return
		}

		pdfBytes, err := renderMovementPDF(docNo, doc, time.Now())
		if err != nil {
			http.Error(w, "failed to render document", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="`+docNo+`.pdf"`)
		_, _ = w.Write(pdfBytes)
	}
}
