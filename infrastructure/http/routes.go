package http

import (
	"stockroom/frontend/dashboard"
	"stockroom/frontend/documents"
	"stockroom/frontend/help"
	"stockroom/frontend/lookup"
	"stockroom/frontend/movements"
	"stockroom/frontend/purchase"
	"stockroom/frontend/report"
	"stockroom/frontend/settings"

	"github.com/go-chi/chi/v5"
)

// RegisterFrontendRoutes registers the application routes under /app.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	r.Get("/dashboard", dashboard.DashboardPageQueryHandler(s.Backend))

	for _, tab := range movements.Tabs {
		r.Get("/"+tab.Key, movements.MovementPageQueryHandler(tab))
		r.Post("/"+tab.Key, movements.SubmitMovementCommandHandler(s.Backend, tab))
	}

	r.Get("/purchase", purchase.PurchasePageQueryHandler(s.Backend))
	r.Post("/purchase", purchase.SubmitPurchaseCommandHandler(s.Backend))
	r.Post("/purchase/{docNo}/status", purchase.PurchaseStatusCommandHandler(s.Backend))

	r.Get("/report", report.ReportPageQueryHandler(s.Backend))
	r.Get("/report/export.xlsx", report.ReportExportXLSXHandler(s.Backend))

	r.Get("/documents/{docNo}.pdf", documents.MovementDocumentPDFHandler(s.Backend))

	r.Get("/help", help.HelpPageQueryHandler())

	s.RegisterSettingsRoutes(r)
	s.RegisterAPIRoutes(r)
	return r
}

// RegisterSettingsRoutes registers master-data maintenance routes.
func (s *Server) RegisterSettingsRoutes(r chi.Router) {
	r.Get("/settings", settings.SettingsPageQueryHandler(s.Backend, s.Lookups))
	r.Post("/settings/materials/levels", settings.UpdateMaterialLevelsCommandHandler(s.Backend, s.Lookups))
	r.Post("/settings/materials/import", settings.ImportMaterialsCommandHandler(s.Backend, s.Lookups))
	r.Post("/settings/{category}", settings.AddEntryCommandHandler(s.Backend, s.Lookups))
	r.Post("/settings/{category}/delete", settings.DeleteEntryCommandHandler(s.Backend, s.Lookups))
}

// RegisterAPIRoutes registers the JSON endpoints used by the picker
// modal and the line editor.
func (s *Server) RegisterAPIRoutes(r chi.Router) {
	r.Get("/api/picker/{category}", lookup.PickerSearchHandler(s.Lookups))
	r.Post("/api/picker/{category}", lookup.PickerAddHandler(s.Backend, s.Lookups))
	r.Get("/api/stock", movements.StockLevelQueryHandler(s.Backend))
	r.Get("/api/purchase/{docNo}/lines", purchase.PurchaseLinesQueryHandler(s.Backend))
}
