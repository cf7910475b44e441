package dashboard

import (
	"log/slog"
	"net/http"

	"stockroom/frontend/shared/html"
	"stockroom/inventory"
)

const (
	lowStockLimit = 10
	recentLimit   = 15
	topDays       = 30
	topLimit      = 5
)

// PageData is the dashboard state. Each panel loads independently; a
// failed panel renders empty rather than failing the page.
type PageData struct {
	LowStock       []inventory.MaterialRow
	Purchases      []inventory.StatusCount
	TopContractors []inventory.ContractorStat
	TopItems       []inventory.ItemStat
	Recent         []inventory.MovementRow
	Flash          html.Flash
}

// DashboardPageQueryHandler renders the summary panels.
func DashboardPageQueryHandler(backend inventory.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		data := PageData{
			Flash: html.Flash{
				Status: r.URL.Query().Get("status"),
				Error:  r.URL.Query().Get("error"),
			},
		}

		var err error
		if data.LowStock, err = backend.LowStock(ctx, lowStockLimit); err != nil {
			slog.Error("dashboard low stock failed", slog.Any("err", err))
		}
		if data.Purchases, err = backend.PurchasePipeline(ctx); err != nil {
			slog.Error("dashboard purchase pipeline failed", slog.Any("err", err))
		}
		if data.TopContractors, err = backend.TopContractors(ctx, topDays, topLimit); err != nil {
			slog.Error("dashboard top contractors failed", slog.Any("err", err))
		}
		if data.TopItems, err = backend.TopItems(ctx, topDays, topLimit); err != nil {
			slog.Error("dashboard top items failed", slog.Any("err", err))
		}
		if data.Recent, err = backend.RecentMovements(ctx, recentLimit); err != nil {
			slog.Error("dashboard recent movements failed", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := DashboardPage(data).Render(ctx, w); err != nil {
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		}
	}
}
