// Package localstore implements the inventory backend on the local
// sqlite document store. Stock mutation happens read-modify-write
// inside one write transaction, and document numbers come from the
// doc_counters table so callers never pre-compute them.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"stockroom/infrastructure/audit"
	"stockroom/infrastructure/metrics"
	"stockroom/infrastructure/sqlite"
	"stockroom/inventory"
	"stockroom/models"
)

const purchaseType = "PURCHASE"

type Backend struct {
	db    *sqlite.DB
	audit *audit.Service
}

func New(db *sqlite.DB, auditSvc *audit.Service) *Backend {
	return &Backend{db: db, audit: auditSvc}
}

var _ inventory.Backend = (*Backend)(nil)

func (b *Backend) Lookups(ctx context.Context) (inventory.Lookups, error) {
	out := inventory.Lookups{}
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		mats := make([]inventory.MaterialRow, 0)
		if err := tx.NewRaw(`SELECT name, stock, min FROM materials ORDER BY name COLLATE NOCASE ASC`).Scan(ctx, &mats); err != nil {
			return err
		}
		entries := make([]inventory.Entry, 0, len(mats))
		for _, m := range mats {
			entries = append(entries, inventory.Entry{Name: m.Name, Stock: m.Stock, HasStock: true})
		}
		out[inventory.CategoryMaterials] = entries

		for table, cat := range map[string]inventory.Category{
			"projects":    inventory.CategoryProjects,
			"contractors": inventory.CategoryContractors,
			"requesters":  inventory.CategoryRequesters,
		} {
			names := make([]string, 0)
			if err := tx.NewRaw(fmt.Sprintf(`SELECT name FROM %s ORDER BY name COLLATE NOCASE ASC`, table)).Scan(ctx, &names); err != nil {
				return err
			}
			list := make([]inventory.Entry, 0, len(names))
			for _, n := range names {
				list = append(list, inventory.Entry{Name: n})
			}
			out[cat] = list
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Backend) Materials(ctx context.Context) ([]inventory.MaterialRow, error) {
	rows := make([]inventory.MaterialRow, 0)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT name, stock, min FROM materials ORDER BY name COLLATE NOCASE ASC`).Scan(ctx, &rows)
	})
	return rows, err
}

func (b *Backend) CurrentStock(ctx context.Context, material string) (inventory.StockLevel, error) {
	var level inventory.StockLevel
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewRaw(`SELECT stock, min FROM materials WHERE name = ?`, material).Scan(ctx, &level)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("material %q: %w", material, inventory.ErrNotFound)
		}
		return err
	})
	return level, err
}

func (b *Backend) SubmitMovements(ctx context.Context, batch inventory.MovementBatch) (inventory.SubmitResult, error) {
	if len(batch.Lines) == 0 {
		return inventory.SubmitResult{}, &inventory.RejectedError{Message: "no lines to submit"}
	}

	var docNo string
	err := b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		docNo, err = nextDocNo(ctx, tx, string(batch.Type), string(batch.Type))
		if err != nil {
			return err
		}

		orderID, err := insertOrder(ctx, tx, &models.Order{
			DocNo:      docNo,
			Type:       string(batch.Type),
			Date:       batch.Date,
			Project:    batch.Project,
			Contractor: batch.Contractor,
			Requester:  batch.Requester,
			Note:       batch.Note,
		})
		if err != nil {
			return err
		}

		for _, line := range batch.Lines {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO order_lines (order_id, material, qty) VALUES (?, ?, ?)`,
				orderID, line.Name, line.Qty); err != nil {
				return err
			}
			if err := applyStockDelta(ctx, tx, batch.Type, line); err != nil {
				return err
			}
		}

		if b.audit != nil {
			return b.audit.Write(ctx, tx, "movement.submit", "orders", docNo, nil, batch)
		}
		return nil
	})
	if err != nil {
		return inventory.SubmitResult{}, err
	}
	metrics.Submissions.WithLabelValues(string(batch.Type)).Inc()
	return inventory.SubmitResult{DocNo: docNo}, nil
}

func (b *Backend) SubmitPurchase(ctx context.Context, req inventory.PurchaseRequest) (inventory.SubmitResult, error) {
	if len(req.Lines) == 0 {
		return inventory.SubmitResult{}, &inventory.RejectedError{Message: "no lines to submit"}
	}

	var docNo string
	err := b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		docNo, err = nextDocNo(ctx, tx, purchaseType, "PR")
		if err != nil {
			return err
		}

		orderID, err := insertOrder(ctx, tx, &models.Order{
			DocNo:      docNo,
			Type:       purchaseType,
			Date:       req.Date,
			NeedBy:     req.NeedBy,
			Priority:   req.Priority,
			Project:    req.Project,
			Contractor: req.Contractor,
			Requester:  req.Requester,
			Note:       req.Note,
			Status:     string(inventory.StatusRequested),
		})
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO order_lines (order_id, material, qty) VALUES (?, ?, ?)`,
				orderID, line.Name, line.Qty); err != nil {
				return err
			}
		}

		if b.audit != nil {
			return b.audit.Write(ctx, tx, "purchase.submit", "orders", docNo, nil, req)
		}
		return nil
	})
	if err != nil {
		return inventory.SubmitResult{}, err
	}
	metrics.Submissions.WithLabelValues(purchaseType).Inc()
	return inventory.SubmitResult{DocNo: docNo}, nil
}

func (b *Backend) SetPurchaseStatus(ctx context.Context, docNo string, status inventory.PurchaseStatus) error {
	return b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var current string
		err := tx.NewRaw(`SELECT status FROM orders WHERE doc_no = ? AND type = ?`, docNo, purchaseType).Scan(ctx, &current)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("purchase %s: %w", docNo, inventory.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if !inventory.CanTransition(inventory.PurchaseStatus(current), status) {
			return &inventory.RejectedError{Message: fmt.Sprintf("cannot move %s from %s to %s", docNo, current, status)}
		}
		if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE doc_no = ?`, string(status), docNo); err != nil {
			return err
		}
		if b.audit != nil {
			return b.audit.Write(ctx, tx, "purchase.status", "orders", docNo,
				map[string]string{"status": current}, map[string]string{"status": string(status)})
		}
		return nil
	})
}

func (b *Backend) MovementReport(ctx context.Context, filter inventory.ReportFilter) ([]inventory.MovementRow, error) {
	rows := make([]inventory.MovementRow, 0)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var sb strings.Builder
		sb.WriteString(`
SELECT o.doc_no, o.date, o.type, ol.material, ol.qty, o.project, o.contractor, o.requester
FROM orders o
JOIN order_lines ol ON ol.order_id = o.id
WHERE o.type IN ('IN', 'OUT', 'ADJUST')`)
		args := make([]any, 0, 5)
		if filter.From != "" {
			sb.WriteString(" AND o.date >= ?")
			args = append(args, filter.From)
		}
		if filter.To != "" {
			sb.WriteString(" AND o.date <= ?")
			args = append(args, filter.To)
		}
		if filter.Material != "" {
			sb.WriteString(" AND ol.material = ?")
			args = append(args, filter.Material)
		}
		if filter.Type != "" {
			sb.WriteString(" AND o.type = ?")
			args = append(args, string(filter.Type))
		}
		if filter.Project != "" {
			sb.WriteString(" AND o.project = ?")
			args = append(args, filter.Project)
		}
		sb.WriteString(" ORDER BY o.date ASC, o.doc_no ASC, ol.id ASC")
		return tx.NewRaw(sb.String(), args...).Scan(ctx, &rows)
	})
	return rows, err
}

func (b *Backend) PurchaseSummaries(ctx context.Context) ([]inventory.PurchaseSummary, error) {
	rows := make([]inventory.PurchaseSummary, 0)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT o.doc_no, o.date, o.need_by, o.priority, o.project, o.contractor, o.requester, o.status,
       (SELECT COUNT(1) FROM order_lines ol WHERE ol.order_id = o.id) AS line_count
FROM orders o
WHERE o.type = ?
ORDER BY o.id DESC`, purchaseType).Scan(ctx, &rows)
	})
	return rows, err
}

func (b *Backend) PurchaseLines(ctx context.Context, docNo string) ([]inventory.LineItem, error) {
	return b.docLines(ctx, docNo, purchaseType)
}

// PurchasePipeline counts purchase documents per status, in lifecycle
// order. Statuses with no documents are omitted.
func (b *Backend) PurchasePipeline(ctx context.Context) ([]inventory.StatusCount, error) {
	rows := make([]inventory.StatusCount, 0)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT status, COUNT(1) AS docs
FROM orders
WHERE type = ?
GROUP BY status
ORDER BY CASE status
  WHEN 'Requested' THEN 0
  WHEN 'Approved' THEN 1
  WHEN 'Ordered' THEN 2
  WHEN 'Received' THEN 3
  ELSE 4
END`, purchaseType).Scan(ctx, &rows)
	})
	return rows, err
}

func (b *Backend) MovementDoc(ctx context.Context, docNo string) (inventory.MovementBatch, error) {
	var doc inventory.MovementBatch
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var head struct {
			Type       string `bun:"type"`
			Date       string `bun:"date"`
			Project    string `bun:"project"`
			Contractor string `bun:"contractor"`
			Requester  string `bun:"requester"`
			Note       string `bun:"note"`
		}
		err := tx.NewRaw(`
SELECT type, date, project, contractor, requester, note
FROM orders WHERE doc_no = ? AND type IN ('IN', 'OUT', 'ADJUST')`, docNo).Scan(ctx, &head)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("movement %s: %w", docNo, inventory.ErrNotFound)
		}
		if err != nil {
			return err
		}
		doc = inventory.MovementBatch{
			Type:       inventory.MovementType(head.Type),
			Date:       head.Date,
			Project:    head.Project,
			Contractor: head.Contractor,
			Requester:  head.Requester,
			Note:       head.Note,
		}
		lines := make([]inventory.LineItem, 0)
		if err := tx.NewRaw(`
SELECT ol.material AS name, ol.qty
FROM order_lines ol JOIN orders o ON o.id = ol.order_id
WHERE o.doc_no = ? ORDER BY ol.id ASC`, docNo).Scan(ctx, &lines); err != nil {
			return err
		}
		doc.Lines = lines
		return nil
	})
	return doc, err
}

func (b *Backend) docLines(ctx context.Context, docNo, docType string) ([]inventory.LineItem, error) {
	lines := make([]inventory.LineItem, 0)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT ol.material AS name, ol.qty
FROM order_lines ol
JOIN orders o ON o.id = ol.order_id
WHERE o.doc_no = ? AND o.type = ?
ORDER BY ol.id ASC`, docNo, docType).Scan(ctx, &lines)
	})
	return lines, err
}

func (b *Backend) AddEntry(ctx context.Context, category inventory.Category, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &inventory.RejectedError{Message: "name is required"}
	}
	table, err := categoryTable(category)
	if err != nil {
		return err
	}
	return b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var exists int
		if err := tx.NewRaw(fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE name = ?`, table), name).Scan(ctx, &exists); err != nil {
			return err
		}
		if exists > 0 {
			return &inventory.RejectedError{Message: fmt.Sprintf("%q already exists", name)}
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, table), name); err != nil {
			return err
		}
		if b.audit != nil {
			return b.audit.Write(ctx, tx, "master.add", table, name, nil, map[string]string{"name": name})
		}
		return nil
	})
}

func (b *Backend) DeleteEntry(ctx context.Context, category inventory.Category, name string) error {
	table, err := categoryTable(category)
	if err != nil {
		return err
	}
	return b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE name = ?`, table), name)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return fmt.Errorf("%s %q: %w", category, name, inventory.ErrNotFound)
		}
		if b.audit != nil {
			return b.audit.Write(ctx, tx, "master.delete", table, name, map[string]string{"name": name}, nil)
		}
		return nil
	})
}

func (b *Backend) SetMaterialLevels(ctx context.Context, name string, level inventory.StockLevel) error {
	return b.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE materials SET stock = ?, min = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?`,
			level.Stock, level.Min, name)
		if err != nil {
			return err
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			return fmt.Errorf("material %q: %w", name, inventory.ErrNotFound)
		}
		if b.audit != nil {
			return b.audit.Write(ctx, tx, "material.levels", "materials", name, nil, level)
		}
		return nil
	})
}

func (b *Backend) LowStock(ctx context.Context, limit int) ([]inventory.MaterialRow, error) {
	rows := make([]inventory.MaterialRow, 0)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT name, stock, min FROM materials
WHERE stock <= min * 2
ORDER BY (stock - min) ASC, name COLLATE NOCASE ASC
LIMIT ?`, limit).Scan(ctx, &rows)
	})
	return rows, err
}

func (b *Backend) TopContractors(ctx context.Context, days, limit int) ([]inventory.ContractorStat, error) {
	rows := make([]inventory.ContractorStat, 0)
	cutoff := sinceDate(days)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT contractor AS name, COUNT(1) AS moves
FROM orders
WHERE type = 'OUT' AND contractor != '' AND date >= ?
GROUP BY contractor
ORDER BY moves DESC, name COLLATE NOCASE ASC
LIMIT ?`, cutoff, limit).Scan(ctx, &rows)
	})
	return rows, err
}

func (b *Backend) TopItems(ctx context.Context, days, limit int) ([]inventory.ItemStat, error) {
	rows := make([]inventory.ItemStat, 0)
	cutoff := sinceDate(days)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT ol.material AS name, SUM(ol.qty) AS qty
FROM order_lines ol
JOIN orders o ON o.id = ol.order_id
WHERE o.type = 'OUT' AND o.date >= ?
GROUP BY ol.material
ORDER BY SUM(ol.qty) DESC, name COLLATE NOCASE ASC
LIMIT ?`, cutoff, limit).Scan(ctx, &rows)
	})
	return rows, err
}

func (b *Backend) RecentMovements(ctx context.Context, limit int) ([]inventory.MovementRow, error) {
	rows := make([]inventory.MovementRow, 0)
	err := b.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT o.doc_no, o.date, o.type, ol.material, ol.qty, o.project, o.contractor, o.requester
FROM orders o
JOIN order_lines ol ON ol.order_id = o.id
WHERE o.type IN ('IN', 'OUT', 'ADJUST')
ORDER BY o.id DESC, ol.id ASC
LIMIT ?`, limit).Scan(ctx, &rows)
	})
	return rows, err
}

// nextDocNo reserves the next sequence for docType and formats it with
// the given prefix, e.g. OUT-000123.
func nextDocNo(ctx context.Context, tx bun.Tx, docType, prefix string) (string, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO doc_counters (doc_type, next_seq) VALUES (?, 1) ON CONFLICT(doc_type) DO NOTHING`, docType); err != nil {
		return "", err
	}
	var seq int64
	if err := tx.NewRaw(`SELECT next_seq FROM doc_counters WHERE doc_type = ?`, docType).Scan(ctx, &seq); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE doc_counters SET next_seq = next_seq + 1 WHERE doc_type = ?`, docType); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, seq), nil
}

func insertOrder(ctx context.Context, tx bun.Tx, order *models.Order) (int64, error) {
	res, err := tx.ExecContext(ctx, `
INSERT INTO orders (doc_no, type, date, need_by, priority, project, contractor, requester, note, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.DocNo, order.Type, order.Date, order.NeedBy, order.Priority,
		order.Project, order.Contractor, order.Requester, order.Note, order.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// applyStockDelta mutates the material balance for one movement line.
// IN adds, OUT subtracts, ADJUST applies the signed quantity as-is.
// Unknown materials are created with a zero balance first, matching
// the sheet backend which appends rows on first sight. Balances may
// go negative; flagging that is the low-stock view's job.
func applyStockDelta(ctx context.Context, tx bun.Tx, mt inventory.MovementType, line inventory.LineItem) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO materials (name, stock, min) VALUES (?, 0, 0) ON CONFLICT(name) DO NOTHING`, line.Name); err != nil {
		return err
	}

	delta := line.Qty
	if mt == inventory.MovementOut {
		delta = line.Qty.Neg()
	}
	if delta.Equal(decimal.Zero) {
		return nil
	}

	var current decimal.Decimal
	if err := tx.NewRaw(`SELECT stock FROM materials WHERE name = ?`, line.Name).Scan(ctx, &current); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE materials SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?`,
		current.Add(delta), line.Name)
	return err
}

func categoryTable(category inventory.Category) (string, error) {
	switch category {
	case inventory.CategoryMaterials:
		return "materials", nil
	case inventory.CategoryProjects:
		return "projects", nil
	case inventory.CategoryContractors:
		return "contractors", nil
	case inventory.CategoryRequesters:
		return "requesters", nil
	}
	return "", fmt.Errorf("unknown lookup category %q", category)
}

func sinceDate(days int) string {
	if days <= 0 {
		days = 30
	}
	return time.Now().AddDate(0, 0, -days).Format("2006-01-02")
}
