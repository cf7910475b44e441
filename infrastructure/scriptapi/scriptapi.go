// Package scriptapi implements the inventory backend against the
// remote spreadsheet script endpoint. Each operation is one named
// call through the gateway client; this package only maps payloads
// and results, all transport policy lives in the gateway.
package scriptapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stockroom/infrastructure/gateway"
	"stockroom/inventory"
)

type Backend struct {
	client *gateway.Client
}

func New(client *gateway.Client) *Backend {
	return &Backend{client: client}
}

var _ inventory.Backend = (*Backend)(nil)

func (b *Backend) Lookups(ctx context.Context) (inventory.Lookups, error) {
	var (
		materials             []inventory.MaterialRow
		projects, contr, reqs []string
	)

	// All four lists in parallel; any failure aborts the whole fetch
	// so the caller never swaps in a partial set.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		materials, err = b.Materials(gctx)
		return err
	})
	g.Go(func() error {
		return b.readInto(gctx, "listProjects", nil, &projects)
	})
	g.Go(func() error {
		return b.readInto(gctx, "listContractors", nil, &contr)
	})
	g.Go(func() error {
		return b.readInto(gctx, "listRequesters", nil, &reqs)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := inventory.Lookups{
		inventory.CategoryMaterials:   materialEntries(materials),
		inventory.CategoryProjects:    nameEntries(projects),
		inventory.CategoryContractors: nameEntries(contr),
		inventory.CategoryRequesters:  nameEntries(reqs),
	}
	return out, nil
}

func (b *Backend) Materials(ctx context.Context) ([]inventory.MaterialRow, error) {
	var rows []inventory.MaterialRow
	if err := b.readInto(ctx, "listMaterials", nil, &rows); err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	return rows, nil
}

func (b *Backend) CurrentStock(ctx context.Context, material string) (inventory.StockLevel, error) {
	var level inventory.StockLevel
	err := b.readInto(ctx, "getCurrentStock", map[string]string{"name": material}, &level)
	return level, err
}

func (b *Backend) SubmitMovements(ctx context.Context, batch inventory.MovementBatch) (inventory.SubmitResult, error) {
	return b.submit(ctx, "submitMovementBulk", batch)
}

func (b *Backend) SubmitPurchase(ctx context.Context, req inventory.PurchaseRequest) (inventory.SubmitResult, error) {
	return b.submit(ctx, "submitPurchaseRequest", req)
}

func (b *Backend) submit(ctx context.Context, op string, payload any) (inventory.SubmitResult, error) {
	raw, err := b.client.Write(ctx, op, payload)
	if err != nil {
		return inventory.SubmitResult{}, err
	}
	var res inventory.SubmitResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return inventory.SubmitResult{}, fmt.Errorf("decode %s result: %w", op, err)
	}
	return res, nil
}

func (b *Backend) SetPurchaseStatus(ctx context.Context, docNo string, status inventory.PurchaseStatus) error {
	_, err := b.client.Write(ctx, "pur_SetStatus", map[string]string{
		"docNo":  docNo,
		"status": string(status),
	})
	return err
}

func (b *Backend) MovementReport(ctx context.Context, filter inventory.ReportFilter) ([]inventory.MovementRow, error) {
	payload := map[string]string{
		"from":     filter.From,
		"to":       filter.To,
		"material": filter.Material,
		"type":     string(filter.Type),
		"project":  filter.Project,
	}
	var rows []inventory.MovementRow
	err := b.readInto(ctx, "getMovementReport", payload, &rows)
	return rows, err
}

func (b *Backend) PurchaseSummaries(ctx context.Context) ([]inventory.PurchaseSummary, error) {
	var rows []inventory.PurchaseSummary
	err := b.readInto(ctx, "pur_History", nil, &rows)
	return rows, err
}

func (b *Backend) PurchaseLines(ctx context.Context, docNo string) ([]inventory.LineItem, error) {
	var lines []inventory.LineItem
	err := b.readInto(ctx, "pur_DocLines", map[string]string{"docNo": docNo}, &lines)
	return lines, err
}

func (b *Backend) PurchasePipeline(ctx context.Context) ([]inventory.StatusCount, error) {
	var rows []inventory.StatusCount
	err := b.readInto(ctx, "pur_Summary", nil, &rows)
	return rows, err
}

func (b *Backend) MovementDoc(ctx context.Context, docNo string) (inventory.MovementBatch, error) {
	var doc inventory.MovementBatch
	err := b.readInto(ctx, "getMovementDoc", map[string]string{"docNo": docNo}, &doc)
	return doc, err
}

func (b *Backend) AddEntry(ctx context.Context, category inventory.Category, name string) error {
	_, err := b.client.Write(ctx, "addMasterEntry", map[string]string{
		"category": string(category),
		"name":     name,
	})
	return err
}

func (b *Backend) DeleteEntry(ctx context.Context, category inventory.Category, name string) error {
	_, err := b.client.Write(ctx, "deleteMasterEntry", map[string]string{
		"category": string(category),
		"name":     name,
	})
	return err
}

func (b *Backend) SetMaterialLevels(ctx context.Context, name string, level inventory.StockLevel) error {
	_, err := b.client.Write(ctx, "setMaterialLevels", map[string]any{
		"name":  name,
		"stock": level.Stock,
		"min":   level.Min,
	})
	return err
}

func (b *Backend) LowStock(ctx context.Context, limit int) ([]inventory.MaterialRow, error) {
	var rows []inventory.MaterialRow
	err := b.readInto(ctx, "dash_LowStock", map[string]int{"limit": limit}, &rows)
	return rows, err
}

func (b *Backend) TopContractors(ctx context.Context, days, limit int) ([]inventory.ContractorStat, error) {
	var rows []inventory.ContractorStat
	err := b.readInto(ctx, "dash_TopContractors", map[string]int{"days": days, "limit": limit}, &rows)
	return rows, err
}

func (b *Backend) TopItems(ctx context.Context, days, limit int) ([]inventory.ItemStat, error) {
	var rows []inventory.ItemStat
	err := b.readInto(ctx, "dash_TopItems", map[string]int{"days": days, "limit": limit}, &rows)
	return rows, err
}

func (b *Backend) RecentMovements(ctx context.Context, limit int) ([]inventory.MovementRow, error) {
	var rows []inventory.MovementRow
	err := b.readInto(ctx, "dash_Recent", map[string]int{"limit": limit}, &rows)
	return rows, err
}

func (b *Backend) readInto(ctx context.Context, op string, payload, out any) error {
	raw, err := b.client.Read(ctx, op, payload)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s result: %w", op, err)
	}
	return nil
}

func materialEntries(rows []inventory.MaterialRow) []inventory.Entry {
	entries := make([]inventory.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, inventory.Entry{Name: r.Name, Stock: r.Stock, HasStock: true})
	}
	return entries
}

func nameEntries(names []string) []inventory.Entry {
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	entries := make([]inventory.Entry, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		entries = append(entries, inventory.Entry{Name: n})
	}
	return entries
}
