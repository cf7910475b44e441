package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Material is the item master, with current and minimum stock.
type Material struct {
	bun.BaseModel `bun:"table:materials,alias:m"`

	ID        int64           `bun:"id,pk,autoincrement"`
	Name      string          `bun:"name,unique,notnull"`
	Stock     decimal.Decimal `bun:"stock,notnull,default:0"`
	Min       decimal.Decimal `bun:"min,notnull,default:0"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp"`
}

// Project is a cost target movements and purchases may reference.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:pj"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,unique,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Contractor is an external party stock is issued to.
type Contractor struct {
	bun.BaseModel `bun:"table:contractors,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,unique,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Requester is the person asking for a movement or purchase.
type Requester struct {
	bun.BaseModel `bun:"table:requesters,alias:rq"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,unique,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Order is a movement (IN/OUT/ADJUST) or purchase request document.
// DocNo is assigned from doc_counters at insert time; callers never
// pre-compute it.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID         int64     `bun:"id,pk,autoincrement"`
	DocNo      string    `bun:"doc_no,unique,notnull"`
	Type       string    `bun:"type,notnull"`
	Date       string    `bun:"date,notnull"`
	NeedBy     string    `bun:"need_by"`
	Priority   string    `bun:"priority"`
	Project    string    `bun:"project"`
	Contractor string    `bun:"contractor"`
	Requester  string    `bun:"requester"`
	Note       string    `bun:"note"`
	Status     string    `bun:"status"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// OrderLine is one (material, quantity) pair of an order document.
type OrderLine struct {
	bun.BaseModel `bun:"table:order_lines,alias:ol"`

	ID       int64           `bun:"id,pk,autoincrement"`
	OrderID  int64           `bun:"order_id,notnull"`
	Material string          `bun:"material,notnull"`
	Qty      decimal.Decimal `bun:"qty,notnull"`
}

// AuditLog captures immutable change history for key operations.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Action     string    `bun:"action,notnull"`
	EntityType string    `bun:"entity_type,notnull"`
	EntityID   string    `bun:"entity_id,notnull"`
	BeforeJSON string    `bun:"before_json"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
