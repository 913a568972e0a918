package httpapi

import (
	"time"

	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
)

type sparepartDTO struct {
	ID        int64     `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Unit      string    `json:"unit"`
	RackLoc   string    `json:"rackLoc,omitempty"`
	MinStock  int64     `json:"minStock"`
	StockQty  int64     `json:"stockQty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSparepartDTO(s sparepart.Sparepart) sparepartDTO {
	return sparepartDTO{
		ID:        s.ID,
		SKU:       s.SKU,
		Name:      s.Name,
		Category:  s.Category,
		Unit:      s.Unit,
		RackLoc:   s.RackLoc,
		MinStock:  s.MinStock,
		StockQty:  s.StockQty,
		IsActive:  s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type createSparepartReq struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
	RackLoc  string `json:"rackLoc"`
	MinStock int64  `json:"minStock"`
	StockQty int64  `json:"stockQty"`
}

type updateSparepartReq struct {
	SKU      *string `json:"sku"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Unit     *string `json:"unit"`
	RackLoc  *string `json:"rackLoc"`
	MinStock *int64  `json:"minStock"`
	StockQty *int64  `json:"stockQty"`
	IsActive *bool   `json:"isActive"`
}

type createMovementReq struct {
	SparepartID int64  `json:"sparepartId"`
	Type        string `json:"type"`
	Qty         int64  `json:"qty"`
	Note        string `json:"note"`
}

type movementDTO struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Qty       int64     `json:"qty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Sparepart struct {
		SKU      string `json:"sku"`
		Name     string `json:"name"`
		Category string `json:"category,omitempty"`
	} `json:"sparepart"`
	CreatedBy struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"createdBy"`
}

func toMovementDTO(e movement.Entry) movementDTO {
	var d movementDTO
	d.ID = e.ID
	d.Type = string(e.Type)
	d.Qty = e.Qty
	d.Note = e.Note
	d.CreatedAt = e.CreatedAt
	d.Sparepart.SKU = e.SparepartSKU
	d.Sparepart.Name = e.SparepartName
	d.Sparepart.Category = e.SparepartCategory
	d.CreatedBy.Username = e.CreatedByUsername
	d.CreatedBy.Name = e.CreatedByName
	return d
}

type summaryDTO struct {
	Date            string `json:"date"`
	TotalSpareparts int64  `json:"totalSpareparts"`
	CriticalCount   int64  `json:"criticalCount"`
	InQty           int64  `json:"inQtyToday"`
	OutQty          int64  `json:"outQtyToday"`
}
