package domain

import "time"

// SaleLine is one entry of the sold-items snapshot. The JSON form is the
// opaque payload persisted with the sale and decoded only for reporting.
type SaleLine struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	PriceCents     int64  `json:"price_cents"`
	Quantity       int32  `json:"quantity"`
	TrackInventory bool   `json:"track_inventory"`
}

func (l SaleLine) SubtotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// Payment is the confirmed attempt settled with the sale.
type Payment struct {
	Method        string
	TenderedCents int64
	ChangeCents   int64
	Reference     string
}

// Sale is immutable once created; nothing in the system updates or deletes
// sale rows.
type Sale struct {
	ID            int64
	CreatedAt     time.Time
	TotalCents    int64
	OperatorID    int64
	Lines         []SaleLine
	TenderedCents int64
	ChangeCents   int64
	Method        string
	Reference     string
}
