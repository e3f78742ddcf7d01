package domain

// Product prices are stored in minor units (cents).
type Product struct {
	ID           int64
	Barcode      string
	Name         string
	PriceCents   int64
	CategoryID   int64
	CategoryName string
	Stock        int32

	// TrackInventory marks Stock as authoritative. When false the stock
	// count is informational only and never gates a sale.
	TrackInventory bool
}

type Category struct {
	ID   int64
	Name string
}

// StockStats summarizes inventory-tracked products for the dashboard.
type StockStats struct {
	TotalProducts int64
	Tracked       int64
	LowStock      int64
	CriticalStock int64
	OutOfStock    int64
}
