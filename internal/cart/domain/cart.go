package domain

// LineItem snapshots name, price and the inventory flag at add-time. The
// quantity is always >= 1; dropping below 1 removes the line instead.
type LineItem struct {
	ProductID      int64
	Name           string
	PriceCents     int64
	Quantity       int32
	TrackInventory bool
}

func (li LineItem) SubtotalCents() int64 {
	return li.PriceCents * int64(li.Quantity)
}

// Cart is the in-progress, unpersisted collection of line items for one
// checkout. Insertion order is preserved for display.
type Cart struct {
	Items []LineItem
}

func (c Cart) TotalCents() int64 {
	var total int64
	for _, li := range c.Items {
		total += li.SubtotalCents()
	}
	return total
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
