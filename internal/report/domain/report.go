package domain

import "time"

// MethodShare is one payment method's slice of a day's revenue.
type MethodShare struct {
	Method     string
	SaleCount  int64
	TotalCents int64
	Share      float64
}

// ProductQty aggregates one product across sale payloads.
type ProductQty struct {
	ProductID  int64
	Name       string
	Quantity   int64
	TotalCents int64
}

// ZReport is the end-of-day cut for a single business date.
type ZReport struct {
	Date         time.Time
	SaleCount    int64
	TotalCents   int64
	AverageCents int64
	Methods      []MethodShare
	TopProducts  []ProductQty
}

type CashierRow struct {
	OperatorID   int64
	SaleCount    int64
	TotalCents   int64
	AverageCents int64
}

type Period struct {
	From       time.Time
	To         time.Time
	SaleCount  int64
	TotalCents int64
}

// Comparative sets a period against the equally long period before it.
type Comparative struct {
	Current       Period
	Previous      Period
	CountDeltaPct float64
	TotalDeltaPct float64
}

type DayTotal struct {
	Date       time.Time
	SaleCount  int64
	TotalCents int64
}

type Trends struct {
	Days              []DayTotal
	TotalCents        int64
	DailyAverageCents int64
	BestDay           DayTotal
}
