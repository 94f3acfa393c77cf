package billing

import (
	"math"
	"time"
)

// FirstInvoice holds the prorated figures for a resident's first bill:
// the partial charge for the remainder of the admission month plus a
// deposit of one full month.
type FirstInvoice struct {
	PartialMonthAmount int64     `json:"partial_month_amount"`
	DepositAmount      int64     `json:"deposit_amount"`
	TotalAmount        int64     `json:"total_amount"`
	DueDate            time.Time `json:"due_date"`
	DaysInMonth        int       `json:"days_in_month"`
	RemainingDays      int       `json:"remaining_days"`
	DailyRate          float64   `json:"daily_rate"`
}

// ComputeFirstInvoice prorates the first invoice at admission time. The
// admission day itself is charged, so remainingDays is inclusive of it. The
// daily rate uses the actual number of days in the admission month and stays
// unrounded until the final amount, which rounds half up. The invoice is due
// at the close of the admission day (23:59 local).
//
// Callers must validate inputs; negative totals and zero dates are a
// contract violation, not handled here.
func ComputeFirstInvoice(admissionDate time.Time, monthlyTotal int64) FirstInvoice {
	year, month, day := admissionDate.Date()
	loc := admissionDate.Location()

	// day 0 of the next month is the last day of this one
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	remainingDays := daysInMonth - day + 1

	dailyRate := float64(monthlyTotal) / float64(daysInMonth)
	partial := int64(math.Floor(dailyRate*float64(remainingDays) + 0.5))

	return FirstInvoice{
		PartialMonthAmount: partial,
		DepositAmount:      monthlyTotal,
		TotalAmount:        partial + monthlyTotal,
		DueDate:            time.Date(year, month, day, 23, 59, 0, 0, loc),
		DaysInMonth:        daysInMonth,
		RemainingDays:      remainingDays,
		DailyRate:          dailyRate,
	}
}
