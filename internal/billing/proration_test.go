package billing

import (
	"math"
	"testing"
	"time"
)

func TestComputeFirstInvoice(t *testing.T) {
	tests := []struct {
		name              string
		admissionDate     time.Time
		monthlyTotal      int64
		wantDaysInMonth   int
		wantRemainingDays int
		wantDailyRate     float64
		wantPartial       int64
		wantDeposit       int64
		wantTotal         int64
	}{
		{
			name:              "admission on first day of leap February",
			admissionDate:     date(2024, time.February, 1),
			monthlyTotal:      2900000,
			wantDaysInMonth:   29,
			wantRemainingDays: 29,
			wantDailyRate:     100000,
			wantPartial:       2900000,
			wantDeposit:       2900000,
			wantTotal:         5800000,
		},
		{
			name:              "admission on last day of a 31-day month",
			admissionDate:     date(2024, time.January, 31),
			monthlyTotal:      3100000,
			wantDaysInMonth:   31,
			wantRemainingDays: 1,
			wantDailyRate:     100000,
			wantPartial:       100000,
			wantDeposit:       3100000,
			wantTotal:         3200000,
		},
		{
			name:              "non-leap February",
			admissionDate:     date(2023, time.February, 15),
			monthlyTotal:      2800000,
			wantDaysInMonth:   28,
			wantRemainingDays: 14,
			wantDailyRate:     100000,
			wantPartial:       1400000,
			wantDeposit:       2800000,
			wantTotal:         4200000,
		},
		{
			name:              "mid-month admission rounds half up",
			admissionDate:     date(2024, time.April, 20),
			monthlyTotal:      1000001,
			wantDaysInMonth:   30,
			wantRemainingDays: 11,
			wantDailyRate:     1000001.0 / 30.0,
			// 11 * 1000001 / 30 = 366667.03...
			wantPartial: 366667,
			wantDeposit: 1000001,
			wantTotal:   1366668,
		},
		{
			name:              "zero monthly total",
			admissionDate:     date(2024, time.March, 10),
			monthlyTotal:      0,
			wantDaysInMonth:   31,
			wantRemainingDays: 22,
			wantDailyRate:     0,
			wantPartial:       0,
			wantDeposit:       0,
			wantTotal:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFirstInvoice(tt.admissionDate, tt.monthlyTotal)

			if got.DaysInMonth != tt.wantDaysInMonth {
				t.Errorf("DaysInMonth = %d, want %d", got.DaysInMonth, tt.wantDaysInMonth)
			}
			if got.RemainingDays != tt.wantRemainingDays {
				t.Errorf("RemainingDays = %d, want %d", got.RemainingDays, tt.wantRemainingDays)
			}
			if math.Abs(got.DailyRate-tt.wantDailyRate) > 0.0001 {
				t.Errorf("DailyRate = %v, want %v", got.DailyRate, tt.wantDailyRate)
			}
			if got.PartialMonthAmount != tt.wantPartial {
				t.Errorf("PartialMonthAmount = %d, want %d", got.PartialMonthAmount, tt.wantPartial)
			}
			if got.DepositAmount != tt.wantDeposit {
				t.Errorf("DepositAmount = %d, want %d", got.DepositAmount, tt.wantDeposit)
			}
			if got.TotalAmount != tt.wantTotal {
				t.Errorf("TotalAmount = %d, want %d", got.TotalAmount, tt.wantTotal)
			}
		})
	}
}

func TestComputeFirstInvoiceDueDate(t *testing.T) {
	admission := time.Date(2024, time.February, 1, 10, 15, 0, 0, time.Local)
	got := ComputeFirstInvoice(admission, 2900000)

	want := time.Date(2024, time.February, 1, 23, 59, 0, 0, time.Local)
	if !got.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", got.DueDate, want)
	}
}

func TestComputeFirstInvoiceGuarantees(t *testing.T) {
	// remainingDays stays within [1, daysInMonth] and totals stay non-negative
	// across every day of a sample year
	for month := time.January; month <= time.December; month++ {
		lastDay := time.Date(2024, month+1, 0, 0, 0, 0, 0, time.Local).Day()
		for day := 1; day <= lastDay; day++ {
			inv := ComputeFirstInvoice(date(2024, month, day), 3000000)
			if inv.RemainingDays < 1 || inv.RemainingDays > inv.DaysInMonth {
				t.Fatalf("%v-%d: RemainingDays %d out of [1, %d]", month, day, inv.RemainingDays, inv.DaysInMonth)
			}
			if inv.TotalAmount < 0 {
				t.Fatalf("%v-%d: negative TotalAmount %d", month, day, inv.TotalAmount)
			}
			if inv.TotalAmount != inv.PartialMonthAmount+inv.DepositAmount {
				t.Fatalf("%v-%d: total %d != partial %d + deposit %d", month, day, inv.TotalAmount, inv.PartialMonthAmount, inv.DepositAmount)
			}
		}
	}
}
