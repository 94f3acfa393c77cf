package response

// BillingStatisticsResponse represents aggregate billing figures
type BillingStatisticsResponse struct {
	TotalBills    int64 `json:"total_bills" example:"24"`
	TotalPaid     int64 `json:"total_paid" example:"18"`
	TotalPending  int64 `json:"total_pending" example:"4"`
	TotalOverdue  int64 `json:"total_overdue" example:"2"`
	TotalAmount   int64 `json:"total_amount" example:"96000000"`
	UnpaidAmount  int64 `json:"unpaid_amount" example:"19000000"`
	OverdueAmount int64 `json:"overdue_amount" example:"8500000"`
}

// ResidentBillSummaryResponse represents a resident's billing summary row
type ResidentBillSummaryResponse struct {
	ResidentID   uint   `json:"resident_id" example:"12"`
	ResidentName string `json:"resident_name" example:"Nguyen Van An"`
	RoomNumber   string `json:"room_number" example:"203"`
	BillCount    int    `json:"bill_count" example:"6"`
	TotalAmount  int64  `json:"total_amount" example:"57000000"`
	UnpaidCount  int    `json:"unpaid_count" example:"1"`
}

// FirstInvoicePreviewResponse represents a proration preview for an admission
type FirstInvoicePreviewResponse struct {
	PartialMonthAmount int64  `json:"partial_month_amount" example:"2900000"`
	DepositAmount      int64  `json:"deposit_amount" example:"2900000"`
	TotalAmount        int64  `json:"total_amount" example:"5800000"`
	DueDate            string `json:"due_date" example:"2024-02-01T23:59:00+07:00"`
	DaysInMonth        int    `json:"days_in_month" example:"29"`
	RemainingDays      int    `json:"remaining_days" example:"29"`
	DailyRate          float64 `json:"daily_rate" example:"100000"`
}
