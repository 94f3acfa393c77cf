package billing

import (
	"fmt"
	"time"
)

// UnknownLabel is substituted when no resolver can produce a resident name
// or room label. Downstream display code assumes these fields are never empty.
const UnknownLabel = "Unknown"

// RawBill is a bill record as fetched from storage, before enrichment.
// EmbeddedResidentName and EmbeddedRoomNumber carry whatever partial resident
// data was denormalized onto the bill itself; they are the last resolution
// tier before the Unknown placeholder.
type RawBill struct {
	ID                   uint
	ResidentID           uint
	AssignmentID         *uint
	Amount               int64
	DueDate              time.Time
	CreatedAt            time.Time
	PaidAt               *time.Time
	PaymentMethod        string
	Notes                string
	Items                []RawItem
	EmbeddedResidentName string
	EmbeddedRoomNumber   string
}

// RawItem is a generic line item already attached to a raw bill
type RawItem struct {
	ID          string
	Name        string
	Amount      int64
	Category    string
	Description string
}

// CarePlan is the lookup shape for a care plan
type CarePlan struct {
	ID           uint
	PlanName     string
	MonthlyPrice int64
	Category     string
	Description  string
}

// Assignment is the lookup shape for a care plan assignment. CarePlanIDs
// preserves attachment order. SelectedRoomType is empty when no room was
// selected.
type Assignment struct {
	ResidentID       uint
	CarePlanIDs      []uint
	SelectedRoomType string
}

// Room is the lookup shape for a room type
type Room struct {
	TypeCode     string
	TypeName     string
	MonthlyPrice int64
	Description  string
}

// ResidentInfo is the lookup shape for a resident directory entry
type ResidentInfo struct {
	ID         uint
	FullName   string
	RoomNumber string
}

// ResidentResolver returns directory data for a resident id. Resolvers are
// tried in order; the first non-empty field wins. This makes the fallback
// order (primary directory, then secondary) an explicit contract.
type ResidentResolver func(id uint) (ResidentInfo, bool)

// Lookups carries pre-fetched lookup tables for enrichment. All functions
// must be in-memory; Enrich performs no I/O.
type Lookups struct {
	AssignmentByID    func(id uint) (Assignment, bool)
	PlanByID          func(id uint) (CarePlan, bool)
	RoomByCode        func(code string) (Room, bool)
	ResidentResolvers []ResidentResolver
	Now               time.Time
}

// LineItem is a display-ready bill line item. IDs are synthetic and unique
// within a single bill so UI lists can key on them.
type LineItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Line item categories
const (
	LineItemMain          = "main"
	LineItemSupplementary = "supplementary"
	LineItemRoom          = "room"
)

// EnhancedBill is the denormalized, display-ready copy of a bill. Produced
// fresh on every Enrich call; never mutated afterward.
type EnhancedBill struct {
	ID            uint       `json:"id"`
	ResidentID    uint       `json:"resident_id"`
	Amount        int64      `json:"amount"`
	DueDate       time.Time  `json:"due_date"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Status        Status     `json:"status"`
	ResidentName  string     `json:"resident_name"`
	RoomNumber    string     `json:"room_number"`
	Items         []LineItem `json:"items"`

	// DuplicateMainPlan flags an assignment carrying more than one main plan.
	// The first match was used; callers may log the condition.
	DuplicateMainPlan bool `json:"-"`
}

// Enrich expands a raw bill into a display-ready EnhancedBill. Missing
// related data never fails: every branch degrades to the fallback items or
// placeholder labels, since partial data is normal on this read path.
func Enrich(bill RawBill, lookups Lookups) EnhancedBill {
	enhanced := EnhancedBill{
		ID:            bill.ID,
		ResidentID:    bill.ResidentID,
		Amount:        bill.Amount,
		DueDate:       bill.DueDate,
		CreatedAt:     bill.CreatedAt,
		PaidAt:        bill.PaidAt,
		PaymentMethod: bill.PaymentMethod,
		Notes:         bill.Notes,
		Status:        DeriveStatus(bill.PaidAt, bill.DueDate, lookups.Now),
	}

	enhanced.ResidentName, enhanced.RoomNumber = resolveResident(bill, lookups.ResidentResolvers)

	assignment, ok := resolveAssignment(bill, lookups)
	if ok {
		enhanced.Items, enhanced.DuplicateMainPlan = buildAssignmentItems(assignment, lookups)
	} else {
		enhanced.Items = buildFallbackItems(bill.Items)
	}

	return enhanced
}

func resolveAssignment(bill RawBill, lookups Lookups) (Assignment, bool) {
	if bill.AssignmentID == nil || lookups.AssignmentByID == nil {
		return Assignment{}, false
	}
	return lookups.AssignmentByID(*bill.AssignmentID)
}

// buildAssignmentItems derives line items from an assignment: the single main
// plan, every supplementary plan in attachment order, then the selected room.
func buildAssignmentItems(assignment Assignment, lookups Lookups) ([]LineItem, bool) {
	items := []LineItem{}
	duplicateMain := false
	mainSeen := false

	for _, planID := range assignment.CarePlanIDs {
		if lookups.PlanByID == nil {
			break
		}
		plan, ok := lookups.PlanByID(planID)
		if !ok {
			continue
		}

		switch plan.Category {
		case LineItemMain:
			if mainSeen {
				// should be impossible per business rule; first match wins
				duplicateMain = true
				continue
			}
			mainSeen = true
			items = append(items, LineItem{
				ID:          fmt.Sprintf("main_%d", plan.ID),
				Name:        plan.PlanName,
				Amount:      plan.MonthlyPrice,
				Category:    LineItemMain,
				Description: plan.Description,
			})
		case LineItemSupplementary:
			items = append(items, LineItem{
				ID:          fmt.Sprintf("supp_%d", plan.ID),
				Name:        plan.PlanName,
				Amount:      plan.MonthlyPrice,
				Category:    LineItemSupplementary,
				Description: plan.Description,
			})
		}
	}

	if assignment.SelectedRoomType != "" && lookups.RoomByCode != nil {
		if room, ok := lookups.RoomByCode(assignment.SelectedRoomType); ok {
			items = append(items, LineItem{
				ID:          fmt.Sprintf("room_%s", room.TypeCode),
				Name:        room.TypeName,
				Amount:      room.MonthlyPrice,
				Category:    LineItemRoom,
				Description: room.Description,
			})
		}
	}

	return items, duplicateMain
}

// buildFallbackItems normalizes the bill's own generic items, assigning a
// synthetic id to any item missing one and preserving original order.
func buildFallbackItems(raw []RawItem) []LineItem {
	items := make([]LineItem, 0, len(raw))
	for i, item := range raw {
		id := item.ID
		if id == "" {
			id = fmt.Sprintf("item_%d", i)
		}
		items = append(items, LineItem{
			ID:          id,
			Name:        item.Name,
			Amount:      item.Amount,
			Category:    item.Category,
			Description: item.Description,
		})
	}
	return items
}

// resolveResident walks the resolver chain field by field: the first
// non-empty name wins, same for the room label. The bill's own embedded data
// is the last tier before the Unknown placeholder.
func resolveResident(bill RawBill, resolvers []ResidentResolver) (name string, room string) {
	for _, resolve := range resolvers {
		if resolve == nil {
			continue
		}
		info, ok := resolve(bill.ResidentID)
		if !ok {
			continue
		}
		if name == "" && info.FullName != "" {
			name = info.FullName
		}
		if room == "" && info.RoomNumber != "" {
			room = info.RoomNumber
		}
		if name != "" && room != "" {
			return name, room
		}
	}

	if name == "" {
		name = bill.EmbeddedResidentName
	}
	if room == "" {
		room = bill.EmbeddedRoomNumber
	}
	if name == "" {
		name = UnknownLabel
	}
	if room == "" {
		room = UnknownLabel
	}
	return name, room
}
