package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketType is the department a ticket belongs to.
type TicketType string

const (
	TicketTypeHR TicketType = "HR"
	TicketTypeIT TicketType = "IT"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusForwardedToManager TicketStatus = "FORWARDED_TO_MANAGER"
	TicketStatusForwardedToHR      TicketStatus = "FORWARDED_TO_HR"
	TicketStatusForwardedToIT      TicketStatus = "FORWARDED_TO_IT"
	TicketStatusResolved           TicketStatus = "RESOLVED"
	TicketStatusRejected           TicketStatus = "REJECTED"
	TicketStatusClosed             TicketStatus = "CLOSED"
)

// HRSubtype enumerates HR request categories.
type HRSubtype string

const (
	HRLeaveBalance        HRSubtype = "LEAVE_BALANCE"
	HRLeavePolicy         HRSubtype = "LEAVE_POLICY"
	HRPayroll             HRSubtype = "PAYROLL"
	HRPF                  HRSubtype = "PF"
	HRKekaIssues          HRSubtype = "KEKA_ISSUES"
	HRSodexoFoodCoupons   HRSubtype = "SODEXO_FOOD_COUPONS"
	HRHealthInsurance     HRSubtype = "HEALTH_INSURANCE"
	HRAnyFormOfLetter     HRSubtype = "ANY_FORM_OF_LETTER"
	HRReferralApplication HRSubtype = "REFERRAL_APPLICATION"
	HRCoursePurchase      HRSubtype = "COURSE_PURCHASE"
	HRBankAccountIssue    HRSubtype = "BANK_ACCOUNT_ISSUE"
)

// ITSubtype enumerates IT request categories.
type ITSubtype string

const (
	ITLaptopBootup            ITSubtype = "LAPTOP_BOOTUP"
	ITLaptopChargerNotWorking ITSubtype = "LAPTOP_CHARGER_NOT_WORKING"
	ITLaptopBatteryLife       ITSubtype = "LAPTOP_BATTERY_LIFE"
	ITAddRAM                  ITSubtype = "ADD_RAM"
	ITNewMonitor              ITSubtype = "NEW_MONITOR"
	ITNewKeyboard             ITSubtype = "NEW_KEYBOARD"
	ITNewMouse                ITSubtype = "NEW_MOUSE"
	ITMobilePhoneIssue        ITSubtype = "MOBILE_PHONE_ISSUE"
	ITMobileDataCableIssue    ITSubtype = "MOBILE_DATA_CABLE_ISSUE"
	ITHardDiskFailure         ITSubtype = "HARD_DISK_FAILURE"
)

// hrSubtypes maps each HR subtype to whether it needs manager approval.
var hrSubtypes = map[HRSubtype]bool{
	HRLeaveBalance:        false,
	HRLeavePolicy:         false,
	HRPayroll:             false,
	HRPF:                  false,
	HRKekaIssues:          false,
	HRSodexoFoodCoupons:   false,
	HRHealthInsurance:     false,
	HRAnyFormOfLetter:     true,
	HRReferralApplication: true,
	HRCoursePurchase:      true,
	HRBankAccountIssue:    false,
}

// itSubtypes maps each IT subtype to whether it needs manager approval.
var itSubtypes = map[ITSubtype]bool{
	ITLaptopBootup:            false,
	ITLaptopChargerNotWorking: false,
	ITLaptopBatteryLife:       false,
	ITAddRAM:                  true,
	ITNewMonitor:              true,
	ITNewKeyboard:             false,
	ITNewMouse:                false,
	ITMobilePhoneIssue:        false,
	ITMobileDataCableIssue:    false,
	ITHardDiskFailure:         false,
}

// Ticket is a unit of employee-raised work routed through manager, HR or IT.
type Ticket struct {
	ID               string
	Title            string
	Description      string
	Type             TicketType
	HRSubtype        *HRSubtype
	ITSubtype        *ITSubtype
	Status           TicketStatus
	RequiresApproval bool
	Remarks          *string
	Rating           *int
	CreatedByID      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Subtype returns the populated subtype as a plain string.
func (t *Ticket) Subtype() string {
	switch {
	case t.HRSubtype != nil:
		return string(*t.HRSubtype)
	case t.ITSubtype != nil:
		return string(*t.ITSubtype)
	}
	return ""
}

// TicketClassification is the normalized (type, subtype) pair of a new ticket.
type TicketClassification struct {
	Type      TicketType
	HRSubtype *HRSubtype
	ITSubtype *ITSubtype
}

// ParseClassification validates a raw type/subtype pair. Matching is
// case-insensitive; exactly the subtype belonging to the type may be set.
func ParseClassification(ticketType, hrSubtype, itSubtype string) (TicketClassification, error) {
	tt := TicketType(strings.ToUpper(strings.TrimSpace(ticketType)))
	hr := strings.ToUpper(strings.TrimSpace(hrSubtype))
	it := strings.ToUpper(strings.TrimSpace(itSubtype))

	switch tt {
	case TicketTypeHR:
		if it != "" {
			return TicketClassification{}, fmt.Errorf("itType must be empty for HR tickets")
		}
		sub := HRSubtype(hr)
		if _, ok := hrSubtypes[sub]; !ok {
			return TicketClassification{}, fmt.Errorf("hrType %q is not a valid HR ticket type", hrSubtype)
		}
		return TicketClassification{Type: tt, HRSubtype: &sub}, nil
	case TicketTypeIT:
		if hr != "" {
			return TicketClassification{}, fmt.Errorf("hrType must be empty for IT tickets")
		}
		sub := ITSubtype(it)
		if _, ok := itSubtypes[sub]; !ok {
			return TicketClassification{}, fmt.Errorf("itType %q is not a valid IT ticket type", itSubtype)
		}
		return TicketClassification{Type: tt, ITSubtype: &sub}, nil
	default:
		return TicketClassification{}, fmt.Errorf("ticketType must be one of: HR, IT")
	}
}

// RequiresManagerApproval reports whether the subtype sits in the
// approval-required subset of its type.
func RequiresManagerApproval(c TicketClassification) bool {
	switch c.Type {
	case TicketTypeHR:
		return c.HRSubtype != nil && hrSubtypes[*c.HRSubtype]
	case TicketTypeIT:
		return c.ITSubtype != nil && itSubtypes[*c.ITSubtype]
	}
	return false
}

// DepartmentQueue is the status a ticket waits in once it reaches its department.
func DepartmentQueue(t TicketType) TicketStatus {
	if t == TicketTypeHR {
		return TicketStatusForwardedToHR
	}
	return TicketStatusForwardedToIT
}

// RoutingStatus is the queue for a ticket entering (or re-entering) the workflow.
func RoutingStatus(t TicketType, requiresApproval bool) TicketStatus {
	if requiresApproval {
		return TicketStatusForwardedToManager
	}
	return DepartmentQueue(t)
}

// RouteNewTicket decides requiresApproval and the initial status. Managers
// bypass approval regardless of subtype.
func RouteNewTicket(c TicketClassification, creatorIsManager bool) (bool, TicketStatus) {
	requiresApproval := !creatorIsManager && RequiresManagerApproval(c)
	return requiresApproval, RoutingStatus(c.Type, requiresApproval)
}

// TicketTypeForRole maps an HR or IT staff role to the department it serves.
func TicketTypeForRole(role UserRole) (TicketType, bool) {
	switch role {
	case UserRoleHR:
		return TicketTypeHR, true
	case UserRoleIT:
		return TicketTypeIT, true
	}
	return "", false
}
