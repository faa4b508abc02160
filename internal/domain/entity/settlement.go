package entity

import (
	"strings"
	"time"
)

// SettlementScenario tags which checkout case was applied.
type SettlementScenario string

const (
	ScenarioEarly  SettlementScenario = "EARLY"
	ScenarioOnTime SettlementScenario = "ON_TIME"
	ScenarioLate   SettlementScenario = "LATE"
)

// CheckoutSettlement is the final checkout computation. It is a value object;
// the invoice collaborator materializes it into persisted records.
type CheckoutSettlement struct {
	ReservationID   uint
	Scenario        SettlementScenario
	Description     string
	RoomCharge      float64
	ServiceCharge   float64
	Deposit         float64
	LateFee         float64
	EarlyAdjustment float64
	ManualPenalty   float64
	FinalAmount     float64
	Nights          int
	HoursLate       float64
	CheckoutTime    time.Time
}

// ServiceUsageStatus tracks a consumed service request through its life.
type ServiceUsageStatus string

const (
	ServicePending    ServiceUsageStatus = "PENDING"
	ServiceAssigned   ServiceUsageStatus = "ASSIGNED"
	ServiceInProgress ServiceUsageStatus = "IN_PROGRESS"
	ServiceCompleted  ServiceUsageStatus = "COMPLETED"
	ServiceCancelled  ServiceUsageStatus = "CANCELLED"
)

// NormalizeServiceUsageStatus maps raw status strings onto the closed enum.
// Unknown values come back as-is so the caller can reject them.
func NormalizeServiceUsageStatus(raw string) ServiceUsageStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	switch s {
	case "PENDING":
		return ServicePending
	case "ASSIGNED":
		return ServiceAssigned
	case "IN_PROGRESS", "INPROGRESS":
		return ServiceInProgress
	case "COMPLETED":
		return ServiceCompleted
	case "CANCELLED", "CANCELED":
		return ServiceCancelled
	}
	return ServiceUsageStatus(s)
}

// Billable reports whether the service counts toward the checkout total.
// Pending/Assigned requests are cancelled at checkout instead of billed.
func (s ServiceUsageStatus) Billable() bool {
	return s == ServiceCompleted || s == ServiceInProgress
}

// ServiceUsage is one consumed service line on a reservation.
type ServiceUsage struct {
	ID            uint
	ReservationID uint
	ServiceName   string
	UnitPrice     float64
	Quantity      int
	Status        ServiceUsageStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Amount is the billable line total.
func (s *ServiceUsage) Amount() float64 {
	return s.UnitPrice * float64(s.Quantity)
}
