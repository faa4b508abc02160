package entity

import "time"

// BookingEventType classifies the financial/audit events this service emits.
type BookingEventType string

const (
	EventDepositPaid BookingEventType = "DEPOSIT_PAID"
	EventSettlement  BookingEventType = "SETTLEMENT"
	EventHoldReaped  BookingEventType = "HOLD_REAPED"
)

// BookingEvent is an archived record of a financial-relevant state change.
// The invoice collaborator consumes these to materialize invoices.
type BookingEvent struct {
	ID            string                 `bson:"_id,omitempty"`
	Type          BookingEventType       `bson:"type"`
	ReservationID uint                   `bson:"reservationId"`
	Code          string                 `bson:"code,omitempty"`
	Amount        float64                `bson:"amount"`
	PaymentMethod string                 `bson:"paymentMethod,omitempty"`
	Detail        map[string]interface{} `bson:"detail,omitempty"`
	CreatedAt     time.Time              `bson:"createdAt"`
}
