package templates

import (
	"fmt"

	"roomcast-service/internal/domain/repository"
)

// ConfirmationMessage renders the guest-facing text for a confirmed
// reservation.
func ConfirmationMessage(notice *repository.ConfirmationNotice) string {
	room := notice.RoomNumber
	if room == "" {
		room = "to be assigned at reception"
	}

	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your reservation %s is confirmed.\n\n"+
			"Room: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Total: %.0f\n"+
			"Deposit received: %.0f\n\n"+
			"The remaining balance is settled at checkout. We look forward to welcoming you.",
		notice.Contact.Name,
		notice.Code,
		room,
		notice.Checkin,
		notice.Checkout,
		notice.Total,
		notice.Deposit,
	)
}
