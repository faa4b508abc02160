package repository

import (
	"context"
	"errors"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormReservationRepository implements the ReservationRepository interface
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GORM reservation repository
func NewGormReservationRepository(db *gorm.DB) repository.ReservationRepository {
	return &GormReservationRepository{
		db: db,
	}
}

// Reservations GORM model for database mapping
type Reservations struct {
	gorm.Model
	Code       string    `gorm:"column:code;uniqueIndex"`
	CustomerID uint      `gorm:"column:customer_id;index"`
	RoomTypeID uint      `gorm:"column:room_type_id"`
	GuestName  string    `gorm:"column:guest_name"`
	GuestPhone string    `gorm:"column:guest_phone"`
	GuestEmail string    `gorm:"column:guest_email"`
	Checkin    time.Time `gorm:"column:checkin"`
	Checkout   time.Time `gorm:"column:checkout"`
	Adults     int       `gorm:"column:adults"`
	Children   int       `gorm:"column:children"`
	Deposit    float64   `gorm:"column:deposit"`
	PaymentRef string    `gorm:"column:payment_ref"`
	Status     string    `gorm:"column:status;index"`
}

// TableName overrides the default table name
func (Reservations) TableName() string {
	return "reservations"
}

// RoomAssignments GORM model for database mapping
type RoomAssignments struct {
	gorm.Model
	ReservationID  uint       `gorm:"column:reservation_id;index"`
	RoomID         uint       `gorm:"column:room_id;index"`
	Status         string     `gorm:"column:status"`
	ActualCheckin  *time.Time `gorm:"column:actual_checkin"`
	ActualCheckout *time.Time `gorm:"column:actual_checkout"`
	GuestList      string     `gorm:"column:guest_list"`
}

// TableName overrides the default table name
func (RoomAssignments) TableName() string {
	return "room_assignments"
}

// errSkipNotPending signals inside a transaction that the guarded row was no
// longer Pending; it never escapes the repository.
var errSkipNotPending = errors.New("reservation no longer pending")

// CreateHold re-checks the room/date overlap and inserts the reservation plus
// its assignment in one transaction, so the check and the insert cannot be
// interleaved by a competing hold that commits in between.
func (r *GormReservationRepository) CreateHold(ctx context.Context, reservation *entity.Reservation, assignment *entity.RoomAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicts int64
		err := tx.Model(&Reservations{}).
			Joins("JOIN room_assignments ON room_assignments.reservation_id = reservations.id AND room_assignments.deleted_at IS NULL").
			Where("room_assignments.room_id = ?", assignment.RoomID).
			Where("reservations.checkin < ? AND reservations.checkout > ?", reservation.Checkout, reservation.Checkin).
			Where("reservations.status IN ?", statusStrings(entity.ConflictStatuses())).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return entity.ErrRoomUnavailable
		}

		model := Reservations{
			Code:       reservation.Code,
			CustomerID: reservation.CustomerID,
			RoomTypeID: reservation.RoomTypeID,
			GuestName:  reservation.Contact.Name,
			GuestPhone: reservation.Contact.Phone,
			GuestEmail: reservation.Contact.Email,
			Checkin:    reservation.Checkin,
			Checkout:   reservation.Checkout,
			Adults:     reservation.Adults,
			Children:   reservation.Children,
			Status:     string(reservation.Status),
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		assignmentModel := RoomAssignments{
			ReservationID: model.ID,
			RoomID:        assignment.RoomID,
			Status:        string(assignment.Status),
		}
		if err := tx.Create(&assignmentModel).Error; err != nil {
			return err
		}

		reservation.ID = model.ID
		reservation.CreatedAt = model.CreatedAt
		reservation.UpdatedAt = model.UpdatedAt
		assignment.ID = assignmentModel.ID
		assignment.ReservationID = model.ID
		assignment.CreatedAt = assignmentModel.CreatedAt
		assignment.UpdatedAt = assignmentModel.UpdatedAt
		return nil
	})
}

// FindByID loads a reservation
func (r *GormReservationRepository) FindByID(ctx context.Context, id uint) (*entity.Reservation, error) {
	var model Reservations
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}
	return toReservationEntity(&model), nil
}

// FindAssignment loads the room assignment of a reservation
func (r *GormReservationRepository) FindAssignment(ctx context.Context, reservationID uint) (*entity.RoomAssignment, error) {
	var model RoomAssignments
	result := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}
	return toAssignmentEntity(&model), nil
}

// FindOverlapping returns reservations on the room whose half-open planned
// interval overlaps [checkin, checkout).
func (r *GormReservationRepository) FindOverlapping(ctx context.Context, roomID uint, checkin, checkout time.Time, statuses []entity.ReservationStatus) ([]*entity.Reservation, error) {
	var models []Reservations
	result := r.db.WithContext(ctx).Model(&Reservations{}).
		Joins("JOIN room_assignments ON room_assignments.reservation_id = reservations.id AND room_assignments.deleted_at IS NULL").
		Where("room_assignments.room_id = ?", roomID).
		Where("reservations.checkin < ? AND reservations.checkout > ?", checkout, checkin).
		Where("reservations.status IN ?", statusStrings(statuses)).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.Reservation, 0, len(models))
	for i := range models {
		entities = append(entities, toReservationEntity(&models[i]))
	}
	return entities, nil
}

// Confirm persists the contact snapshot, payment ref and deposit and moves
// both records to Confirmed. Guarded on Pending.
func (r *GormReservationRepository) Confirm(ctx context.Context, reservation *entity.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Reservations{}).
			Where("id = ? AND status = ?", reservation.ID, string(entity.StatusPending)).
			Updates(map[string]interface{}{
				"status":      string(entity.StatusConfirmed),
				"guest_name":  reservation.Contact.Name,
				"guest_phone": reservation.Contact.Phone,
				"guest_email": reservation.Contact.Email,
				"payment_ref": reservation.PaymentRef,
				"deposit":     reservation.Deposit,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.classifyGuardMiss(tx, reservation.ID, entity.ErrNotPending)
		}

		if err := tx.Model(&RoomAssignments{}).
			Where("reservation_id = ?", reservation.ID).
			Update("status", string(entity.AssignmentConfirmed)).Error; err != nil {
			return err
		}

		reservation.Status = entity.StatusConfirmed
		return nil
	})
}

// CheckIn stamps the actual check-in time, reassigns the room when reception
// picked a different one, and moves both records to CheckedIn. Guarded on
// Confirmed.
func (r *GormReservationRepository) CheckIn(ctx context.Context, reservationID, roomID uint, actualCheckin time.Time, guestList string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Reservations{}).
			Where("id = ? AND status = ?", reservationID, string(entity.StatusConfirmed)).
			Update("status", string(entity.StatusCheckedIn))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.classifyGuardMiss(tx, reservationID, entity.ErrNotConfirmed)
		}

		return tx.Model(&RoomAssignments{}).
			Where("reservation_id = ?", reservationID).
			Updates(map[string]interface{}{
				"status":         string(entity.AssignmentCheckedIn),
				"room_id":        roomID,
				"actual_checkin": actualCheckin,
				"guest_list":     guestList,
			}).Error
	})
}

// CheckOut stamps the actual checkout time and moves both records to
// CheckedOut. Guarded on CheckedIn.
func (r *GormReservationRepository) CheckOut(ctx context.Context, reservationID uint, actualCheckout time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Reservations{}).
			Where("id = ? AND status = ?", reservationID, string(entity.StatusCheckedIn)).
			Update("status", string(entity.StatusCheckedOut))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.classifyGuardMiss(tx, reservationID, entity.ErrNotCheckedIn)
		}

		return tx.Model(&RoomAssignments{}).
			Where("reservation_id = ?", reservationID).
			Updates(map[string]interface{}{
				"status":          string(entity.AssignmentCheckedOut),
				"actual_checkout": actualCheckout,
			}).Error
	})
}

// Cancel moves both records to Cancelled. Guarded on Pending/Confirmed.
func (r *GormReservationRepository) Cancel(ctx context.Context, reservationID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Reservations{}).
			Where("id = ? AND status IN ?", reservationID, []string{
				string(entity.StatusPending),
				string(entity.StatusConfirmed),
			}).
			Update("status", string(entity.StatusCancelled))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.classifyGuardMiss(tx, reservationID, entity.ErrInvalidStateForCancellation)
		}

		return tx.Model(&RoomAssignments{}).
			Where("reservation_id = ?", reservationID).
			Update("status", string(entity.AssignmentCancelled)).Error
	})
}

// DeleteIfPending hard-deletes the reservation and its assignment, but only
// if the status is still Pending inside the deleting transaction. Returns
// false when the row was already gone or had moved on.
func (r *GormReservationRepository) DeleteIfPending(ctx context.Context, reservationID uint) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().
			Where("id = ? AND status = ?", reservationID, string(entity.StatusPending)).
			Delete(&Reservations{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errSkipNotPending
		}

		return tx.Unscoped().
			Where("reservation_id = ?", reservationID).
			Delete(&RoomAssignments{}).Error
	})
	if errors.Is(err, errSkipNotPending) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindExpiredPending returns Pending reservations created before cutoff.
func (r *GormReservationRepository) FindExpiredPending(ctx context.Context, cutoff time.Time) ([]*entity.Reservation, error) {
	var models []Reservations
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.StatusPending)).
		Where("created_at < ?", cutoff).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.Reservation, 0, len(models))
	for i := range models {
		entities = append(entities, toReservationEntity(&models[i]))
	}
	return entities, nil
}

// classifyGuardMiss distinguishes a missing row from a stale status when a
// guarded update touched nothing.
func (r *GormReservationRepository) classifyGuardMiss(tx *gorm.DB, reservationID uint, stale error) error {
	var count int64
	if err := tx.Model(&Reservations{}).Where("id = ?", reservationID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return entity.ErrNotFound
	}
	return stale
}

func statusStrings(statuses []entity.ReservationStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// Convert to domain entities
func toReservationEntity(model *Reservations) *entity.Reservation {
	return &entity.Reservation{
		ID:         model.ID,
		Code:       model.Code,
		CustomerID: model.CustomerID,
		RoomTypeID: model.RoomTypeID,
		Contact: entity.GuestContact{
			Name:  model.GuestName,
			Phone: model.GuestPhone,
			Email: model.GuestEmail,
		},
		Checkin:    model.Checkin,
		Checkout:   model.Checkout,
		Adults:     model.Adults,
		Children:   model.Children,
		Deposit:    model.Deposit,
		PaymentRef: model.PaymentRef,
		Status:     entity.NormalizeReservationStatus(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toAssignmentEntity(model *RoomAssignments) *entity.RoomAssignment {
	return &entity.RoomAssignment{
		ID:             model.ID,
		ReservationID:  model.ReservationID,
		RoomID:         model.RoomID,
		Status:         entity.RoomAssignmentStatus(model.Status),
		ActualCheckin:  model.ActualCheckin,
		ActualCheckout: model.ActualCheckout,
		GuestList:      model.GuestList,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
