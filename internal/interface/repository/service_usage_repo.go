package repository

import (
	"context"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormServiceUsageRepository implements the ServiceUsageRepository interface
type GormServiceUsageRepository struct {
	db *gorm.DB
}

// NewGormServiceUsageRepository creates a new GORM service usage repository
func NewGormServiceUsageRepository(db *gorm.DB) repository.ServiceUsageRepository {
	return &GormServiceUsageRepository{
		db: db,
	}
}

// ServiceUsages GORM model for database mapping
type ServiceUsages struct {
	gorm.Model
	ReservationID uint    `gorm:"column:reservation_id;index"`
	ServiceName   string  `gorm:"column:service_name"`
	UnitPrice     float64 `gorm:"column:unit_price"`
	Quantity      int     `gorm:"column:quantity"`
	Status        string  `gorm:"column:status"`
}

// TableName overrides the default table name
func (ServiceUsages) TableName() string {
	return "service_usages"
}

// FindByReservation returns every service line on a reservation
func (r *GormServiceUsageRepository) FindByReservation(ctx context.Context, reservationID uint) ([]*entity.ServiceUsage, error) {
	var models []ServiceUsages
	result := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.ServiceUsage, 0, len(models))
	for i := range models {
		entities = append(entities, &entity.ServiceUsage{
			ID:            models[i].ID,
			ReservationID: models[i].ReservationID,
			ServiceName:   models[i].ServiceName,
			UnitPrice:     models[i].UnitPrice,
			Quantity:      models[i].Quantity,
			Status:        entity.NormalizeServiceUsageStatus(models[i].Status),
			CreatedAt:     models[i].CreatedAt,
			UpdatedAt:     models[i].UpdatedAt,
		})
	}
	return entities, nil
}

// CancelOpen moves all still Pending/Assigned requests to Cancelled
func (r *GormServiceUsageRepository) CancelOpen(ctx context.Context, reservationID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&ServiceUsages{}).
		Where("reservation_id = ?", reservationID).
		Where("status IN ?", []string{
			string(entity.ServicePending),
			string(entity.ServiceAssigned),
		}).
		Update("status", string(entity.ServiceCancelled))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
