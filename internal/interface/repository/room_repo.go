package repository

import (
	"context"
	"errors"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRoomRepository implements the RoomRepository interface
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GORM room repository
func NewGormRoomRepository(db *gorm.DB) repository.RoomRepository {
	return &GormRoomRepository{
		db: db,
	}
}

// Rooms GORM model for database mapping
type Rooms struct {
	gorm.Model
	Number     string `gorm:"column:number"`
	RoomTypeID uint   `gorm:"column:room_type_id;index"`
	Status     string `gorm:"column:status"`
}

// TableName overrides the default table name
func (Rooms) TableName() string {
	return "rooms"
}

// RoomTypes GORM model for database mapping
type RoomTypes struct {
	gorm.Model
	Name        string  `gorm:"column:name"`
	BasePrice   float64 `gorm:"column:base_price"`
	MaxAdults   int     `gorm:"column:max_adults"`
	MaxChildren int     `gorm:"column:max_children"`
	Active      bool    `gorm:"column:active"`
}

// TableName overrides the default table name
func (RoomTypes) TableName() string {
	return "room_types"
}

// FindRoom loads a room
func (r *GormRoomRepository) FindRoom(ctx context.Context, id uint) (*entity.Room, error) {
	var model Rooms
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}
	return toRoomEntity(&model), nil
}

// FindRoomType loads a room type
func (r *GormRoomRepository) FindRoomType(ctx context.Context, id uint) (*entity.RoomType, error) {
	var model RoomTypes
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}
	return &entity.RoomType{
		ID:          model.ID,
		Name:        model.Name,
		BasePrice:   model.BasePrice,
		MaxAdults:   model.MaxAdults,
		MaxChildren: model.MaxChildren,
		Active:      model.Active,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}, nil
}

// FindRoomsByType returns the non-retired rooms of one room type
func (r *GormRoomRepository) FindRoomsByType(ctx context.Context, roomTypeID uint) ([]*entity.Room, error) {
	var models []Rooms
	result := r.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Where("status <> ?", string(entity.RoomUnavailable)).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRoomEntities(models), nil
}

// FindActiveRooms returns every non-retired room
func (r *GormRoomRepository) FindActiveRooms(ctx context.Context) ([]*entity.Room, error) {
	var models []Rooms
	result := r.db.WithContext(ctx).
		Where("status <> ?", string(entity.RoomUnavailable)).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRoomEntities(models), nil
}

// UpdateRoomStatus writes the coarse front-desk status
func (r *GormRoomRepository) UpdateRoomStatus(ctx context.Context, roomID uint, status entity.RoomStatus) error {
	result := r.db.WithContext(ctx).Model(&Rooms{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Convert to domain entities
func toRoomEntity(model *Rooms) *entity.Room {
	return &entity.Room{
		ID:         model.ID,
		Number:     model.Number,
		RoomTypeID: model.RoomTypeID,
		Status:     entity.NormalizeRoomStatus(model.Status),
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toRoomEntities(models []Rooms) []*entity.Room {
	entities := make([]*entity.Room, 0, len(models))
	for i := range models {
		entities = append(entities, toRoomEntity(&models[i]))
	}
	return entities
}
