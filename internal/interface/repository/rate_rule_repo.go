package repository

import (
	"context"
	"errors"
	"time"

	"roomcast-service/internal/domain/entity"
	"roomcast-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormRateRuleRepository implements the RateRuleRepository interface
type GormRateRuleRepository struct {
	db *gorm.DB
}

// NewGormRateRuleRepository creates a new GORM rate rule repository
func NewGormRateRuleRepository(db *gorm.DB) repository.RateRuleRepository {
	return &GormRateRuleRepository{
		db: db,
	}
}

// RateAdjustmentRules GORM model for database mapping
type RateAdjustmentRules struct {
	gorm.Model
	Name      string    `gorm:"column:name"`
	StartDate time.Time `gorm:"column:start_date;index"`
	EndDate   time.Time `gorm:"column:end_date;index"`
	Kind      string    `gorm:"column:kind"`
	Value     float64   `gorm:"column:value"`
}

// TableName overrides the default table name
func (RateAdjustmentRules) TableName() string {
	return "rate_adjustment_rules"
}

// Create inserts a new rule
func (r *GormRateRuleRepository) Create(ctx context.Context, rule *entity.RateAdjustmentRule) error {
	model := toRuleModel(rule)
	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	rule.ID = model.ID
	rule.CreatedAt = model.CreatedAt
	rule.UpdatedAt = model.UpdatedAt
	return nil
}

// Update replaces an existing rule
func (r *GormRateRuleRepository) Update(ctx context.Context, rule *entity.RateAdjustmentRule) error {
	result := r.db.WithContext(ctx).Model(&RateAdjustmentRules{}).
		Where("id = ?", rule.ID).
		Updates(map[string]interface{}{
			"name":       rule.Name,
			"start_date": rule.StartDate,
			"end_date":   rule.EndDate,
			"kind":       string(rule.Kind),
			"value":      rule.Value,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes a rule
func (r *GormRateRuleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&RateAdjustmentRules{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// FindByID loads a rule
func (r *GormRateRuleRepository) FindByID(ctx context.Context, id uint) (*entity.RateAdjustmentRule, error) {
	var model RateAdjustmentRules
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, result.Error
	}
	return toRuleEntity(&model), nil
}

// FindAll returns every rule
func (r *GormRateRuleRepository) FindAll(ctx context.Context) ([]*entity.RateAdjustmentRule, error) {
	var models []RateAdjustmentRules
	result := r.db.WithContext(ctx).Order("start_date").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entities := make([]*entity.RateAdjustmentRule, 0, len(models))
	for i := range models {
		entities = append(entities, toRuleEntity(&models[i]))
	}
	return entities, nil
}

// FindIntersecting returns rules whose inclusive range shares any day with
// [start, end], excluding excludeID (0 excludes nothing).
func (r *GormRateRuleRepository) FindIntersecting(ctx context.Context, start, end time.Time, excludeID uint) ([]*entity.RateAdjustmentRule, error) {
	query := r.db.WithContext(ctx).Model(&RateAdjustmentRules{}).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var models []RateAdjustmentRules
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.RateAdjustmentRule, 0, len(models))
	for i := range models {
		entities = append(entities, toRuleEntity(&models[i]))
	}
	return entities, nil
}

// FindCovering returns the rule containing date, or nil when none does
func (r *GormRateRuleRepository) FindCovering(ctx context.Context, date time.Time) (*entity.RateAdjustmentRule, error) {
	var model RateAdjustmentRules
	result := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", date, date).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return toRuleEntity(&model), nil
}

// Convert to domain entities
func toRuleEntity(model *RateAdjustmentRules) *entity.RateAdjustmentRule {
	return &entity.RateAdjustmentRule{
		ID:        model.ID,
		Name:      model.Name,
		StartDate: model.StartDate,
		EndDate:   model.EndDate,
		Kind:      entity.RateAdjustmentKind(model.Kind),
		Value:     model.Value,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toRuleModel(rule *entity.RateAdjustmentRule) RateAdjustmentRules {
	return RateAdjustmentRules{
		Name:      rule.Name,
		StartDate: rule.StartDate,
		EndDate:   rule.EndDate,
		Kind:      string(rule.Kind),
		Value:     rule.Value,
	}
}
