package repository

import (
	"context"
	"time"

	"roomcast-service/internal/domain/entity"
)

// RateRuleRepository stores the date-bounded rate adjustment rules.
type RateRuleRepository interface {
	Create(ctx context.Context, rule *entity.RateAdjustmentRule) error
	Update(ctx context.Context, rule *entity.RateAdjustmentRule) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*entity.RateAdjustmentRule, error)
	FindAll(ctx context.Context) ([]*entity.RateAdjustmentRule, error)

	// FindIntersecting returns rules whose inclusive range shares any day
	// with [start, end], excluding excludeID (0 excludes nothing).
	FindIntersecting(ctx context.Context, start, end time.Time, excludeID uint) ([]*entity.RateAdjustmentRule, error)

	// FindCovering returns the rule containing date, or nil when none does.
	FindCovering(ctx context.Context, date time.Time) (*entity.RateAdjustmentRule, error)
}
