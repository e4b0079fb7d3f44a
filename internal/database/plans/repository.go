// Package plans provides database operations for reading plans.
//
// Day completion and the derived plan progress are written in one
// transaction, so a plan's CurrentDay always agrees with its day flags.
package plans

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/selah/internal/canon"
	"github.com/mrlokans/selah/internal/database"
	"github.com/mrlokans/selah/internal/entities"
	"github.com/mrlokans/selah/internal/planning"
)

var (
	ErrPlanNotFound  = errors.New("reading plan not found")
	ErrDayOutOfRange = errors.New("day out of range")
)

// presetCatalog supplies the plans InitializeDefaultPlans stores.
var presetCatalog = planning.Presets

// Repository handles all reading plan database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

type Option func(*Repository)

// WithClock overrides time.Now for start dates.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a new reading plan repository.
func NewRepository(db *gorm.DB, opts ...Option) *Repository {
	r := &Repository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func orderedDays(db *gorm.DB) *gorm.DB {
	return db.Order("day ASC")
}

// InitializeDefaultPlans stores the preset catalog when no plan exists yet.
// It reports whether anything was created.
func (r *Repository) InitializeDefaultPlans() (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.ReadingPlan{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		chapters := canon.ChapterCounts()
		for _, plan := range presetCatalog() {
			plan := plan
			if err := planning.ValidateCoverage(plan, chapters); err != nil {
				return err
			}
			if err := tx.Create(&plan).Error; err != nil {
				return fmt.Errorf("create %s: %w", plan.ID, err)
			}
		}
		created = true
		return nil
	})
	return created, database.Classify("initialize default plans", err)
}

// CreatePlan stores a user-defined plan under a fresh UUID.
func (r *Repository) CreatePlan(name, description string, days []entities.ReadingPlanDay) (*entities.ReadingPlan, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", entities.ErrInvalidPlan)
	}
	if err := planning.ValidateDays(days); err != nil {
		return nil, err
	}

	plan := entities.ReadingPlan{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		TotalDays:   len(days),
	}
	for _, d := range days {
		plan.Days = append(plan.Days, entities.ReadingPlanDay{
			PlanID:       plan.ID,
			Day:          d.Day,
			BookID:       d.BookID,
			StartChapter: d.StartChapter,
			EndChapter:   d.EndChapter,
		})
	}

	if err := r.db.Create(&plan).Error; err != nil {
		return nil, database.Classify("create plan", err)
	}
	return r.GetPlan(plan.ID)
}

// DeletePlan removes a plan and its days. Missing plans are ignored.
func (r *Repository) DeletePlan(id string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&entities.ReadingPlanDay{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.ReadingPlan{}).Error
	})
	return database.Classify("delete plan "+id, err)
}

// ListPlans returns every plan with its days, ordered by id.
func (r *Repository) ListPlans() ([]entities.ReadingPlan, error) {
	var plans []entities.ReadingPlan
	err := r.db.Preload("Days", orderedDays).Order("id ASC").Find(&plans).Error
	return plans, database.Classify("list plans", err)
}

// GetPlan returns nil when the plan does not exist.
func (r *Repository) GetPlan(id string) (*entities.ReadingPlan, error) {
	plan, err := loadPlan(r.db, id)
	if errors.Is(err, ErrPlanNotFound) {
		return nil, nil
	}
	return plan, err
}

func loadPlan(db *gorm.DB, id string) (*entities.ReadingPlan, error) {
	var plan entities.ReadingPlan
	err := db.Preload("Days", orderedDays).Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, database.Classify("get plan "+id, err)
	}
	return &plan, nil
}

func savePlanState(tx *gorm.DB, plan *entities.ReadingPlan) error {
	return tx.Model(&entities.ReadingPlan{}).Where("id = ?", plan.ID).Updates(map[string]any{
		"current_day": plan.CurrentDay,
		"start_date":  plan.StartDate,
		"completed":   plan.Completed,
	}).Error
}

// StartPlan sets the start date to now, restarting the clock on a plan that
// was already started. Completed days are kept; CurrentDay points at the first
// day still to read.
func (r *Repository) StartPlan(id string) (*entities.ReadingPlan, error) {
	var out *entities.ReadingPlan
	err := r.db.Transaction(func(tx *gorm.DB) error {
		plan, err := loadPlan(tx, id)
		if err != nil {
			return err
		}
		now := r.now()
		plan.StartDate = &now
		planning.Recompute(plan)
		if err := savePlanState(tx, plan); err != nil {
			return err
		}
		out = plan
		return nil
	})
	if err != nil {
		return nil, wrap("start plan "+id, err)
	}
	return out, nil
}

// CompleteDay marks one day done and recomputes the plan progress. A plan that
// was never started is started now.
func (r *Repository) CompleteDay(id string, day int) (*entities.ReadingPlan, error) {
	var out *entities.ReadingPlan
	err := r.db.Transaction(func(tx *gorm.DB) error {
		plan, err := loadPlan(tx, id)
		if err != nil {
			return err
		}
		if day < 1 || day > plan.TotalDays {
			return fmt.Errorf("%w: day %d of %d", ErrDayOutOfRange, day, plan.TotalDays)
		}

		result := tx.Model(&entities.ReadingPlanDay{}).
			Where("plan_id = ? AND day = ?", id, day).
			Update("completed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: day %d has no reading", ErrDayOutOfRange, day)
		}
		for i := range plan.Days {
			if plan.Days[i].Day == day {
				plan.Days[i].Completed = true
			}
		}

		if plan.StartDate == nil {
			now := r.now()
			plan.StartDate = &now
		}
		planning.Recompute(plan)
		if err := savePlanState(tx, plan); err != nil {
			return err
		}
		out = plan
		return nil
	})
	if err != nil {
		return nil, wrap(fmt.Sprintf("complete day %d of %s", day, id), err)
	}
	return out, nil
}

// ResetPlan clears the start date, progress and every day flag.
func (r *Repository) ResetPlan(id string) (*entities.ReadingPlan, error) {
	var out *entities.ReadingPlan
	err := r.db.Transaction(func(tx *gorm.DB) error {
		plan, err := loadPlan(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&entities.ReadingPlanDay{}).
			Where("plan_id = ?", id).
			Update("completed", false).Error; err != nil {
			return err
		}
		for i := range plan.Days {
			plan.Days[i].Completed = false
		}
		plan.StartDate = nil
		plan.CurrentDay = 0
		plan.Completed = false
		if err := savePlanState(tx, plan); err != nil {
			return err
		}
		out = plan
		return nil
	})
	if err != nil {
		return nil, wrap("reset plan "+id, err)
	}
	return out, nil
}

// wrap keeps sentinel errors matchable while classifying driver faults.
func wrap(op string, err error) error {
	if errors.Is(err, ErrPlanNotFound) || errors.Is(err, ErrDayOutOfRange) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return database.Classify(op, err)
}
