package entities

import (
	"time"
)

// ReadingPlan is a multi-day reading schedule.
//
// Invariants: Completed implies CurrentDay == TotalDays; StartDate == nil implies
// CurrentDay == 0.
type ReadingPlan struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	TotalDays   int        `gorm:"not null" json:"total_days"`
	CurrentDay  int        `gorm:"not null" json:"current_day"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Completed   bool       `gorm:"not null" json:"completed"`

	Days []ReadingPlanDay `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"readings"`
}

func (p *ReadingPlan) Started() bool {
	return p.StartDate != nil
}

// CompletedDays returns how many days of the plan are marked done.
func (p *ReadingPlan) CompletedDays() int {
	n := 0
	for _, d := range p.Days {
		if d.Completed {
			n++
		}
	}
	return n
}

// Progress is the completed fraction of the plan in [0, 1].
func (p *ReadingPlan) Progress() float64 {
	if p.TotalDays == 0 {
		return 0
	}
	return float64(p.CompletedDays()) / float64(p.TotalDays)
}

type ReadingPlanDay struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	PlanID       string `gorm:"size:64;not null;uniqueIndex:idx_plan_days_plan_day,priority:1" json:"-"`
	Day          int    `gorm:"not null;uniqueIndex:idx_plan_days_plan_day,priority:2" json:"day"`
	BookID       string `gorm:"column:book;size:8;not null" json:"book"`
	StartChapter int    `gorm:"not null" json:"start_chapter"`
	EndChapter   int    `gorm:"not null" json:"end_chapter"`
	Completed    bool   `gorm:"not null" json:"completed"`
}

func (ReadingPlan) TableName() string {
	return "reading_plans"
}

func (ReadingPlanDay) TableName() string {
	return "reading_plan_days"
}
