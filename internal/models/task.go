package models

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

const (
	CategoryPersonal  = "Personal"
	CategoryWork      = "Work"
	CategoryShopping  = "Shopping"
	CategoryHealth    = "Health"
	CategoryEducation = "Education"
	CategoryOther     = "Other"

	// CategoryAll is a filter value, never stored on a task.
	CategoryAll = "All"
)

// DefaultCategories are the suggested values offered by task forms.
func DefaultCategories() []string {
	return []string{
		CategoryPersonal,
		CategoryWork,
		CategoryShopping,
		CategoryHealth,
		CategoryEducation,
		CategoryOther,
	}
}

const (
	MinProgress = 0
	MaxProgress = 100
)

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    string     `json:"category"`
	Progress    int        `json:"progress"`
}
