package models

import "time"

// DocKind identifies which daily document a (user, date) key refers to.
type DocKind string

const (
	DocKindToDoList DocKind = "to_do_list"
	DocKindPlanner  DocKind = "planner"
)

// ListItem is a single entry in a daily to-do list.
type ListItem struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DailyList is the to-do document for one user and one calendar day.
type DailyList struct {
	UserID       string     `json:"user_id"`
	Date         string     `json:"date"`
	Items        []ListItem `json:"items"`
	CreatedAt    time.Time  `json:"created_at"`
	LastModified time.Time  `json:"last_modified"`
	ModifiedBy   string     `json:"modified_by"`
}

// TotalItems returns the number of items in the list.
func (l *DailyList) TotalItems() int {
	return len(l.Items)
}

// CompletedItems returns the number of completed items in the list.
func (l *DailyList) CompletedItems() int {
	n := 0
	for _, it := range l.Items {
		if it.IsComplete {
			n++
		}
	}
	return n
}

// TaskItem is a single planner task.
type TaskItem struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	IsComplete bool   `json:"isComplete"`
}

// MealPlan is the fixed-shape meal record for one day. All four keys are
// always present in a stored document; missing fields default to "".
type MealPlan struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Snacks    string `json:"snacks"`
	Dinner    string `json:"dinner"`
}

// MealPatch is a partial meal-plan update. Nil fields are left untouched by
// the merge; empty strings overwrite.
type MealPatch struct {
	Breakfast *string `json:"breakfast"`
	Lunch     *string `json:"lunch"`
	Snacks    *string `json:"snacks"`
	Dinner    *string `json:"dinner"`
}

// StatusUpdate flips the completion flag of one item identified by id.
type StatusUpdate struct {
	ID         string
	IsComplete bool
}

// Planner is the planner document for one user and one calendar day.
type Planner struct {
	UserID       string     `json:"user_id"`
	Date         string     `json:"date"`
	Tasks        []TaskItem `json:"tasks"`
	Meals        MealPlan   `json:"meals"`
	CreatedAt    time.Time  `json:"created_at"`
	LastModified time.Time  `json:"last_modified"`
	ModifiedBy   string     `json:"modified_by"`
}

// TotalTasks returns the number of planner tasks.
func (p *Planner) TotalTasks() int {
	return len(p.Tasks)
}

// CompletedTasks returns the number of completed planner tasks.
func (p *Planner) CompletedTasks() int {
	n := 0
	for _, t := range p.Tasks {
		if t.IsComplete {
			n++
		}
	}
	return n
}

// DateKey formats t as the YYYY-MM-DD document key in UTC. Document keys are
// always derived from the write time, never supplied by callers.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
