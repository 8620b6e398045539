package validation

import (
	"fmt"

	"github.com/voxday/planner-api/internal/models"
)

const (
	// MaxBatchItems is the maximum number of items accepted in one write
	MaxBatchItems = 50
	// MaxTaskTextLength is the maximum length for task and list item text
	MaxTaskTextLength = 500
	// MaxMealTextLength is the maximum length for a meal description
	MaxMealTextLength = 1000
)

// RawItem is an item as clients send it. Voice-platform tools disagree on the
// completion field name, so both spellings are accepted; Normalize reconciles
// them into the canonical isComplete.
type RawItem struct {
	ID              string `json:"id"`
	Text            string `json:"text"`
	IsComplete      *bool  `json:"isComplete"`
	IsCompleteSnake *bool  `json:"is_complete"`
}

// NormalizeItem reconciles the two completion field spellings into the
// canonical one. The camelCase value wins when both are present.
func NormalizeItem(raw RawItem) (models.TaskItem, error) {
	var complete bool
	switch {
	case raw.IsComplete != nil:
		complete = *raw.IsComplete
	case raw.IsCompleteSnake != nil:
		complete = *raw.IsCompleteSnake
	default:
		return models.TaskItem{}, fmt.Errorf("item %q: missing isComplete/is_complete", raw.ID)
	}
	return models.TaskItem{ID: raw.ID, Text: raw.Text, IsComplete: complete}, nil
}

// NormalizeBatch validates and normalizes a batch of raw items. Any violation
// rejects the whole batch; there are no partial results. requireText controls
// whether each item must carry non-empty text (status-only updates identify
// items by id alone).
func NormalizeBatch(raw []RawItem, requireText bool) ([]models.TaskItem, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("item list is empty")
	}
	if len(raw) > MaxBatchItems {
		return nil, fmt.Errorf("item list exceeds maximum of %d entries", MaxBatchItems)
	}

	items := make([]models.TaskItem, 0, len(raw))
	for i, r := range raw {
		if r.ID == "" {
			return nil, fmt.Errorf("item at index %d: missing id", i)
		}
		if requireText {
			r.Text = SanitizeText(r.Text)
			if r.Text == "" {
				return nil, fmt.Errorf("item %q: missing text", r.ID)
			}
			if len(r.Text) > MaxTaskTextLength {
				return nil, fmt.Errorf("item %q: text exceeds maximum length of %d characters", r.ID, MaxTaskTextLength)
			}
		}
		item, err := NormalizeItem(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ValidateTexts validates a list of free-text entries (new to-do items)
// against the batch and length limits.
func ValidateTexts(texts []string) ([]string, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("to_do_list is empty")
	}
	if len(texts) > MaxBatchItems {
		return nil, fmt.Errorf("to_do_list exceeds maximum of %d entries", MaxBatchItems)
	}
	out := make([]string, 0, len(texts))
	for i, text := range texts {
		text = SanitizeText(text)
		if text == "" {
			return nil, fmt.Errorf("to_do_list entry at index %d is empty", i)
		}
		if len(text) > MaxTaskTextLength {
			return nil, fmt.Errorf("to_do_list entry at index %d exceeds maximum length of %d characters", i, MaxTaskTextLength)
		}
		out = append(out, text)
	}
	return out, nil
}

// ValidateMealPatch checks a partial meal update against the length limit and
// requires at least one field to be present.
func ValidateMealPatch(patch *models.MealPatch) error {
	fields := map[string]*string{
		"breakfast": patch.Breakfast,
		"lunch":     patch.Lunch,
		"snacks":    patch.Snacks,
		"dinner":    patch.Dinner,
	}
	any := false
	for name, v := range fields {
		if v == nil {
			continue
		}
		any = true
		if len(*v) > MaxMealTextLength {
			return fmt.Errorf("meal %q exceeds maximum length of %d characters", name, MaxMealTextLength)
		}
	}
	if !any {
		return fmt.Errorf("meals object has no recognized fields")
	}
	return nil
}
