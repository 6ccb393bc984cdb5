package services

import "github.com/sbilibin2017/gw-user-profile/internal/models"

// Diff returns the fields of update whose string-normalized value differs
// from snapshot, in models.EditableFields order. Unset slots and unchanged
// values produce nothing, so resubmitting current values yields no changes.
func Diff(snapshot models.UserProfile, update models.ProfileUpdate) []models.FieldChange {
	var changes []models.FieldChange
	for _, field := range models.EditableFields {
		proposed, ok := update.Value(field)
		if !ok {
			continue
		}
		current := snapshot.Value(field)
		if current == proposed {
			continue
		}
		changes = append(changes, models.FieldChange{
			Field:    field,
			OldValue: current,
			NewValue: proposed,
		})
	}
	return changes
}
