package models

import (
	"fmt"
	"strconv"
)

// Field enumerates the profile attributes a user may edit.
type Field int

const (
	FieldName Field = iota
	FieldAge
	FieldGender
	FieldProfileImageURL
)

// EditableFields lists every Field in the order changes are produced.
var EditableFields = [...]Field{
	FieldName,
	FieldAge,
	FieldGender,
	FieldProfileImageURL,
}

// String returns the field name as stored in user_histories.changed_field.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldAge:
		return "age"
	case FieldGender:
		return "gender"
	case FieldProfileImageURL:
		return "profileImageUrl"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// MarshalText encodes a Field by name.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a Field from its name.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, ok := ParseField(string(text))
	if !ok {
		return fmt.Errorf("unknown profile field %q", text)
	}
	*f = parsed
	return nil
}

// ParseField maps a stored field name back to its Field.
func ParseField(name string) (Field, bool) {
	for _, f := range EditableFields {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// UserProfile represents a user_profiles row. There is exactly one per user.
type UserProfile struct {
	UserID          int64  `json:"-" db:"user_id"`
	Name            string `json:"name" db:"name"`
	Age             int    `json:"age" db:"age"`
	Gender          string `json:"gender" db:"gender"`
	ProfileImageURL string `json:"profileImageUrl" db:"profile_image_url"`
}

// Value returns the string-normalized value of f.
func (p UserProfile) Value(f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldAge:
		return strconv.Itoa(p.Age)
	case FieldGender:
		return p.Gender
	case FieldProfileImageURL:
		return p.ProfileImageURL
	default:
		panic(fmt.Sprintf("models: unknown profile field %d", int(f)))
	}
}

// Merge returns a copy of p with every slot set in u applied.
func (p UserProfile) Merge(u ProfileUpdate) UserProfile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.ProfileImageURL != nil {
		p.ProfileImageURL = *u.ProfileImageURL
	}
	return p
}

// ProfileUpdate is a partial profile. A nil slot leaves the field untouched.
type ProfileUpdate struct {
	Name            *string
	Age             *int
	Gender          *string
	ProfileImageURL *string
}

// Value returns the string-normalized proposed value of f and whether it is set.
func (u ProfileUpdate) Value(f Field) (string, bool) {
	switch f {
	case FieldName:
		if u.Name == nil {
			return "", false
		}
		return *u.Name, true
	case FieldAge:
		if u.Age == nil {
			return "", false
		}
		return strconv.Itoa(*u.Age), true
	case FieldGender:
		if u.Gender == nil {
			return "", false
		}
		return *u.Gender, true
	case FieldProfileImageURL:
		if u.ProfileImageURL == nil {
			return "", false
		}
		return *u.ProfileImageURL, true
	default:
		panic(fmt.Sprintf("models: unknown profile field %d", int(f)))
	}
}

// IsEmpty reports whether no slot is set.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Age == nil && u.Gender == nil && u.ProfileImageURL == nil
}

// FieldChange is one field-level difference between a snapshot and an update.
type FieldChange struct {
	Field    Field  `json:"field"`
	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}
