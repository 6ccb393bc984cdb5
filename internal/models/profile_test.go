package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func TestField_StringAndParse(t *testing.T) {
	for _, f := range EditableFields {
		parsed, ok := ParseField(f.String())
		assert.True(t, ok, f.String())
		assert.Equal(t, f, parsed)
	}

	_, ok := ParseField("email")
	assert.False(t, ok)
	assert.Equal(t, "Field(42)", Field(42).String())
}

func TestUserProfile_Value(t *testing.T) {
	p := UserProfile{Name: "Kim", Age: 20, Gender: "M", ProfileImageURL: "http://img/kim.png"}

	assert.Equal(t, "Kim", p.Value(FieldName))
	assert.Equal(t, "20", p.Value(FieldAge))
	assert.Equal(t, "M", p.Value(FieldGender))
	assert.Equal(t, "http://img/kim.png", p.Value(FieldProfileImageURL))
	assert.Panics(t, func() { p.Value(Field(99)) })
}

func TestUserProfile_Merge(t *testing.T) {
	p := UserProfile{UserID: 7, Name: "Kim", Age: 20, Gender: "M"}

	merged := p.Merge(ProfileUpdate{Age: intPtr(25)})
	assert.Equal(t, UserProfile{UserID: 7, Name: "Kim", Age: 25, Gender: "M"}, merged)
	assert.Equal(t, 20, p.Age, "original must not change")

	merged = p.Merge(ProfileUpdate{
		Name:            strPtr("Lee"),
		Gender:          strPtr("F"),
		ProfileImageURL: strPtr("http://img/lee.png"),
	})
	assert.Equal(t, UserProfile{UserID: 7, Name: "Lee", Age: 20, Gender: "F", ProfileImageURL: "http://img/lee.png"}, merged)
}

func TestProfileUpdate_Value(t *testing.T) {
	u := ProfileUpdate{Age: intPtr(25)}

	v, ok := u.Value(FieldAge)
	assert.True(t, ok)
	assert.Equal(t, "25", v)

	_, ok = u.Value(FieldName)
	assert.False(t, ok)
	assert.False(t, u.IsEmpty())
	assert.True(t, ProfileUpdate{}.IsEmpty())
}

func TestFieldChange_JSON(t *testing.T) {
	data, err := json.Marshal(FieldChange{Field: FieldProfileImageURL, OldValue: "a", NewValue: "b"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"field":"profileImageUrl","oldValue":"a","newValue":"b"}`, string(data))
}

func TestSession_Expired(t *testing.T) {
	s := Session{SessionID: "s", UserID: 1}
	now := s.ExpiresAt

	assert.True(t, s.Expired(now))
	s.ExpiresAt = now.Add(1)
	assert.False(t, s.Expired(now))
}
