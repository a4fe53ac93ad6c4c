package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestCharLength(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 3},
		{"打刻修正", 4},
		{"café", 4},
	}
	for _, c := range cases {
		if got := CharLength(c.input); got != c.want {
			t.Errorf("CharLength(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsUUID(t *testing.T) {
	for _, id := range []string{"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", "123e4567-e89b-12d3-a456-426614174000"} {
		if !IsUUID(id) {
			t.Errorf("IsUUID(%q) = false, want true", id)
		}
	}
	for _, id := range []string{"emp-1", "123e4567e89b12d3a456426614174000", "urn:uuid:123e4567-e89b-12d3-a456-426614174000", ""} {
		if IsUUID(id) {
			t.Errorf("IsUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	if _, ok := IsValidMonth("2024-02"); !ok {
		t.Errorf("IsValidMonth(2024-02) = false, want true")
	}
	for _, s := range []string{"2024-13", "2024/02", "2024-02-01", ""} {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	errs := ValidationErrors{
		{Field: "a", Message: "bad a"},
		{Field: "b", Message: "bad b", Err: sentinel},
	}

	var err error = errs
	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is(ValidationErrors, sentinel) = false, want true")
	}
	if got := errs.Error(); got != "a: bad a; b: bad b" {
		t.Errorf("Error() = %q", got)
	}
	if got := errs.ToMap()["b"]; got != "bad b" {
		t.Errorf("ToMap()[b] = %q", got)
	}
}
