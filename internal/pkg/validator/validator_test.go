package validator

import (
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

func TestIsInSlice(t *testing.T) {
	slice := []string{"checkinCheckout", "weeklyHours"}
	if !IsInSlice("weeklyHours", slice) {
		t.Errorf("IsInSlice(weeklyHours) = false, want true")
	}
	if IsInSlice("weekly", slice) {
		t.Errorf("IsInSlice(weekly) = true, want false")
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-02-29"); !ok {
		t.Errorf("IsValidDate(2024-02-29) = false, want true")
	}
	if _, ok := IsValidDate("2023-02-29"); ok {
		t.Errorf("IsValidDate(2023-02-29) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "late_threshold", Message: "must be at least 1"},
		{Field: "period_month", Message: "must be between 1 and 12"},
	}
	want := "late_threshold: must be at least 1; period_month: must be between 1 and 12"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}
	m := errs.ToMap()
	if m["period_month"] != "must be between 1 and 12" {
		t.Errorf("ToMap()[period_month] = %q", m["period_month"])
	}
	if !errs.HasField("late_threshold") || errs.HasField("year") {
		t.Errorf("HasField mismatch")
	}
}

type periodRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Month      int    `json:"month" validate:"min=1,max=12"`
	Year       int    `json:"year" validate:"min=2000"`
}

func TestStruct(t *testing.T) {
	if err := Struct(periodRequest{EmployeeID: "e-1", Month: 3, Year: 2025}); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	err := Struct(periodRequest{Month: 13, Year: 1999})
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Struct(invalid) returned %T, want ValidationErrors", err)
	}
	got := errs.ToMap()
	if got["employee_id"] != "is required" {
		t.Errorf("employee_id message = %q", got["employee_id"])
	}
	if got["month"] != "must be at most 12" {
		t.Errorf("month message = %q", got["month"])
	}
	if got["year"] != "must be at least 2000" {
		t.Errorf("year message = %q", got["year"])
	}
}
