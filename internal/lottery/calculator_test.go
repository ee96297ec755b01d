package lottery

import (
	"errors"
	"testing"

	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
)

func TestCalculateSeed(t *testing.T) {
	tests := []struct {
		name  string
		input types.BirthInput
		want  int64
	}{
		{"date only", types.BirthInput{Year: 1990, Month: 1, Day: 1}, 19900101},
		{"with hour", types.BirthInput{Year: 1990, Month: 1, Day: 1, Hour: intPtr(14)}, 19900101 + 840},
		{"with minute", types.BirthInput{Year: 1990, Month: 1, Day: 1, Minute: intPtr(30)}, 19900131},
		{"hour and minute", types.BirthInput{Year: 1985, Month: 12, Day: 25, Hour: intPtr(23), Minute: intPtr(59)}, 19851225 + 1380 + 59},
		{"zero hour counts as present", types.BirthInput{Year: 2000, Month: 2, Day: 29, Hour: intPtr(0)}, 20000229},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateSeed(tt.input); got != tt.want {
				t.Fatalf("unexpected seed: got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestParseBirthFields(t *testing.T) {
	input, err := ParseBirthFields(types.BirthFields{Year: "1990", Month: "01", Day: " 1 ", Hour: "7"})
	if err != nil {
		t.Fatalf("ParseBirthFields failed: %v", err)
	}
	if input.Year != 1990 || input.Month != 1 || input.Day != 1 {
		t.Fatalf("unexpected date: %+v", input)
	}
	if input.Hour == nil || *input.Hour != 7 {
		t.Fatalf("unexpected hour: %v", input.Hour)
	}
	if input.Minute != nil {
		t.Fatalf("minute should be absent: got=%d", *input.Minute)
	}
}

func TestParseBirthFields_MissingDate(t *testing.T) {
	cases := []types.BirthFields{
		{Month: "1", Day: "1"},
		{Year: "1990", Day: "1"},
		{Year: "1990", Month: "1"},
	}
	for _, fields := range cases {
		if _, err := ParseBirthFields(fields); !errors.Is(err, ErrMissingBirthDate) {
			t.Fatalf("expected ErrMissingBirthDate for %+v, got %v", fields, err)
		}
	}
}

func TestParseBirthFields_Invalid(t *testing.T) {
	cases := []types.BirthFields{
		{Year: "abcd", Month: "1", Day: "1"},
		{Year: "1990", Month: "13", Day: "1"},
		{Year: "1990", Month: "1", Day: "32"},
		{Year: "1990", Month: "1", Day: "1", Hour: "24"},
		{Year: "1990", Month: "1", Day: "1", Minute: "60"},
		{Year: "-5", Month: "1", Day: "1"},
		{Year: "1990", Month: "1", Day: "1", Hour: "noon"},
	}
	for _, fields := range cases {
		if _, err := ParseBirthFields(fields); !errors.Is(err, ErrInvalidBirthInput) {
			t.Fatalf("expected ErrInvalidBirthInput for %+v, got %v", fields, err)
		}
	}
}
