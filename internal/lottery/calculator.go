package lottery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
)

var (
	ErrMissingBirthDate  = errors.New("year, month and day are required")
	ErrInvalidBirthInput = errors.New("invalid birth input")
)

const (
	minYear = 1
	maxYear = 9999
)

// CalculateSeed は生年月日からLCGのシード値を求める。
// 時・分は入力されている場合のみ加算する（時は60倍）。
func CalculateSeed(input types.BirthInput) int64 {
	seed := int64(input.Year)*10000 + int64(input.Month)*100 + int64(input.Day)
	if input.Hour != nil {
		seed += int64(*input.Hour) * 60
	}
	if input.Minute != nil {
		seed += int64(*input.Minute)
	}
	return seed
}

// ParseBirthFields converts raw form fields into a BirthInput.
func ParseBirthFields(fields types.BirthFields) (types.BirthInput, error) {
	var input types.BirthInput
	if !fields.HasDate() {
		return input, ErrMissingBirthDate
	}

	var err error
	if input.Year, err = parseField("year", fields.Year); err != nil {
		return input, err
	}
	if input.Month, err = parseField("month", fields.Month); err != nil {
		return input, err
	}
	if input.Day, err = parseField("day", fields.Day); err != nil {
		return input, err
	}
	if input.Hour, err = parseOptionalField("hour", fields.Hour); err != nil {
		return input, err
	}
	if input.Minute, err = parseOptionalField("minute", fields.Minute); err != nil {
		return input, err
	}

	return input, ValidateBirthInput(input)
}

// ValidateBirthInput checks the calendar ranges the generator relies on.
func ValidateBirthInput(input types.BirthInput) error {
	if input.Year < minYear || input.Year > maxYear {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidBirthInput, input.Year)
	}
	if input.Month < 1 || input.Month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidBirthInput, input.Month)
	}
	if input.Day < 1 || input.Day > 31 {
		return fmt.Errorf("%w: day %d out of range", ErrInvalidBirthInput, input.Day)
	}
	if input.Hour != nil && (*input.Hour < 0 || *input.Hour > 23) {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidBirthInput, *input.Hour)
	}
	if input.Minute != nil && (*input.Minute < 0 || *input.Minute > 59) {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidBirthInput, *input.Minute)
	}
	return nil
}

func parseField(name string, value types.FlexString) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(value)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidBirthInput, name)
	}
	return n, nil
}

func parseOptionalField(name string, value types.FlexString) (*int, error) {
	if strings.TrimSpace(string(value)) == "" {
		return nil, nil
	}
	n, err := parseField(name, value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
