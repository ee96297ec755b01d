package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number and keeps its text form.
// A numeric zero decodes as "" (not entered); the string "0" is kept as is.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	if v, err := n.Float64(); err == nil && v == 0 {
		*f = ""
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// BirthFields は生年月日フォームの入力値（未加工）
type BirthFields struct {
	Year   FlexString `json:"year"`
	Month  FlexString `json:"month"`
	Day    FlexString `json:"day"`
	Hour   FlexString `json:"hour,omitempty"`
	Minute FlexString `json:"minute,omitempty"`
}

// HasDate reports whether the required date fields are all present.
func (b BirthFields) HasDate() bool {
	return b.Year != "" && b.Month != "" && b.Day != ""
}

// BirthInput は数値化された生年月日。Hour/Minute が nil の場合は未入力
type BirthInput struct {
	Year   int  `json:"year"`
	Month  int  `json:"month"`
	Day    int  `json:"day"`
	Hour   *int `json:"hour,omitempty"`
	Minute *int `json:"minute,omitempty"`
}

// LuckyDraw は6個の本数字（昇順）とボーナス数字
type LuckyDraw struct {
	Numbers []int `json:"numbers"`
	Bonus   int   `json:"bonus"`
}
