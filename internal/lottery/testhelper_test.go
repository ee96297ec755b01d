package lottery

import "github.com/ichi0g0y/lucky-by-birthday/internal/types"

func intPtr(v int) *int {
	return &v
}

// GenerateBirthInputs はN件の有効な生年月日を決定論的に生成する。
func GenerateBirthInputs(n int) []types.BirthInput {
	if n <= 0 {
		return []types.BirthInput{}
	}

	inputs := make([]types.BirthInput, n)
	for i := 0; i < n; i++ {
		inputs[i] = GenerateBirthInput(i)
	}
	return inputs
}

// GenerateBirthInput は1件分の生年月日を決定論的に生成する。
func GenerateBirthInput(index int) types.BirthInput {
	if index < 0 {
		index = 0
	}

	input := types.BirthInput{
		Year:  1900 + index%127,
		Month: index%12 + 1,
		Day:   index%31 + 1,
	}
	if index%2 == 0 {
		input.Hour = intPtr(index % 24)
	}
	if index%3 == 0 {
		input.Minute = intPtr(index % 60)
	}
	return input
}
