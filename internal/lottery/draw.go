package lottery

import (
	"sort"

	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
)

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280

	MaxNumber  = 45
	MainCount  = 6
	drawnCount = MainCount + 1
)

// LCG is the linear congruential generator behind every draw.
type LCG struct {
	current int64
}

func NewLCG(seed int64) *LCG {
	return &LCG{current: seed}
}

// Next advances the state once and returns a candidate in [1, MaxNumber].
func (g *LCG) Next() int {
	g.current = (g.current*lcgMultiplier + lcgIncrement) % lcgModulus
	return int(g.current%MaxNumber) + 1
}

// DrawResult は抽選結果。Arrivals は重複排除後の到着順
type DrawResult struct {
	types.LuckyDraw
	Seed     int64 `json:"seed"`
	Arrivals []int `json:"arrivals"`
}

// Draw deterministically picks six main numbers and a bonus from the birth input.
func Draw(input types.BirthInput) (*DrawResult, error) {
	if err := ValidateBirthInput(input); err != nil {
		return nil, err
	}

	seed := CalculateSeed(input)
	arrivals := drawDistinct(NewLCG(seed), drawnCount)

	numbers := make([]int, MainCount)
	copy(numbers, arrivals[:MainCount])
	sort.Ints(numbers)

	return &DrawResult{
		LuckyDraw: types.LuckyDraw{
			Numbers: numbers,
			Bonus:   arrivals[MainCount],
		},
		Seed:     seed,
		Arrivals: arrivals,
	}, nil
}

// drawDistinct collects n distinct candidates in arrival order.
// Duplicates are dropped and the generator advances again.
func drawDistinct(g *LCG, n int) []int {
	arrivals := make([]int, 0, n)
	seen := make(map[int]struct{}, n)
	for len(arrivals) < n {
		candidate := g.Next()
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		arrivals = append(arrivals, candidate)
	}
	return arrivals
}
