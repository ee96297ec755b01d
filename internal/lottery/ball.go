package lottery

type BallColor string

const (
	BallYellow BallColor = "yellow"
	BallBlue   BallColor = "blue"
	BallRed    BallColor = "red"
	BallGray   BallColor = "gray"
	BallGreen  BallColor = "green"
)

// ColorOf returns the color band of a lotto ball.
func ColorOf(n int) BallColor {
	switch {
	case n <= 10:
		return BallYellow
	case n <= 20:
		return BallBlue
	case n <= 30:
		return BallRed
	case n <= 40:
		return BallGray
	default:
		return BallGreen
	}
}

// Colors maps each number to its band, preserving order.
func Colors(numbers []int) []BallColor {
	colors := make([]BallColor, len(numbers))
	for i, n := range numbers {
		colors[i] = ColorOf(n)
	}
	return colors
}
