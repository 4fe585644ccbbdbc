package game

const maxComboMultiplier = 10

var (
	linePoints  = [...]int{0, 100, 300, 500, 800}
	tspinPoints = [...]int{0, 800, 1200, 1600}
	lineNames   = [...]string{"", "SINGLE", "DOUBLE", "TRIPLE", "TETRIS"}
	tspinNames  = [...]string{"", "T-SPIN SINGLE", "T-SPIN DOUBLE", "T-SPIN TRIPLE"}
)

// Points scores one lock. Each combo step past the first adds half the base, up to ten steps.
func Points(lines int, tspin bool, combo int) int {
	if lines <= 0 {
		return 0
	}
	base := linePoints[min(lines, len(linePoints)-1)]
	if tspin && lines < len(tspinPoints) {
		base = tspinPoints[lines]
	}
	combo = max(1, min(combo, maxComboMultiplier))
	return base * (2 + combo - 1) / 2
}

// GarbageFor is the number of garbage rows a clearing lock sends, capped at limit.
func GarbageFor(lines int, tspin bool, combo, limit int) int {
	if lines <= 0 {
		return 0
	}
	n := lines
	if tspin {
		n++
	}
	if combo > 1 {
		n += combo / 2
	}
	return min(n, limit)
}

// ClearName is the attack label shown for a clearing lock.
func ClearName(lines int, tspin bool) string {
	if lines <= 0 {
		return ""
	}
	if tspin && lines < len(tspinNames) {
		return tspinNames[lines]
	}
	return lineNames[min(lines, len(lineNames)-1)]
}

// LevelFor maps total lines to a level, starting at 1.
func LevelFor(lines int) int {
	return lines/10 + 1
}
