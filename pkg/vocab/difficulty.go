package vocab

// Difficulty is a tier of the reference list, least to most advanced.
type Difficulty string

const (
	DifficultyA Difficulty = "A"
	DifficultyB Difficulty = "B"
	DifficultyC Difficulty = "C"
)

// MeetsMinimum reports whether a term of difficulty d qualifies under the
// minimum tier min. Only "B" and "C" restrict anything; "A" and unrecognized
// minimums accept every term.
func MeetsMinimum(min, d Difficulty) bool {
	switch min {
	case DifficultyC:
		return d == DifficultyC
	case DifficultyB:
		return d == DifficultyB || d == DifficultyC
	default:
		return true
	}
}
