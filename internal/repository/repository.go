package repository

// List limits. Non-positive limits fall back to the default; anything above
// MaxListLimit is clamped rather than rejected.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// ClampLimit normalizes a caller-supplied list limit into [1, MaxListLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
