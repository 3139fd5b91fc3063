package service

const (
	MaxPrincipal    = 1_000_000_000.0 // 1 billion
	MaxTermYears    = 50
	MaxMonthlyExtra = 1_000_000.0
	MaxLumpSum      = 1_000_000_000.0
)
