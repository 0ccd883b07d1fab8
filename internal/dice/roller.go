package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides the single source of randomness for the engine.
// Implementations must return faces uniformly distributed in [1, sides].
// Injecting it keeps every evaluation reproducible under test.
type Roller interface {
	// Roll returns one face of a die with the given number of sides
	Roll(sides int) (int, error)

	// RollN returns count faces of a die with the given number of sides
	RollN(count, sides int) ([]int, error)
}
