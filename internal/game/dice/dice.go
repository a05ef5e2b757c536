// Package dice provides the randomness abstraction used to pick monster
// targets. Implementations are injected so encounters can be replayed
// deterministically in tests.
package dice

// Source is the randomness provider for target selection.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
