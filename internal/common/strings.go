package common

import "strings"

// StopSymbol terminates translated protein sequences.
const StopSymbol = '*'

// TrimStops removes trailing stop symbols.
func TrimStops(residues string) string {
	return strings.TrimRight(residues, string(StopSymbol))
}
