package systems

import "fmt"

// assertf panics with a formatted message when cond is false.
// Compiled to a no-op unless built with -tags meadowdebug.
func assertf(cond bool, format string, args ...any) {
	if debugChecks && !cond {
		panic(fmt.Sprintf("systems: precondition violated: "+format, args...))
	}
}
