//go:build meadowdebug

package systems

const debugChecks = true
