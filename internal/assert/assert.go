// Package assert provides contract checks for programming errors.
//
// Assertions only fire in binaries built with the varletdebug tag:
//
//	go test -tags varletdebug ./...
//
// Release builds compile them to no-ops, and callers are expected to
// report the violation through an error return or an error log as well.
package assert

import "fmt"

// That panics with the formatted message when cond is false and
// assertions are enabled.
func That(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf("varlet: contract violation: "+format, args...))
	}
}
