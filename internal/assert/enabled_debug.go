//go:build varletdebug

package assert

// Enabled reports whether contract assertions panic.
const Enabled = true
