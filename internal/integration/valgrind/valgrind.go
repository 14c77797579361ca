// Package valgrind reads memcheck XML logs and runs programs under memcheck.
package valgrind

import "time"

const (
	name = "valgrind"
	// Programs under memcheck run 20 to 50 times slower than native.
	DefaultTimeout = 30 * time.Minute
)
