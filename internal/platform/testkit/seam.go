package testkit

import (
	"sync"
	"testing"
)

// seams serializes tests that replace package level vars
var seams sync.Mutex

// Swap sets *target to v until t finishes
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds the seam lock until t finishes. Call it before Swap in any
// test that shares a seam with others
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}
