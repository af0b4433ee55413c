// Package test collects small assertion and buffer helpers shared by the
// package-level tests across this module. It deliberately stays free of any
// third-party assertion library so that packages with no other test
// dependency don't acquire one just to compare two values.
package test

import (
	"fmt"
	"testing"
)

// Equate fails the test if got and want are not equal, as judged by
// comparing their Go-syntax (%#v) representations, so values of different
// types never compare equal.
func Equate(t *testing.T, got, want interface{}) bool {
	t.Helper()
	if !equal(got, want) {
		t.Errorf("unexpected value: got %v, wanted %v", got, want)
		return false
	}
	return true
}

// ExpectEquality is an alias of Equate kept for readability at call sites
// that are explicitly about two computed values rather than got/want pairs.
func ExpectEquality(t *testing.T, a, b interface{}) bool {
	t.Helper()
	return Equate(t, a, b)
}

// ExpectInequality fails the test if a and b are equal.
func ExpectInequality(t *testing.T, a, b interface{}) bool {
	t.Helper()
	if equal(a, b) {
		t.Errorf("unexpected equality: %v == %v", a, b)
		return false
	}
	return true
}

// ExpectApproximate fails the test if a and b differ by more than delta.
func ExpectApproximate(t *testing.T, a, b, delta float64) bool {
	t.Helper()
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff > delta {
		t.Errorf("values not approximately equal: %v and %v (delta %v)", a, b, delta)
		return false
	}
	return true
}

// ExpectFailure fails the test unless v represents a failure: a false bool, a
// non-nil error, or a non-nil value of any other comparable type.
func ExpectFailure(t *testing.T, v interface{}) bool {
	t.Helper()
	if isSuccess(v) {
		t.Errorf("expected failure, got success value: %v", v)
		return false
	}
	return true
}

// ExpectSuccess fails the test unless v represents success: a true bool, a
// nil error, or nil.
func ExpectSuccess(t *testing.T, v interface{}) bool {
	t.Helper()
	if !isSuccess(v) {
		t.Errorf("expected success, got failure value: %v", v)
		return false
	}
	return true
}

func isSuccess(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return x
	case error:
		return x == nil
	default:
		return false
	}
}

func equal(a, b interface{}) bool {
	return fmt.Sprintf("%#v", a) == fmt.Sprintf("%#v", b)
}
