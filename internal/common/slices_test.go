package common

import "testing"

func TestCardinalityHelpers(t *testing.T) {
	empty := []int{}
	single := []int{1}
	multiple := []int{1, 2}

	if !IsEmpty(empty) || IsEmpty(single) {
		t.Error("IsEmpty misclassified")
	}

	if !IsSingle(single) || IsSingle(multiple) || IsSingle(empty) {
		t.Error("IsSingle misclassified")
	}
}

func TestFirst(t *testing.T) {
	if v, ok := First([]string{"a", "b"}); !ok || v != "a" {
		t.Errorf("First = %q, %v", v, ok)
	}

	if _, ok := First([]string{}); ok {
		t.Error("First on empty should report false")
	}
}

func TestContains(t *testing.T) {
	s := []string{"x", "y"}

	if !Contains(s, "x") || Contains(s, "z") {
		t.Error("Contains misclassified")
	}
}
