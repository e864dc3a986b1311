package core

import (
	"strings"
	"testing"
)

func TestRecoverConvertsPanic(t *testing.T) {
	err := Recover("tick", func() {
		panic("boom")
	})
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	if !strings.Contains(err.Error(), "boom") || !strings.HasPrefix(err.Error(), "tick:") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestRecoverPassesThrough(t *testing.T) {
	ran := false
	if err := Recover("tick", func() { ran = true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("function did not run")
	}
}
