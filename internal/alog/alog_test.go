package alog

import "testing"

func TestNoopDoesNotPanic(t *testing.T) {
	l := Noop()
	l.Debugf("debug %d", 1)
	l.Infof("info %s", "x")
	l.Warnf("warn")
	l.Errorf("error %v", true)
	_ = l.Sync()
}

func TestWithReturnsChildLogger(t *testing.T) {
	l := Noop()
	child := l.With("module", "test")
	if child == nil {
		t.Fatalf("expected With to return a non-nil child logger")
	}
	child.Infof("hello")
}

func TestNewProductionAndDebug(t *testing.T) {
	if l := New(false); l == nil {
		t.Fatalf("expected New(false) to return a logger")
	}
	if l := New(true); l == nil {
		t.Fatalf("expected New(true) to return a logger")
	}
}
