package source

import "testing"

func TestNewUnixPollerDefaultsNonPositiveTimeout(t *testing.T) {
	p := NewUnixPoller(0)
	if p.pollTimeoutMS != 250 {
		t.Errorf("expected a non-positive timeout to default to 250ms, got %d", p.pollTimeoutMS)
	}

	p = NewUnixPoller(-5)
	if p.pollTimeoutMS != 250 {
		t.Errorf("expected a negative timeout to default to 250ms, got %d", p.pollTimeoutMS)
	}
}

func TestNewUnixPollerKeepsPositiveTimeout(t *testing.T) {
	p := NewUnixPoller(42)
	if p.pollTimeoutMS != 42 {
		t.Errorf("expected a positive timeout to be kept as-is, got %d", p.pollTimeoutMS)
	}
}
