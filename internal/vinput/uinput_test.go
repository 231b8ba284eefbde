package vinput

import (
	"testing"

	"github.com/bnema/seatengine/internal/inputevent"
)

func TestNewUinputFactoryDefaultsPath(t *testing.T) {
	f := NewUinputFactory("")
	if f.path != "/dev/uinput" {
		t.Errorf("expected default path /dev/uinput, got %q", f.path)
	}
}

func TestNewUinputFactoryKeepsExplicitPath(t *testing.T) {
	f := NewUinputFactory("/custom/uinput")
	if f.path != "/custom/uinput" {
		t.Errorf("expected the explicit path to be kept, got %q", f.path)
	}
}

func TestUinputFactoryCreateRejectsUnsupportedType(t *testing.T) {
	f := NewUinputFactory("")
	if _, err := f.Create(inputevent.DeviceTypeTablet); err == nil {
		t.Errorf("expected an error for a device type uinput has no protocol for")
	}
}
