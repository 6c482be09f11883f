package server

import (
	"errors"
	"testing"

	"github.com/anpep/rzchroma/internal/device"
)

func TestRegistryRegisterAndWrite(t *testing.T) {
	registry := NewRegistry()
	registrar := registry.For("PM1234", "Razer DeathAdder Chroma")

	var got []byte
	write := func(payload []byte) (int, error) {
		got = append([]byte(nil), payload...)
		return len(payload), nil
	}

	if err := registrar.RegisterAttribute("logo_color", write); err != nil {
		t.Fatalf("RegisterAttribute() error = %v", err)
	}

	n, err := registry.Write("PM1234", "logo_color", []byte{0xff, 0x00, 0x80})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Write() n = %d, want 3", n)
	}
	if got[0] != 0xff || got[1] != 0x00 || got[2] != 0x80 {
		t.Errorf("payload = %v", got)
	}
}

func TestRegistryUnknownLookups(t *testing.T) {
	registry := NewRegistry()
	registrar := registry.For("PM1234", "test device")
	if err := registrar.RegisterAttribute("logo_color", func(p []byte) (int, error) { return len(p), nil }); err != nil {
		t.Fatalf("RegisterAttribute() error = %v", err)
	}

	if _, err := registry.Write("no-such-device", "logo_color", []byte{1, 2, 3}); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("unknown device error = %v, want ErrUnknownDevice", err)
	}
	if _, err := registry.Write("PM1234", "no_such_attr", []byte{1, 2, 3}); !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("unknown attribute error = %v, want ErrUnknownAttribute", err)
	}
}

func TestRegistryDuplicateAttribute(t *testing.T) {
	registry := NewRegistry()
	registrar := registry.For("PM1234", "test device")
	write := func(p []byte) (int, error) { return len(p), nil }

	if err := registrar.RegisterAttribute("logo_color", write); err != nil {
		t.Fatalf("first RegisterAttribute() error = %v", err)
	}
	if err := registrar.RegisterAttribute("logo_color", write); err == nil {
		t.Error("duplicate RegisterAttribute() should fail")
	}
}

func TestRegistryListAndUnregister(t *testing.T) {
	registry := NewRegistry()
	write := func(p []byte) (int, error) { return len(p), nil }

	a := registry.For("PM0001", "device a")
	b := registry.For("PM0002", "device b")
	for _, reg := range []device.Registrar{a, b} {
		if err := reg.RegisterAttribute("logo_color", write); err != nil {
			t.Fatalf("RegisterAttribute() error = %v", err)
		}
		if err := reg.RegisterAttribute("wheel_color", write); err != nil {
			t.Fatalf("RegisterAttribute() error = %v", err)
		}
	}

	list := registry.List()
	if len(list) != 2 {
		t.Fatalf("List() len = %d, want 2", len(list))
	}
	if list[0].ID != "PM0001" || list[1].ID != "PM0002" {
		t.Errorf("List() not sorted by id: %v, %v", list[0].ID, list[1].ID)
	}
	if len(list[0].Attributes) != 2 || list[0].Attributes[0] != "logo_color" {
		t.Errorf("attributes = %v", list[0].Attributes)
	}

	// Unregistering the last attribute removes the device entirely.
	b.UnregisterAttribute("logo_color")
	b.UnregisterAttribute("wheel_color")
	b.UnregisterAttribute("wheel_color") // idempotent

	list = registry.List()
	if len(list) != 1 {
		t.Fatalf("List() after unregister len = %d, want 1", len(list))
	}
	if list[0].ID != "PM0001" {
		t.Errorf("remaining device = %v", list[0].ID)
	}
}
