package render

import "testing"

type stubBackend struct{ name string }

func (s *stubBackend) Name() string                                  { return s.name }
func (s *stubBackend) CreateDevice(Target) (Device, error)           { return nil, nil }
func (s *stubBackend) CreateSurface(Device, Target) (Surface, error) { return nil, nil }
func (s *stubBackend) Submit(Device, Surface, []Batch) error         { return nil }
func (s *stubBackend) Present(Surface) error                         { return nil }

func (s *stubBackend) RecreateSurface(Device, Surface, Target) (Surface, error) {
	return nil, nil
}

func TestRegisterAndGet(t *testing.T) {
	Register("stub", func() Backend { return &stubBackend{name: "stub"} })
	defer Unregister("stub")

	b := Get("stub")
	if b == nil {
		t.Fatal("Get(stub) = nil after Register")
	}
	if b.Name() != "stub" {
		t.Errorf("Name() = %q, want %q", b.Name(), "stub")
	}
}

func TestGetUnknown(t *testing.T) {
	if b := Get("does-not-exist"); b != nil {
		t.Errorf("Get(unknown) = %v, want nil", b)
	}
}

func TestDefaultFallsBackToAnyRegistered(t *testing.T) {
	Register("stub-fallback", func() Backend { return &stubBackend{name: "stub-fallback"} })
	defer Unregister("stub-fallback")

	b := Default()
	if b == nil {
		t.Fatal("Default() = nil with a backend registered")
	}
}

func TestAvailableListsRegistered(t *testing.T) {
	Register("stub-a", func() Backend { return &stubBackend{name: "stub-a"} })
	defer Unregister("stub-a")

	found := false
	for _, name := range Available() {
		if name == "stub-a" {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing stub-a", Available())
	}
}
