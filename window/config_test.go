package window

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{"valid", Config{Width: 800, Height: 600, Title: "shapes"}, ""},
		{"zero width", Config{Width: 0, Height: 600, Title: "shapes"}, "width"},
		{"negative height", Config{Width: 800, Height: -1, Title: "shapes"}, "height"},
		{"empty title", Config{Width: 800, Height: 600}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestPlatformErrorUnwrap(t *testing.T) {
	inner := errors.New("display not found")
	err := &PlatformError{Op: "create window", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("PlatformError should unwrap to its cause")
	}
	if err.Error() != "platform: create window: display not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
