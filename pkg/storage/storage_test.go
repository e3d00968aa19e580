package storage

import (
	"errors"
	"net/http"
	"testing"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := Config{ConnectionString: "UseDevelopmentStorage=true"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.ContainerName != "captures" {
		t.Errorf("container: got %q, want %q", cfg.ContainerName, "captures")
	}
	if cfg.MaxListSize != 50 {
		t.Errorf("max list size: got %d, want 50", cfg.MaxListSize)
	}
}

func TestConfigFinalizeRequiresConnectionString(t *testing.T) {
	cfg := Config{}
	if err := cfg.Finalize(nil); err == nil {
		t.Error("expected error for missing connection string")
	}
}

func TestConfigMaxListSizeCapped(t *testing.T) {
	cfg := Config{ConnectionString: "UseDevelopmentStorage=true", MaxListSize: 10000}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.MaxListSize != MaxListCap {
		t.Errorf("max list size: got %d, want %d", cfg.MaxListSize, MaxListCap)
	}
}

func TestValidateKey(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want error
	}{
		{"valid", "captures/run-1.bin", nil},
		{"empty", "", ErrEmptyKey},
		{"traversal", "../secrets", ErrInvalidKey},
		{"embedded traversal", "a/../b", ErrInvalidKey},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateKey(tc.key)
			if !errors.Is(err, tc.want) {
				t.Errorf("validateKey(%q): got %v, want %v", tc.key, err, tc.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrEmptyKey, http.StatusBadRequest},
		{ErrInvalidKey, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := MapHTTPStatus(tc.err); got != tc.want {
			t.Errorf("MapHTTPStatus(%v): got %d, want %d", tc.err, got, tc.want)
		}
	}
}
