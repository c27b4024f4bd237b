package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid json config",
			config:  Config{Backend: "json", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", DataDir: "/tmp/data"},
			wantErr: nil,
		},
		{
			name:    "empty DataDir is valid at config level",
			config:  Config{Backend: "json", DataDir: ""},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigFileName(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"json default", Config{Backend: BackendJSON}, DefaultJSONFile},
		{"sqlite default", Config{Backend: BackendSQLite}, DefaultSQLiteFile},
		{"explicit file wins", Config{Backend: BackendSQLite, File: "store.sqlite"}, "store.sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.FileName(); got != tt.want {
				t.Fatalf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}
