package errors

import (
	"testing"
)

func TestValidateCentrality(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"median", "median", false},
		{"mean", "mean", false},
		{"map", "map", false},

		{"empty", "", true},
		{"bogus", "bogus", true},
		{"uppercase", "Mean", true},
		{"mode alias not accepted", "mode", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCentrality(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCentrality(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCentrality) {
				t.Errorf("ValidateCentrality(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateIntervalMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"eti", "eti", false},
		{"hdi", "hdi", false},

		{"empty", "", true},
		{"quantile", "quantile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntervalMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIntervalMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidMethod) {
				t.Errorf("ValidateIntervalMethod(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateIntervalMass(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"typical", 0.95, false},
		{"small", 0.01, false},
		{"full", 1.0, false},

		{"zero", 0, true},
		{"negative", -0.5, true},
		{"above one", 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntervalMass(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIntervalMass(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInterval) {
				t.Errorf("ValidateIntervalMass(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
