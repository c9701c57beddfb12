package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"pretty", "csv", "json"} {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) unexpected error: %v", format, err)
		}
	}
	if err := ValidateOutputFormat("xml"); err == nil {
		t.Error("ValidateOutputFormat(\"xml\") expected error, got nil")
	}
}

func TestValidateInputCount(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr bool
	}{
		{name: "lower bound", count: 10},
		{name: "upper bound", count: 200},
		{name: "below range", count: 9, wantErr: true},
		{name: "above range", count: 201, wantErr: true},
		{name: "empty", count: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputCount(tt.count)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputCount(%d) error = %v, wantErr %v", tt.count, err, tt.wantErr)
			}
		})
	}
}

func TestValidateValues(t *testing.T) {
	if err := ValidateValues([]float64{1.25, -3.50, 0, 199.99}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateValues([]float64{1.25, 3.141})
	if err == nil {
		t.Fatal("expected error for three-decimal value")
	}
	if !strings.Contains(err.Error(), "position 1") {
		t.Errorf("error should name the offending position, got %v", err)
	}
}

func TestSearchWarnings(t *testing.T) {
	if warnings := SearchWarnings(100.00, 0.05); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if warnings := SearchWarnings(1.00, 2.00); len(warnings) != 1 {
		t.Errorf("expected tolerance warning, got %v", warnings)
	}
	if warnings := SearchWarnings(0, 0); len(warnings) != 1 {
		t.Errorf("expected zero-target warning, got %v", warnings)
	}
}
