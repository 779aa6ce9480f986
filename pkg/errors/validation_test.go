package errors

import (
	"testing"
)

func TestValidateLength(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"typical", 1000, false},
		{"at limit", MaxInputLength, false},

		{"negative", -1, true},
		{"over limit", MaxInputLength + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLength(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLength(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("ValidateLength(%d) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidSize)
			}
		})
	}
}

func TestValidateSizeRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		wantErr  bool
	}{
		{"default range", 32, 1 << 16, false},
		{"single size", 64, 64, false},
		{"smallest", 2, 2, false},

		{"min too small", 1, 16, true},
		{"inverted", 64, 32, true},
		{"max too large", 32, MaxInputLength * 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSizeRange(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSizeRange(%d, %d) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 32, 1 << 20} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{-4, 0, 3, 48, (1 << 20) + 1} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
	}
}

func TestValidatePositive(t *testing.T) {
	if err := ValidatePositive("iterations", 16); err != nil {
		t.Errorf("ValidatePositive(16) error = %v", err)
	}
	if err := ValidatePositive("iterations", 0); err == nil {
		t.Error("ValidatePositive(0) should fail")
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"dot", "dot", false},
		{"svg", "svg", false},
		{"json", "json", false},

		{"empty", "", true},
		{"unknown", "png", true},
		{"case sensitive", "SVG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormat(tt.input, "dot", "svg", "json")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "6f1c2a9e-8d4b-4c3a-9f2e-1b7d5e0a4c11", false},

		{"empty", "", true},
		{"path traversal", "../../etc/passwd", true},
		{"truncated", "6f1c2a9e-8d4b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReportID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateReportID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMongoURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"standard", "mongodb://localhost:27017", false},
		{"srv", "mongodb+srv://cluster.example.net", false},

		{"empty", "", true},
		{"http", "http://localhost:27017", true},
		{"bare host", "localhost:27017", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMongoURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMongoURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRedisAddr(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"host and port", "localhost:6379", false},
		{"ip and port", "10.0.0.5:6380", false},

		{"empty", "", true},
		{"url", "redis://localhost:6379", true},
		{"no port", "localhost", true},
		{"trailing colon", "localhost:", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRedisAddr(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRedisAddr(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
