package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleConfig struct {
	Threads int     `validate:"gte=1"`
	Mode    string  `validate:"oneof=fast slow"`
	Ratio   float64 `validate:"gte=0,lte=1"`
}

func TestConfigValidator_Positive(t *testing.T) {
	cv := NewConfigValidator("RunConfig")
	cv.Positive("Threads", 0)

	if !cv.HasErrors() {
		t.Error("Expected error for zero value")
	}

	cv2 := NewConfigValidator("RunConfig")
	cv2.Positive("Threads", 4)

	if cv2.HasErrors() {
		t.Error("Expected no error for positive value")
	}
}

func TestConfigValidator_NonNegative(t *testing.T) {
	if !NewConfigValidator("RunConfig").NonNegative("MaxRounds", -1).HasErrors() {
		t.Error("Expected error for negative value")
	}
	if NewConfigValidator("RunConfig").NonNegative("MaxRounds", 0).HasErrors() {
		t.Error("Expected no error for zero")
	}
}

func TestConfigValidator_MaxInt(t *testing.T) {
	if !NewConfigValidator("RunConfig").MaxInt("Threads", 10, 8).HasErrors() {
		t.Error("Expected error above maximum")
	}
	if NewConfigValidator("RunConfig").MaxInt("Threads", 8, 8).HasErrors() {
		t.Error("Expected no error at maximum")
	}
}

func TestConfigValidator_RangeFloat(t *testing.T) {
	tests := []struct {
		value   float64
		wantErr bool
	}{
		{-0.1, true},
		{0, false},
		{0.25, false},
		{1, false},
		{1.5, true},
	}

	for _, tt := range tests {
		cv := NewConfigValidator("RunConfig").RangeFloat("Probability", tt.value, 0, 1)
		if cv.HasErrors() != tt.wantErr {
			t.Errorf("RangeFloat(%g) error = %v, want %v", tt.value, cv.HasErrors(), tt.wantErr)
		}
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"random", "lowest"}
	if NewConfigValidator("RunConfig").OneOf("TieBreak", "random", allowed).HasErrors() {
		t.Error("Expected no error for allowed value")
	}
	if !NewConfigValidator("RunConfig").OneOf("TieBreak", "first", allowed).HasErrors() {
		t.Error("Expected error for disallowed value")
	}
}

func TestConfigValidator_CustomWrapsCause(t *testing.T) {
	cause := errors.New("threads exceed nodes")
	err := NewConfigValidator("RunConfig").
		Custom("Threads", func() error { return cause }).
		Validate()

	if !errors.Is(err, cause) {
		t.Errorf("Validate() = %v, want wrapped cause", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigValidator_CollectsAllErrors(t *testing.T) {
	cv := NewConfigValidator("RunConfig").
		Positive("Threads", 0).
		Positive("Nodes", -3).
		RangeFloat("Probability", 2, 0, 1)

	if got := len(cv.Errors()); got != 3 {
		t.Fatalf("Errors() = %d, want 3", got)
	}

	msg := cv.Validate().Error()
	for _, want := range []string{"RunConfig.Threads", "RunConfig.Nodes", "RunConfig.Probability"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() message missing %q: %s", want, msg)
		}
	}
}

func TestConfigValidator_NoErrors(t *testing.T) {
	if err := NewConfigValidator("RunConfig").Positive("Threads", 1).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestConfigValidator_Struct(t *testing.T) {
	cv := NewConfigValidator("Sample").Struct(&sampleConfig{Threads: 0, Mode: "medium", Ratio: 3})

	if got := len(cv.Errors()); got != 3 {
		t.Fatalf("Errors() = %d, want 3: %v", got, cv.Errors())
	}
	if !strings.HasPrefix(cv.Errors()[0].Error(), "Sample.Threads") {
		t.Errorf("first error = %v", cv.Errors()[0])
	}
}

func TestConfigValidator_RangeInt(t *testing.T) {
	if !NewConfigValidator("RunConfig").RangeInt("Threads", 0, 1, 64).HasErrors() {
		t.Error("Expected error below range")
	}
	if NewConfigValidator("RunConfig").RangeInt("Threads", 64, 1, 64).HasErrors() {
		t.Error("Expected no error at upper bound")
	}
}

func TestConfigValidator_When(t *testing.T) {
	cv := NewConfigValidator("RunConfig").
		When(false, func(cv *ConfigValidator) { cv.Positive("MaxRounds", 0) }).
		When(true, func(cv *ConfigValidator) { cv.Positive("Threads", 2) })
	if cv.HasErrors() {
		t.Errorf("unexpected errors: %v", cv.Errors())
	}

	cv.When(true, func(cv *ConfigValidator) { cv.Positive("MaxRounds", 0) })
	if len(cv.Errors()) != 1 {
		t.Errorf("Expected 1 error, got %d", len(cv.Errors()))
	}
}

func TestDefaultOr(t *testing.T) {
	if got := DefaultOr("", "text"); got != "text" {
		t.Errorf("DefaultOr(\"\") = %q", got)
	}
	if got := DefaultOr("json", "text"); got != "json" {
		t.Errorf("DefaultOr(\"json\") = %q", got)
	}
	if got := DefaultOr(0.0, 0.25); got != 0.25 {
		t.Errorf("DefaultOr(0) = %g", got)
	}
}
