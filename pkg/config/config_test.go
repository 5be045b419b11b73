package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-labelprop/pkg/algorithms"
	"github.com/dd0wney/cluso-labelprop/pkg/validation"
)

func TestFromFlags(t *testing.T) {
	cfg, err := FromFlags([]string{
		"-t", "4", "-s", "100", "-p", "0.1", "-seed", "7",
		"-tie", "lowest", "-stability", "one-round", "-max-rounds", "50",
		"-format", "json", "-quiet", "-watch", "-verify",
	}, io.Discard)
	if err != nil {
		t.Fatalf("FromFlags failed: %v", err)
	}

	want := Config{
		Threads:     4,
		Nodes:       100,
		Probability: 0.1,
		Seed:        7,
		TieBreak:    "lowest",
		Stability:   "one-round",
		MaxRounds:   50,
		Format:      "json",
		Quiet:       true,
		Watch:       true,
		Verify:      true,
		LogLevel:    "INFO",
	}
	if *cfg != want {
		t.Errorf("FromFlags = %+v, want %+v", *cfg, want)
	}
}

func TestFromFlags_Defaults(t *testing.T) {
	cfg, err := FromFlags([]string{"-t", "2", "-s", "10"}, io.Discard)
	if err != nil {
		t.Fatalf("FromFlags failed: %v", err)
	}

	if cfg.Probability != 0.25 {
		t.Errorf("Probability = %g, want 0.25", cfg.Probability)
	}
	if cfg.TieBreak != "random" || cfg.Stability != "two-round" || cfg.Format != "text" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults with -t and -s should validate: %v", err)
	}
}

func TestFromFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unparsable thread count", []string{"-t", "four", "-s", "10"}},
		{"missing flag value", []string{"-s"}},
		{"unknown flag", []string{"-x"}},
		{"positional argument", []string{"-t", "1", "-s", "2", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromFlags(tt.args, io.Discard); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestFromFlags_Help(t *testing.T) {
	var out strings.Builder
	_, err := FromFlags([]string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(out.String(), "-max-rounds") {
		t.Errorf("usage does not list flags: %q", out.String())
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Threads, cfg.Nodes = 2, 10
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing threads", func(c *Config) { c.Threads = 0 }, "Threads"},
		{"missing nodes", func(c *Config) { c.Nodes = 0 }, "Nodes"},
		{"negative nodes", func(c *Config) { c.Nodes = -5 }, "Nodes"},
		{"probability above one", func(c *Config) { c.Probability = 1.5 }, "Probability"},
		{"unknown tie-break", func(c *Config) { c.TieBreak = "first" }, "TieBreak"},
		{"unknown stability", func(c *Config) { c.Stability = "eventual" }, "Stability"},
		{"negative max rounds", func(c *Config) { c.MaxRounds = -1 }, "MaxRounds"},
		{"unknown format", func(c *Config) { c.Format = "xml" }, "Format"},
		{"one-round unbounded", func(c *Config) { c.Stability = "one-round" }, "MaxRounds"},
		{"one-round bounded", func(c *Config) { c.Stability = "one-round"; c.MaxRounds = 20 }, ""},
		{"verify with random tie-break", func(c *Config) { c.Verify = true }, "TieBreak"},
		{"verify with lowest tie-break", func(c *Config) { c.Verify = true; c.TieBreak = "lowest" }, ""},
		{"more threads than nodes", func(c *Config) { c.Threads = 50 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error mentioning %s", tt.wantErr)
			}
			if !errors.Is(err, validation.ErrInvalidConfig) {
				t.Errorf("error does not wrap ErrInvalidConfig: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllFailures(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error for missing threads and nodes")
	}
	for _, field := range []string{"Threads", "Nodes"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(func(key string) string {
		if key == EnvLogLevel {
			return " debug "
		}
		return ""
	})
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}

	cfg.ApplyEnv(func(string) string { return "" })
	if cfg.LogLevel != "debug" {
		t.Errorf("empty env must not reset LogLevel, got %q", cfg.LogLevel)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load([]string{"-t", "3", "-s", "30"}, io.Discard)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}

	if _, err := Load([]string{"-t", "0", "-s", "30"}, io.Discard); !errors.Is(err, validation.ErrInvalidConfig) {
		t.Errorf("Load with zero threads: error = %v, want ErrInvalidConfig", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Threads, cfg.Nodes, cfg.Seed, cfg.MaxRounds = 3, 9, 11, 40
	cfg.TieBreak = "lowest"

	opts := cfg.Options()
	if opts.Workers != 3 || opts.Seed != 11 || opts.MaxRounds != 40 {
		t.Errorf("Options = %+v", opts)
	}
	if opts.TieBreak != algorithms.TieBreakLowest || opts.Stability != algorithms.StabilityTwoRound {
		t.Errorf("Options policies = %q/%q", opts.TieBreak, opts.Stability)
	}
}
