package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/1siamBot/fountain/engine/particles"
)

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
particles:
  max_particles: 500
sim:
  seed: 7
  max_frame_delta: 250ms
stream:
  interval: 100ms
`))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Particles.MaxParticles = 500
	want.Sim.Seed = 7
	want.Sim.MaxFrameDelta = 250 * time.Millisecond
	want.Stream.Interval = 100 * time.Millisecond
	if cfg != want {
		t.Fatalf("got  %+v\nwant %+v", cfg, want)
	}
	if cfg.Particles.LifeSpan != particles.DefaultConfig().LifeSpan {
		t.Fatal("unset particle key lost its default")
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Fatalf("empty document should give defaults, got %+v", cfg)
	}
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("sim:\n  sed: 3\n"))
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("err = %v, want ErrUnknownKey", err)
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want error
	}{
		{"friction", "particles:\n  friction: 1.5\n", particles.ErrInvalidConfig},
		{"capacity", "particles:\n  max_particles: 0\n", particles.ErrInvalidConfig},
		{"time scale", "sim:\n  time_scale: 0\n", ErrInvalid},
		{"frame cap", "sim:\n  max_frame_delta: -1s\n", ErrInvalid},
		{"tick rate", "sim:\n  tick_rate: 0\n", ErrInvalid},
		{"window", "window:\n  width: 0\n", ErrInvalid},
		{"interval", "stream:\n  interval: 0s\n", ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseBadType(t *testing.T) {
	_, err := Parse([]byte("sim:\n  seed: lots\n"))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if errors.Is(err, ErrUnknownKey) {
		t.Fatal("type mismatch reported as unknown key")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fountain.yaml")
	if err := os.WriteFile(path, []byte("window:\n  title: test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "test" {
		t.Fatalf("title = %q", cfg.Window.Title)
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestLoadShippedExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "fountain.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Particles != particles.DefaultConfig() {
		t.Fatalf("example particles differ from defaults: %+v", cfg.Particles)
	}
}

func TestTickInterval(t *testing.T) {
	if got := (SimConfig{TickRate: 50}).TickInterval(); got != 20*time.Millisecond {
		t.Fatalf("got %v", got)
	}
}
