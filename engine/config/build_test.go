package config

import (
	"testing"
	"time"
)

func TestNewLoopFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Particles.MaxParticles = 50
	cfg.Sim.MaxFrameDelta = 100 * time.Millisecond
	cfg.Sim.TimeScale = 2

	gl, err := cfg.NewLoop()
	if err != nil {
		t.Fatal(err)
	}
	if gl.Engine.Store().Len() != 50 {
		t.Fatalf("capacity = %d", gl.Engine.Store().Len())
	}
	if gl.TimeScale() != 2 {
		t.Fatalf("time scale = %v", gl.TimeScale())
	}
	if lc := cfg.LoopConfig(); lc.MaxFrameDelta != 0.1 {
		t.Fatalf("max frame delta = %v", lc.MaxFrameDelta)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	cfg := Default()
	cfg.Particles.MaxParticles = 100
	a, _ := cfg.NewEngine()
	b, _ := cfg.NewEngine()
	a.Step(0.5, 0.5)
	b.Step(0.5, 0.5)
	for i := 0; i < 100; i++ {
		if a.Store().At(i) != b.Store().At(i) {
			t.Fatalf("slot %d differs", i)
		}
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := Default()
	cfg.Particles.LifeSpan = 0
	if _, err := cfg.NewLoop(); err == nil {
		t.Fatal("expected an error")
	}
}
