package simulation

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/j-mye/planetSimulation/pkg/physics"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0080", color.RGBA{255, 0, 128, 255}},
		{"#000000", color.RGBA{0, 0, 0, 255}},
		{"not-a-color", color.RGBA{200, 200, 255, 255}},
		{"", color.RGBA{200, 200, 255, 255}},
		{"#12345", color.RGBA{200, 200, 255, 255}},
	}
	for _, c := range cases {
		if got := parseColor(c.in); got != c.want {
			t.Errorf("parseColor(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]physics.CollisionPolicy{
		"bounce":  physics.CollisionBounce,
		"merge":   physics.CollisionMerge,
		"none":    physics.CollisionNone,
		"":        physics.CollisionNone,
		"unknown": physics.CollisionNone,
	}
	for in, want := range cases {
		if got := parsePolicy(in); got != want {
			t.Errorf("parsePolicy(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestSetOrbitalVelocities(t *testing.T) {
	g := 0.05
	bodies := []BodyConfig{
		{Mass: 1000, Pos: [2]float64{0, 0}},
		{Mass: 5, Pos: [2]float64{0, 2}},
		{Mass: 3, Pos: [2]float64{1, 0}, Vel: [2]float64{0, 9}},
	}
	SetOrbitalVelocities(bodies, g)

	// ciało bez prędkości dostaje orbitę kołową: v prostopadłe, |v| = sqrt(G*M/r)
	want := math.Sqrt(g * 1000 / 2)
	got := math.Hypot(bodies[1].Vel[0], bodies[1].Vel[1])
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected speed %g, got %g", want, got)
	}
	radial := bodies[1].Pos[0]*bodies[1].Vel[0] + bodies[1].Pos[1]*bodies[1].Vel[1]
	if math.Abs(radial) > 1e-12 {
		t.Errorf("velocity not tangential, radial component %g", radial)
	}

	// ciało z zadaną prędkością zostaje nietknięte
	if bodies[2].Vel != [2]float64{0, 9} {
		t.Errorf("preset velocity overwritten: %v", bodies[2].Vel)
	}
}

func TestNewSimulatorDefaults(t *testing.T) {
	sim := NewSimulator(EnvironmentConfig{
		Name:   "defaults",
		Bodies: []BodyConfig{{Mass: 1, Radius: 1}},
	})
	if sim.Dt != 0.0015 {
		t.Errorf("expected default dt 0.0015, got %g", sim.Dt)
	}
	if sim.G != physics.G {
		t.Errorf("expected default G, got %g", sim.G)
	}
	if sim.TimeScale != 1 {
		t.Errorf("expected default time scale 1, got %g", sim.TimeScale)
	}
	if tr := sim.Bodies[0].Trail; tr == nil || tr.Cap() != physics.DefaultTrailCap {
		t.Errorf("expected default trail capacity %d", physics.DefaultTrailCap)
	}
	if sim.Collision.Policy != physics.CollisionNone {
		t.Errorf("expected collisions off by default")
	}
}

func TestNewSimulatorBodyFields(t *testing.T) {
	sim := NewSimulator(EnvironmentConfig{
		Dt: 0.01,
		Bodies: []BodyConfig{
			{Mass: 7, Pos: [2]float64{1, 2}, Vel: [2]float64{3, 4}, Radius: 5, Color: "#102030", Locked: true, Anti: true},
		},
	})
	b := sim.Bodies[0]
	if b.Mass != 7 || b.Pos != (physics.Vec2{X: 1, Y: 2}) || b.Vel != (physics.Vec2{X: 3, Y: 4}) || b.Radius != 5 {
		t.Errorf("body fields not mapped: %+v", b)
	}
	if b.ColorC != (color.RGBA{16, 32, 48, 255}) {
		t.Errorf("color not parsed: %v", b.ColorC)
	}
	if !b.Locked || !b.Anti {
		t.Error("flags not mapped")
	}
}

func TestRandomBodiesDeterministic(t *testing.T) {
	rc := &RandomConfig{Count: 25, Seed: 1337, MaxSpeed: 10}
	a := randomBodies(rc)
	b := randomBodies(rc)
	if len(a) != 25 || len(b) != 25 {
		t.Fatalf("expected 25 bodies, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("body %d differs for identical seed: %+v vs %+v", i, a[i], b[i])
		}
	}

	other := randomBodies(&RandomConfig{Count: 25, Seed: 42, MaxSpeed: 10})
	same := true
	for i := range a {
		if a[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical bodies")
	}
}

func TestRandomBodiesRanges(t *testing.T) {
	rc := &RandomConfig{
		Count: 50, Seed: 9,
		MassMin: 10, MassMax: 20,
		RadiusMin: 1, RadiusMax: 2,
		Spread: 100, MaxSpeed: 5,
	}
	for i, b := range randomBodies(rc) {
		if b.Mass < 10 || b.Mass > 20 {
			t.Errorf("body %d: mass %g out of range", i, b.Mass)
		}
		if b.Radius < 1 || b.Radius > 2 {
			t.Errorf("body %d: radius %g out of range", i, b.Radius)
		}
		if r := math.Hypot(b.Pos[0], b.Pos[1]); r > 100 {
			t.Errorf("body %d: position outside spread: %g", i, r)
		}
		if v := math.Hypot(b.Vel[0], b.Vel[1]); v > 5 {
			t.Errorf("body %d: speed %g above max", i, v)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	raw := `{
		"name": "test-env",
		"dt": 0.01,
		"g": 0.5,
		"softening": 2.0,
		"time_scale": 4.0,
		"collision": "merge",
		"restitution": 0.7,
		"merge_threshold": 12.0,
		"trail_length": 100,
		"bodies": [
			{ "mass": 10, "pos": [1, 2], "vel": [0, 0], "radius": 3, "color": "#ffffff" }
		]
	}`
	path := filepath.Join(t.TempDir(), "test-env.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	sim, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if sim.Name != "test-env" || sim.Dt != 0.01 || sim.G != 0.5 || sim.Softening != 2.0 || sim.TimeScale != 4.0 {
		t.Errorf("scalar parameters not loaded: %+v", sim)
	}
	if sim.Collision.Policy != physics.CollisionMerge || sim.Collision.Restitution != 0.7 || sim.Collision.MergeThreshold != 12.0 {
		t.Errorf("collision config not loaded: %+v", sim.Collision)
	}
	if len(sim.Bodies) != 1 || sim.Bodies[0].Trail.Cap() != 100 {
		t.Errorf("bodies not loaded as configured")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestAutoOrbitAppliedOnLoad(t *testing.T) {
	sim := NewSimulator(EnvironmentConfig{
		Dt:        0.01,
		G:         0.05,
		AutoOrbit: true,
		Bodies: []BodyConfig{
			{Mass: 1000, Pos: [2]float64{0, 0}, Radius: 1},
			{Mass: 1, Pos: [2]float64{0, 0.8}, Radius: 0.1},
		},
	})
	want := math.Sqrt(0.05 * 1000 / 0.8)
	if got := sim.Bodies[1].Vel.Len(); math.Abs(got-want) > 1e-12 {
		t.Errorf("auto-orbit velocity: expected %g, got %g", want, got)
	}
}
