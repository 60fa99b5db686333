package simulation

import (
	"math"
	"testing"

	"github.com/j-mye/planetSimulation/pkg/physics"
)

func totalMomentum(bodies []physics.Body) physics.Vec2 {
	var p physics.Vec2
	for i := range bodies {
		p = p.Add(bodies[i].Vel.Mul(bodies[i].Mass))
	}
	return p
}

func TestStepWithoutBodiesIsNoop(t *testing.T) {
	sim := &Simulator{Dt: 0.01, G: physics.G, TimeScale: 1}
	sim.Step()
	if sim.Steps != 0 {
		t.Errorf("empty step counted: %d", sim.Steps)
	}
}

func TestMomentumConservedWithoutCollisions(t *testing.T) {
	sim := &Simulator{
		Dt:        0.002,
		G:         physics.G,
		Softening: 5.0,
		TimeScale: 1,
		Bodies: []physics.Body{
			{Mass: 100, Pos: physics.Vec2{X: -50}, Vel: physics.Vec2{Y: 3}},
			{Mass: 250, Pos: physics.Vec2{X: 40, Y: 10}, Vel: physics.Vec2{X: -1}},
			{Mass: 75, Pos: physics.Vec2{Y: -60}, Vel: physics.Vec2{X: 2, Y: 1}},
			{Mass: 30, Pos: physics.Vec2{X: 15, Y: 25}},
		},
	}
	before := totalMomentum(sim.Bodies)
	for i := 0; i < 500; i++ {
		sim.Step()
	}
	after := totalMomentum(sim.Bodies)
	if after.Sub(before).Len() > 1e-6 {
		t.Errorf("momentum drifted: %v -> %v", before, after)
	}
}

func TestCircularOrbitReturnsAfterPeriod(t *testing.T) {
	// ciężkie ciało M=1000 w środku, lekkie m=1 na orbicie kołowej r=1;
	// po jednym okresie T = 2*pi*sqrt(r^3/(G*M)) lekkie ciało wraca blisko startu
	const (
		g  = 0.05
		M  = 1000.0
		r  = 1.0
		dt = 0.0015
	)
	v := math.Sqrt(g * M / r)
	period := 2 * math.Pi * math.Sqrt(r*r*r/(g*M))
	steps := int(period/dt + 0.5)

	sim := &Simulator{
		Dt:        dt,
		G:         g,
		Softening: 0,
		TimeScale: 1,
		Bodies: []physics.Body{
			{Mass: M, Pos: physics.Vec2{}, Radius: 0.2},
			{Mass: 1, Pos: physics.Vec2{X: r}, Vel: physics.Vec2{Y: v}, Radius: 0.02},
		},
	}
	start := sim.Bodies[1].Pos
	for i := 0; i < steps; i++ {
		sim.Step()
	}
	if drift := sim.Bodies[1].Pos.Sub(start).Len(); drift > 0.1 {
		t.Errorf("orbit did not close: drift %g after %d steps", drift, steps)
	}
}

func TestMergeReducesBodyCountDuringStep(t *testing.T) {
	sim := &Simulator{
		Dt:        0.01,
		G:         0, // bez grawitacji - czyste zderzenie
		TimeScale: 1,
		Collision: physics.CollisionConfig{
			Policy:         physics.CollisionMerge,
			MergeThreshold: 10,
		},
		Bodies: []physics.Body{
			{Mass: 2, Pos: physics.Vec2{X: -0.4}, Vel: physics.Vec2{X: 1}, Radius: 1},
			{Mass: 4, Pos: physics.Vec2{X: 0.4}, Vel: physics.Vec2{X: -1}, Radius: 1},
		},
	}
	sim.Step()
	if len(sim.Bodies) != 1 {
		t.Fatalf("expected merge to single body, got %d", len(sim.Bodies))
	}
	if sim.Bodies[0].Mass != 6 {
		t.Errorf("expected combined mass 6, got %g", sim.Bodies[0].Mass)
	}
}

func TestAdvanceAccumulatesFixedSteps(t *testing.T) {
	sim := &Simulator{
		Dt:        0.25,
		TimeScale: 1,
		Bodies:    []physics.Body{{Mass: 1, Pos: physics.Vec2{}, Vel: physics.Vec2{X: 1}}},
	}
	if n := sim.Advance(0.875); n != 3 {
		t.Fatalf("expected 3 steps, got %d", n)
	}
	if sim.Pending() != 0.125 {
		t.Errorf("leftover time not preserved: %g", sim.Pending())
	}
	// resztka plus nowa porcja składają się na kolejny krok
	if n := sim.Advance(0.125); n != 1 {
		t.Errorf("expected 1 step from leftover+elapsed, got %d", n)
	}
	if sim.Pending() != 0 {
		t.Errorf("expected drained accumulator, got %g", sim.Pending())
	}
}

func TestAdvanceClampsLag(t *testing.T) {
	// po długiej pauzie nie może nastąpić lawina kroków
	sim := &Simulator{
		Dt:        0.25,
		TimeScale: 1,
		Bodies:    []physics.Body{{Mass: 1}},
	}
	if n := sim.Advance(3600); n != maxSubSteps {
		t.Errorf("expected %d capped steps, got %d", maxSubSteps, n)
	}
	if sim.Pending() != 0 {
		t.Errorf("excess lag should be dropped, got %g", sim.Pending())
	}
}

func TestAdvanceTimeScale(t *testing.T) {
	sim := &Simulator{
		Dt:        0.25,
		TimeScale: 2,
		Bodies:    []physics.Body{{Mass: 1}},
	}
	if n := sim.Advance(0.25); n != 2 {
		t.Errorf("time scale 2x: expected 2 steps, got %d", n)
	}
}

func TestAdvanceRejectsInvalidInput(t *testing.T) {
	sim := &Simulator{Dt: 0, TimeScale: 1, Bodies: []physics.Body{{Mass: 1}}}
	if n := sim.Advance(1); n != 0 {
		t.Errorf("zero dt must not step, got %d", n)
	}
	sim.Dt = 0.25
	if n := sim.Advance(-5); n != 0 {
		t.Errorf("negative elapsed must not step, got %d", n)
	}
}

func TestResetAccumulator(t *testing.T) {
	sim := &Simulator{
		Dt:        0.25,
		TimeScale: 1,
		Bodies:    []physics.Body{{Mass: 1}},
	}
	sim.Advance(0.2)
	if sim.Pending() == 0 {
		t.Fatal("expected pending time before reset")
	}
	sim.ResetAccumulator()
	if sim.Pending() != 0 {
		t.Errorf("accumulator not cleared: %g", sim.Pending())
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	cfg := EnvironmentConfig{
		Name:        "det",
		Dt:          0.002,
		G:           physics.G,
		Softening:   5.0,
		Collision:   "bounce",
		Restitution: 0.8,
		Random:      &RandomConfig{Count: 20, Seed: 7, MaxSpeed: 15},
	}
	a := NewSimulator(cfg)
	b := NewSimulator(cfg)
	for i := 0; i < 300; i++ {
		a.Step()
		b.Step()
	}
	if len(a.Bodies) != len(b.Bodies) {
		t.Fatalf("body counts diverged: %d vs %d", len(a.Bodies), len(b.Bodies))
	}
	for i := range a.Bodies {
		if a.Bodies[i].Pos != b.Bodies[i].Pos || a.Bodies[i].Vel != b.Bodies[i].Vel {
			t.Fatalf("body %d diverged: %v/%v vs %v/%v",
				i, a.Bodies[i].Pos, a.Bodies[i].Vel, b.Bodies[i].Pos, b.Bodies[i].Vel)
		}
	}
}

func TestTotalKineticEnergy(t *testing.T) {
	sim := &Simulator{
		Bodies: []physics.Body{
			{Mass: 2, Vel: physics.Vec2{X: 3}},       // 9
			{Mass: 1, Vel: physics.Vec2{X: 0, Y: 4}}, // 8
			{Mass: 10, Vel: physics.Vec2{}},          // 0
		},
	}
	if got := sim.TotalKineticEnergy(); math.Abs(got-17) > 1e-12 {
		t.Errorf("expected kinetic energy 17, got %g", got)
	}
}
