package simulation

import (
	"github.com/j-mye/planetSimulation/pkg/physics"
)

// maxSubSteps ogranicza liczbę kroków fizyki na jedną klatkę - zabezpieczenie
// przed lawiną nadrabiania po przycięciu hosta (tzw. spirala śmierci)
const maxSubSteps = 10

// --- Główna struktura symulatora ---
type Simulator struct {
	Name      string
	Dt        float64 // stały krok czasowy
	G         float64
	Softening float64
	TimeScale float64 // mnożnik upływu czasu dla sterownika klatek
	Collision physics.CollisionConfig
	Bodies    []physics.Body

	Steps int // liczba wykonanych kroków od (re)inicjalizacji

	acc float64 // akumulator czasu rzeczywistego
}

// Step wykonuje jeden pełny krok symulacji: siły -> integracja -> zderzenia.
// Z perspektywy wywołującego krok jest atomowy - stan częściowy nie jest
// nigdzie widoczny. Krok bez ciał jest bezpiecznym no-opem.
func (s *Simulator) Step() {
	if len(s.Bodies) == 0 {
		return
	}
	physics.ComputeForces(s.Bodies, s.G, s.Softening)
	physics.IntegrateEulerSymplectic(s.Bodies, s.Dt)
	s.Bodies = physics.ResolveCollisions(s.Bodies, s.Collision)
	s.Steps++
}

// Advance akumuluje czas rzeczywisty (przemnożony przez TimeScale) i wykonuje
// tyle stałych kroków, ile się zmieści, maksymalnie maxSubSteps. Nadmiar
// zalegania jest przycinany, a resztka poniżej jednego Dt zostaje w
// akumulatorze na kolejne klatki. Zwraca liczbę wykonanych kroków.
func (s *Simulator) Advance(elapsed float64) int {
	if s.Dt <= 0 || elapsed < 0 {
		return 0
	}
	s.acc += elapsed * s.TimeScale
	if lagCap := float64(maxSubSteps) * s.Dt; s.acc > lagCap {
		// przycięcie zalegania: nadmiarowy czas po prostu przepada
		s.acc = lagCap
	}
	n := 0
	for s.acc >= s.Dt && n < maxSubSteps {
		s.Step()
		s.acc -= s.Dt
		n++
	}
	return n
}

// Pending zwraca czas zalegający w akumulatorze (mniejszy niż jeden Dt
// zaraz po Advance)
func (s *Simulator) Pending() float64 {
	return s.acc
}

// ResetAccumulator zeruje akumulator czasu - wywoływane przy reinicjalizacji,
// żeby po resecie nie nastąpiła seria kroków nadrabiających
func (s *Simulator) ResetAccumulator() {
	s.acc = 0
}

// TotalKineticEnergy zwraca sumę energii kinetycznej wszystkich ciał
func (s *Simulator) TotalKineticEnergy() float64 {
	total := 0.0
	for i := range s.Bodies {
		total += s.Bodies[i].KineticEnergy()
	}
	return total
}
