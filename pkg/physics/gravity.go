package physics

// G - domyślna stała grawitacji (sztucznie zwiększona dla wizualizacji)
const G = 6.67430e-1

// DefaultSoftening - domyślny parametr softeningu, dostosuj do skali układu
const DefaultSoftening = 5.0

// ComputeForces liczy siły grawitacyjne dla wszystkich par ciał i akumuluje
// je w polu Force. Pole Force jest zerowane na wejściu - nie przenosi się
// między krokami. Każda para liczona jest raz (akcja-reakcja), więc praca
// to n(n-1)/2 par. Pozycje i prędkości nie są tu modyfikowane.
func ComputeForces(bodies []Body, g, eps float64) {
	for i := range bodies {
		bodies[i].Force = Vec2{}
	}
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			f := pairForce(&bodies[i], &bodies[j], g, eps)
			bodies[i].Force = bodies[i].Force.Add(f)
			bodies[j].Force = bodies[j].Force.Sub(f)
		}
	}
}

// pairForce zwraca siłę działającą na a od b
func pairForce(a, b *Body, g, eps float64) Vec2 {
	dir := b.Pos.Sub(a.Pos)
	dist2 := dir.LenSq() + eps*eps // softening
	if dist2 == 0 {
		// pokrywające się ciała bez softeningu - pomiń parę
		return Vec2{}
	}
	f := g * a.Mass * b.Mass / dist2
	if a.Anti != b.Anti {
		f = -f
	}
	return dir.Normalize().Mul(f)
}

// PairForceMagnitude zwraca wartość siły między dwoma ciałami
// (pomocnicze dla warstwy GUI - wykres siły)
func PairForceMagnitude(a, b Body, g, eps float64) float64 {
	dist2 := b.Pos.Sub(a.Pos).LenSq() + eps*eps
	if dist2 == 0 {
		return 0
	}
	return g * a.Mass * b.Mass / dist2
}
