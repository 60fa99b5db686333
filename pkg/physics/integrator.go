package physics

// IntegrateEulerSymplectic wykonuje jeden krok metodą semi-implicit Euler.
// Kolejność jest istotna: najpierw prędkość z już policzonej siły, potem
// pozycja z nowej prędkości - to daje dużo stabilniejszą energię na orbitach
// niż jawny Euler. Każde ciało aktualizowane jest dokładnie raz, a kolejność
// ciał nie ma wpływu na wynik (siły są już sfinalizowane).
func IntegrateEulerSymplectic(bodies []Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]

		if b.Locked {
			// nie aktualizujemy prędkości i pozycji zablokowanego ciała
			b.Vel = Vec2{0, 0}
			continue
		}
		if b.Mass <= 0 {
			// masa niedodatnia = ciało nieruchome
			continue
		}

		// najpierw aktualizujemy prędkość
		b.Vel = b.Vel.Add(b.Force.Mul(dt / b.Mass))

		// następnie aktualizujemy pozycję według nowej prędkości
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))

		if b.Trail != nil {
			b.Trail.Push(b.Pos)
		}
	}
}
