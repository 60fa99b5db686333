package physics

import (
	"image/color"
	"math"
)

// --- Polityka zderzeń ---
type CollisionPolicy int

const (
	CollisionNone   CollisionPolicy = iota // zderzenia wyłączone
	CollisionBounce                        // odbicie impulsowe z restytucją
	CollisionMerge                         // łączenie wolnych ciał, inaczej odbicie
)

const (
	// penetrationSlop - tolerancja nakładania, poniżej której nie korygujemy pozycji
	penetrationSlop = 0.01
	// correctionPercent - ułamek penetracji usuwany w jednym kroku (korekcja Baumgarte)
	correctionPercent = 0.4
	// minSeparation - poniżej tej odległości normalna jest niewyznaczalna
	minSeparation = 1e-9
)

// CollisionConfig - jawne parametry resolvera, przekazywane przy każdym wywołaniu
type CollisionConfig struct {
	Policy         CollisionPolicy
	Restitution    float64 // e z [0,1]: 1 = sprężyste, 0 = doskonale niesprężyste
	MergeThreshold float64 // próg prędkości względnej, poniżej którego ciała się łączą
}

// ResolveCollisions wykrywa nakładające się pary i rozwiązuje je zgodnie
// z polityką. Przy łączeniu ciało wchłonięte jest tylko oznaczane w trakcie
// przebiegu, a fizycznie usuwane dopiero po nim (malejąco po indeksach),
// żeby nie psuć indeksowania par jeszcze nieprzetworzonych.
// Zwraca kolekcję, potencjalnie skróconą o wchłonięte ciała.
func ResolveCollisions(bodies []Body, cfg CollisionConfig) []Body {
	if cfg.Policy == CollisionNone || len(bodies) < 2 {
		return bodies
	}

	var absorbed []bool
	if cfg.Policy == CollisionMerge {
		absorbed = make([]bool, len(bodies))
	}

	for i := 0; i < len(bodies); i++ {
		if absorbed != nil && absorbed[i] {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if absorbed != nil && absorbed[j] {
				continue
			}
			a := &bodies[i]
			b := &bodies[j]

			delta := b.Pos.Sub(a.Pos)
			dist := delta.Len()
			rsum := a.Radius + b.Radius
			if dist > rsum || rsum == 0 {
				// brak kontaktu (albo zdegenerowane zerowe promienie)
				continue
			}

			if cfg.Policy == CollisionMerge && a.Vel.Sub(b.Vel).Len() < cfg.MergeThreshold {
				mergeBodies(a, b)
				absorbed[j] = true
				continue
			}

			resolveBounce(a, b, delta, dist, rsum, cfg.Restitution)
		}
	}

	if absorbed != nil {
		for i := len(bodies) - 1; i >= 0; i-- {
			if absorbed[i] {
				bodies = append(bodies[:i], bodies[i+1:]...)
			}
		}
	}
	return bodies
}

// resolveBounce stosuje impuls wzdłuż normalnej zderzenia oraz korekcję
// pozycyjną proporcjonalną do głębokości penetracji. Ciała nieruchome
// (Locked lub masa niedodatnia) mają zerową odwrotność masy i nie są ruszane.
func resolveBounce(a, b *Body, delta Vec2, dist, rsum, e float64) {
	invA := a.InvMass()
	invB := b.InvMass()
	invSum := invA + invB
	if invSum == 0 {
		// dwa ciała nieruchome - nie ma czego rozwiązywać
		return
	}

	// normalna od a do b; przy niemal zerowej separacji oś umowna
	normal := Vec2{X: 1, Y: 0}
	if dist > minSeparation {
		normal = delta.Mul(1 / dist)
	}

	velAlong := b.Vel.Sub(a.Vel).Dot(normal)
	if velAlong < 0 {
		// ciała się zbliżają - impuls z restytucją
		jmag := -(1 + e) * velAlong / invSum
		impulse := normal.Mul(jmag)
		a.Vel = a.Vel.Sub(impulse.Mul(invA))
		b.Vel = b.Vel.Add(impulse.Mul(invB))
	}
	// gdy velAlong >= 0 ciała już się rozchodzą - nie ściągamy ich z powrotem

	// korekcja pozycyjna: rozsuń ciała proporcjonalnie do odwrotności mas
	pen := rsum - dist
	if pen > penetrationSlop {
		corr := normal.Mul(correctionPercent * (pen - penetrationSlop) / invSum)
		a.Pos = a.Pos.Sub(corr.Mul(invA))
		b.Pos = b.Pos.Add(corr.Mul(invB))
	}
}

// mergeBodies wchłania b do a: suma mas, średnia ważona pędem dla prędkości,
// środek masy dla pozycji, promień zachowujący objętość, kolor mieszany
// wagą mas. Ślad przejmuje ciało przetrwałe.
func mergeBodies(a, b *Body) {
	m1 := a.Mass
	m2 := b.Mass
	msum := m1 + m2

	if msum > 0 {
		a.Vel = a.Vel.Mul(m1).Add(b.Vel.Mul(m2)).Mul(1 / msum)
		a.Pos = a.Pos.Mul(m1).Add(b.Pos.Mul(m2)).Mul(1 / msum)
		a.ColorC = blendRGBA(a.ColorC, b.ColorC, m1/msum)
		if m2 > m1 {
			// flagi przejmuje cięższe ciało
			a.Locked = b.Locked
			a.Anti = b.Anti
		}
	} else {
		// zdegenerowana para bez masy: środek geometryczny, bez NaN
		a.Pos = a.Pos.Add(b.Pos).Mul(0.5)
		a.Vel = a.Vel.Add(b.Vel).Mul(0.5)
	}

	r1 := a.Radius
	r2 := b.Radius
	a.Radius = math.Cbrt(r1*r1*r1 + r2*r2*r2)
	a.Mass = msum
}

// blendRGBA miesza dwa kolory z wagą w dla pierwszego
func blendRGBA(c1, c2 color.RGBA, w float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*w + float64(y)*(1-w)))
	}
	return color.RGBA{mix(c1.R, c2.R), mix(c1.G, c2.G), mix(c1.B, c2.B), mix(c1.A, c2.A)}
}
