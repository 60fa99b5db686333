package physics

import (
	"image/color"
)

const (
	// DefaultTrailCap - domyślna liczba próbek śladu na ciało
	DefaultTrailCap = 500
	// MaxTrailCap - twardy limit pojemności śladu
	MaxTrailCap = 1000
)

// --- Ślad ciała: bufor pierścieniowy FIFO przeszłych pozycji ---
type Trail struct {
	samples []Vec2
	head    int // indeks najstarszej próbki
	count   int
}

// NewTrail tworzy ślad o podanej pojemności (przycięty do MaxTrailCap)
func NewTrail(capacity int) *Trail {
	if capacity <= 0 {
		capacity = DefaultTrailCap
	}
	if capacity > MaxTrailCap {
		capacity = MaxTrailCap
	}
	return &Trail{samples: make([]Vec2, capacity)}
}

func (t *Trail) Cap() int {
	return len(t.samples)
}

func (t *Trail) Len() int {
	return t.count
}

// Push dopisuje próbkę, wypierając najstarszą gdy bufor jest pełny
func (t *Trail) Push(p Vec2) {
	if t.count < len(t.samples) {
		t.samples[(t.head+t.count)%len(t.samples)] = p
		t.count++
		return
	}
	t.samples[t.head] = p
	t.head = (t.head + 1) % len(t.samples)
}

// At zwraca próbkę o indeksie i, gdzie 0 to najstarsza
func (t *Trail) At(i int) Vec2 {
	return t.samples[(t.head+i)%len(t.samples)]
}

// Points zwraca kopię próbek od najstarszej do najnowszej
func (t *Trail) Points() []Vec2 {
	out := make([]Vec2, t.count)
	for i := 0; i < t.count; i++ {
		out[i] = t.At(i)
	}
	return out
}

func (t *Trail) Reset() {
	t.head = 0
	t.count = 0
}

// --- Ciało fizyczne ---
type Body struct {
	Mass   float64
	Pos    Vec2
	Vel    Vec2
	Force  Vec2 // skumulowana siła, zerowana na początku każdego kroku
	Radius float64
	ColorC color.RGBA
	Locked bool // zablokowane: nie porusza się, nieskończona masa w zderzeniach
	Anti   bool // antygrawitacyjne: para ciał o różnych flagach się odpycha
	Trail  *Trail
}

// InvMass zwraca odwrotność masy; 0 dla ciał nieruchomych
// (zablokowanych lub o masie niedodatniej)
func (b *Body) InvMass() float64 {
	if b.Locked || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

func (b Body) Color() color.Color {
	return b.ColorC
}

// KineticEnergy zwraca energię kinetyczną ciała
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.LenSq()
}
