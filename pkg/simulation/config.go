package simulation

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"os"

	"github.com/j-mye/planetSimulation/pkg/physics"
)

// --- Struktura konfiguracji środowiska ---
type EnvironmentConfig struct {
	Name           string        `json:"name"`
	Dt             float64       `json:"dt"`
	G              float64       `json:"g,omitempty"`
	Softening      float64       `json:"softening,omitempty"`
	TimeScale      float64       `json:"time_scale,omitempty"`
	Collision      string        `json:"collision,omitempty"` // none | bounce | merge
	Restitution    float64       `json:"restitution,omitempty"`
	MergeThreshold float64       `json:"merge_threshold,omitempty"`
	TrailLength    int           `json:"trail_length,omitempty"`
	AutoOrbit      bool          `json:"auto_orbit,omitempty"`
	Bodies         []BodyConfig  `json:"bodies,omitempty"`
	Random         *RandomConfig `json:"random,omitempty"`
}

type BodyConfig struct {
	Mass   float64    `json:"mass"`
	Pos    [2]float64 `json:"pos"`
	Vel    [2]float64 `json:"vel"`
	Radius float64    `json:"radius"`
	Color  string     `json:"color"`
	Locked bool       `json:"locked,omitempty"`
	Anti   bool       `json:"anti,omitempty"`
}

// RandomConfig opisuje losową inicjalizację N ciał z ziarnem -
// ten sam seed daje zawsze identyczny układ startowy
type RandomConfig struct {
	Count     int     `json:"count"`
	Seed      int64   `json:"seed"`
	MassMin   float64 `json:"mass_min,omitempty"`
	MassMax   float64 `json:"mass_max,omitempty"`
	RadiusMin float64 `json:"radius_min,omitempty"`
	RadiusMax float64 `json:"radius_max,omitempty"`
	Spread    float64 `json:"spread,omitempty"`    // promień dysku pozycji startowych
	MaxSpeed  float64 `json:"max_speed,omitempty"` // maksymalna prędkość startowa
}

// SetOrbitalVelocities nadaje ciałom bez prędkości startowej prędkość orbity
// kołowej wokół pierwszego ciała (traktowanego jako centralne): v = sqrt(G*M/r)
func SetOrbitalVelocities(bodies []BodyConfig, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		hasVel := bodies[i].Vel[0] != 0 || bodies[i].Vel[1] != 0
		if hasVel {
			continue
		}

		dx := bodies[i].Pos[0] - central.Pos[0]
		dy := bodies[i].Pos[1] - central.Pos[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * central.Mass / r)
		// skierowanie prędkości prostopadle do wektora pozycji
		bodies[i].Vel[0] = -dy / r * v
		bodies[i].Vel[1] = dx / r * v
	}
}

// --- Wczytanie pliku konfiguracyjnego ---
func LoadEnvironment(path string) (*EnvironmentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("błąd odczytu pliku: %v", err)
	}

	var env EnvironmentConfig
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("błąd parsowania JSON: %v", err)
	}
	return &env, nil
}

func LoadConfig(path string) (*Simulator, error) {
	env, err := LoadEnvironment(path)
	if err != nil {
		return nil, err
	}
	return NewSimulator(*env), nil
}

// --- Tworzenie symulatora z konfiguracji ---
func NewSimulator(cfg EnvironmentConfig) *Simulator {
	if cfg.Dt <= 0 {
		cfg.Dt = 0.0015
	}
	if cfg.G == 0 {
		cfg.G = physics.G
	}
	if cfg.TimeScale == 0 {
		cfg.TimeScale = 1.0
	}
	if cfg.TrailLength <= 0 {
		cfg.TrailLength = physics.DefaultTrailCap
	}

	bodyConfigs := cfg.Bodies
	if cfg.Random != nil {
		bodyConfigs = append(bodyConfigs, randomBodies(cfg.Random)...)
	}
	if cfg.AutoOrbit {
		SetOrbitalVelocities(bodyConfigs, cfg.G)
	}

	bodies := make([]physics.Body, len(bodyConfigs))
	for i, b := range bodyConfigs {
		bodies[i] = physics.Body{
			Mass:   b.Mass,
			Pos:    physics.Vec2{X: b.Pos[0], Y: b.Pos[1]},
			Vel:    physics.Vec2{X: b.Vel[0], Y: b.Vel[1]},
			Radius: b.Radius,
			ColorC: parseColor(b.Color),
			Locked: b.Locked,
			Anti:   b.Anti,
			Trail:  physics.NewTrail(cfg.TrailLength),
		}
	}

	return &Simulator{
		Name:      cfg.Name,
		Dt:        cfg.Dt,
		G:         cfg.G,
		Softening: cfg.Softening,
		TimeScale: cfg.TimeScale,
		Collision: physics.CollisionConfig{
			Policy:         parsePolicy(cfg.Collision),
			Restitution:    cfg.Restitution,
			MergeThreshold: cfg.MergeThreshold,
		},
		Bodies: bodies,
	}
}

// randomBodies generuje Count ciał z deterministycznego generatora
func randomBodies(rc *RandomConfig) []BodyConfig {
	massMin, massMax := rc.MassMin, rc.MassMax
	if massMax <= massMin {
		massMin, massMax = 50.0, 500.0
	}
	radMin, radMax := rc.RadiusMin, rc.RadiusMax
	if radMax <= radMin {
		radMin, radMax = 3.0, 10.0
	}
	spread := rc.Spread
	if spread <= 0 {
		spread = 400.0
	}

	rng := rand.New(rand.NewSource(rc.Seed))
	out := make([]BodyConfig, rc.Count)
	for i := range out {
		// pozycja równomiernie w dysku o promieniu spread
		ang := rng.Float64() * 2 * math.Pi
		r := spread * math.Sqrt(rng.Float64())
		// prędkość równomiernie w dysku o promieniu MaxSpeed
		vAng := rng.Float64() * 2 * math.Pi
		vMag := rc.MaxSpeed * rng.Float64()

		out[i] = BodyConfig{
			Mass:   massMin + rng.Float64()*(massMax-massMin),
			Pos:    [2]float64{r * math.Cos(ang), r * math.Sin(ang)},
			Vel:    [2]float64{vMag * math.Cos(vAng), vMag * math.Sin(vAng)},
			Radius: radMin + rng.Float64()*(radMax-radMin),
			Color:  randomHexColor(rng),
		}
	}
	return out
}

func randomHexColor(rng *rand.Rand) string {
	// jasne pastelowe kolory, żeby ciała były widoczne na ciemnym tle
	r := 96 + rng.Intn(160)
	g := 96 + rng.Intn(160)
	b := 96 + rng.Intn(160)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func parsePolicy(s string) physics.CollisionPolicy {
	switch s {
	case "bounce":
		return physics.CollisionBounce
	case "merge":
		return physics.CollisionMerge
	default:
		return physics.CollisionNone
	}
}

// --- Parser koloru HEX ---
func parseColor(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}
		}
	}
	return color.RGBA{200, 200, 255, 255}
}
