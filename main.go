package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"

	"golang.org/x/image/font/basicfont"

	"github.com/j-mye/planetSimulation/pkg/physics"
	"github.com/j-mye/planetSimulation/pkg/simulation"
)

const (
	screenWidth  = 1600
	screenHeight = 900

	// UI
	uiBtnW   = 100
	uiBtnH   = 28
	uiBtnPad = 12

	// wykres siły
	graphW = 360
	graphH = 120

	// kamera
	defaultZoom   = 1.0
	minZoom       = 0.02
	maxZoom       = 400.0
	autoZoomSpeed = 3.0 // szybkość dochodzenia kamery do celu (1/s)
)

// --- Kamera 2D: pan/zoom + opcjonalne automatyczne kadrowanie ---
type Camera struct {
	Pos      physics.Vec2 // punkt świata w środku ekranu
	Zoom     float64      // piksele na jednostkę świata
	AutoZoom bool
}

func (c *Camera) worldToScreen(p physics.Vec2) (float64, float64) {
	return float64(screenWidth)/2 + (p.X-c.Pos.X)*c.Zoom,
		float64(screenHeight)/2 + (p.Y-c.Pos.Y)*c.Zoom
}

func (c *Camera) screenToWorld(mx, my int) physics.Vec2 {
	return physics.Vec2{
		X: c.Pos.X + (float64(mx)-float64(screenWidth)/2)/c.Zoom,
		Y: c.Pos.Y + (float64(my)-float64(screenHeight)/2)/c.Zoom,
	}
}

func (c *Camera) zoomBy(f float64) {
	c.Zoom *= f
	if c.Zoom < minZoom {
		c.Zoom = minZoom
	}
	if c.Zoom > maxZoom {
		c.Zoom = maxZoom
	}
}

// update płynnie dopasowuje kadr tak, żeby wszystkie ciała były widoczne
func (c *Camera) update(bodies []physics.Body, dt float64) {
	if !c.AutoZoom || len(bodies) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range bodies {
		p := bodies[i].Pos
		r := bodies[i].Radius
		minX = math.Min(minX, p.X-r)
		minY = math.Min(minY, p.Y-r)
		maxX = math.Max(maxX, p.X+r)
		maxY = math.Max(maxY, p.Y+r)
	}
	target := physics.Vec2{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	spanX := math.Max(maxX-minX, 1e-6)
	spanY := math.Max(maxY-minY, 1e-6)
	// 20% marginesu wokół układu
	targetZoom := math.Min(float64(screenWidth)/(spanX*1.2), float64(screenHeight)/(spanY*1.2))
	targetZoom = math.Min(math.Max(targetZoom, minZoom), maxZoom)

	t := math.Min(autoZoomSpeed*dt, 1.0)
	c.Pos = c.Pos.Add(target.Sub(c.Pos).Mul(t))
	c.Zoom += (targetZoom - c.Zoom) * t
}

// Game ---
type Game struct {
	sim      *simulation.Simulator
	cam      Camera
	paused   bool
	lastTime time.Time

	selA int
	selB int

	forceHistory    []float64
	forceHistoryMax int

	// tryb dodawania nowych ciał
	addMode   bool
	addLocked bool
	addAnti   bool
	addMass   float64
	addRadius float64

	shortcutsVisible bool
	resetModalOpen   bool

	// ścieżka do oryginalnego pliku konfiguracyjnego (do resetu)
	initialConfigPath string
}

// Update ---
func (g *Game) Update() error {
	now := time.Now()
	elapsed := now.Sub(g.lastTime).Seconds()
	g.lastTime = now

	g.handleKeys()
	g.handleMouse()

	if g.resetModalOpen {
		if inpututil.IsKeyJustPressed(ebiten.KeyY) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			if err := g.resetSimulation(); err != nil {
				log.Printf("Reset failed: %v", err)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.resetModalOpen = false
		}
		return nil
	}

	if !g.paused {
		// sterownik niezależny od klatek: stałe kroki z akumulatora czasu
		steps := g.sim.Advance(elapsed)
		if steps > 0 {
			g.recordForceHistory()
		}
	}
	// po scaleniu ciał zaznaczenia mogą wskazywać poza kolekcję
	if g.selA >= len(g.sim.Bodies) {
		g.selA = -1
	}
	if g.selB >= len(g.sim.Bodies) {
		g.selB = -1
	}
	g.cam.update(g.sim.Bodies, elapsed)
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.sim.Step()
		g.recordForceHistory()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shortcutsVisible = !g.shortcutsVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.cam.AutoZoom = !g.cam.AutoZoom
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.toggleAddMode()
	}

	// skala czasu symulacji
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.sim.TimeScale *= 0.5
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.sim.TimeScale *= 2.0
	}

	// kamera: pan strzałkami, zoom =/- (wyłącza auto-zoom)
	panStep := 8.0 / g.cam.Zoom
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.cam.Pos.X -= panStep
		g.cam.AutoZoom = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.cam.Pos.X += panStep
		g.cam.AutoZoom = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.cam.Pos.Y -= panStep
		g.cam.AutoZoom = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.cam.Pos.Y += panStep
		g.cam.AutoZoom = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) {
		g.cam.zoomBy(1.02)
		g.cam.AutoZoom = false
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) {
		g.cam.zoomBy(1 / 1.02)
		g.cam.AutoZoom = false
	}

	// modyfikacje zaznaczonego ciała albo parametrów nowego ciała
	if g.addMode {
		if inpututil.IsKeyJustPressed(ebiten.KeyL) {
			g.addLocked = !g.addLocked
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			g.addAnti = !g.addAnti
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyK) {
			g.addMass *= 1.1
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
			g.addMass *= 0.9
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.addRadius *= 1.1
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyT) {
			g.addRadius *= 0.9
		}
		return
	}
	if g.selA < 0 || g.selA >= len(g.sim.Bodies) {
		return
	}
	sel := &g.sim.Bodies[g.selA]
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		sel.Locked = !sel.Locked
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		sel.Anti = !sel.Anti
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		sel.Mass *= 1.1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		sel.Mass *= 0.9
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		sel.Radius *= 1.1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		sel.Radius *= 0.9
	}
}

func (g *Game) toggleAddMode() {
	g.addMode = !g.addMode
	if g.addMode {
		g.addMass = 100.0
		g.addRadius = 8.0
		g.addLocked = false
		g.addAnti = false
	}
}

// buttonRects zwraca pozycje przycisków w prawym górnym rogu
func buttonRects() (pauseX, stepX, quitX, resetX, addX, y int) {
	pauseX = screenWidth - uiBtnPad - uiBtnW
	stepX = pauseX - uiBtnPad - uiBtnW
	quitX = stepX - uiBtnPad - uiBtnW
	resetX = quitX - uiBtnPad - uiBtnW
	addX = resetX - uiBtnPad - uiBtnW
	y = uiBtnPad
	return
}

func (g *Game) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pauseX, stepX, quitX, resetX, addX, btnY := buttonRects()

	// modal resetu przechwytuje wszystkie kliknięcia
	if g.resetModalOpen {
		mw, mh := 360, 120
		mx0 := (screenWidth - mw) / 2
		my0 := (screenHeight - mh) / 2
		yesX := mx0 + 40
		noX := mx0 + mw - 40 - uiBtnW
		btnRow := my0 + mh - 44
		if pointInRect(mx, my, yesX, btnRow, uiBtnW, uiBtnH) {
			if err := g.resetSimulation(); err != nil {
				log.Printf("Reset failed: %v", err)
			}
			return
		}
		if pointInRect(mx, my, noX, btnRow, uiBtnW, uiBtnH) {
			g.resetModalOpen = false
			return
		}
		// klik poza modal zamyka modal
		g.resetModalOpen = false
		return
	}

	switch {
	case pointInRect(mx, my, pauseX, btnY, uiBtnW, uiBtnH):
		g.paused = !g.paused
		return
	case pointInRect(mx, my, stepX, btnY, uiBtnW, uiBtnH):
		if g.paused {
			g.sim.Step()
			g.recordForceHistory()
		}
		return
	case pointInRect(mx, my, quitX, btnY, uiBtnW, uiBtnH):
		os.Exit(0)
		return
	case pointInRect(mx, my, resetX, btnY, uiBtnW, uiBtnH):
		g.resetModalOpen = true
		return
	case pointInRect(mx, my, addX, btnY, uiBtnW, uiBtnH):
		g.toggleAddMode()
		return
	}

	// tryb dodawania: klik poza UI wstawia nowe ciało pod kursorem
	if g.addMode {
		nb := physics.Body{
			Mass:   g.addMass,
			Pos:    g.cam.screenToWorld(mx, my),
			Radius: g.addRadius,
			ColorC: color.RGBA{200, 200, 255, 255},
			Locked: g.addLocked,
			Anti:   g.addAnti,
			Trail:  physics.NewTrail(physics.DefaultTrailCap),
		}
		if nb.Anti {
			nb.ColorC = color.RGBA{255, 120, 120, 255}
		} else if nb.Locked {
			nb.ColorC = color.RGBA{200, 200, 200, 255}
		}
		g.sim.Bodies = append(g.sim.Bodies, nb)
		return
	}

	// wybór ciała kliknięciem (A potem B jak u pary do wykresu siły)
	mouse := g.cam.screenToWorld(mx, my)
	clicked := -1
	minD := math.Inf(1)
	for i := range g.sim.Bodies {
		b := &g.sim.Bodies[i]
		d := b.Pos.Sub(mouse).Len()
		// promień kliknięcia min. kilka pikseli, żeby dało się trafić małe ciała
		hitR := math.Max(b.Radius, 4/g.cam.Zoom)
		if d <= hitR && d < minD {
			clicked = i
			minD = d
		}
	}
	if clicked < 0 {
		return
	}
	prevA, prevB := g.selA, g.selB
	switch {
	case g.selA == -1:
		g.selA = clicked
	case g.selB == -1 && clicked != g.selA:
		g.selB = clicked
	case clicked == g.selA:
		g.selA, g.selB = -1, -1
	case clicked == g.selB:
		g.selB = -1
	default:
		g.selA, g.selB = clicked, -1
	}
	if g.selA != prevA || g.selB != prevB {
		g.forceHistory = nil
	}
}

// recordForceHistory dopisuje wartość siły między zaznaczoną parą do wykresu
func (g *Game) recordForceHistory() {
	if g.selA < 0 || g.selB < 0 || g.selA >= len(g.sim.Bodies) || g.selB >= len(g.sim.Bodies) {
		return
	}
	f := physics.PairForceMagnitude(g.sim.Bodies[g.selA], g.sim.Bodies[g.selB], g.sim.G, g.sim.Softening)
	g.forceHistory = append(g.forceHistory, f)
	if len(g.forceHistory) > g.forceHistoryMax {
		g.forceHistory = g.forceHistory[len(g.forceHistory)-g.forceHistoryMax:]
	}
}

// Draw ---
func (g *Game) Draw(screen *ebiten.Image) {
	// ślady: rysowane z bufora pierścieniowego ciała, od najstarszej próbki
	for i := range g.sim.Bodies {
		g.drawTrail(screen, &g.sim.Bodies[i])
	}

	// ciała
	for i := range g.sim.Bodies {
		b := &g.sim.Bodies[i]
		x, y := g.cam.worldToScreen(b.Pos)
		r := math.Max(b.Radius*g.cam.Zoom, 1.5)
		drawCircle(screen, x, y, r, b.ColorC)
		if i == g.selA || i == g.selB {
			drawCircleOutline(screen, x, y, r+3, color.RGBA{255, 255, 255, 180})
		}
		if b.Locked {
			drawCircleOutline(screen, x, y, r+1, color.RGBA{180, 180, 180, 220})
		}
		if b.Anti {
			drawCircleOutline(screen, x, y, r+1, color.RGBA{255, 120, 120, 220})
		}
	}

	g.drawHUD(screen)
	g.drawButtons(screen)
	g.drawShortcuts(screen)

	if g.addMode {
		g.drawAddPreview(screen)
	}
	if g.selA != -1 && g.selB != -1 {
		g.drawForcePanel(screen)
	}
	if g.paused {
		g.drawTooltip(screen)
	}
	if g.resetModalOpen {
		g.drawResetModal(screen)
	}
}

func (g *Game) drawTrail(screen *ebiten.Image, b *physics.Body) {
	if b.Trail == nil {
		return
	}
	pts := b.Trail.Points()
	n := len(pts)
	if n < 2 {
		return
	}
	px, py := g.cam.worldToScreen(pts[0])
	for i := 1; i < n; i++ {
		x, y := g.cam.worldToScreen(pts[i])
		// starsze segmenty bledną
		alpha := uint8(40 + 180*i/n)
		c := color.RGBA{b.ColorC.R, b.ColorC.G, b.ColorC.B, alpha}
		if onScreen(px, py) || onScreen(x, y) {
			drawLine(screen, px, py, x, y, c)
		}
		px, py = x, y
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	policy := "none"
	switch g.sim.Collision.Policy {
	case physics.CollisionBounce:
		policy = "bounce"
	case physics.CollisionMerge:
		policy = "merge"
	}
	msg := fmt.Sprintf("Env: %s\nBodies: %d  Steps: %d\nCollision: %s  TimeScale: %.2gx\nEkin: %.3e\nPaused: %v",
		g.sim.Name, len(g.sim.Bodies), g.sim.Steps, policy, g.sim.TimeScale, g.sim.TotalKineticEnergy(), g.paused)
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) drawButtons(screen *ebiten.Image) {
	pauseX, stepX, quitX, resetX, addX, y := buttonRects()
	mx, my := ebiten.CursorPosition()

	pauseLabel := "Pause"
	if g.paused {
		pauseLabel = "Resume"
	}
	drawButton(screen, pauseX, y, uiBtnW, uiBtnH, pauseLabel, g.paused, false, pointInRect(mx, my, pauseX, y, uiBtnW, uiBtnH))
	drawButton(screen, stepX, y, uiBtnW, uiBtnH, "Step", false, !g.paused, pointInRect(mx, my, stepX, y, uiBtnW, uiBtnH))
	drawButton(screen, quitX, y, uiBtnW, uiBtnH, "Quit", false, false, pointInRect(mx, my, quitX, y, uiBtnW, uiBtnH))
	drawButton(screen, resetX, y, uiBtnW, uiBtnH, "Reset", false, false, pointInRect(mx, my, resetX, y, uiBtnW, uiBtnH))
	drawButton(screen, addX, y, uiBtnW, uiBtnH, "Add", g.addMode, false, pointInRect(mx, my, addX, y, uiBtnW, uiBtnH))
}

func (g *Game) drawAddPreview(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	col := color.RGBA{200, 200, 255, 160}
	if g.addAnti {
		col = color.RGBA{255, 120, 120, 180}
	} else if g.addLocked {
		col = color.RGBA{200, 200, 200, 200}
	}
	drawCircle(screen, float64(mx), float64(my), math.Max(g.addRadius*g.cam.Zoom, 2), col)
	settings := fmt.Sprintf("Mass: %.1f  Radius: %.1f  Locked: %v  Anti: %v", g.addMass, g.addRadius, g.addLocked, g.addAnti)
	text.Draw(screen, "Add mode: click to place, L locked, V anti", basicfont.Face7x13, 12, 110, color.RGBA{220, 220, 220, 200})
	text.Draw(screen, settings, basicfont.Face7x13, 12, 128, color.RGBA{200, 200, 200, 200})
}

func (g *Game) drawForcePanel(screen *ebiten.Image) {
	b1 := g.sim.Bodies[g.selA]
	b2 := g.sim.Bodies[g.selB]
	x1, y1 := g.cam.worldToScreen(b1.Pos)
	x2, y2 := g.cam.worldToScreen(b2.Pos)
	drawLine(screen, x1, y1, x2, y2, color.RGBA{255, 200, 0, 220})

	force := physics.PairForceMagnitude(b1, b2, g.sim.G, g.sim.Softening)
	label := fmt.Sprintf("F = %.3e", force)
	text.Draw(screen, label, basicfont.Face7x13, int((x1+x2)/2)-len(label)*4, int((y1+y2)/2)-6, color.RGBA{255, 255, 200, 255})

	drawGraph(screen, g.forceHistory, screenWidth-graphW-16, screenHeight-graphH-16, graphW, graphH, color.RGBA{100, 100, 255, 255}, "F")
}

// drawTooltip pokazuje parametry ciała pod kursorem (tylko podczas pauzy)
func (g *Game) drawTooltip(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	mouse := g.cam.screenToWorld(mx, my)
	var hovered *physics.Body
	minD := math.Inf(1)
	for i := range g.sim.Bodies {
		b := &g.sim.Bodies[i]
		d := b.Pos.Sub(mouse).Len()
		if d <= math.Max(b.Radius, 4/g.cam.Zoom) && d < minD {
			hovered = b
			minD = d
		}
	}
	if hovered == nil {
		return
	}
	lines := []string{
		fmt.Sprintf("Mass: %.3e", hovered.Mass),
		fmt.Sprintf("Pos: (%.2f, %.2f)", hovered.Pos.X, hovered.Pos.Y),
		fmt.Sprintf("Vel: (%.2f, %.2f)", hovered.Vel.X, hovered.Vel.Y),
		fmt.Sprintf("Speed: %.2f", hovered.Vel.Len()),
		fmt.Sprintf("Radius: %.2f", hovered.Radius),
	}
	drawPanel(screen, mx+12, my+12, lines)
}

func (g *Game) drawShortcuts(screen *ebiten.Image) {
	if !g.shortcutsVisible {
		return
	}
	lines := []string{
		"P - Pause/Resume",
		"N - Step (when paused)",
		"A - Add mode",
		"Z - Auto-zoom",
		"Arrows - pan, = / - zoom",
		"[ / ] - time scale",
		"L / V - Locked/Anti (selected)",
		"K / J - mass +/- (selected)",
		"R / T - radius +/- (selected)",
		"H - hide shortcuts",
	}
	drawPanel(screen, 12, 160, lines)
}

func (g *Game) drawResetModal(screen *ebiten.Image) {
	w, h := 360, 120
	x := (screenWidth - w) / 2
	y := (screenHeight - h) / 2
	panel := ebiten.NewImage(w, h)
	panel.Fill(color.RGBA{20, 20, 20, 220})
	inner := ebiten.NewImage(w-4, h-4)
	inner.Fill(color.RGBA{36, 36, 44, 200})
	opInner := &ebiten.DrawImageOptions{}
	opInner.GeoM.Translate(2, 2)
	panel.DrawImage(inner, opInner)

	text.Draw(panel, "Reset simulation?", basicfont.Face7x13, 16, 28, color.RGBA{230, 230, 230, 255})
	text.Draw(panel, "Reload initial config and remove added bodies.", basicfont.Face7x13, 16, 48, color.RGBA{190, 190, 190, 200})
	drawButton(panel, 40, h-44, uiBtnW, uiBtnH, "Yes", false, false, false)
	drawButton(panel, w-40-uiBtnW, h-44, uiBtnW, uiBtnH, "No", false, false, false)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(panel, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// resetSimulation przeładowuje konfigurację z initialConfigPath
// i zeruje stan pomocniczy (zaznaczenia, historie, akumulator czasu)
func (g *Game) resetSimulation() error {
	if g.initialConfigPath == "" {
		return fmt.Errorf("no initial config path set")
	}
	sim, err := simulation.LoadConfig(g.initialConfigPath)
	if err != nil {
		return err
	}
	g.sim = sim
	g.sim.ResetAccumulator()
	g.selA = -1
	g.selB = -1
	g.forceHistory = nil
	g.addMode = false
	g.resetModalOpen = false
	g.paused = false
	g.lastTime = time.Now()
	return nil
}

func main() {
	envName := flag.String("env", "solar", "Wybór środowiska (np. solar, binary, chaos, merge)")
	bodies := flag.Int("bodies", 0, "Nadpisz liczbę losowych ciał środowiska")
	seed := flag.Int64("seed", 0, "Nadpisz ziarno losowej inicjalizacji")
	flag.Parse()
	configPath := filepath.Join("pkg/assets", fmt.Sprintf("%s.json", *envName))

	env, err := simulation.LoadEnvironment(configPath)
	if err != nil {
		log.Fatalf("Błąd wczytywania środowiska: %v", err)
	}
	if env.Random != nil {
		if *bodies > 0 {
			env.Random.Count = *bodies
		}
		if *seed != 0 {
			env.Random.Seed = *seed
		}
	}
	sim := simulation.NewSimulator(*env)

	game := &Game{
		sim:               sim,
		cam:               Camera{Zoom: defaultZoom, AutoZoom: true},
		selA:              -1,
		selB:              -1,
		forceHistoryMax:   600,
		shortcutsVisible:  true,
		initialConfigPath: configPath,
		lastTime:          time.Now(),
	}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Planet Simulation - " + sim.Name)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// --- Pomocnicze rysowanie ---

func pointInRect(px, py, rx, ry, rw, rh int) bool {
	return px >= rx && px <= rx+rw && py >= ry && py <= ry+rh
}

func onScreen(x, y float64) bool {
	const margin = 64
	return x >= -margin && x <= screenWidth+margin && y >= -margin && y <= screenHeight+margin
}

// drawLine - prosty Bresenham
func drawLine(img *ebiten.Image, x0, y0, x1, y1 float64, clr color.RGBA) {
	ix0 := int(math.Round(x0))
	iy0 := int(math.Round(y0))
	ix1 := int(math.Round(x1))
	iy1 := int(math.Round(y1))
	dx := int(math.Abs(float64(ix1 - ix0)))
	sx := 1
	if ix0 >= ix1 {
		sx = -1
	}
	dy := -int(math.Abs(float64(iy1 - iy0)))
	sy := 1
	if iy0 >= iy1 {
		sy = -1
	}
	err := dx + dy
	for {
		if ix0 >= 0 && iy0 >= 0 && ix0 < screenWidth && iy0 < screenHeight {
			img.Set(ix0, iy0, clr)
		}
		if ix0 == ix1 && iy0 == iy1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

// drawCircle - wypełnione koło, wystarczające dla małych promieni
func drawCircle(screen *ebiten.Image, cx, cy, r float64, clr color.RGBA) {
	ir := int(math.Ceil(r))
	rr := r * r
	for dy := -ir; dy <= ir; dy++ {
		y := int(math.Round(cy)) + dy
		if y < 0 || y >= screenHeight {
			continue
		}
		xspan := math.Sqrt(math.Max(0, rr-float64(dy*dy)))
		xmin := int(math.Round(cx - xspan))
		xmax := int(math.Round(cx + xspan))
		if xmin < 0 {
			xmin = 0
		}
		if xmax >= screenWidth {
			xmax = screenWidth - 1
		}
		for x := xmin; x <= xmax; x++ {
			screen.Set(x, y, clr)
		}
	}
}

// drawCircleOutline - okrąg z punktów co ~2 piksele łuku
func drawCircleOutline(screen *ebiten.Image, cx, cy, r float64, clr color.RGBA) {
	if r <= 0 {
		return
	}
	steps := int(math.Max(12, 2*math.Pi*r/2))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(cx + r*math.Cos(a)))
		y := int(math.Round(cy + r*math.Sin(a)))
		if x >= 0 && y >= 0 && x < screenWidth && y < screenHeight {
			screen.Set(x, y, clr)
		}
	}
}

// buttonColors dobiera tło i kolor tekstu przycisku według jego stanu;
// disabled ma pierwszeństwo przed active i hover
func buttonColors(active, disabled, hover bool) (bg, txt color.RGBA) {
	bg = color.RGBA{24, 24, 32, 210}
	txt = color.RGBA{235, 235, 235, 255}
	if disabled {
		return color.RGBA{55, 55, 60, 150}, color.RGBA{150, 150, 150, 200}
	}
	if active {
		bg = color.RGBA{60, 120, 60, 220}
	}
	if hover {
		if active {
			bg = color.RGBA{100, 190, 100, 240}
		} else {
			bg = color.RGBA{90, 90, 100, 230}
		}
	}
	return bg, txt
}

// drawButton - prostokątny przycisk z etykietą wyśrodkowaną czcionką 7x13
func drawButton(screen *ebiten.Image, x, y, w, h int, label string, active, disabled, hover bool) {
	bg, txt := buttonColors(active, disabled, hover)
	btn := ebiten.NewImage(w, h)
	btn.Fill(bg)
	inner := ebiten.NewImage(w-2, h-2)
	inner.Fill(color.RGBA{40, 40, 48, 120})
	opInner := &ebiten.DrawImageOptions{}
	opInner.GeoM.Translate(1, 1)
	btn.DrawImage(inner, opInner)

	charW := 7
	xText := (w - len(label)*charW) / 2
	yText := (h + 8) / 2
	text.Draw(btn, label, basicfont.Face7x13, xText, yText, txt)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(btn, op)
}

// drawPanel rysuje półprzezroczysty panel z liniami tekstu
func drawPanel(screen *ebiten.Image, x, y int, lines []string) {
	pad := 6
	charW := 7
	lineH := 14
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	w := maxLen*charW + pad*2
	h := len(lines)*lineH + pad*2
	if x+w > screenWidth {
		x = screenWidth - w - 8
	}
	if y+h > screenHeight {
		y = screenHeight - h - 8
	}

	panel := ebiten.NewImage(w, h)
	panel.Fill(color.RGBA{10, 10, 20, 200})
	inner := ebiten.NewImage(w-2, h-2)
	inner.Fill(color.RGBA{30, 30, 40, 80})
	opInner := &ebiten.DrawImageOptions{}
	opInner.GeoM.Translate(1, 1)
	panel.DrawImage(inner, opInner)

	for i, l := range lines {
		text.Draw(panel, l, basicfont.Face7x13, pad, pad+(i+1)*lineH-2, color.RGBA{220, 220, 220, 255})
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(panel, op)
}

// drawGraph rysuje wykres z autoskalowaniem osi Y
func drawGraph(screen *ebiten.Image, data []float64, x, y, w, h int, lineColor color.RGBA, title string) {
	bg := ebiten.NewImage(w, h)
	bg.Fill(color.RGBA{8, 8, 16, 200})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(bg, op)

	if title != "" {
		text.Draw(screen, title, basicfont.Face7x13, x+6, y+14, color.RGBA{220, 220, 220, 200})
	}
	if len(data) == 0 {
		return
	}

	minV, maxV := data[0], data[0]
	for _, v := range data {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if minV == maxV {
		minV -= 1
		maxV += 1
	} else {
		pad := 0.05 * (maxV - minV)
		minV -= pad
		maxV += pad
	}

	padding := 6
	gw := float64(w - padding*2)
	gh := float64(h - padding*2)
	// siatka
	for i := 0; i <= 4; i++ {
		yy := float64(y+padding) + gh*float64(i)/4.0
		drawLine(screen, float64(x+padding), yy, float64(x+w-padding), yy, color.RGBA{40, 40, 60, 120})
	}

	if n := len(data); n >= 2 {
		stepX := gw / float64(n-1)
		var px, py float64
		for i, v := range data {
			nx := float64(x+padding) + stepX*float64(i)
			t := (v - minV) / (maxV - minV)
			ny := float64(y+padding) + gh*(1.0-t)
			if i > 0 {
				drawLine(screen, px, py, nx, ny, lineColor)
			}
			px = nx
			py = ny
		}
	}
	lbl := fmt.Sprintf("%.3e..%.3e", minV, maxV)
	text.Draw(screen, lbl, basicfont.Face7x13, x+6, y+h-6, color.RGBA{180, 180, 200, 180})
}
