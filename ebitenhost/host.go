// Package ebitenhost runs a motion Stage inside an Ebitengine window. It feeds
// the stage the game tick, the cursor position and wheel scrolling, and draws
// elements, text segments and border markers with the vector package.
package ebitenhost

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/motion"
)

// Glyph cell of ebitenutil's debug font.
const (
	glyphW = 6
	glyphH = 16
)

// wheelStep is the page distance scrolled per wheel notch.
const wheelStep = 48

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Background is the clear color. Zero means a dark slate.
	Background motion.Color
	// Debug enables per-frame stage stats.
	Debug bool
	// Logger receives host events. Nil discards them.
	Logger *slog.Logger
	// ScreenshotDir receives PNGs queued with Game.Screenshot or the P key.
	// Empty means "screenshots".
	ScreenshotDir string
}

// Game implements ebiten.Game for a Stage.
type Game struct {
	stage  *motion.Stage
	cfg    RunConfig
	logger *slog.Logger

	segImages map[*motion.Element]*ebiten.Image
	updateFn  func() error
	shots     []string
}

// NewGame wraps stage for ebiten.RunGame.
func NewGame(stage *motion.Stage, cfg RunConfig) *Game {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		vp := stage.Camera().Viewport
		cfg.Width, cfg.Height = int(vp.Width), int(vp.Height)
	}
	if cfg.Background == (motion.Color{}) {
		cfg.Background = motion.Color{R: 0.08, G: 0.09, B: 0.12, A: 1}
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	stage.SetDebugMode(cfg.Debug)
	return &Game{
		stage:     stage,
		cfg:       cfg,
		logger:    logger,
		segImages: make(map[*motion.Element]*ebiten.Image),
	}
}

// SetUpdateFunc registers a callback run after the stage update each tick.
// A returned error stops the game.
func (g *Game) SetUpdateFunc(fn func() error) {
	g.updateFn = fn
}

// Run opens a window and blocks until it is closed.
func Run(stage *motion.Stage, cfg RunConfig) error {
	return NewGame(stage, cfg).Run()
}

// Run opens a window for g and blocks until it is closed.
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.processInput()
	g.stage.Update(dt)
	if g.updateFn != nil {
		return g.updateFn()
	}
	return nil
}

// processInput feeds real pointer and keyboard input. Injected hover events
// take precedence for the frame.
func (g *Game) processInput() {
	cam := g.stage.Camera()
	hover := g.stage.Hover()
	if hover.Injected() == 0 {
		cx, cy := ebiten.CursorPosition()
		sx, sy := float64(cx), float64(cy)
		if cam.Viewport.Contains(sx, sy) {
			wx, wy := cam.ScreenToWorld(sx, sy)
			hover.MovePointer(wx, wy)
		} else {
			hover.LeaveSurface()
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		cam.ScrollBy(0, -dy*wheelStep)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		for _, grp := range g.stage.Groups() {
			grp.Replay()
		}
		g.logger.Info("replay groups")
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		for _, t := range g.stage.Texts() {
			t.SetTrigger(!t.Present())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		for _, b := range g.stage.Borders() {
			b.SetDisabled(!b.Disabled())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		for _, b := range g.stage.Borders() {
			_ = b.SetDirection(-b.Direction())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.Screenshot("manual")
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	for el, img := range g.segImages {
		if el.IsDisposed() {
			img.Deallocate()
			delete(g.segImages, el)
		}
	}
	screen.Fill(toColor(g.cfg.Background, 1))
	g.drawElement(screen, g.stage.Root(), 0)
	for _, b := range g.stage.Borders() {
		g.drawBorder(screen, b)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}
	g.flushScreenshots(screen)
}

// drawElement draws el and its subtree. Text segments are laid out left to
// right from their container origin; other leaves are filled rectangles.
func (g *Game) drawElement(screen *ebiten.Image, el *motion.Element, depth int) {
	if !el.Present {
		return
	}
	children := el.Children()
	if len(children) == 0 && depth > 0 {
		g.drawBox(screen, el)
		return
	}
	var penX, penY float64
	for _, c := range children {
		seg, ok := c.UserData.(motion.Segment)
		if !ok {
			g.drawElement(screen, c, depth+1)
			continue
		}
		if seg.Kind == motion.SplitLine && seg.Index > 0 {
			penX = 0
			penY += glyphH
		}
		g.drawSegment(screen, el, c, seg, penX, penY)
		penX += float64(len([]rune(seg.Text)) * glyphW)
	}
}

func (g *Game) drawBox(screen *ebiten.Image, el *motion.Element) {
	v := el.Values
	if v.Opacity <= 0 {
		return
	}
	wb := el.WorldBounds()
	w, h := wb.Width*v.Scale, wb.Height*v.Scale
	cx := wb.X + wb.Width/2 + v.X
	cy := wb.Y + wb.Height/2 + v.Y
	sx, sy := g.stage.Camera().WorldToScreen(cx-w/2, cy-h/2)
	fill := toColor(motion.Color{R: 0.35, G: 0.55, B: 0.95, A: 1}, v.Opacity)
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(w), float32(h), fill, true)
}

func (g *Game) drawSegment(screen *ebiten.Image, container, el *motion.Element, seg motion.Segment, penX, penY float64) {
	v := el.Values
	if v.Opacity <= 0 || seg.IsSpace() {
		return
	}
	img, ok := g.segImages[el]
	if !ok {
		img = ebiten.NewImage(max(1, len([]rune(seg.Text))*glyphW), glyphH)
		ebitenutil.DebugPrint(img, seg.Text)
		g.segImages[el] = img
	}
	wb := container.WorldBounds()
	sx, sy := g.stage.Camera().WorldToScreen(wb.X+penX+v.X, wb.Y+penY+v.Y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.Scale, v.Scale)
	op.GeoM.Rotate(v.Rotate * math.Pi / 180)
	op.GeoM.Translate(sx, sy)
	op.ColorScale.ScaleAlpha(float32(v.Opacity))
	screen.DrawImage(img, op)
}

func (g *Game) drawBorder(screen *ebiten.Image, b *motion.BorderAnimator) {
	const samples = 96
	cam := g.stage.Camera()
	length := b.Length()
	m := b.Marker()
	if length > 0 {
		outline := toColor(m.Color, 0.25)
		prev := b.PointAt(0)
		for i := 1; i <= samples; i++ {
			p := b.PointAt(length * float64(i) / samples)
			x0, y0 := cam.WorldToScreen(prev.X, prev.Y)
			x1, y1 := cam.WorldToScreen(p.X, p.Y)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, outline, true)
			prev = p
		}
		if !m.Disabled {
			trail := b.TrailPoints(8, m.Size)
			for i, p := range trail {
				x, y := cam.WorldToScreen(p.X, p.Y)
				a := 0.6 * (1 - float64(i+1)/float64(len(trail)+1))
				vector.DrawFilledCircle(screen, float32(x), float32(y), float32(m.Size/2), toColor(m.Color, a), true)
			}
		}
	}
	x, y := cam.WorldToScreen(m.Pos.X, m.Pos.Y)
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(m.Size/2), toColor(m.Color, 1), true)
}

// toColor converts a motion color to a non-premultiplied color, scaling its
// alpha by alpha.
func toColor(c motion.Color, alpha float64) color.Color {
	clamp := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A * alpha)}
}
