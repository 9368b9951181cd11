package session

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-dash/internal/core"
)

// Glyphs used by the renderer.
const (
	GroundTop    = '▀'
	GroundFill   = '░'
	ObstacleTop  = '▲'
	ObstacleBody = '█'
	PlayerChar   = '■'
	CoinChar     = '●'
	PortalChar   = '»'
	SparkleChar  = '✦'
)

// projection maps world units (y up) onto screen cells (y down).
type projection struct {
	w, h   int
	sx, sy float64
	ox     int // Horizontal shake offset in cells
}

func (s *Session) projection(dst *core.Screen) projection {
	return projection{
		w:  dst.Width(),
		h:  dst.Height(),
		sx: float64(dst.Width()) / s.cfg.View.WorldWidth,
		sy: float64(dst.Height()) / s.cfg.View.WorldHeight,
		ox: s.shakeOffset(),
	}
}

// shakeOffset jitters the world one cell left and right while the death
// shake runs. The HUD and overlays stay put.
func (s *Session) shakeOffset() int {
	if s.mode != ModeGameOver || s.run.shake <= 0 {
		return 0
	}
	if int(s.run.shake*30)%2 == 0 {
		return 1
	}
	return -1
}

// cells returns the inclusive cell span covered by [lo, hi) at the given scale.
// Anything with positive size covers at least one cell.
func cells(lo, hi, scale float64) (int, int) {
	a := int(math.Floor(lo * scale))
	b := int(math.Ceil(hi*scale)) - 1
	if b < a {
		b = a
	}
	return a, b
}

// rect converts a world box into a screen rect.
func (p projection) rect(b core.Box) core.Rect {
	x0, x1 := cells(b.X, b.Right(), p.sx)
	y0, y1 := cells(b.Y, b.Top(), p.sy)
	top := p.h - 1 - y1
	return core.NewRect(x0+p.ox, top, x1-x0+1, y1-y0+1)
}

// Render draws the current state, including the menu, pause and end overlays.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if s.spec == nil {
		s.drawMenu(dst)
		return
	}

	p := s.projection(dst)
	s.drawGround(dst, p)

	for i := s.run.nextPortal; i < len(s.run.portals); i++ {
		x := s.screenX(s.run.portals[i].X)
		if x > s.cfg.View.WorldWidth {
			break
		}
		col, _ := cells(x, x, p.sx)
		col += p.ox
		floorRow := p.h - 1 - int(math.Floor(s.spec.FloorY()*p.sy))
		for y := floorRow; y >= 0 && y > floorRow-3; y-- {
			dst.SetColored(col, y, PortalChar, core.ColorMagenta)
		}
	}

	for i := range s.run.placements {
		box := s.obstacleBox(i)
		if box.X > s.cfg.View.WorldWidth {
			break
		}
		if box.Right() < 0 {
			continue
		}
		r := p.rect(box)
		dst.DrawRect(r, ObstacleBody, core.ColorRed)
		dst.DrawHLine(r.X, r.Y, r.W, ObstacleTop, core.ColorRed)
	}

	for i := range s.run.coins {
		if !s.run.collected[i] {
			s.drawCoin(dst, p, i, CoinChar, core.ColorGold)
		}
	}

	dst.DrawRect(p.rect(s.playerBox()), PlayerChar, core.ColorCyan)

	// Sparkles go on top of the player that picked the coin up.
	for i, t := range s.run.sparkles {
		if t > 0 {
			s.drawCoin(dst, p, i, SparkleChar, core.ColorYellow)
		}
	}

	s.drawHUD(dst)

	switch s.mode {
	case ModeMenu:
		s.drawMenu(dst)
	case ModePaused:
		drawCenteredMessage(dst, "PAUSED", "ESC/P = Resume    M = Menu")
	case ModeGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.score()))
	case ModeCleared:
		drawCenteredMessage(dst, "LEVEL CLEARED", fmt.Sprintf("Score: %d  |  R = Again    M = Menu", s.score()))
	}

	if s.err != nil && s.mode != ModeMenu {
		drawError(dst, s.err)
	}
}

func (s *Session) drawCoin(dst *core.Screen, p projection, i int, glyph rune, c core.Color) {
	box := s.coinBox(i)
	if box.X > s.cfg.View.WorldWidth || box.Right() < 0 {
		return
	}
	r := p.rect(box)
	dst.SetColored(r.X+r.W/2, r.Y+r.H/2, glyph, c)
}

func (s *Session) drawGround(dst *core.Screen, p projection) {
	rows := max(1, int(math.Floor(s.spec.FloorY()*p.sy)))
	top := p.h - rows
	dst.DrawHLine(0, top, p.w, GroundTop, core.ColorGray)
	for y := top + 1; y < p.h; y++ {
		dst.DrawHLine(0, y, p.w, GroundFill, core.ColorDim)
	}
}

func (s *Session) drawHUD(dst *core.Screen) {
	snap := s.Snapshot()
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorWhite)

	title := fmt.Sprintf(" %s  %3.0f%% ", snap.LevelName, snap.Progress*100)
	dst.DrawTextCentered(0, title, core.ColorGray)

	speed := fmt.Sprintf(" Spd: %.0f ", snap.Speed)
	dst.DrawTextColored(dst.Width()-len(speed)-2, 0, speed, core.ColorYellow)
}

func (s *Session) drawMenu(dst *core.Screen) {
	name := s.source.ID()
	if s.spec != nil && s.spec.Name() != "" {
		name = s.spec.Name()
	}
	drawCenteredMessage(dst, "DASH", fmt.Sprintf("%s  |  Press ENTER to play", name))
	if s.err != nil {
		drawError(dst, s.err)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorYellow)
	dst.DrawTextColored(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorDefault)
}

// drawError shows a load failure on the bottom row.
func drawError(dst *core.Screen, err error) {
	msg := " " + err.Error() + " "
	if n := len([]rune(msg)); n > dst.Width() {
		msg = string([]rune(msg)[:dst.Width()])
	}
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), ' ', core.ColorDefault)
	dst.DrawTextColored(0, dst.Height()-1, msg, core.ColorRed)
}
