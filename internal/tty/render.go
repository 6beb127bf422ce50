package tty

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Korport/RacingGame/internal/app"
	"github.com/Korport/RacingGame/internal/game"
	"github.com/Korport/RacingGame/internal/leaderboard"
)

func rgb(c game.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var (
	styleText  = tcell.StyleDefault.Foreground(rgb(game.Palette.Text)).Background(tcell.ColorBlack)
	styleDim   = tcell.StyleDefault.Foreground(rgb(game.Palette.TextDim)).Background(tcell.ColorBlack)
	styleTitle = tcell.StyleDefault.Foreground(rgb(game.Palette.Accent)).Background(tcell.ColorBlack).Bold(true)
	styleAlert = tcell.StyleDefault.Foreground(rgb(game.Palette.Alert)).Background(tcell.ColorBlack).Bold(true)
	styleGold  = tcell.StyleDefault.Foreground(rgb(game.Palette.Gold)).Background(tcell.ColorBlack).Bold(true)
)

// viewport maps world pixels onto a block of terminal cells. Cells are
// roughly twice as tall as wide, so rows cover twice the world height.
type viewport struct {
	x0, y0     int // top-left cell
	cols, rows int
	sx, sy     float64 // world pixels per cell
}

func fitViewport(w, h int) viewport {
	rows := h - 2
	if rows < 1 {
		rows = 1
	}
	cols := int(float64(rows) * game.WorldWidth / game.WorldHeight * 2)
	if cols > w {
		cols = w
	}
	if cols < 1 {
		cols = 1
	}
	return viewport{
		x0:   (w - cols) / 2,
		y0:   1,
		cols: cols,
		rows: rows,
		sx:   game.WorldWidth / float64(cols),
		sy:   game.WorldHeight / float64(rows),
	}
}

// cell returns the cell covering world point (wx, wy).
func (v viewport) cell(wx, wy float64) (int, int) {
	return v.x0 + int(math.Floor(wx/v.sx)), v.y0 + int(math.Floor(wy/v.sy))
}

// fillRect paints every cell whose centre lies inside the world rect, and
// at least one cell for rects smaller than a cell.
func (t *Terminal) fillRect(v viewport, r game.Rect, ch rune, st tcell.Style) {
	c0 := int(math.Round(r.X / v.sx))
	c1 := int(math.Round(r.Right() / v.sx))
	r0 := int(math.Round(r.Y / v.sy))
	r1 := int(math.Round(r.Bottom() / v.sy))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}
	for row := max(r0, 0); row < min(r1, v.rows); row++ {
		for col := max(c0, 0); col < min(c1, v.cols); col++ {
			t.screen.SetContent(v.x0+col, v.y0+row, ch, nil, st)
		}
	}
}

// Draw renders the current screen and shows it.
func (t *Terminal) Draw() {
	s := t.screen
	s.Clear()
	w, h := s.Size()
	v := fitViewport(w, h)

	t.drawWorld(v)
	switch t.app.Screen {
	case app.ScreenMenu:
		t.drawMenu(w, h)
	case app.ScreenSettings:
		t.drawSettings(w, h)
	case app.ScreenRace:
		t.drawHUD(w, h)
	case app.ScreenResults:
		t.drawHUD(w, h)
		t.drawResults(w, h)
	}
	s.Show()
}

func (t *Terminal) drawWorld(v viewport) {
	world := t.app.Session.World
	grass := tcell.StyleDefault.Background(rgb(game.Palette.Grass))
	road := tcell.StyleDefault.Background(rgb(game.Palette.Road))
	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			wx := (float64(col) + 0.5) * v.sx
			st := grass
			if wx >= game.RoadX && wx < game.RoadX+game.RoadWidth {
				st = road
			}
			t.screen.SetContent(v.x0+col, v.y0+row, ' ', nil, st)
		}
	}

	dash := road.Foreground(rgb(game.Palette.Dash))
	for _, d := range world.Dashes {
		r := game.Rect{X: game.WorldWidth/2 - game.DashWidth/2, Y: d.Y, W: game.DashWidth, H: game.DashLength}
		t.fillRect(v, r, '┃', dash)
	}

	for _, d := range world.Roadside {
		ch, col := '♣', game.Palette.TreeMid
		switch d.Kind {
		case game.DecorTreePine:
			ch, col = '▲', game.Palette.TreeBase
		case game.DecorBush:
			ch, col = '*', game.Palette.Bush
		}
		st := tcell.StyleDefault.Background(rgb(game.Palette.Grass)).Foreground(rgb(col))
		t.fillRect(v, game.Rect{X: d.X, Y: d.Y, W: d.W, H: d.H}, ch, st)
	}

	for i := range world.Obstacles {
		o := &world.Obstacles[i]
		st := tcell.StyleDefault.Background(rgb(game.ObstacleColor(o.Kind))).Foreground(rgb(game.Palette.Glass))
		t.fillRect(v, o.Bounds(), '▀', st)
	}

	p := &world.Player
	skin := t.app.Settings.Skin.Config()
	st := tcell.StyleDefault.Background(rgb(skin.Body)).Foreground(rgb(skin.Trim))
	ch := '▄'
	if skin.Stripe {
		ch = '┃'
	}
	t.fillRect(v, p.Bounds(), ch, st)
	if !t.app.Session.Running() {
		cx, cy := v.cell(p.X+p.W/2, p.Y)
		t.screen.SetContent(cx, cy, '✸', nil, styleAlert)
	}
}

func (t *Terminal) drawHUD(w, h int) {
	sess := t.app.Session
	drawText(t.screen, 1, 0, fmt.Sprintf("Score %d", sess.Score), styleText)
	best := fmt.Sprintf("Best %d", max(sess.Best, sess.Score))
	drawText(t.screen, w-len(best)-1, 0, best, styleDim)

	// Difficulty meter on the bottom row.
	progress := sess.Progress()
	label := fmt.Sprintf(" Lvl %d", game.Level(sess.Elapsed))
	barW := min(20, w-len(label)-2)
	if barW < 1 {
		return
	}
	x := (w - barW - len(label)) / 2
	filled := int(math.Round(progress * float64(barW)))
	full := tcell.StyleDefault.Background(rgb(game.MeterColor(progress)))
	empty := tcell.StyleDefault.Background(rgb(game.Palette.MeterEmpty))
	for i := 0; i < barW; i++ {
		st := empty
		if i < filled {
			st = full
		}
		t.screen.SetContent(x+i, h-1, ' ', nil, st)
	}
	drawText(t.screen, x+barW, h-1, label, styleDim)
}

func (t *Terminal) drawMenu(w, h int) {
	cy := h / 3
	drawCentered(t.screen, w/2, cy, "TOP-DOWN RACER", styleTitle)
	skin := t.app.Settings.Skin.Config()
	drawCentered(t.screen, w/2, cy+2, fmt.Sprintf("< %s >", skin.Name), styleGold)
	drawCentered(t.screen, w/2, cy+4, "ENTER to start", styleText)
	drawCentered(t.screen, w/2, cy+5, "S settings   M mute   Q quit", styleDim)
	if t.app.MenuMuted {
		drawCentered(t.screen, w/2, cy+6, "music muted", styleDim)
	}
}

func (t *Terminal) drawSettings(w, h int) {
	cy := h / 3
	drawCentered(t.screen, w/2, cy, "SETTINGS", styleTitle)
	music := "OFF"
	if t.app.Settings.Music {
		music = "ON"
	}
	rows := []string{
		fmt.Sprintf("Game music: %s", music),
		fmt.Sprintf("Difficulty: %s", strings.ToUpper(t.app.Settings.Difficulty.String())),
	}
	for i, r := range rows {
		st := styleText
		if i == t.app.SettingsRow {
			r = "> " + r + " <"
			st = styleGold
		}
		drawCentered(t.screen, w/2, cy+2+i, r, st)
	}
	drawCentered(t.screen, w/2, cy+5, "ESC back", styleDim)
}

func (t *Terminal) drawResults(w, h int) {
	res := &t.app.Results
	y := 2
	drawCentered(t.screen, w/2, y, "CRASH!", styleAlert)
	y += 2
	if res.Placed {
		drawCentered(t.screen, w/2, y, fmt.Sprintf("Congratulations! You placed #%d", res.Crash.Rank+1), styleGold)
		y++
	}
	if res.Naming {
		drawCentered(t.screen, w/2, y, "Name: "+string(res.Name)+"_", styleText)
		y++
	}
	y++
	if len(res.Top) == 0 {
		drawCentered(t.screen, w/2, y, "No scores yet", styleDim)
		y++
	}
	for i, e := range res.Top {
		if y >= h-2 {
			break
		}
		st := styleText
		if e.TS == res.Crash.Entry.TS {
			st = styleGold
		}
		drawCentered(t.screen, w/2, y, boardLine(i, e), st)
		y++
	}
	hint := "SPACE restart   ESC menu"
	if res.Naming {
		hint = "ENTER save   ESC skip"
	}
	drawCentered(t.screen, w/2, h-2, hint, styleDim)
}

func boardLine(i int, e leaderboard.Entry) string {
	name := e.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("#%-2d %7d  %-*s", i+1, e.Score, leaderboard.MaxNameLen, name)
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

func drawCentered(s tcell.Screen, cx, cy int, text string, st tcell.Style) {
	drawText(s, cx-len([]rune(text))/2, cy, text, st)
}
