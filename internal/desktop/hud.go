package desktop

import (
	"fmt"
	"math"
	"strings"

	"github.com/Korport/RacingGame/internal/app"
	"github.com/Korport/RacingGame/internal/game"
	"github.com/Korport/RacingGame/internal/leaderboard"
)

var panelColor = game.RGB{R: 12, G: 14, B: 20}

// RenderHUD draws the screen-space layer for the current screen: menus,
// race HUD and the crash overlay.
func RenderHUD(r *Renderer, a *app.App, now float64) {
	ui := float32(r.fbH) / WindowHeight // 1.0 at the default window size

	switch a.Screen {
	case app.ScreenMenu:
		renderMenu(r, a, ui, now)
	case app.ScreenSettings:
		renderSettings(r, a, ui)
	case app.ScreenRace:
		renderRaceHUD(r, a.Session, ui)
	case app.ScreenResults:
		renderRaceHUD(r, a.Session, ui)
		renderResults(r, a, ui, now)
	}

	r.FlushText()
}

func px(v, ui float32) int { return int(v * ui) }

func renderMenu(r *Renderer, a *app.App, ui float32, now float64) {
	fbW, fbH := r.fbW, r.fbH
	r.DrawPanel(game.Rect{W: float64(fbW), H: float64(fbH)}, panelColor, 0.55)

	cx := fbW / 2
	title := "TOP-DOWN RACER"
	r.DrawCentered(title, cx, fbH/5, 3.2*ui, game.Palette.Accent)

	skin := a.Settings.Skin
	cw, ch := 34*2.4*float64(ui), 56*2.4*float64(ui)
	bob := math.Sin(now*3) * 4 * float64(ui)
	r.DrawScreenTexture(r.SkinTexture(skin), game.Rect{
		X: float64(cx) - cw/2, Y: float64(fbH)*0.36 + bob, W: cw, H: ch,
	})
	r.DrawCentered(fmt.Sprintf("<  %s  >", skin.Config().Name), cx, fbH*36/100+int(ch)+px(16, ui), 1.8*ui, game.Palette.Gold)

	y := fbH * 70 / 100
	r.DrawCentered("Press ENTER to start", cx, y, 1.8*ui, game.Palette.Text)
	r.DrawCentered("LEFT/RIGHT choose car", cx, y+px(40, ui), 1.3*ui, game.Palette.TextDim)
	r.DrawCentered("S settings   M mute   ESC quit", cx, y+px(66, ui), 1.3*ui, game.Palette.TextDim)
	if a.MenuMuted {
		r.DrawCentered("menu music muted", cx, y+px(100, ui), 1.2*ui, game.Palette.Alert)
	}
}

func renderSettings(r *Renderer, a *app.App, ui float32) {
	fbW, fbH := r.fbW, r.fbH
	r.DrawPanel(game.Rect{W: float64(fbW), H: float64(fbH)}, panelColor, 0.7)

	cx := fbW / 2
	r.DrawCentered("SETTINGS", cx, fbH/4, 2.6*ui, game.Palette.Accent)

	music := "OFF"
	if a.Settings.Music {
		music = "ON"
	}
	rows := []string{
		"Game music: " + music,
		"Difficulty: " + strings.ToUpper(a.Settings.Difficulty.String()),
	}
	for i, row := range rows {
		y := fbH*2/5 + i*px(52, ui)
		col := game.Palette.Text
		if i == a.SettingsRow {
			row = "> " + row + " <"
			col = game.Palette.Gold
		}
		r.DrawCentered(row, cx, y, 1.8*ui, col)
	}
	r.DrawCentered("UP/DOWN select   LEFT/RIGHT change", cx, fbH*3/5, 1.2*ui, game.Palette.TextDim)
	r.DrawCentered("ESC back", cx, fbH*3/5+px(28, ui), 1.2*ui, game.Palette.TextDim)
}

func renderRaceHUD(r *Renderer, s *game.Session, ui float32) {
	fbW, fbH := r.fbW, r.fbH
	scale := 1.8 * ui
	r.DrawPanel(game.Rect{W: float64(fbW), H: float64(px(36, ui))}, panelColor, 0.45)
	r.DrawString(fmt.Sprintf("Score: %d", s.Score), px(10, ui), px(6, ui), scale, game.Palette.Text)
	best := fmt.Sprintf("Best: %d", max(s.Best, s.Score))
	r.DrawString(best, fbW-TextWidth(best, scale)-px(10, ui), px(6, ui), scale, game.Palette.Gold)

	// Difficulty meter.
	progress := s.Progress()
	barW, barH := float64(px(180, ui)), float64(px(14, ui))
	label := fmt.Sprintf("Lvl %d", game.Level(s.Elapsed))
	lw := float64(TextWidth(label, 1.4*ui))
	x := (float64(fbW) - barW - lw - float64(px(10, ui))) / 2
	y := float64(fbH) - barH - float64(px(14, ui))
	r.DrawPanel(game.Rect{X: x - 3, Y: y - 3, W: barW + 6, H: barH + 6}, panelColor, 0.6)
	r.DrawPanel(game.Rect{X: x, Y: y, W: barW, H: barH}, game.Palette.MeterEmpty, 1)
	r.DrawPanel(game.Rect{X: x, Y: y, W: barW * progress, H: barH}, game.MeterColor(progress), 1)
	r.DrawString(label, int(x+barW)+px(10, ui), int(y)-px(2, ui), 1.4*ui, game.Palette.Text)
}

func renderResults(r *Renderer, a *app.App, ui float32, now float64) {
	fbW, fbH := r.fbW, r.fbH
	res := &a.Results
	cx := fbW / 2

	pw, ph := float64(px(440, ui)), float64(px(600, ui))
	r.DrawPanel(game.Rect{X: float64(cx) - pw/2, Y: float64(fbH)/2 - ph/2, W: pw, H: ph}, panelColor, 0.82)

	y := fbH/2 - int(ph/2) + px(24, ui)
	r.DrawCentered("CRASH!", cx, y, 3.2*ui, game.Palette.Alert)
	y += px(52, ui)
	r.DrawCentered(fmt.Sprintf("Score %d", res.Crash.Score), cx, y, 1.8*ui, game.Palette.Text)
	y += px(30, ui)
	if res.Crash.NewBest {
		r.DrawCentered("New best!", cx, y, 1.4*ui, game.Palette.Gold)
		y += px(24, ui)
	}

	if res.Placed {
		r.DrawCentered("Congratulations!", cx, y, 1.6*ui, game.Palette.Gold)
		y += px(24, ui)
		r.DrawCentered(fmt.Sprintf("You placed #%d on the leaderboard.", res.Crash.Rank+1), cx, y, 1.3*ui, game.Palette.Gold)
		y += px(28, ui)
	}
	if res.Naming {
		cursor := ""
		if math.Mod(now, 1) < 0.5 {
			cursor = "_"
		}
		prompt := "Name: " + string(res.Name) + cursor
		r.DrawString(prompt, cx-TextWidth("Name: "+strings.Repeat("W", leaderboard.MaxNameLen), 1.6*ui)/2, y, 1.6*ui, game.Palette.Text)
		y += px(32, ui)
	}

	y += px(8, ui)
	r.DrawCentered("LEADERBOARD", cx, y, 1.4*ui, game.Palette.Accent)
	y += px(26, ui)
	if len(res.Top) == 0 {
		r.DrawCentered("No scores yet", cx, y, 1.3*ui, game.Palette.TextDim)
	}
	for i, e := range res.Top {
		col := game.Palette.Text
		if res.Placed && e.TS == res.Crash.Entry.TS {
			col = game.Palette.Gold
		}
		r.DrawCentered(boardLine(i, e), cx, y, 1.3*ui, col)
		y += px(22, ui)
	}

	hint := "SPACE restart   ESC menu"
	if res.Naming {
		hint = "ENTER save   ESC skip"
	}
	r.DrawCentered(hint, cx, fbH/2+int(ph/2)-px(32, ui), 1.3*ui, game.Palette.TextDim)
}

func boardLine(i int, e leaderboard.Entry) string {
	name := e.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("#%-2d %7d  %-*s", i+1, e.Score, leaderboard.MaxNameLen, name)
}
