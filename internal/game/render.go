package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ag3/internal/config"
	"github.com/vovakirdan/ag3/internal/core"
	"github.com/vovakirdan/ag3/internal/screens"
)

const (
	hudHeight   = 2
	footerLines = 1
	version     = "AG~3 OS v3.1.0-STABLE"
	controls    = "WASD/ARROWS=MOVE • SPACE=BOOST • P=PAUSE • ESC=MENU • Q=QUIT"
)

// Glyphs for board cells.
const (
	glyphHead     = '█'
	glyphBody     = '▓'
	glyphFood     = '●'
	glyphBonus    = '◆'
	glyphObstacle = '▒'
	glyphGrid     = '·'
)

type panelLine struct {
	text  string
	color core.Color
}

// layout positions the board on the screen.
type layout struct {
	ox, oy int // top-left of the board frame
	cellW  int
	frame  core.Rect
}

func (g *Game) layout(dst *core.Screen) (layout, bool) {
	grid := g.cfg.Grid
	cellW := 1
	if dst.Width() >= grid.Width*2+2 {
		cellW = 2
	}
	w := grid.Width*cellW + 2
	h := grid.Height + 2
	if dst.Width() < w || dst.Height() < hudHeight+h+footerLines {
		return layout{}, false
	}
	ox := (dst.Width() - w) / 2
	return layout{
		ox:    ox,
		oy:    hudHeight,
		cellW: cellW,
		frame: core.NewRect(ox, hudHeight, w, h),
	}, true
}

// Render draws the current screen into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	l, ok := g.layout(dst)
	if !ok {
		need := fmt.Sprintf("NEED %dx%d", g.cfg.Grid.Width+2, g.cfg.Grid.Height+hudHeight+2+footerLines)
		dst.DrawTextCentered(dst.Height()/2-1, "WINDOW TOO SMALL", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, need, core.ColorGray)
		return
	}

	pal := g.Theme().Palette()
	g.renderHUD(dst, l, pal)
	dst.DrawBox(l.frame, pal.Grid)

	if g.machine.State() == screens.Splash {
		g.rain.draw(dst, l.ox+1, l.oy+1, l.cellW)
		g.renderPanel(dst, l, pal, []panelLine{
			{"A G ~ 3", core.ColorBrightWhite},
			{"", core.ColorDefault},
			{"BOOTING NEURAL SYSTEM...", core.ColorBrightGreen},
			{"", core.ColorDefault},
			{"PRESS ANY KEY TO LOGIN", core.ColorGray},
		})
		g.renderFooter(dst, l)
		return
	}

	g.renderBoard(dst, l, pal)

	switch g.machine.State() {
	case screens.Start:
		g.renderPanel(dst, l, pal, g.startLines())
	case screens.LevelSelect:
		g.renderPanel(dst, l, pal, g.levelLines())
	case screens.Settings:
		g.renderPanel(dst, l, pal, g.settingsLines(pal))
	case screens.Countdown:
		g.renderPanel(dst, l, pal, []panelLine{
			{fmt.Sprintf("  %d  ", g.machine.Countdown()), core.ColorBrightWhite},
		})
	case screens.Paused:
		g.renderPanel(dst, l, pal, []panelLine{
			{"AG~3 HALTED", core.ColorBrightCyan},
			{"P TO RESUME", core.ColorGray},
		})
	case screens.GameOver:
		g.renderPanel(dst, l, pal, g.gameOverLines())
	}

	g.renderFooter(dst, l)
}

func (g *Game) renderHUD(dst *core.Screen, l layout, pal config.Palette) {
	left := fmt.Sprintf("AG~3_SCORE %06d", g.tracker.Score())
	right := fmt.Sprintf("AG~3_BEST %06d", g.tracker.HighScore())
	x0 := l.frame.X
	x1 := l.frame.Right()

	dst.DrawTextColored(x0, 0, left, core.ColorBrightWhite)
	dst.DrawTextColored(x1-len(right), 0, right, core.ColorGold)

	room := l.frame.W - len(left) - len(right) - 4
	if room > 0 {
		status := truncate(g.adviceText, room)
		cx := x0 + len(left) + 2 + (room-runeLen(status))/2
		dst.DrawTextColored(cx, 0, status, core.ColorBrightCyan)
	}

	freq := "FREQ " + g.Difficulty().Name
	theme := "SKIN " + strings.ToUpper(g.Theme().Name)
	dst.DrawTextColored(x0, 1, freq, core.ColorGray)
	dst.DrawTextColored(x1-len(theme), 1, theme, pal.Accent)
	if g.driver.Boosted() {
		dst.DrawTextColored(x0+(l.frame.W-len(">> BOOST <<"))/2, 1, ">> BOOST <<", core.ColorBrightYellow)
	}
}

func (g *Game) renderBoard(dst *core.Screen, l layout, pal config.Palette) {
	grid := g.cfg.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			g.setCell(dst, l, core.Point{X: x, Y: y}, glyphGrid, pal.Grid, false)
		}
	}

	for _, p := range g.sim.Obstacles().Points() {
		g.setCell(dst, l, p, glyphObstacle, core.ColorGray, true)
	}

	food := g.sim.Food()
	if grid.InBounds(food.Pos) {
		if food.Bonus {
			g.setCell(dst, l, food.Pos, glyphBonus, pal.Bonus, false)
		} else {
			g.setCell(dst, l, food.Pos, glyphFood, pal.Food, false)
		}
	}

	body := g.sim.Body()
	for i := len(body) - 1; i >= 0; i-- {
		if i == 0 {
			g.setCell(dst, l, body[i], glyphHead, pal.Head, true)
		} else {
			g.setCell(dst, l, body[i], glyphBody, pal.Body, true)
		}
	}
}

// setCell paints one grid cell. Solid cells fill every column of a wide
// cell; others leave the second column blank.
func (g *Game) setCell(dst *core.Screen, l layout, p core.Point, r rune, c core.Color, solid bool) {
	sx := l.ox + 1 + p.X*l.cellW
	sy := l.oy + 1 + p.Y
	dst.SetColored(sx, sy, r, c)
	for i := 1; i < l.cellW; i++ {
		if solid {
			dst.SetColored(sx+i, sy, r, c)
		} else {
			dst.SetColored(sx+i, sy, ' ', c)
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen, l layout) {
	y := l.frame.Bottom()
	if runeLen(controls)+runeLen(version)+2 <= l.frame.W {
		dst.DrawTextColored(l.frame.X, y, controls, core.ColorGray)
		dst.DrawTextColored(l.frame.Right()-runeLen(version), y, version, core.ColorGray)
		return
	}
	dst.DrawTextColored(l.frame.X, y, truncate(controls, l.frame.W), core.ColorGray)
}

// renderPanel draws a boxed, centered block of lines over the board.
func (g *Game) renderPanel(dst *core.Screen, l layout, pal config.Palette, lines []panelLine) {
	w := 0
	for _, line := range lines {
		w = max(w, runeLen(line.text))
	}
	w = min(w+6, l.frame.W-2)
	h := len(lines) + 2
	x := l.frame.X + (l.frame.W-w)/2
	y := l.frame.Y + (l.frame.H-h)/2

	box := core.NewRect(x, y, w, h)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		dst.DrawHLine(box.X, yy, box.W, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, pal.Accent)

	for i, line := range lines {
		text := truncate(line.text, w-2)
		dst.DrawTextColored(x+(w-runeLen(text))/2, y+1+i, text, line.color)
	}
}

func (g *Game) startLines() []panelLine {
	lines := []panelLine{
		{"AG~3 // OS", core.ColorBrightWhite},
		{"", core.ColorDefault},
	}
	return append(lines, menuLines(startItems, g.cursor[screens.Start], nil)...)
}

func (g *Game) levelLines() []panelLine {
	lines := []panelLine{
		{"NEURAL FREQUENCY", core.ColorBrightWhite},
		{"", core.ColorDefault},
	}
	items := make([]string, 0, len(g.cfg.Difficulties)+1)
	colors := make([]core.Color, 0, len(g.cfg.Difficulties)+1)
	for i, d := range g.cfg.Difficulties {
		label := fmt.Sprintf("%s %dMS", d.Name, d.TickMS)
		if i == g.difficulty {
			label += " *"
		}
		items = append(items, label)
		c, ok := core.ParseColor(d.Color)
		if !ok {
			c = core.ColorWhite
		}
		colors = append(colors, c)
	}
	items = append(items, backLabel)
	colors = append(colors, core.ColorGray)
	return append(lines, menuLines(items, g.cursor[screens.LevelSelect], colors)...)
}

func (g *Game) settingsLines(pal config.Palette) []panelLine {
	lines := []panelLine{
		{"AESTHETIC OVERRIDE", core.ColorBrightWhite},
		{"", core.ColorDefault},
		{g.Theme().Name + " " + strings.Repeat(string(glyphBody), 6) + string(glyphHead), pal.Head},
		{"", core.ColorDefault},
	}
	items := make([]string, 0, len(g.cfg.Themes)+1)
	colors := make([]core.Color, 0, len(g.cfg.Themes)+1)
	for i, t := range g.cfg.Themes {
		label := strings.ToUpper(t.Name)
		if i == g.theme {
			label += " *"
		}
		items = append(items, label)
		colors = append(colors, t.Palette().Accent)
	}
	items = append(items, backLabel)
	colors = append(colors, core.ColorGray)
	return append(lines, menuLines(items, g.cursor[screens.Settings], colors)...)
}

func (g *Game) gameOverLines() []panelLine {
	lines := []panelLine{
		{"FLATLINED", core.ColorBrightWhite},
		{"● CRITICAL FAILURE", core.ColorBrightRed},
	}
	if cause := g.sim.Cause(); cause != "" {
		lines = append(lines, panelLine{"CAUSE: " + strings.ToUpper(string(cause)), core.ColorRed})
	}
	lines = append(lines, panelLine{"", core.ColorDefault})

	if s := g.stats; s != nil {
		lines = append(lines, panelLine{
			fmt.Sprintf("TIME %ds   GROWTH +%d   EFFICIENCY %d%%", s.DurationSeconds, s.Growth, s.Efficiency),
			core.ColorWhite,
		})
	}
	if g.newRecord {
		lines = append(lines, panelLine{"NEW RECORD " + fmt.Sprintf("%06d", g.tracker.HighScore()), core.ColorGold})
	}
	lines = append(lines, panelLine{"", core.ColorDefault})
	return append(lines, menuLines(gameOverItems, g.cursor[screens.GameOver], nil)...)
}

// menuLines renders items with the cursor entry bracketed.
func menuLines(items []string, cursor int, colors []core.Color) []panelLine {
	out := make([]panelLine, len(items))
	for i, item := range items {
		c := core.ColorWhite
		if i < len(colors) {
			c = colors[i]
		}
		if i == cursor {
			out[i] = panelLine{"> " + item + " <", core.ColorBrightCyan}
			continue
		}
		out[i] = panelLine{item, c}
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}
