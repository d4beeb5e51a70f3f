package game

import (
	"math/rand"

	"github.com/vovakirdan/ag3/internal/core"
)

var rainGlyphs = []rune("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ")

const rainTrail = 12

// rain is the falling-glyph backdrop of the splash screen.
// It has its own random source so the splash never shifts food placement.
type rain struct {
	rng    *rand.Rand
	height int
	cols   []rainColumn
}

type rainColumn struct {
	y     float64 // row of the leading glyph
	speed float64 // rows per frame
	chars []rune
}

func newRain(g core.Grid, seed int64) *rain {
	r := &rain{
		rng:    rand.New(rand.NewSource(seed ^ 0x5eed)),
		height: g.Height,
		cols:   make([]rainColumn, g.Width),
	}
	for i := range r.cols {
		r.cols[i] = r.column()
	}
	return r
}

func (r *rain) column() rainColumn {
	chars := make([]rune, rainTrail)
	for i := range chars {
		chars[i] = rainGlyphs[r.rng.Intn(len(rainGlyphs))]
	}
	return rainColumn{
		y:     -r.rng.Float64() * float64(r.height),
		speed: 0.1 + r.rng.Float64()*0.25,
		chars: chars,
	}
}

func (r *rain) step() {
	for i := range r.cols {
		c := &r.cols[i]
		c.y += c.speed
		if int(c.y)-rainTrail > r.height {
			r.cols[i] = r.column()
		}
	}
}

// draw paints the rain into dst with its top-left at (ox, oy), each column
// cellW characters apart.
func (r *rain) draw(dst *core.Screen, ox, oy, cellW int) {
	for x, c := range r.cols {
		head := int(c.y)
		for i, ch := range c.chars {
			y := head - (rainTrail - 1 - i)
			if y < 0 || y >= r.height {
				continue
			}
			color := core.ColorDarkGreen
			if i == rainTrail-1 {
				color = core.ColorBrightGreen
			}
			dst.SetColored(ox+x*cellW, oy+y, ch, color)
		}
	}
}
