package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/BoredWeaver/TrialRPG-sub000/internal/battle"
)

// Renderer draws battle and floor views to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderBattle draws the full battle view: the enemy roster with letter
// labels and HP bars, the player panel, the log tail, and a key hint.
func (r *Renderer) RenderBattle(s *battle.State, depth int, hint string) {
	r.screen.Clear()
	width, height := r.screen.Size()

	header := fmt.Sprintf("Floor %d | %s turn", depth, s.Turn)
	if s.Over {
		header = fmt.Sprintf("Floor %d | %s", depth, s.Outcome)
	}
	r.drawText(0, 0, header, tcell.StyleDefault.Bold(true))

	// Enemy roster. Letter labels keep duplicates tellable apart.
	row := 2
	for i, e := range s.Enemies {
		label := fmt.Sprintf("%c) %s %s", 'A'+i, string(e.Glyph), e.Name)
		style := tcell.StyleDefault.Foreground(e.Color)
		if !e.IsAlive() {
			style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		}
		r.drawText(0, row, label, style)
		r.drawText(24, row, hpBar(e.HP, e.Derived.MaxHP, 16), tcell.StyleDefault)
		r.drawText(42, row, fmt.Sprintf("%d/%d", e.HP, e.Derived.MaxHP), tcell.StyleDefault)
		row++
	}

	// Player panel.
	p := s.Player
	row++
	r.drawText(0, row, fmt.Sprintf("%s (Lv %d)", p.Name, p.Level),
		tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	row++
	r.drawText(0, row, "HP "+hpBar(p.HP, p.Derived.MaxHP, 20)+
		fmt.Sprintf(" %d/%d", p.HP, p.Derived.MaxHP), tcell.StyleDefault)
	row++
	r.drawText(0, row, "MP "+hpBar(p.MP, p.Derived.MaxMP, 20)+
		fmt.Sprintf(" %d/%d", p.MP, p.Derived.MaxMP),
		tcell.StyleDefault.Foreground(tcell.ColorBlue))
	row++
	if s.Progress.UnspentPoints > 0 {
		r.drawText(0, row, fmt.Sprintf("Unspent points: %d", s.Progress.UnspentPoints),
			tcell.StyleDefault.Foreground(tcell.ColorGreen))
		row++
	}

	// Log tail fills the space between the panel and the hint line.
	logTop := row + 1
	logLines := height - logTop - 2
	if logLines > 0 {
		start := len(s.Log) - logLines
		if start < 0 {
			start = 0
		}
		for i, line := range s.Log[start:] {
			r.drawText(0, logTop+i, truncate(line, width),
				tcell.StyleDefault.Foreground(tcell.ColorGray))
		}
	}

	r.drawText(0, height-1, truncate(hint, width),
		tcell.StyleDefault.Foreground(tcell.ColorTeal))
	r.screen.Show()
}

// RenderFloor draws the between-battles view.
func (r *Renderer) RenderFloor(depth, encounter, total int, hint string) {
	r.screen.Clear()
	width, height := r.screen.Size()
	r.drawText(0, 0, fmt.Sprintf("Floor %d", depth), tcell.StyleDefault.Bold(true))
	r.drawText(0, 2, fmt.Sprintf("Encounter %d of %d ahead.", encounter+1, total),
		tcell.StyleDefault)
	r.drawText(0, height-1, truncate(hint, width),
		tcell.StyleDefault.Foreground(tcell.ColorTeal))
	r.screen.Show()
}

// RenderMessage draws a single prominent message, for game over screens.
func (r *Renderer) RenderMessage(msg, hint string) {
	r.screen.Clear()
	width, height := r.screen.Size()
	r.drawText(0, height/2, truncate(msg, width), tcell.StyleDefault.Bold(true))
	r.drawText(0, height-1, truncate(hint, width),
		tcell.StyleDefault.Foreground(tcell.ColorTeal))
	r.screen.Show()
}

// drawText writes a string starting at (x, y).
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// hpBar renders a fixed-width [####----] gauge.
func hpBar(current, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := current * width / max
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := make([]rune, 0, width+2)
	bar = append(bar, '[')
	for i := 0; i < width; i++ {
		if i < filled {
			bar = append(bar, '#')
		} else {
			bar = append(bar, '-')
		}
	}
	return string(append(bar, ']'))
}

// truncate clips a line to the screen width.
func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	return s[:width]
}
