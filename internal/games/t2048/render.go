package t2048

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tilemerge/internal/core"
)

const (
	cellWidth    = 7 // Width of each cell including the left border
	cellHeight   = 2 // Height of each cell including the top border
	hudHeight    = 3
	footerHeight = 2
)

// boardSize returns the drawn board dimensions for a grid width.
func boardSize(width int) (w, h int) {
	return width*cellWidth + 1, width*cellHeight + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	width := g.ctrl.Width()
	boardW, boardH := boardSize(width)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	renderGridLines(dst, width, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)

	dst.DrawTextCentered(boardY+boardH+1, g.Controls())
}

// renderTooSmall shows a "window too small" message wrapped to the screen
// width. The resize hint is dropped when both do not fit.
func (g *Game) renderTooSmall(dst *core.Screen) {
	lines := wrapLines("Window too small", g.screenW)
	if hint := wrapLines("Please resize terminal", g.screenW); len(lines)+len(hint) <= g.screenH {
		lines = append(lines, hint...)
	}

	y := max((g.screenH-len(lines))/2, 0)
	for i, line := range lines {
		dst.DrawTextCentered(y+i, line)
	}
}

func wrapLines(text string, width int) []string {
	if width < 1 {
		return nil
	}
	lines := strings.Split(ansi.Wrap(text, width, ""), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

// renderHUD draws moves, merges and the best tile.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Moves: %d", g.ctrl.Moves()))

	best := "Best: -"
	if r := g.ctrl.MaxRank(); r >= 0 {
		best = fmt.Sprintf("Best: %d", RankValue(r))
	}
	dst.DrawTextColored(max(boardX, boardX+boardW-len(best)), 1, best, core.TileColor(g.ctrl.MaxRank()))

	merges := fmt.Sprintf("Merges: %d", g.ctrl.Merges())
	dst.DrawText(boardX+(boardW-len(merges))/2, 2, merges)
}

// renderGridLines draws the cell borders.
func renderGridLines(dst *core.Screen, width, boardX, boardY int) {
	for y := range width + 1 {
		for x := range width + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == width:
				corner = '┐'
			case y == width && x == 0:
				corner = '└'
			case y == width && x == width:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == width:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == width:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < width {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < width {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// cellOrigin returns the screen position of the text line inside a cell.
func cellOrigin(boardX, boardY int, pos Position) (int, int) {
	return boardX + pos.Col*cellWidth + 1, boardY + pos.Row*cellHeight + 1
}

// renderTiles draws settled tiles, then the animated ones on top.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	for _, p := range g.ctrl.Snapshot() {
		if g.anim.phase == PhaseSlide && g.anim.hidden[p.Tile.ID] {
			continue
		}
		x, y := cellOrigin(boardX, boardY, p.Pos)
		drawTile(dst, x, y, p.Tile, false)
	}

	switch g.anim.phase {
	case PhaseSlide:
		for _, a := range g.anim.slides {
			fx, fy := cellOrigin(boardX, boardY, a.From)
			tx, ty := cellOrigin(boardX, boardY, a.To)
			t := easeOutQuad(a.Progress)
			drawTile(dst, core.Lerp(fx, tx, t), core.Lerp(fy, ty, t), a.Tile, false)
		}
	case PhasePop:
		for _, a := range g.anim.pops {
			x, y := cellOrigin(boardX, boardY, a.To)
			drawTile(dst, x, y, a.Tile, a.Progress < 1)
		}
	}
}

// drawTile writes a tile value centered in a cell's text line. Popping
// tiles are bracketed.
func drawTile(dst *core.Screen, x, y int, tile Tile, popping bool) {
	text := strconv.Itoa(tile.Value())
	if popping {
		text = "[" + text + "]"
	}
	inner := cellWidth - 1
	pad := max((inner-len(text))/2, 0)
	dst.DrawTextColored(x+pad, y, text, core.TileColor(tile.Rank))
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.lastErr != nil:
		drawOverlay(dst, centerX, centerY, "ENGINE ERROR", "Press R to restart")
	case g.paused:
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.ctrl.State() == StateOver:
		best := fmt.Sprintf("Best tile: %d", RankValue(g.ctrl.MaxRank()))
		drawOverlay(dst, centerX, centerY, "GAME OVER", best, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | P: Pause | R: New game | Q: Quit"
}
