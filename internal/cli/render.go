package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesim"
)

// Net geometry. The net is drawn in sticker cells, cellWidth terminal
// columns wide and one row high, starting at (netLeft, netTop).
const (
	cellWidth = 2
	netLeft   = 2
	netTop    = 2

	// Rough pixel size of a terminal cell, to scale mouse drags to the
	// resolver's pixel thresholds.
	pixelsPerColumn = 8
	pixelsPerRow    = 16
)

// netOrigin is the top-left cell of each face in the unfolded net.
var netOrigin = map[cubesim.Side][2]int{
	cubesim.SidePosY: {3, 0},
	cubesim.SideNegX: {0, 3},
	cubesim.SidePosZ: {3, 3},
	cubesim.SidePosX: {6, 3},
	cubesim.SideNegZ: {9, 3},
	cubesim.SideNegY: {3, 6},
}

var stickerColors = map[cubesim.Color]lipgloss.Color{
	cubesim.Inner:  lipgloss.Color("#222222"),
	cubesim.White:  lipgloss.Color("#FFFFFF"),
	cubesim.Yellow: lipgloss.Color("#FFD500"),
	cubesim.Green:  lipgloss.Color("#009B48"),
	cubesim.Blue:   lipgloss.Color("#0046AD"),
	cubesim.Red:    lipgloss.Color("#B71234"),
	cubesim.Orange: lipgloss.Color("#FF5800"),
}

// netSticker maps a net cell to the sticker drawn there.
func netSticker(col, row int) (cubesim.Side, int, bool) {
	for s, o := range netOrigin {
		c, r := col-o[0], row-o[1]
		if c >= 0 && c < 3 && r >= 0 && r < 3 {
			return s, r*3 + c, true
		}
	}
	return 0, 0, false
}

// stickerHit returns the clicked face under terminal position (x, y).
func stickerHit(cube *cubesim.Cube, x, y int) (cubesim.ClickedFace, bool) {
	if x < netLeft || y < netTop {
		return cubesim.ClickedFace{}, false
	}
	side, i, ok := netSticker((x-netLeft)/cellWidth, y-netTop)
	if !ok {
		return cubesim.ClickedFace{}, false
	}
	c := cube.StickerAt(side, i)
	if c == nil {
		return cubesim.ClickedFace{}, false
	}
	return cubesim.ClickedFaceFromNormal(side.Normal().Float(), c.Position.Float())
}

// layerSet returns the cubies currently in the layer turned by face.
func layerSet(cube *cubesim.Cube, face cubesim.Face) map[*cubesim.Cubie]bool {
	set := make(map[*cubesim.Cubie]bool)
	for _, c := range cube.CubiesOnFace(face) {
		set[c] = true
	}
	return set
}

// renderNet draws the cube as a colored net. Stickers of cubies in turning
// are marked as animating; those in preview as the layer a drag will turn.
func renderNet(cube *cubesim.Cube, turning, preview map[*cubesim.Cubie]bool) string {
	f := cube.Facelets()
	pad := strings.Repeat(" ", netLeft)
	blank := strings.Repeat(" ", cellWidth)

	var b strings.Builder
	for row := 0; row < 9; row++ {
		b.WriteString(pad)
		for col := 0; col < 12; col++ {
			side, i, ok := netSticker(col, row)
			if !ok {
				b.WriteString(blank)
				continue
			}

			mark := blank
			c := cube.StickerAt(side, i)
			switch {
			case turning[c]:
				mark = "··"
			case preview[c]:
				mark = "<>"
			}

			style := lipgloss.NewStyle().
				Background(stickerColors[f[side][i]]).
				Foreground(lipgloss.Color("#000000"))
			b.WriteString(style.Render(mark))
		}
		b.WriteString("\n")
	}
	return b.String()
}
