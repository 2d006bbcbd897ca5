package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chess-backend/internal/model"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestTextStartingPosition(t *testing.T) {
	out := Text(model.NewStartingBoard())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 9)

	assert.Equal(t, "8  r  n  b  q  k  b  n  r ", lines[0])
	assert.Equal(t, "2  P  P  P  P  P  P  P  P ", lines[6])
	assert.Equal(t, "1  R  N  B  Q  K  B  N  R ", lines[7])
	assert.Equal(t, "   a  b  c  d  e  f  g  h ", lines[8])
}

func TestTextBlackPerspective(t *testing.T) {
	out := Text(model.NewStartingBoard(), FromPerspective(model.Black))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 9)

	assert.Equal(t, "1  R  N  B  K  Q  B  N  R ", lines[0])
	assert.Equal(t, "   h  g  f  e  d  c  b  a ", lines[8])
}

func TestTextWithoutCoordinates(t *testing.T) {
	out := Text(model.NewBoard(), WithoutCoordinates())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, strings.Repeat("   ", 8), lines[0])
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	board := model.NewStartingBoard()
	e2 := model.Position{Row: 2, Col: 5}
	SVG(&buf, board, Highlight(e2))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Equal(t, 8, strings.Count(out, "♙"))
	assert.Equal(t, 1, strings.Count(out, "♚"))
	assert.Equal(t, 1, strings.Count(out, highlightSquare))
	assert.Equal(t, 64+1, strings.Count(out, "<rect"))
}

func TestSquareAt(t *testing.T) {
	white := newOptions(nil)
	assert.Equal(t, model.Position{Row: 8, Col: 1}, white.squareAt(0, 0))
	assert.Equal(t, model.Position{Row: 1, Col: 8}, white.squareAt(7, 7))

	black := newOptions([]Option{FromPerspective(model.Black)})
	assert.Equal(t, model.Position{Row: 1, Col: 8}, black.squareAt(0, 0))
}
