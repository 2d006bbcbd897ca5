// Package render draws boards for people: SVG for the web client and
// coloured text for terminals.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/chess-backend/internal/model"
)

const (
	squareSize = 60
	margin     = 20

	lightSquare     = "#f0d9b5"
	darkSquare      = "#b58863"
	highlightSquare = "#cdd26a"
)

var glyphs = map[model.Color]map[model.PieceType]string{
	model.White: {
		model.King: "♔", model.Queen: "♕", model.Rook: "♖",
		model.Bishop: "♗", model.Knight: "♘", model.Pawn: "♙",
	},
	model.Black: {
		model.King: "♚", model.Queen: "♛", model.Rook: "♜",
		model.Bishop: "♝", model.Knight: "♞", model.Pawn: "♟",
	},
}

type options struct {
	perspective model.Color
	highlight   map[model.Position]bool
	coordinates bool
}

type Option func(*options)

// FromPerspective draws the board with color's pieces at the bottom.
func FromPerspective(color model.Color) Option {
	return func(o *options) { o.perspective = color }
}

// Highlight marks squares, typically the last move's start and end.
func Highlight(positions ...model.Position) Option {
	return func(o *options) {
		for _, p := range positions {
			o.highlight[p] = true
		}
	}
}

// WithoutCoordinates drops the file and rank labels.
func WithoutCoordinates() Option {
	return func(o *options) { o.coordinates = false }
}

func newOptions(opts []Option) *options {
	o := &options{
		perspective: model.White,
		highlight:   map[model.Position]bool{},
		coordinates: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// squareAt maps a screen cell (0,0 top left) to a board position.
func (o *options) squareAt(x, y int) model.Position {
	if o.perspective == model.Black {
		return model.Position{Row: y + 1, Col: model.BoardSize - x}
	}
	return model.Position{Row: model.BoardSize - y, Col: x + 1}
}

func isLight(pos model.Position) bool {
	return (pos.Row+pos.Col)%2 == 1
}

// SVG writes board as an SVG document to w.
func SVG(w io.Writer, board model.Board, opts ...Option) {
	o := newOptions(opts)
	size := model.BoardSize*squareSize + 2*margin

	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Title("chess board")
	canvas.Rect(0, 0, size, size, "fill:#312e2b")

	for y := 0; y < model.BoardSize; y++ {
		for x := 0; x < model.BoardSize; x++ {
			pos := o.squareAt(x, y)
			px, py := margin+x*squareSize, margin+y*squareSize

			fill := darkSquare
			if isLight(pos) {
				fill = lightSquare
			}
			if o.highlight[pos] {
				fill = highlightSquare
			}
			canvas.Rect(px, py, squareSize, squareSize, "fill:"+fill)

			if piece, ok := board.Piece(pos); ok {
				canvas.Text(px+squareSize/2, py+squareSize*3/4, glyphs[piece.Color][piece.Type],
					fmt.Sprintf("font-size:%dpx;text-anchor:middle;fill:#000", squareSize*3/4))
			}
		}
	}

	if o.coordinates {
		label := "font-size:12px;text-anchor:middle;fill:#ddd"
		for i := 0; i < model.BoardSize; i++ {
			bottom := o.squareAt(i, model.BoardSize-1)
			side := o.squareAt(0, i)
			canvas.Text(margin+i*squareSize+squareSize/2, size-margin/4, string(rune('a'+bottom.Col-1)), label)
			canvas.Text(margin/2, margin+i*squareSize+squareSize/2+4, fmt.Sprint(side.Row), label)
		}
	}
	canvas.End()
}
