package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/chess-backend/internal/model"
)

var (
	lightCell = color.New(color.BgHiYellow)
	darkCell  = color.New(color.BgYellow)
	whiteMan  = color.New(color.FgHiWhite, color.Bold)
	blackMan  = color.New(color.FgBlack, color.Bold)
	highlight = color.New(color.BgGreen)
)

var letters = map[model.PieceType]string{
	model.King: "K", model.Queen: "Q", model.Rook: "R",
	model.Bishop: "B", model.Knight: "N", model.Pawn: "P",
}

// Text draws board for a terminal. White pieces are upper case and black
// pieces lower case, so the output stays readable when colour is off.
func Text(board model.Board, opts ...Option) string {
	o := newOptions(opts)
	var sb strings.Builder

	for y := 0; y < model.BoardSize; y++ {
		if o.coordinates {
			sb.WriteString(rankLabel(o.squareAt(0, y)))
			sb.WriteString(" ")
		}
		for x := 0; x < model.BoardSize; x++ {
			pos := o.squareAt(x, y)
			cell := darkCell
			if isLight(pos) {
				cell = lightCell
			}
			if o.highlight[pos] {
				cell = highlight
			}

			symbol := " "
			if piece, ok := board.Piece(pos); ok {
				symbol = letters[piece.Type]
				if piece.Color == model.Black {
					symbol = blackMan.Sprint(strings.ToLower(symbol))
				} else {
					symbol = whiteMan.Sprint(symbol)
				}
			}
			sb.WriteString(cell.Sprint(" " + symbol + " "))
		}
		sb.WriteString("\n")
	}

	if o.coordinates {
		sb.WriteString("  ")
		for x := 0; x < model.BoardSize; x++ {
			sb.WriteString(" " + string(rune('a'+o.squareAt(x, 0).Col-1)) + " ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func rankLabel(pos model.Position) string {
	return string(rune('0' + pos.Row))
}
