// Command cli plays a hot-seat game in the terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/render"
)

var (
	errQuit  = errors.New("quit")
	errUsage = errors.New(`enter a move like "e2 e4" or "e7 e8 q", "moves e2", "resign" or "quit"`)
	warn     = color.New(color.FgRed)
	announce = color.New(color.FgCyan, color.Bold)
)

func main() {
	flip := flag.Bool("flip", false, "show the board from the side to move")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()
	if *noColor {
		color.NoColor = true
	}

	if err := run(os.Stdin, os.Stdout, *flip); err != nil && !errors.Is(err, errQuit) {
		warn.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, flip bool) error {
	game := model.NewGame()
	scanner := bufio.NewScanner(in)

	for !game.IsOver() {
		printBoard(out, game, flip)
		fmt.Fprintf(out, "%s to move> ", game.Turn())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errQuit
		}
		if err := handleLine(out, game, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			warn.Fprintln(out, err)
		}
	}

	printBoard(out, game, flip)
	announce.Fprintf(out, "Game over: %s by %s\n", game.Outcome(), game.Method())
	return nil
}

func printBoard(out io.Writer, game *model.Game, flip bool) {
	opts := []render.Option{}
	if flip {
		opts = append(opts, render.FromPerspective(game.Turn()))
	}
	if last, ok := game.LastMove(); ok {
		opts = append(opts, render.Highlight(last.Start, last.End))
	}
	fmt.Fprint(out, render.Text(game.Board(), opts...))
	if game.IsInCheck(game.Turn()) {
		announce.Fprintln(out, "Check!")
	}
}

func handleLine(out io.Writer, game *model.Game, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return errUsage
	}

	switch fields[0] {
	case "quit", "exit":
		return errQuit
	case "resign":
		return game.Resign(game.Turn())
	case "moves":
		if len(fields) != 2 {
			return errUsage
		}
		pos, err := model.ParsePosition(fields[1])
		if err != nil {
			return err
		}
		moves := game.ValidMoves(pos)
		names := make([]string, 0, len(moves))
		for _, m := range moves {
			names = append(names, m.String())
		}
		fmt.Fprintf(out, "%d moves: %s\n", len(moves), strings.Join(names, " "))
		return nil
	}

	move, err := parseMove(fields)
	if err != nil {
		return err
	}
	return game.MakeMove(move)
}

// parseMove accepts "e2 e4", "e2e4", "e7 e8 q" and "e7e8q".
func parseMove(fields []string) (model.Move, error) {
	if len(fields) == 1 && len(fields[0]) >= 4 {
		joined := fields[0]
		fields = []string{joined[:2], joined[2:4]}
		if len(joined) > 4 {
			fields = append(fields, joined[4:])
		}
	}
	var wsMove model.WSMove
	switch len(fields) {
	case 3:
		wsMove.Promotion = fields[2]
		fallthrough
	case 2:
		wsMove.From, wsMove.To = fields[0], fields[1]
	default:
		return model.Move{}, errUsage
	}
	return wsMove.ToMove()
}
