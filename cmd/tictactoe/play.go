package main

import (
	"bufio"
	"context"
	"ctchen222/tictactoe-core/internal/bot"
	"ctchen222/tictactoe-core/internal/game"
	"ctchen222/tictactoe-core/internal/session"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errBadInput = errors.New("expected a move as two numbers: row column")

// parseHuman maps the -human flag to the mark typed in from the terminal.
// "none" means both marks are played by the AI.
func parseHuman(s string) (game.Owner, error) {
	switch strings.ToLower(s) {
	case "x":
		return game.PlayerX, nil
	case "o":
		return game.PlayerO, nil
	case "none", "":
		return game.None, nil
	default:
		return game.None, fmt.Errorf("unknown player %q, want x, o or none", s)
	}
}

// parseMove reads "row column", 0-based, separated by spaces or a comma.
func parseMove(line string) (int, int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, errBadInput
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, errBadInput
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errBadInput
	}
	return row, col, nil
}

// readLines feeds the lines of in to the returned channel from its own
// goroutine, so a blocked read never holds up cancellation. The error channel
// receives the reason reading stopped before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// play runs one game on s until it ends, reading moves for human from in and
// letting the AI play the other mark. It returns ctx.Err() as soon as ctx is
// done, even while waiting for input.
func play(ctx context.Context, s *session.Session, difficulty bot.Difficulty, human game.Owner, in io.Reader, out io.Writer, asJSON bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		lines <-chan string
		errc  <-chan error
	)
	if human != game.None {
		lines, errc = readLines(ctx, in)
	}

	if err := render(out, s, asJSON); err != nil {
		return err
	}

	for !s.GameOver() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.Turn() != human {
			if _, err := s.PlayAI(ctx, difficulty); err != nil {
				return err
			}
			if err := render(out, s, asJSON); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(out, "%s> ", human)
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("read move: %w", err)
				}
				return io.ErrUnexpectedEOF
			}
			line = l
		}

		row, col, err := parseMove(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if !s.DoMove(ctx, row, col) {
			fmt.Fprintln(out, "invalid move")
			continue
		}
		if err := render(out, s, asJSON); err != nil {
			return err
		}
	}
	return nil
}

func render(out io.Writer, s *session.Session, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(out).Encode(s.Snapshot())
	}

	var b strings.Builder
	board := s.Board()
	for row := 0; row < game.Size; row++ {
		b.Write(board[row*game.Size : (row+1)*game.Size])
		b.WriteByte('\n')
	}
	b.WriteString(s.Status())
	b.WriteByte('\n')
	_, err := io.WriteString(out, b.String())
	return err
}
