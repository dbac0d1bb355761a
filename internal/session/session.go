// Package session adapts a game and its AI opponent to front ends that speak
// in raw coordinates, difficulty bytes and display markers.
package session

//go:generate mockgen -source=session.go -destination=mock_calculator_test.go -package=session

import (
	"context"
	"ctchen222/tictactoe-core/internal/bot"
	"ctchen222/tictactoe-core/internal/game"
	"ctchen222/tictactoe-core/internal/validator"
	"ctchen222/tictactoe-core/pkg/proto"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "ctchen222/tictactoe-core/session"

// MoveCalculator defines an interface for an agent that can calculate a game move.
type MoveCalculator interface {
	CalculateNextMove(g *game.Game, difficulty bot.Difficulty) (game.Position, error)
}

// MoveRequest is a move submitted by a front end.
type MoveRequest struct {
	Row    int `validate:"cell"`
	Column int `validate:"cell"`
}

// Session is one play session: a game that can be restarted, plus the AI used
// to answer it. A Session is not safe for concurrent use; callers serialize.
type Session struct {
	ID string

	game       *game.Game
	calculator MoveCalculator

	tracer   trace.Tracer
	moves    metric.Int64Counter
	aiMoves  metric.Int64Counter
	finished metric.Int64Counter
}

// Option configures a Session.
type Option func(*options)

type options struct {
	calculator     MoveCalculator
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithCalculator replaces the bot used for AI moves.
func WithCalculator(c MoveCalculator) Option {
	return func(o *options) {
		o.calculator = c
	}
}

// WithTracerProvider sets the tracer provider. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. The global provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// New starts a session with a fresh game.
func New(opts ...Option) *Session {
	o := options{
		calculator:     &bot.BotMoveCalculator{},
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	meter := o.meterProvider.Meter(instrumentationName)
	s := &Session{
		ID:         uuid.New().String(),
		game:       game.New(),
		calculator: o.calculator,
		tracer:     o.tracerProvider.Tracer(instrumentationName),
		moves:      counter(meter, "session.moves", "Accepted moves, human and AI."),
		aiMoves:    counter(meter, "session.ai_moves", "AI move requests by difficulty and result."),
		finished:   counter(meter, "session.games_finished", "Games that reached a terminal state."),
	}
	slog.Info("session started", "session.id", s.ID)
	return s
}

func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		slog.Warn("failed to create counter, using no-op", "metric.name", name, "error", err)
		return noop.Int64Counter{}
	}
	return c
}

// Restart replaces the game with a new, empty one.
func (s *Session) Restart(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "session.Restart", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.game = game.New()
	slog.InfoContext(ctx, "game restarted", "session.id", s.ID)
}

// DoMove places a marker for the current player on (row, column). It reports
// whether the move was accepted; a rejected move leaves the board unchanged.
func (s *Session) DoMove(ctx context.Context, row, column int) bool {
	ctx, span := s.tracer.Start(ctx, "session.DoMove", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("move.row", row),
		attribute.Int("move.col", column),
	))
	defer span.End()

	req := MoveRequest{Row: row, Column: column}
	if err := validator.GetValidator().Struct(req); err != nil {
		slog.WarnContext(ctx, "rejected move outside the board", "session.id", s.ID, "move.row", row, "move.col", column)
		span.SetAttributes(attribute.Bool("move.valid", false))
		span.SetStatus(codes.Error, "Move outside the board")
		return false
	}

	if err := s.apply(ctx, game.Position{Row: req.Row, Column: req.Column}); err != nil {
		slog.WarnContext(ctx, "invalid move", "session.id", s.ID, "error", err)
		span.SetAttributes(attribute.Bool("move.valid", false))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid move")
		return false
	}
	span.SetAttributes(attribute.Bool("move.valid", true))
	return true
}

// DoAIMove chooses a move with the AI at the given difficulty byte
// (0 easy, 1 medium, 2 hard, 3 unbeatable) and places it on the board.
// It reports false both for an unknown difficulty and when no move is
// available; use PlayAI to tell those apart.
func (s *Session) DoAIMove(ctx context.Context, difficulty uint8) bool {
	d, err := bot.DifficultyFromByte(difficulty)
	if err != nil {
		slog.WarnContext(ctx, "rejected AI move request", "session.id", s.ID, "error", err)
		s.aiMoves.Add(ctx, 1, metric.WithAttributes(
			attribute.Int("bot.difficulty", int(difficulty)),
			attribute.String("result", "invalid_difficulty"),
		))
		return false
	}

	_, err = s.PlayAI(ctx, d)
	return err == nil
}

// PlayAI asks the AI for a move at difficulty d and applies it. It returns
// bot.ErrInvalidDifficulty or bot.ErrNoMoveAvailable when no move was made.
func (s *Session) PlayAI(ctx context.Context, d bot.Difficulty) (game.Position, error) {
	ctx, span := s.tracer.Start(ctx, "session.PlayAI", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("bot.difficulty", d.String()),
	))
	defer span.End()

	p, err := s.calculator.CalculateNextMove(s.game, d)
	if err == nil {
		err = s.apply(ctx, p)
	}

	result := "ok"
	switch {
	case errors.Is(err, bot.ErrInvalidDifficulty):
		result = "invalid_difficulty"
	case errors.Is(err, bot.ErrNoMoveAvailable):
		result = "no_move"
	case err != nil:
		result = "error"
	}
	s.aiMoves.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("bot.difficulty", int(d)),
		attribute.String("result", result),
	))

	if err != nil {
		slog.WarnContext(ctx, "AI could not move", "session.id", s.ID, "bot.difficulty", d.String(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI could not move")
		return game.Position{}, fmt.Errorf("ai move: %w", err)
	}

	span.SetAttributes(attribute.Int("move.row", p.Row), attribute.Int("move.col", p.Column))
	return p, nil
}

func (s *Session) apply(ctx context.Context, p game.Position) error {
	mark := s.game.Turn()
	state, err := s.game.Move(p)
	if err != nil {
		return err
	}

	s.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("player.mark", mark.String())))
	slog.DebugContext(ctx, "move accepted", "session.id", s.ID, "player.mark", mark.String(), "move.row", p.Row, "move.col", p.Column)

	if state.IsGameOver() {
		s.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("game.result", state.String())))
		slog.InfoContext(ctx, "game finished", "session.id", s.ID, "game.result", state.String())
	}
	return nil
}

// GameOver reports whether no further moves are possible.
func (s *Session) GameOver() bool {
	return s.game.State().IsGameOver()
}

// Status returns a human-readable game status.
func (s *Session) Status() string {
	return s.game.State().String()
}

// State returns the current game state.
func (s *Session) State() game.State {
	return s.game.State()
}

// Turn returns the player to move.
func (s *Session) Turn() game.Owner {
	return s.game.Turn()
}

// Board returns one marker per cell in row-major order: 'X', 'O' or '.'.
func (s *Session) Board() []byte {
	cells := make([]byte, 0, game.Size*game.Size)
	for _, owner := range s.game.Board().All() {
		cells = append(cells, marker(owner))
	}
	return cells
}

// Snapshot returns the display view of the session.
func (s *Session) Snapshot() proto.SessionSnapshot {
	state := s.game.State()
	snap := proto.SessionSnapshot{
		Type:      "update",
		SessionID: s.ID,
		Board:     make([][]string, game.Size),
		Status:    state.String(),
		GameOver:  state.IsGameOver(),
	}
	for i := range snap.Board {
		snap.Board[i] = make([]string, game.Size)
	}
	for p, owner := range s.game.Board().All() {
		snap.Board[p.Row][p.Column] = string(marker(owner))
	}

	if winner := state.Winner(); winner != game.None {
		snap.Winner = winner.String()
		for _, p := range state.Line {
			snap.WinningLine = append(snap.WinningLine, []int{p.Row, p.Column})
		}
	} else if !state.IsGameOver() {
		snap.Next = s.game.Turn().String()
	}
	return snap
}

func marker(owner game.Owner) byte {
	switch owner {
	case game.PlayerX:
		return proto.MarkX
	case game.PlayerO:
		return proto.MarkO
	default:
		return proto.MarkEmpty
	}
}
