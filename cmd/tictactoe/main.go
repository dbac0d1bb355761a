package main

import (
	"context"
	"ctchen222/tictactoe-core/internal/bot"
	"ctchen222/tictactoe-core/internal/config"
	"ctchen222/tictactoe-core/internal/logger"
	"ctchen222/tictactoe-core/internal/session"
	"ctchen222/tictactoe-core/internal/telemetry"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run returns the process exit code so that deferred cleanup finishes before
// main exits.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	var (
		difficulty string
		human      string
		asJSON     bool
	)
	fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	fs.StringVar(&difficulty, "difficulty", "", "AI difficulty: easy, medium, hard or unbeatable (default from TICTACTOE_DIFFICULTY)")
	fs.StringVar(&human, "human", "x", "mark played from stdin: x, o, or none for AI self-play")
	fs.BoolVar(&asJSON, "json", false, "print the session as JSON after every move")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return exitUsage
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Printf("failed to parse log level: %v", err)
		return exitUsage
	}
	logger.Init(os.Stderr, level)

	if difficulty == "" {
		difficulty = cfg.Difficulty
	}
	d, err := bot.ParseDifficulty(difficulty)
	if err != nil {
		slog.Error("bad -difficulty flag", "error", err)
		return exitUsage
	}
	mark, err := parseHuman(human)
	if err != nil {
		slog.Error("bad -human flag", "error", err)
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		return exitError
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	s := session.New()
	err = play(ctx, s, d, mark, stdin, stdout, asJSON)
	// A second signal kills the process instead of being swallowed.
	stop()
	switch {
	case errors.Is(err, context.Canceled):
		slog.Info("game interrupted", "session.id", s.ID)
		return exitInterrupted
	case err != nil:
		slog.Error("game aborted", "session.id", s.ID, "error", err)
		return exitError
	}
	slog.Info("game over", "session.id", s.ID, "game.result", s.Status())
	return exitOK
}
