package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/robalobadob/hangman/internal/console"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// rootConfig holds the flags shared by every command.
type rootConfig struct {
	demo      bool
	wordsFile string
	dbPath    string
	logLevel  string
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		log.Error().Err(err).Msg("hangman")
		os.Exit(1)
	}
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	root := buildCLI(stdin, stdout)
	return root.ParseAndRun(ctx, args)
}

func buildCLI(stdin io.Reader, stdout io.Writer) *ffcli.Command {
	var cfg rootConfig
	rootFlags := flag.NewFlagSet("hangman", flag.ContinueOnError)
	rootFlags.BoolVar(&cfg.demo, "demo", false, "Run non-interactive demo and exit")
	rootFlags.StringVar(&cfg.wordsFile, "words-file", "", "File with one secret per line (default: built-in list)")
	rootFlags.StringVar(&cfg.dbPath, "db", "", "SQLite file for the results history (disabled when empty)")
	rootFlags.StringVar(&cfg.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Serve command
	serveFlags := flag.NewFlagSet("hangman serve", flag.ContinueOnError)
	addr := serveFlags.String("addr", ":5175", "Listen address")
	jwtSecret := serveFlags.String("jwt-secret", "dev_secret_change_me", "HMAC key for game tokens")
	dailySalt := serveFlags.String("daily-salt", "hangman", "Salt for the daily secret")

	serveCmd := &ffcli.Command{
		Name:       "serve",
		ShortUsage: "hangman [flags] serve [flags]",
		ShortHelp:  "Serve games over HTTP",
		FlagSet:    serveFlags,
		Options:    []ff.Option{ff.WithEnvVarPrefix("HANGMAN")},
		Exec: func(ctx context.Context, _ []string) error {
			setupLogging(cfg.logLevel)
			return execServe(ctx, cfg, httpserver.Config{JWTSecret: *jwtSecret, DailySalt: *dailySalt}, *addr)
		},
	}

	statsCmd := &ffcli.Command{
		Name:       "stats",
		ShortUsage: "hangman --db FILE stats",
		ShortHelp:  "Print results history",
		FlagSet:    flag.NewFlagSet("hangman stats", flag.ContinueOnError),
		Exec: func(ctx context.Context, _ []string) error {
			setupLogging(cfg.logLevel)
			return execStats(ctx, cfg, stdout)
		},
	}

	return &ffcli.Command{
		ShortUsage:  "hangman [flags] [<subcommand>]",
		ShortHelp:   "Play Hangman in the terminal.",
		FlagSet:     rootFlags,
		Options:     []ff.Option{ff.WithEnvVarPrefix("HANGMAN")},
		Subcommands: []*ffcli.Command{serveCmd, statsCmd},
		Exec: func(ctx context.Context, _ []string) error {
			setupLogging(cfg.logLevel)
			if cfg.demo {
				console.Demo(stdout, console.DemoSecret, console.DemoScript)
				return nil
			}
			return execPlay(ctx, cfg, stdin, stdout)
		},
	}
}

// setupLogging applies the level and picks a console writer on a terminal.
func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// execPlay runs one interactive session. An aborted session ends with a
// farewell and no error.
func execPlay(ctx context.Context, cfg rootConfig, stdin io.Reader, stdout io.Writer) error {
	list, err := words.Load(cfg.wordsFile)
	if err != nil {
		return err
	}
	hist, closeDB, err := openHistory(cfg.dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	g := game.New(list.Choose())
	log.Info().Str("gameId", g.ID).Msg("session started")

	st, err := console.Play(ctx, g, stdin, stdout)
	if errors.Is(err, console.ErrAborted) {
		log.Info().Str("gameId", g.ID).Err(err).Msg("session aborted")
		fmt.Fprintln(stdout, "\nGoodbye!")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("gameId", g.ID).Str("state", string(st)).Msg("session finished")

	if hist != nil {
		res, err := history.FromGame(g, "console")
		if err == nil {
			err = hist.Record(ctx, res)
		}
		if err != nil {
			log.Warn().Err(err).Msg("record result")
		}
	}
	return nil
}

func execServe(ctx context.Context, cfg rootConfig, scfg httpserver.Config, addr string) error {
	list, err := words.Load(cfg.wordsFile)
	if err != nil {
		return err
	}
	hist, closeDB, err := openHistory(cfg.dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	var rec httpserver.Recorder
	if hist != nil {
		rec = hist
	}
	srv := httpserver.New(scfg, store.NewMemoryStore(), list, rec)
	log.Info().Str("addr", addr).Int("words", list.Len()).Msg("starting hangman server")
	return srv.Start(ctx, addr)
}

func execStats(ctx context.Context, cfg rootConfig, stdout io.Writer) error {
	if cfg.dbPath == "" {
		return errors.New("stats: --db is required")
	}
	hist, closeDB, err := openHistory(cfg.dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	sum, err := hist.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Played: %d  Won: %d  Lost: %d\n", sum.Played, sum.Won, sum.Lost)

	recent, err := hist.Recent(ctx, 10)
	if err != nil {
		return err
	}
	for _, r := range recent {
		fmt.Fprintf(stdout, "%s  %-4s  %-7s  %d guesses, %d wrong  %q\n",
			r.PlayedAt.Format(time.RFC3339), r.Outcome, r.Mode, r.Guesses, r.WrongGuesses, r.Secret)
	}
	return nil
}

// openHistory opens and migrates the database at path. With an empty path it
// returns a nil store and a no-op closer.
func openHistory(path string) (*history.Store, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	db, err := openDB(path)
	if err != nil {
		return nil, nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return history.NewStore(db), closer(db), nil
}

func closer(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("close db")
		}
	}
}
