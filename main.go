// main.go
//
// Entry point for the word-search server.
// Commands:
//   - serve    → run the HTTP API (default when no command is given)
//   - generate → print a grid for a seed, optionally with its solution
//   - config   → print or write the effective configuration as YAML
//   - version  → print build information

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordsearch/apps/go-server/internal/auth"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/config"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/db"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/game"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/httpserver"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/logging"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/metrics"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/puzzle"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/store"
	"github.com/robalobadob/wordsearch/apps/go-server/internal/words"
)

// Set with -ldflags "-X main.version=..." at build time.
var version = "dev"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "wordsearch",
		Short:         "Word-search puzzle server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	})
	cmd.AddCommand(generateCmd(&configPath))
	cmd.AddCommand(configCmd(&configPath))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wordsearch %s\n", version)
		},
	})
	return cmd
}

// serve loads config, validates the vocabulary, opens the database and runs
// the API until SIGINT/SIGTERM.
func serve(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Pretty)

	vocab, err := words.Load(cfg.Puzzle.VocabularyFile)
	if err != nil {
		return err
	}
	if err := puzzle.CheckVocabulary(vocab, cfg.Puzzle.Size); err != nil {
		return fmt.Errorf("vocabulary does not fit a %dx%d grid: %w", cfg.Puzzle.Size, cfg.Puzzle.Size, err)
	}
	// A trial run surfaces crowded configurations early.
	if _, st, err := puzzle.NewGenerator(cfg.Puzzle.AttemptFactor).
		Generate(vocab, cfg.Puzzle.Size, game.Rand(game.RandomSeed())); err != nil {
		log.Warn().Err(err).Msg("trial grid generation failed; grids may not be generated")
	} else {
		log.Debug().Int("attempts", st.Attempts).Dur("took", st.Duration).Msg("trial grid generated")
	}

	sqlDB, err := db.OpenAndMigrate(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	au := auth.NewService(sqlDB, auth.Options{
		Secret:      cfg.Auth.JWTSecret,
		ExpiresDays: cfg.Auth.ExpiresDays,
		CookieName:  cfg.Auth.CookieName,
		Production:  cfg.Auth.Production,
	})
	srv := httpserver.New(store.NewMemoryStore(), sqlDB, au, metrics.New(), httpserver.Options{
		Vocabulary:     vocab,
		Size:           cfg.Puzzle.Size,
		AttemptFactor:  cfg.Puzzle.AttemptFactor,
		DailySalt:      cfg.Puzzle.DailySalt,
		ClientOrigin:   cfg.Server.ClientOrigin,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Server.Port).Int("size", cfg.Puzzle.Size).
			Int("words", len(vocab)).Str("version", version).Msg("starting go-server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return srv.RunJanitor(gctx, time.Minute, cfg.Server.SessionIdle)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// generateCmd prints a grid without starting the server.
func generateCmd(configPath *string) *cobra.Command {
	var (
		seed     uint64
		size     int
		vocabPth string
		solution bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a grid for a seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if size <= 0 {
				size = cfg.Puzzle.Size
			}
			if vocabPth == "" {
				vocabPth = cfg.Puzzle.VocabularyFile
			}
			if !cmd.Flags().Changed("seed") {
				seed = game.RandomSeed()
			}
			vocab, err := words.Load(vocabPth)
			if err != nil {
				return err
			}
			grid, _, err := puzzle.NewGenerator(cfg.Puzzle.AttemptFactor).Generate(vocab, size, game.Rand(seed))
			if err != nil {
				return err
			}
			return printGrid(cmd, seed, grid, vocab, solution, asJSON)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed (random when unset)")
	cmd.Flags().IntVar(&size, "size", 0, "Grid size N (default from config)")
	cmd.Flags().StringVar(&vocabPth, "vocab", "", "Vocabulary file, one word per line")
	cmd.Flags().BoolVar(&solution, "solution", false, "Also print where each word is placed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

// configCmd shows the configuration serve would run with, after file, .env
// and environment overrides. --out writes it to a file instead.
func configCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if out != "" {
				if err := cfg.SaveToFile(out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
				return nil
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the configuration to this file")
	return cmd
}

// placed is one line of --solution output.
type placed struct {
	Word string `json:"word"`
	puzzle.Placement
}

func printGrid(cmd *cobra.Command, seed uint64, grid puzzle.Grid, vocab []string, solution, asJSON bool) error {
	out := cmd.OutOrStdout()
	var sol []placed
	if solution {
		for _, w := range vocab {
			if p, _, ok := puzzle.Locate(grid, w); ok {
				sol = append(sol, placed{Word: w, Placement: p})
			}
		}
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"seed":     seed,
			"grid":     grid,
			"words":    vocab,
			"solution": sol,
		})
	}
	fmt.Fprintf(out, "seed %d\n%s\n", seed, grid)
	for _, p := range sol {
		fmt.Fprintf(out, "%-10s row %2d col %2d %s\n", p.Word, p.Row, p.Col, p.Orientation)
	}
	return nil
}
