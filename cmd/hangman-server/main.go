// cmd/hangman-server/main.go
//
// Entry point for the Hangman HTTP server. Takes an optional word list
// path and falls back to the embedded default list without one;
// everything else comes from the environment (see internal/config).

package main

import (
	"math/rand"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/random"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "hangman-server [word list]",
	Short:   "HTTP server hosting games of Hangman",
	Args:    cobra.MaximumNArgs(1),
	Version: version,
	Run:     runServer,
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	list, err := loadWords(args)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	seed, err := random.NewSeed()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed rng")
	}
	src := words.NewSource(list, rand.New(rand.NewSource(seed)))

	m := metrics.NewMetrics()
	st := store.New(src, cfg.MaxWrongGuesses, m)
	srv := httpserver.New(st, m, cfg.ClientOrigin)

	log.Info().
		Str("addr", cfg.Addr()).
		Int("words", src.Count()).
		Int("maxWrongGuesses", cfg.MaxWrongGuesses).
		Msg("starting hangman-server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// loadWords reads the word list given on the command line, or the
// embedded default list when no path was given. Both sources pass
// through the same usability filter.
func loadWords(args []string) ([]string, error) {
	if len(args) > 0 {
		return words.Load(args[0])
	}
	lines, err := assets.Words()
	if err != nil {
		return nil, err
	}
	list := words.Filter(lines)
	if len(list) == 0 {
		return nil, words.ErrEmptyList
	}
	return list, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
