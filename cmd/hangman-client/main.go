// cmd/hangman-client/main.go
//
// Terminal player for a hangman-server. Three modes: play yourself, or
// hand the game to a random or dictionary-driven solver.

package main

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/assets"
	"github.com/robalobadob/hangman/internal/random"
	"github.com/robalobadob/hangman/internal/solver"
	"github.com/robalobadob/hangman/internal/words"
)

const version = "0.1.0"

var serverURL string

var rootCmd = &cobra.Command{
	Use:     "hangman-client",
	Short:   "Play Hangman against a hangman-server",
	Version: version,
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Play a game yourself",
	RunE:  runUser,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Watch a random-letter solver play",
	RunE:  runRandom,
}

var strategicCmd = &cobra.Command{
	Use:   "strategic [word list]",
	Short: "Watch a dictionary-driven solver play",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStrategic,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "base URL of the hangman server")
	rootCmd.AddCommand(userCmd, randomCmd, strategicCmd)
}

func runUser(cmd *cobra.Command, args []string) error {
	return play(cmd.Context(), solver.NewUser())
}

func runRandom(cmd *cobra.Command, args []string) error {
	rng, err := newRNG()
	if err != nil {
		return err
	}
	return play(cmd.Context(), solver.NewRandom(rng))
}

func runStrategic(cmd *cobra.Command, args []string) error {
	var (
		list []string
		err  error
	)
	if len(args) > 0 {
		list, err = words.Load(args[0])
	} else {
		list, err = assets.Words()
		list = words.Filter(list)
	}
	if err != nil {
		return err
	}
	rng, err := newRNG()
	if err != nil {
		return err
	}
	return play(cmd.Context(), solver.NewStrategic(list, rng))
}

func newRNG() (*rand.Rand, error) {
	seed, err := random.NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
