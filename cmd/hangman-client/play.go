// cmd/hangman-client/play.go
//
// The shared game loop: create a game, let the solver pick letters, and
// render each snapshot until the server declares a result.

package main

import (
	"context"
	"errors"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/robalobadob/hangman/internal/client"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/solver"
)

func play(ctx context.Context, s solver.Solver) error {
	banner()

	api := client.New(serverURL)
	snap, err := api.NewGame(ctx)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("New game %s", snap.ID)

	for {
		pterm.Printfln("%s (guesses remaining: %d)", snap.Word, snap.Guesses)
		if snap.Status != game.StatusPlaying {
			break
		}

		letter, err := s.NextLetter(snap)
		if err != nil {
			return err
		}
		pterm.Info.Printfln("Guessing %q", letter)

		next, err := api.Guess(ctx, snap.ID, letter)
		if err != nil {
			// A rejected letter costs nothing; let the solver try again.
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.Code == "illegal_guess" {
				pterm.Warning.Printfln("Server rejected %q: %s", letter, apiErr.Message)
				continue
			}
			return err
		}
		snap = next
	}

	if snap.Status == game.StatusWon {
		pterm.Success.Printfln("We win! %s", snap.Message)
	} else {
		pterm.Error.Printfln("We lose. :( %s", snap.Message)
	}
	return nil
}

func banner() {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Hang", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("man", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		return
	}
	pterm.Print(title)
}
