package solver

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/robalobadob/hangman/internal/game"
)

// User defers every guess to a human at the terminal.
type User struct{}

// NewUser builds an interactive solver.
func NewUser() *User {
	return &User{}
}

// NextLetter prompts until it gets a single letter.
func (u *User) NextLetter(snap game.Snapshot) (string, error) {
	for {
		raw, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText("Guess a letter").
			Show()
		if err != nil {
			return "", err
		}
		raw = strings.TrimSpace(raw)
		if len(raw) == 1 && isLetter(raw[0]) {
			return strings.ToLower(raw), nil
		}
		pterm.Warning.Println("Please enter a single letter a-z.")
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
