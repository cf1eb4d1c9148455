// Package console abstracts user confirmation and notification so that
// destructive workflows are testable without a terminal.
package console

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Confirmer asks the user a yes/no question before a destructive
// action proceeds.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Notifier surfaces an operation outcome to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// PromptConfirmer implements Confirmer over an interactive terminal
// prompt.
type PromptConfirmer struct{}

func (PromptConfirmer) Confirm(message string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err != nil {
		// promptui reports "no" as ErrAbort; only real terminal
		// failures propagate.
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// WriterNotifier prints notices line by line, prefixed by level.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(level Level, message string) {
	switch level {
	case LevelError:
		fmt.Fprintf(n.W, "Error: %s\n", message)
	case LevelSuccess:
		fmt.Fprintf(n.W, "%s\n", message)
	default:
		fmt.Fprintf(n.W, "%s\n", message)
	}
}
