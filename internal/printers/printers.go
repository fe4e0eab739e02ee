// Package printers wraps interactive terminal prompts.
package printers

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

var defaultPrinters = Printers{}

// IPrinters is the prompt surface, kept as an interface so commands can
// be tested with a scripted implementation.
type IPrinters interface {
	Confirm(message string) bool
	Select(label string, items []string) (int, string, error)
}

type Printers struct{}

// NewPrinters returns a new printers struct.
func NewPrinters() *Printers {
	return &Printers{}
}

// Confirm prompts a y/n question and returns true for y.
func (p Printers) Confirm(message string) bool {
	validate := func(input string) error {
		input = strings.ToLower(strings.TrimSpace(input))
		if input != "y" && input != "n" {
			return fmt.Errorf("wrong input %s, was expecting `y` or `n`", input)
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:    message + " Press (y/n)",
		Validate: validate,
	}

	result, err := prompt.Run()
	if err != nil {
		return false
	}

	return strings.ToLower(strings.TrimSpace(result)) == "y"
}

// Select prompts a choice among items and returns the selected index
// and value.
func (p Printers) Select(label string, items []string) (int, string, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}

	i, result, err := prompt.Run()
	if err != nil {
		return i, "", fmt.Errorf("prompt failed: %w", err)
	}
	return i, result, nil
}

// Confirm prompts a confirmation message with the default printers.
func Confirm(message string) bool {
	return defaultPrinters.Confirm(message)
}

// Select prompts a choice with the default printers.
func Select(label string, items []string) (int, string, error) {
	return defaultPrinters.Select(label, items)
}
