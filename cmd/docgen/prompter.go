package main

import (
	"github.com/AlecAivazis/survey/v2"
)

// prompter abstracts the interactive prompts so the fill flow can be tested
// without a terminal.
type prompter interface {
	Input(message string) (string, error)
	Multiline(message string) (string, error)
	Confirm(message string, def bool) (bool, error)
	Select(message string, options []string) (string, error)
}

type surveyPrompter struct{}

func newSurveyPrompter() prompter {
	return &surveyPrompter{}
}

func (s *surveyPrompter) Input(message string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Input{Message: message}, &out)
	return out, err
}

func (s *surveyPrompter) Multiline(message string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Multiline{Message: message}, &out)
	return out, err
}

func (s *surveyPrompter) Confirm(message string, def bool) (bool, error) {
	var out bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out)
	return out, err
}

func (s *surveyPrompter) Select(message string, options []string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Select{Message: message, Options: options}, &out)
	return out, err
}
