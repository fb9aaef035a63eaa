package testutil

import (
	"fmt"

	"zero-pass/internal/prompt"
)

// ScriptedPrompter answers prompts from a fixed script, in order, and records
// every message it was asked.
type ScriptedPrompter struct {
	answers []string
	Asked   []string
}

var _ prompt.Prompter = (*ScriptedPrompter)(nil)

// NewScriptedPrompter creates a prompter returning answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

func (p *ScriptedPrompter) next(msg string) (string, error) {
	p.Asked = append(p.Asked, msg)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("unexpected prompt %q: %w", msg, prompt.ErrNoInput)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *ScriptedPrompter) Input(msg string) (string, error)    { return p.next(msg) }
func (p *ScriptedPrompter) Password(msg string) (string, error) { return p.next(msg) }

func (p *ScriptedPrompter) Confirm(msg string) (bool, error) {
	a, err := p.next(msg)
	if err != nil {
		return false, err
	}
	return prompt.IsYes(a), nil
}

func (p *ScriptedPrompter) Select(msg string, options []string) (string, error) {
	a, err := p.next(msg)
	if err != nil {
		return "", err
	}
	return prompt.Choose(a, options)
}

// Remaining returns the number of unused answers.
func (p *ScriptedPrompter) Remaining() int {
	return len(p.answers)
}
