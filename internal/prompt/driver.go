package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a question.
var ErrAborted = errors.New("prompt aborted")

// Question configures a single question.
type Question struct {
	Message string
	Default string
	Help    string
	// Options switches the question to a single select.
	Options []string
}

// Driver asks questions. Implementations must honour ctx cancellation
// before blocking on input.
type Driver interface {
	Input(ctx context.Context, q Question) (string, error)
	Select(ctx context.Context, q Question) (string, error)
	Multiline(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question) (bool, error)
}

// SurveyDriver asks questions on the controlling terminal.
type SurveyDriver struct {
	// Stdio overrides the terminal streams; the zero value uses os.Std*.
	Stdio *terminal.Stdio
	// PageSize limits visible select options; zero keeps survey's default.
	PageSize int
}

func (d SurveyDriver) opts() []survey.AskOpt {
	if d.Stdio == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithStdio(d.Stdio.In, d.Stdio.Out, d.Stdio.Err)}
}

func (d SurveyDriver) Input(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Input{Message: q.Message, Default: q.Default, Help: q.Help}
	if err := survey.AskOne(p, &out, d.opts()...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d SurveyDriver) Select(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Select{Message: q.Message, Options: q.Options, Help: q.Help}
	if d.PageSize > 0 {
		p.PageSize = d.PageSize
	}
	if indexOf(q.Options, q.Default) >= 0 {
		p.Default = q.Default
	}
	if err := survey.AskOne(p, &out, d.opts()...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d SurveyDriver) Multiline(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Multiline{Message: q.Message, Default: q.Default, Help: q.Help}
	if err := survey.AskOne(p, &out, d.opts()...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d SurveyDriver) Confirm(ctx context.Context, q Question) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	p := &survey.Confirm{Message: q.Message, Default: q.Default == "yes", Help: q.Help}
	if err := survey.AskOne(p, &out, d.opts()...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
