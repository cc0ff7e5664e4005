package tui

import (
	"context"
	"time"

	"github.com/kingrea/trainlog/internal/training"
)

// Service is what the TUI needs from the server client.
type Service interface {
	RecordTraining(ctx context.Context, evt training.Event) error
	AddStage(ctx context.Context, stage training.Stage) error
	Prognosis(ctx context.Context) (training.Prognosis, error)
}

// request is one pending call to the server. run returns the success message.
type request struct {
	action training.Action
	run    func(ctx context.Context, svc Service) (string, error)
}

// outcome is what a prompt flow decides after an answer.
type outcome struct {
	err    error    // validation failure, ends the action
	submit *request // ready to send
}

// promptFlow asks one question at a time for a single action.
type promptFlow interface {
	Action() training.Action
	Prompt() string
	Answer(answer string, now time.Time) outcome
}

// trainingFlow asks whether the session happened today and, if not, asks
// for a description. Both paths post the result as "data".
type trainingFlow struct {
	kind       training.Kind
	describing bool
}

func newTrainingFlow(kind training.Kind) *trainingFlow {
	return &trainingFlow{kind: kind}
}

func (f *trainingFlow) Action() training.Action { return f.kind.Action() }

func (f *trainingFlow) Prompt() string {
	if f.describing {
		return f.kind.DescribePrompt()
	}
	return f.kind.OccurredPrompt()
}

func (f *trainingFlow) Answer(answer string, now time.Time) outcome {
	if !f.describing {
		if training.IsAffirmative(answer) {
			return outcome{submit: trainingRequest(training.OccurredToday(f.kind, now))}
		}
		f.describing = true
		return outcome{}
	}
	evt, err := training.Described(f.kind, answer)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{submit: trainingRequest(evt)}
}

func trainingRequest(evt training.Event) *request {
	action := evt.Kind.Action()
	return &request{
		action: action,
		run: func(ctx context.Context, svc Service) (string, error) {
			if err := svc.RecordTraining(ctx, evt); err != nil {
				return "", err
			}
			return action.SuccessMessage(), nil
		},
	}
}

var stagePrompts = []string{
	training.PromptStageNumber,
	training.PromptStageScore,
	training.PromptStagePlacement,
}

// stageFlow collects stage number, score and placement, validating each
// answer as soon as it is given.
type stageFlow struct {
	answers []string
}

func newStageFlow() *stageFlow {
	return &stageFlow{}
}

func (f *stageFlow) Action() training.Action { return training.ActionStage }

func (f *stageFlow) Prompt() string {
	if len(f.answers) >= len(stagePrompts) {
		return ""
	}
	return stagePrompts[len(f.answers)]
}

func (f *stageFlow) Answer(answer string, _ time.Time) outcome {
	var err error
	switch len(f.answers) {
	case 0:
		_, err = training.ParseStageNumber(answer)
	case 1:
		_, err = training.ParseScore(answer)
	case 2:
		_, err = training.ParsePlacement(answer)
	}
	if err != nil {
		return outcome{err: err}
	}
	f.answers = append(f.answers, answer)
	if len(f.answers) < len(stagePrompts) {
		return outcome{}
	}
	stage, err := training.ParseStage(f.answers[0], f.answers[1], f.answers[2])
	if err != nil {
		return outcome{err: err}
	}
	return outcome{submit: &request{
		action: training.ActionStage,
		run: func(ctx context.Context, svc Service) (string, error) {
			if err := svc.AddStage(ctx, stage); err != nil {
				return "", err
			}
			return training.ActionStage.SuccessMessage(), nil
		},
	}}
}

func prognosisRequest() *request {
	return &request{
		action: training.ActionPrognosis,
		run: func(ctx context.Context, svc Service) (string, error) {
			p, err := svc.Prognosis(ctx)
			if err != nil {
				return "", err
			}
			return p.Message(), nil
		},
	}
}
