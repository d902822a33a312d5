package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tirewriter/backend/internal/app"
	envdomain "tirewriter/backend/internal/features/environment/domain"
	finetunedomain "tirewriter/backend/internal/features/finetune/domain"
	instructiondomain "tirewriter/backend/internal/features/instruction/domain"
	outputdomain "tirewriter/backend/internal/features/output/domain"
	"tirewriter/backend/internal/session"
)

// Every command works on its own copy of the session state and hands the
// updated copy back in its message, so Update stays the only writer.

type checkDoneMsg struct {
	checks []envdomain.Check
	err    error
}

type modelLoadedMsg struct {
	result *envdomain.LoadResult
	state  session.State
	err    error
}

type classifiedMsg struct {
	result *instructiondomain.Classification
	err    error
}

type trainInitMsg struct {
	message string
}

type trainProgressMsg struct {
	progress finetunedomain.Progress
}

type trainDoneMsg struct {
	result *finetunedomain.Result
	state  session.State
	err    error
}

type optimizedMsg struct {
	result *outputdomain.Optimization
	state  session.State
	err    error
}

type reportMsg struct {
	result *outputdomain.Report
	err    error
}

type apiMsg struct {
	result *outputdomain.APIResult
	err    error
}

func checkEnvironment(ctx context.Context, a *app.App) tea.Cmd {
	return func() tea.Msg {
		checks, err := a.Environment.CheckEnvironment(ctx)
		return checkDoneMsg{checks: checks, err: err}
	}
}

func loadModel(ctx context.Context, a *app.App, st session.State) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Environment.LoadModel(ctx, &st)
		return modelLoadedMsg{result: res, state: st, err: err}
	}
}

func classify(ctx context.Context, a *app.App, text string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Instruction.Classify(ctx, text)
		return classifiedMsg{result: res, err: err}
	}
}

// startTraining runs the simulated training in the background. Its init,
// progress and done messages arrive one by one through the returned channel.
func startTraining(ctx context.Context, a *app.App, params finetunedomain.Params, st session.State) <-chan tea.Msg {
	events := make(chan tea.Msg, 8)
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(events)
		res, err := a.Finetune.Train(ctx, params, &st,
			func(msg string) {
				send(trainInitMsg{message: msg})
			},
			func(p finetunedomain.Progress) {
				send(trainProgressMsg{progress: p})
			},
		)
		send(trainDoneMsg{result: res, state: st, err: err})
	}()
	return events
}

// waitForEvent delivers the next training message.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func optimize(ctx context.Context, a *app.App, text string, st session.State) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Output.Optimize(ctx, text, &st)
		return optimizedMsg{result: res, state: st, err: err}
	}
}

func generateReport(ctx context.Context, a *app.App, options []string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Output.GenerateReport(ctx, options)
		return reportMsg{result: res, err: err}
	}
}

func callAPI(ctx context.Context, a *app.App, text, instructionType string) tea.Cmd {
	return func() tea.Msg {
		res, err := a.Output.CallAPI(ctx, text, instructionType)
		return apiMsg{result: res, err: err}
	}
}
