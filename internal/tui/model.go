// Package tui is a terminal rendition of the six demo modules. It calls the
// application services in-process and keeps one session for its lifetime.
package tui

import (
	"context"
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"tirewriter/backend/internal/app"
	datasetdomain "tirewriter/backend/internal/features/dataset/domain"
	envdomain "tirewriter/backend/internal/features/environment/domain"
	evaldomain "tirewriter/backend/internal/features/evaluation/domain"
	finetunedomain "tirewriter/backend/internal/features/finetune/domain"
	instructiondomain "tirewriter/backend/internal/features/instruction/domain"
	outputdomain "tirewriter/backend/internal/features/output/domain"
	"tirewriter/backend/internal/logger"
	"tirewriter/backend/internal/session"
)

// Module indexes, in sidebar order.
const (
	ModuleEnvironment = iota
	ModuleDataset
	ModuleInstruction
	ModuleFinetune
	ModuleEvaluation
	ModuleOutput
)

const defaultWidth = 100

// Model is the root bubbletea model.
type Model struct {
	ctx       context.Context
	cancel    context.CancelFunc
	app       *app.App
	sessionID string
	state     session.State

	width  int
	height int
	active int

	busy     bool
	busyText string
	status   string
	errText  string
	spinner  spinner.Model
	progress progress.Model
	renderer *glamour.TermRenderer
	styles   Styles

	checks         []envdomain.Check
	caseView       *datasetdomain.CaseView
	classification *instructiondomain.Classification

	params        finetunedomain.Params
	paramFocus    int
	trainEvents   <-chan tea.Msg
	trainProgress int
	trainResult   *finetunedomain.Result

	evalKind   int
	evalReport *evaldomain.Report

	optionFocus  int
	options      map[string]bool
	optimization *outputdomain.Optimization
	report       *outputdomain.Report
	apiResult    *outputdomain.APIResult
}

// New restores the session sessionID from the app's store and returns the
// initial model. The returned model owns a child context of ctx that is
// cancelled when the user quits.
func New(ctx context.Context, a *app.App, sessionID string) (Model, error) {
	st, err := a.Sessions.Load(ctx, sessionID)
	if err != nil {
		return Model{}, err
	}

	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = DefaultStyles().Warning

	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		app:       a,
		sessionID: sessionID,
		state:     st,
		width:     defaultWidth,
		spinner:   sp,
		progress:  progress.New(progress.WithDefaultGradient()),
		styles:    DefaultStyles(),
		params:    a.Finetune.Normalize(finetunedomain.ParamsInput{}),
		options:   make(map[string]bool, len(outputdomain.ReportOptions)),

		trainProgress: st.TrainingProgress,
	}
	m.resize(defaultWidth, 0)

	if cv, err := a.Dataset.Current(st); err == nil {
		m.caseView = cv
	}
	if r, err := a.Evaluation.Report(string(evaldomain.Kinds[m.evalKind])); err == nil {
		m.evalReport = r
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case checkDoneMsg:
		m.done(msg.err)
		if msg.err == nil {
			m.checks = msg.checks
			m.status = "环境检查完成"
		}
		return m, nil

	case modelLoadedMsg:
		m.done(msg.err)
		if msg.err == nil {
			m.status = msg.result.Message
			loaded := msg.state.ModelLoaded
			m.commit(func(st *session.State) { st.ModelLoaded = loaded })
		}
		return m, nil

	case classifiedMsg:
		m.done(msg.err)
		if msg.err == nil {
			m.classification = msg.result
			m.status = "分类完成"
		}
		return m, nil

	case trainInitMsg:
		m.busyText = msg.message
		m.commit(func(st *session.State) { st.TrainingProgress = 0 })
		return m, waitForEvent(m.trainEvents)

	case trainProgressMsg:
		m.trainProgress = msg.progress.Progress
		m.commit(func(st *session.State) { st.TrainingProgress = msg.progress.Progress })
		return m, waitForEvent(m.trainEvents)

	case trainDoneMsg:
		m.trainEvents = nil
		m.done(msg.err)
		m.trainProgress = msg.state.TrainingProgress
		m.commit(func(st *session.State) { st.TrainingProgress = msg.state.TrainingProgress })
		if msg.err == nil {
			m.trainResult = msg.result
			m.status = msg.result.Message
		}
		return m, nil

	case optimizedMsg:
		m.done(msg.err)
		if msg.err == nil {
			m.optimization = msg.result
			m.commit(func(st *session.State) { st.OptimizationResult = msg.state.OptimizationResult })
			m.status = "优化完成"
		}
		return m, nil

	case reportMsg:
		m.done(msg.err)
		if msg.err == nil {
			m.report = msg.result
			m.status = msg.result.Message
		}
		return m, nil

	case apiMsg:
		m.done(msg.err)
		if msg.err == nil {
			m.apiResult = msg.result
			m.status = msg.result.Message
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		m.cancel()
		return m, tea.Quit
	case "up", "k":
		m.switchTo(m.active - 1)
		return m, nil
	case "down", "j":
		m.switchTo(m.active + 1)
		return m, nil
	case "1", "2", "3", "4", "5", "6":
		n, _ := strconv.Atoi(key)
		m.switchTo(n - 1)
		return m, nil
	}

	switch m.active {
	case ModuleEnvironment:
		switch key {
		case "enter", "c":
			return m.run("正在检查环境...", checkEnvironment(m.ctx, m.app))
		case "l":
			return m.run("正在加载模型...", loadModel(m.ctx, m.app, m.state))
		}

	case ModuleDataset:
		if key == "enter" || key == "tab" {
			m.nextCase()
		}

	case ModuleInstruction:
		if key == "enter" {
			return m.run("正在分类...", classify(m.ctx, m.app, instructiondomain.DefaultInput))
		}

	case ModuleFinetune:
		switch key {
		case "enter":
			if m.busy {
				return m, nil
			}
			m.trainResult = nil
			m.trainProgress = 0
			m.trainEvents = startTraining(m.ctx, m.app, m.params, m.state)
			next, tick := m.run("正在初始化训练环境...", nil)
			return next, tea.Batch(tick, waitForEvent(m.trainEvents))
		case "tab":
			m.paramFocus = (m.paramFocus + 1) % len(finetunedomain.Schema)
		case "shift+tab":
			m.paramFocus = (m.paramFocus + len(finetunedomain.Schema) - 1) % len(finetunedomain.Schema)
		case "+", "=":
			m.adjustParam(1)
		case "-", "_":
			m.adjustParam(-1)
		}

	case ModuleEvaluation:
		if key == "enter" || key == "tab" {
			m.evalKind = (m.evalKind + 1) % len(evaldomain.Kinds)
			r, err := m.app.Evaluation.Report(string(evaldomain.Kinds[m.evalKind]))
			m.setErr(err)
			if err == nil {
				m.evalReport = r
			}
		}

	case ModuleOutput:
		switch key {
		case "enter":
			return m.run("正在优化...", optimize(m.ctx, m.app, outputdomain.DefaultOptimizeInput, m.state))
		case "tab":
			m.optionFocus = (m.optionFocus + 1) % len(outputdomain.ReportOptions)
		case " ", "space":
			opt := outputdomain.ReportOptions[m.optionFocus]
			m.options[opt] = !m.options[opt]
		case "g":
			return m.run("正在生成报告...", generateReport(m.ctx, m.app, m.selectedOptions()))
		case "a":
			return m.run("正在调用API...", callAPI(m.ctx, m.app, outputdomain.DefaultAPIInput, outputdomain.InstructionTypes[0]))
		}
	}
	return m, nil
}

// run starts a waiting action. Only one runs at a time; further action keys
// are ignored until it finishes.
func (m Model) run(text string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.busyText = text
	m.status = ""
	m.errText = ""
	if cmd == nil {
		return m, m.spinner.Tick
	}
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m *Model) done(err error) {
	m.busy = false
	m.busyText = ""
	m.setErr(err)
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.errText = err.Error()
		return
	}
	m.errText = ""
}

// commit applies change to the stored session and adopts the stored result,
// which also picks up fields another client of the same session changed.
func (m *Model) commit(change func(*session.State)) {
	st, err := m.app.Sessions.Update(context.WithoutCancel(m.ctx), m.sessionID, change)
	if err != nil {
		logger.Error("Failed to save session state", err, logger.Fields{"session_id": m.sessionID, "module": "tui"})
		m.errText = err.Error()
		change(&m.state)
		return
	}
	m.state = st
}

func (m *Model) switchTo(i int) {
	n := len(app.Modules)
	m.active = (i%n + n) % n
}

func (m *Model) nextCase() {
	keys := m.app.Dataset.Overview().CaseKeys
	next := 1
	for i, k := range keys {
		if k == m.state.CurrentCase {
			next = (i+1)%len(keys) + 1
			break
		}
	}

	st := m.state
	cv, err := m.app.Dataset.Select(&st, strconv.Itoa(next))
	m.setErr(err)
	if err != nil {
		return
	}
	m.caseView = cv
	m.commit(func(stored *session.State) { stored.CurrentCase = st.CurrentCase })
}

func (m *Model) adjustParam(dir float64) {
	p := finetunedomain.Schema[m.paramFocus]
	v := paramValue(m.params, p.Name) + dir*p.Step
	m.params = m.app.Finetune.Normalize(withParam(m.params, p.Name, v))
}

func (m Model) selectedOptions() []string {
	var out []string
	for _, opt := range outputdomain.ReportOptions {
		if m.options[opt] {
			out = append(out, opt)
		}
	}
	return out
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := m.contentWidth()
	m.progress.Width = contentWidth - 4
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(contentWidth-4),
	)
	if err == nil {
		m.renderer = r
	}
}

func (m Model) contentWidth() int {
	w := m.width - sidebarWidth - 4
	if w < 40 {
		w = 40
	}
	return w
}

func paramValue(p finetunedomain.Params, name string) float64 {
	switch name {
	case "r":
		return float64(p.R)
	case "alpha":
		return float64(p.Alpha)
	case "dropout":
		return p.Dropout
	case "batch_size":
		return float64(p.BatchSize)
	case "learning_rate":
		return p.LearningRate
	case "warmup_steps":
		return float64(p.WarmupSteps)
	case "max_steps":
		return float64(p.MaxSteps)
	case "save_steps":
		return float64(p.SaveSteps)
	}
	return 0
}

// withParam returns p as input with the named field replaced by v.
func withParam(p finetunedomain.Params, name string, v float64) finetunedomain.ParamsInput {
	in := finetunedomain.ParamsInput{
		R:            &p.R,
		Alpha:        &p.Alpha,
		Dropout:      &p.Dropout,
		BatchSize:    &p.BatchSize,
		LearningRate: &p.LearningRate,
		WarmupSteps:  &p.WarmupSteps,
		MaxSteps:     &p.MaxSteps,
		SaveSteps:    &p.SaveSteps,
	}
	n := int(math.Round(v))
	switch name {
	case "r":
		in.R = &n
	case "alpha":
		in.Alpha = &n
	case "dropout":
		in.Dropout = &v
	case "batch_size":
		in.BatchSize = &n
	case "learning_rate":
		in.LearningRate = &v
	case "warmup_steps":
		in.WarmupSteps = &n
	case "max_steps":
		in.MaxSteps = &n
	case "save_steps":
		in.SaveSteps = &n
	}
	return in
}
