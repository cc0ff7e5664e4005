// internal/tui/app.go
//
// This is the terminal UI for trainlog. It uses bubbletea, which follows The
// Elm Architecture:
//
// 1. Model: the App struct below
// 2. Update: reacts to keys and to server responses
// 3. View: renders the menu, the current question and the status line
//
// Each menu action asks its questions one at a time in a text input, then
// sends a single request. The response only ever touches the status line.

package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/trainlog/internal/client"
	"github.com/kingrea/trainlog/internal/config"
	"github.com/kingrea/trainlog/internal/logbook"
	"github.com/kingrea/trainlog/internal/training"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu appState = iota // Menu with the five actions
	statePrompt                   // Answering one of an action's questions
)

const logPanelLines = 6

// Menu titles.
const (
	menuSea       = "Registrar treino no mar"
	menuGym       = "Registrar treino na academia"
	menuStage     = "Adicionar informações da etapa"
	menuPrognosis = "Obter prognóstico"
	menuExit      = "Sair"
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithService replaces the HTTP client built from the config.
func WithService(svc Service) AppOption {
	return func(a *App) {
		if svc != nil {
			a.service = svc
		}
	}
}

// WithLogbook overrides the logbook opened under .trainlog/logs.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		if lb != nil {
			a.logbook = lb
		}
	}
}

// WithClock allows tests to control the timestamps sent to the server.
func WithClock(clock func() time.Time) AppOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithContext sets the parent context for server requests.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

// requestFinishedMsg carries a server response back into Update.
type requestFinishedMsg struct {
	action  training.Action
	message string
	err     error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	logbook *logbook.Logbook
	service Service
	clock   func() time.Time
	ctx     context.Context

	mainMenu list.Model
	input    textinput.Model
	flow     promptFlow

	// statusMsg is the single message region every action writes to.
	statusMsg string
	pending   bool

	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App for the given configuration. Unless WithService is
// supplied, requests go to the server named in cfg.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, errors.New("tui: config is required")
	}
	mainMenu := list.New(buildMainMenu(), list.NewDefaultDelegate(), 60, 16)
	mainMenu.Title = "⬡ TRAINLOG"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)
	mainMenu.DisableQuitKeybindings()

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 512
	input.Width = 60

	app := &App{
		state:    stateMainMenu,
		config:   cfg,
		clock:    time.Now,
		ctx:      context.Background(),
		mainMenu: mainMenu,
		input:    input,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.logbook == nil {
		lb, err := logbook.New(cfg.LogPath())
		if err == nil {
			app.logbook = lb
		}
	}
	if app.service == nil {
		settings := client.SettingsFromConfig(cfg)
		c, err := client.New(settings, client.WithLogger(app.logbook))
		if err != nil {
			_ = app.logbook.Close()
			return nil, err
		}
		app.service = c
		app.logInfo("Session opened · server %s", c.BaseURL())
	} else {
		app.logInfo("Session opened")
	}
	return app, nil
}

// buildMainMenu creates the main menu items
func buildMainMenu() []list.Item {
	return []list.Item{
		menuItem{title: menuSea, desc: "Informe se treinou no mar hoje"},
		menuItem{title: menuGym, desc: "Informe se treinou na academia hoje"},
		menuItem{title: menuStage, desc: "Nota e colocação de uma etapa (1-4)"},
		menuItem{title: menuPrognosis, desc: "Consultar o prognóstico calculado pelo servidor"},
		menuItem{title: menuExit, desc: "Fechar o trainlog"},
	}
}

// Close releases the logbook.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.logbook.Close()
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(20, msg.Width-6), max(8, msg.Height-14))
		a.input.Width = max(20, msg.Width-10)
		return a, nil

	case requestFinishedMsg:
		return a.handleRequestFinished(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMainMenu {
				return a.exit()
			}
		case "esc":
			if a.state == statePrompt {
				return a.cancelPrompt()
			}
			return a, nil
		case "enter":
			switch a.state {
			case statePrompt:
				return a.submitAnswer()
			case stateMainMenu:
				return a.handleMainMenuSelection()
			}
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case stateMainMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case statePrompt:
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	if item.title == menuExit {
		return a.exit()
	}
	if a.pending {
		a.showMessage(training.MessageAwaitingResponse)
		return a, nil
	}
	a.logInfo("Menu · %s selected", item.title)

	switch item.title {
	case menuSea:
		return a.beginPrompt(newTrainingFlow(training.Sea))
	case menuGym:
		return a.beginPrompt(newTrainingFlow(training.Gym))
	case menuStage:
		return a.beginPrompt(newStageFlow())
	case menuPrognosis:
		return a, a.send(prognosisRequest())
	}
	return a, nil
}

func (a *App) beginPrompt(flow promptFlow) (tea.Model, tea.Cmd) {
	a.flow = flow
	a.state = statePrompt
	a.input.Reset()
	a.input.Placeholder = ""
	return a, a.input.Focus()
}

// submitAnswer hands the typed answer to the current flow. The flow either
// asks the next question, rejects the answer, or produces a request.
func (a *App) submitAnswer() (tea.Model, tea.Cmd) {
	if a.flow == nil {
		return a.returnToMainMenu()
	}
	answer := a.input.Value()
	result := a.flow.Answer(answer, a.clock())
	if result.err != nil {
		a.logWarn("%s · validation failed: %v", a.flow.Action().Label(), result.err)
		msg := training.UserMessage(result.err)
		if msg == "" {
			msg = training.MessageInvalidData
		}
		a.returnToMainMenu()
		a.showMessage(msg)
		return a, nil
	}
	if result.submit != nil {
		a.returnToMainMenu()
		return a, a.send(result.submit)
	}
	a.input.Reset()
	return a, nil
}

func (a *App) cancelPrompt() (tea.Model, tea.Cmd) {
	if a.flow != nil {
		a.logInfo("%s · cancelled", a.flow.Action().Label())
	}
	a.returnToMainMenu()
	a.showMessage(training.MessageCancelled)
	return a, nil
}

// send marks a request as in flight and returns the command that performs it.
func (a *App) send(req *request) tea.Cmd {
	a.pending = true
	a.showMessage(training.MessageAwaitingResponse)
	a.logInfo("%s · POST %s", req.action.Label(), req.action.Path())
	svc := a.service
	ctx := a.ctx
	return func() tea.Msg {
		message, err := req.run(ctx, svc)
		return requestFinishedMsg{action: req.action, message: message, err: err}
	}
}

func (a *App) handleRequestFinished(msg requestFinishedMsg) (tea.Model, tea.Cmd) {
	a.pending = false
	if msg.err != nil {
		a.logError("%s · %v", msg.action.Label(), msg.err)
		a.showMessage(failureMessage(msg.action, msg.err))
		return a, nil
	}
	a.logInfo("%s · ok", msg.action.Label())
	a.showMessage(msg.message)
	return a, nil
}

func failureMessage(action training.Action, err error) string {
	var rerr *client.RequestError
	if errors.As(err, &rerr) {
		return rerr.UserMessage()
	}
	return action.FailureMessage()
}

// returnToMainMenu transitions back to the main menu
func (a *App) returnToMainMenu() (tea.Model, tea.Cmd) {
	a.state = stateMainMenu
	a.flow = nil
	a.input.Blur()
	a.input.Reset()
	return a, nil
}

// exit closes the program. A pending request is abandoned.
func (a *App) exit() (tea.Model, tea.Cmd) {
	a.logInfo("Menu · %s selected", menuExit)
	return a, tea.Quit
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}
	var content string
	switch a.state {
	case stateMainMenu:
		content = a.mainMenu.View()
	case statePrompt:
		content = a.renderPrompt()
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width-4)).
		Render(content)
	sections := []string{a.renderHeader(), box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderStatus())
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := "⬡ TRAINLOG"
	if name := a.config.AthleteName(); name != "" {
		title = fmt.Sprintf("%s · %s", title, name)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2BB3C0")).
		MarginBottom(1).
		Render(title)
}

func (a *App) renderPrompt() string {
	question := ""
	if a.flow != nil {
		question = a.flow.Prompt()
	}
	head := lipgloss.NewStyle().Bold(true).Render(question)
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		MarginTop(1).
		Render("Enter → responder    Esc → cancelar")
	return lipgloss.JoinVertical(lipgloss.Left, head, a.input.View(), hint)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, _ := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderStatus() string {
	color := lipgloss.Color("#888888")
	if a.pending {
		color = lipgloss.Color("#E5C07B")
	}
	return lipgloss.NewStyle().
		Foreground(color).
		MarginTop(1).
		Render(a.statusMsg)
}
