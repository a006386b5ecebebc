package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/treasure-hunt/pkg/state"
	"github.com/jwebster45206/treasure-hunt/pkg/world"
)

const (
	PlaceHolderText = "Type an action (go north, pick up shiny key, open chest) or /help..."
)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	gameState    *state.GameState
	logViewport  viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool
	lastFeedback string
	notice       string

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type turnMsg struct {
	turn *TurnResponse
	err  error
}

type gameStateMsg struct {
	gameState *state.GameState
	err       error
}

type progressTickMsg struct{}

var (
	logPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	lostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

const helpText = `Commands:
• /agent or Ctrl+T - Let the agent play one turn
• /new - Start the game over
• /copy - Copy the game log to the clipboard
• /help - Show this help
• Ctrl+C - Quit

Anything else is sent as your own action.`

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	logVp := viewport.New(50, 20)
	logVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		textarea:     ta,
		logViewport:  logVp,
		metaViewport: metaVp,
		loading:      true,
	}
}

// statusLabel is the sidebar's final status: WIN, LOST, or empty while playing.
func statusLabel(gs *state.GameState) string {
	switch gs.Status() {
	case state.StatusWon:
		return "WIN"
	case state.StatusLost:
		return "LOST"
	default:
		return ""
	}
}

func inventoryLabel(inventory []string) string {
	if len(inventory) == 0 {
		return "Empty"
	}
	return strings.Join(inventory, ", ")
}

func writeMetadata(gs *state.GameState, lastFeedback string, width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("GAME STATE") + "\n\n")

	content.WriteString("Game ID:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	content.WriteString("Location:\n")
	content.WriteString(world.DisplayName(gs.Location) + "\n\n")

	content.WriteString("Inventory:\n")
	content.WriteString(wordwrap.String(inventoryLabel(gs.Inventory), width) + "\n\n")

	content.WriteString(fmt.Sprintf("Turns: %d\n", gs.Turns))
	content.WriteString(fmt.Sprintf("Reward: %d\n\n", gs.TotalReward))

	if lastFeedback != "" {
		content.WriteString("Last feedback:\n")
		content.WriteString(wordwrap.String(lastFeedback, width) + "\n\n")
	}

	switch statusLabel(gs) {
	case "WIN":
		content.WriteString(winStyle.Render("WIN") + "\n\n")
	case "LOST":
		content.WriteString(lostStyle.Render("LOST") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Send action\n")
	content.WriteString("• Ctrl+T: Agent turn\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

// formatLogText renders the game log as plain text, most recent first.
func formatLogText(gs *state.GameState) string {
	var sb strings.Builder
	for i := len(gs.Log) - 1; i >= 0; i-- {
		entry := gs.Log[i]
		sb.WriteString("> " + entry.Action + "\n")
		sb.WriteString(entry.Feedback + "\n")
		if entry.Reward != 0 {
			sb.WriteString(fmt.Sprintf("(reward %d)\n", entry.Reward))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// writeLogContent builds the game log for the current viewport width
func (m *ConsoleUI) writeLogContent() {
	width := m.logViewport.Width - 6
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("TREASURE HUNT") + "\n\n")

	if m.notice != "" {
		content.WriteString(noticeStyle.Render(wordwrap.String(m.notice, width)) + "\n\n")
	}
	if m.err != nil {
		content.WriteString(errorStyle.Render(wordwrap.String("Error: "+m.err.Error(), width)) + "\n\n")
	}
	if m.loading {
		content.WriteString(m.renderProgressBar() + "\n\n")
	}

	if m.gameState != nil {
		for i := len(m.gameState.Log) - 1; i >= 0; i-- {
			entry := m.gameState.Log[i]
			content.WriteString(actionStyle.Render(wordwrap.String("> "+entry.Action, width)) + "\n")
			content.WriteString(feedbackStyle.Render(wordwrap.String(entry.Feedback, width)) + "\n\n")
		}
		content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")
		content.WriteString(wordwrap.String(m.gameState.Describe(), width) + "\n")
	}

	m.logViewport.SetContent(content.String())
	m.logViewport.GotoTop()
}

func (m *ConsoleUI) refreshPanels() {
	m.writeLogContent()
	if m.gameState != nil {
		m.metaViewport.SetContent(writeMetadata(m.gameState, m.lastFeedback, m.metaViewport.Width))
	}
}

func (m *ConsoleUI) resize() {
	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	m.logViewport.Width = logWidth - 2
	m.logViewport.Height = m.height - 6
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(logWidth - 4)
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.createGame(), textarea.Blink, progressTick())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.logViewport, vpCmd = m.logViewport.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refreshPanels()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlT:
			return m.startAgentTurn()
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			return m.startAction(input)
		}

	case turnMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.refreshPanels()
			return m, nil
		}
		m.err = nil
		m.lastFeedback = msg.turn.Feedback
		return m, m.refreshGameState()

	case gameStateMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else if msg.gameState != nil {
			m.err = nil
			m.gameState = msg.gameState
		}
		m.refreshPanels()

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeLogContent()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.logViewport, vpCmd = m.logViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))
	m.notice = ""

	switch cmd {
	case "/help":
		m.notice = helpText
	case "/agent":
		return m.startAgentTurn()
	case "/new":
		if m.gameState == nil {
			return m, nil
		}
		m.loading = true
		m.lastFeedback = ""
		m.progressTick = 0
		m.refreshPanels()
		return m, tea.Batch(m.resetGame(), progressTick())
	case "/copy":
		if m.gameState == nil {
			return m, nil
		}
		if err := clipboard.WriteAll(formatLogText(m.gameState)); err != nil {
			m.err = fmt.Errorf("failed to copy game log: %w", err)
		} else {
			m.notice = "Game log copied to the clipboard."
		}
	default:
		m.notice = "Unknown command " + cmd + ". Type /help for a list of commands."
	}

	m.refreshPanels()
	return m, nil
}

func (m ConsoleUI) startAction(input string) (tea.Model, tea.Cmd) {
	if m.gameState == nil {
		return m, nil
	}
	m.loading = true
	m.notice = ""
	m.progressTick = 0
	m.refreshPanels()
	return m, tea.Batch(m.sendAction(input), progressTick())
}

func (m ConsoleUI) startAgentTurn() (tea.Model, tea.Cmd) {
	if m.loading || m.gameState == nil {
		return m, nil
	}
	if m.gameState.GameOver {
		m.notice = "The game is over. Type /new to play again."
		m.refreshPanels()
		return m, nil
	}
	m.loading = true
	m.notice = ""
	m.progressTick = 0
	m.refreshPanels()
	return m, tea.Batch(m.agentTurn(), progressTick())
}

func (m ConsoleUI) sendAction(message string) tea.Cmd {
	return func() tea.Msg {
		turn, err := sendAction(m.client, m.config.APIBaseURL, m.gameState.ID, message)
		return turnMsg{turn, err}
	}
}

func (m ConsoleUI) agentTurn() tea.Cmd {
	return func() tea.Msg {
		turn, err := requestAgentTurn(m.client, m.config.APIBaseURL, m.gameState.ID)
		return turnMsg{turn, err}
	}
}

func (m ConsoleUI) refreshGameState() tea.Cmd {
	return func() tea.Msg {
		gs, err := getGameState(m.client, m.config.APIBaseURL, m.gameState.ID)
		return gameStateMsg{gs, err}
	}
}

func (m ConsoleUI) createGame() tea.Cmd {
	return func() tea.Msg {
		gs, err := createGameState(m.client, m.config.APIBaseURL)
		return gameStateMsg{gs, err}
	}
}

func (m ConsoleUI) resetGame() tea.Cmd {
	return func() tea.Msg {
		gs, err := resetGameState(m.client, m.config.APIBaseURL, m.gameState.ID)
		return gameStateMsg{gs, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to stop hunting for treasure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	logWidth := int(float64(m.width)*0.7) - 4
	metaWidth := m.width - logWidth - 6

	logPanel := logPanelStyle.Width(logWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.logViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", logWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, logPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.logViewport.Width - 6
	if usable > 60 {
		usable = 60
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
