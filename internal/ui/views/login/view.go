package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medtrack/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// SubmitMsg is sent when the user confirms the sign-in form.
type SubmitMsg struct {
	Email    string
	Password string
}

// RegisterMsg is sent when the user confirms the registration form.
type RegisterMsg struct {
	Name     string
	Email    string
	Password string
}

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// Model is the sign-in / registration form shown while no session exists.
type Model struct {
	mode    mode
	name    textinput.Model
	email   textinput.Model
	pass    textinput.Model
	focus   int
	errMsg  string
	busy    bool
	width   int
	height  int
}

func New() Model {
	name := textinput.New()
	name.Placeholder = "full name"
	name.CharLimit = 128

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return Model{name: name, email: email, pass: pass}
}

func (m Model) Init() tea.Cmd {
	return m.email.Focus()
}

// SetError shows a failure line under the form and re-enables input.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
	m.busy = false
}

// SetBusy disables input while an attempt is in flight.
func (m *Model) SetBusy() {
	m.busy = true
	m.errMsg = ""
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			return m.moveFocus(1)
		case "shift+tab", "up":
			return m.moveFocus(-1)
		case "ctrl+r":
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.errMsg = ""
			m.focus = 0
			return m.applyFocus()
		case "enter":
			return m.submit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	cmds = append(cmds, cmd)
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.pass, cmd = m.pass.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sb strings.Builder
	if m.mode == modeRegister {
		sb.WriteString(theme.Title.Render("Create account") + "\n\n")
		sb.WriteString(theme.Muted.Render("name:     ") + m.name.View() + "\n")
	} else {
		sb.WriteString(theme.Title.Render("Sign in") + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("email:    ") + m.email.View() + "\n")
	sb.WriteString(theme.Muted.Render("password: ") + m.pass.View() + "\n")

	sb.WriteString("\n")
	switch {
	case m.busy:
		sb.WriteString(theme.Muted.Render("signing in…"))
	case m.errMsg != "":
		sb.WriteString(theme.Bad.Render(m.errMsg))
	default:
		if m.mode == modeRegister {
			sb.WriteString(theme.Muted.Render("enter: register  ctrl+r: back to sign in"))
		} else {
			sb.WriteString(theme.Muted.Render("enter: sign in  ctrl+r: register  q: quit"))
		}
	}

	form := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Padding(1, 2).
		Render(sb.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) fieldCount() int {
	if m.mode == modeRegister {
		return 3
	}
	return 2
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	n := m.fieldCount()
	m.focus = (m.focus + delta + n) % n
	return m.applyFocus()
}

func (m Model) applyFocus() (Model, tea.Cmd) {
	m.name.Blur()
	m.email.Blur()
	m.pass.Blur()

	fields := []*textinput.Model{&m.email, &m.pass}
	if m.mode == modeRegister {
		fields = []*textinput.Model{&m.name, &m.email, &m.pass}
	}
	return m, fields[m.focus].Focus()
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	pass := m.pass.Value()
	if email == "" || pass == "" {
		m.errMsg = "email and password are required"
		return m, nil
	}
	if m.mode == modeRegister {
		name := strings.TrimSpace(m.name.Value())
		if name == "" {
			m.errMsg = "name is required"
			return m, nil
		}
		m.busy = true
		return m, func() tea.Msg {
			return RegisterMsg{Name: name, Email: email, Password: pass}
		}
	}
	m.busy = true
	return m, func() tea.Msg {
		return SubmitMsg{Email: email, Password: pass}
	}
}
