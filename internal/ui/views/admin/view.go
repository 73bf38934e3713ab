package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	admdto "medtrack/internal/modules/admin/dto"
	"medtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type AdminPort interface {
	ListUsers(ctx context.Context, input admdto.ListInput) ([]admdto.AccountOutput, error)
	Roles(ctx context.Context) ([]string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type UsersLoadedMsg struct {
	Accounts []admdto.AccountOutput
	Err      error
}

type RolesLoadedMsg struct {
	Roles []string
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type userItem struct {
	account admdto.AccountOutput
}

func (i userItem) Title() string { return i.account.Name }
func (i userItem) Description() string {
	return i.account.Email + "  " + i.account.Role
}
func (i userItem) FilterValue() string { return i.account.Name + " " + i.account.Email }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    AdminPort
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	roles   []string
	filter  admdto.ListInput
	loading bool
	width   int
	height  int
}

func New(port AdminPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Users"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadRolesCmd(), m.spinner.Tick)
}

// Reload refetches the user listing with the current filter.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// SetFilter narrows the listing to a role and refetches. An empty role
// clears the filter.
func (m *Model) SetFilter(role string, only bool) tea.Cmd {
	m.filter = admdto.ListInput{Role: strings.ToUpper(role), Only: only}
	return m.Reload()
}

// SelectedID returns the current selection's user id, if any.
func (m Model) SelectedID() (int, bool) {
	if item, ok := m.list.SelectedItem().(userItem); ok {
		return item.account.UserID, true
	}
	return 0, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case UsersLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Users — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = m.listTitle()
		items := make([]list.Item, len(msg.Accounts))
		for i, a := range msg.Accounts {
			items[i] = userItem{account: a}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.refreshPreview()

	case RolesLoadedMsg:
		if msg.Err == nil {
			m.roles = msg.Roles
			m.refreshPreview()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.refreshPreview()
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading users…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) listTitle() string {
	if m.filter.Role == "" {
		return "Users"
	}
	title := "Users — " + m.filter.Role
	if m.filter.Only {
		title += " only"
	}
	return title
}

func (m *Model) refreshPreview() {
	item, ok := m.list.SelectedItem().(userItem)
	if !ok {
		m.preview.SetContent(theme.Muted.Render("No users match the current filter"))
		return
	}
	a := item.account
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(a.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:      ") + fmt.Sprintf("%d", a.UserID) + "\n")
	sb.WriteString(theme.Muted.Render("email:   ") + a.Email + "\n")
	sb.WriteString(theme.Muted.Render("roles:   ") + a.Role + "\n")
	if a.CreatedAt != "" {
		sb.WriteString(theme.Muted.Render("created: ") + a.CreatedAt + "\n")
	}
	if len(m.roles) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("available roles: ") + strings.Join(m.roles, ", ") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(":admin:set-roles <id> <role>…  :admin:delete <id>  :admin:filter [role]"))
	m.preview.SetContent(sb.String())
}

func (m Model) loadCmd() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		accounts, err := m.port.ListUsers(context.Background(), filter)
		return UsersLoadedMsg{Accounts: accounts, Err: err}
	}
}

func (m Model) loadRolesCmd() tea.Cmd {
	return func() tea.Msg {
		roles, err := m.port.Roles(context.Background())
		return RolesLoadedMsg{Roles: roles, Err: err}
	}
}
