package medicines

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	meddto "medtrack/internal/modules/medicine/dto"
	"medtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type MedicinePort interface {
	List(ctx context.Context) ([]meddto.MedicineOutput, error)
	Get(ctx context.Context, id int) (meddto.MedicineOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Medicines []meddto.MedicineOutput
	Err       error
}

type DetailLoadedMsg struct {
	Medicine meddto.MedicineOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type medItem struct {
	med meddto.MedicineOutput
}

func (i medItem) Title() string { return i.med.Name }
func (i medItem) Description() string {
	desc := i.med.GenericName
	if i.med.Manufacturer != "" {
		if desc != "" {
			desc += "  "
		}
		desc += i.med.Manufacturer
	}
	if desc == "" {
		desc = fmt.Sprintf("#%d", i.med.ID)
	}
	return desc
}
func (i medItem) FilterValue() string { return i.med.Name + " " + i.med.GenericName }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     MedicinePort
	list     list.Model
	detail   meddto.MedicineOutput
	preview  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	width    int
	height   int
}

func New(port MedicinePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Medicines"
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

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		list:     l,
		preview:  vp,
		spinner:  sp,
		renderer: r,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Reload refetches the listing, e.g. after a delete or an import.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Medicines — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Medicines"
		items := make([]list.Item, len(msg.Medicines))
		for i, med := range msg.Medicines {
			items[i] = medItem{med: med}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Medicines) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Medicines[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Medicine
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
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
			if item, ok := m.list.SelectedItem().(medItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.med.ID))
			}
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
			m.spinner.View()+" Loading medicines…")
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

// SelectedID returns the current selection's medicine id, if any.
func (m Model) SelectedID() (int, bool) {
	if item, ok := m.list.SelectedItem().(medItem); ok {
		return item.med.ID, true
	}
	return 0, false
}

// SelectedName returns the current selection's display name.
func (m Model) SelectedName() string {
	if item, ok := m.list.SelectedItem().(medItem); ok {
		return item.med.Name
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(detailW-6),
	); err == nil {
		m.renderer = r
		if m.detail.ID != 0 {
			m.preview.SetContent(m.renderDetail())
		}
	}
}

// renderDetail builds a markdown card for the selected medicine and runs it
// through glamour. The openFDA map renders as a definition list.
func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == 0 {
		return theme.Muted.Render("Select a medicine to see details")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Name)
	if d.GenericName != "" {
		fmt.Fprintf(&sb, "**Generic:** %s\n\n", d.GenericName)
	}
	if d.Manufacturer != "" {
		fmt.Fprintf(&sb, "**Manufacturer:** %s\n\n", d.Manufacturer)
	}
	status := "inactive"
	if d.Active {
		status = "active"
	}
	fmt.Fprintf(&sb, "**Status:** %s\n", status)

	if len(d.OpenFDA) > 0 {
		sb.WriteString("\n## openFDA\n\n")
		keys := make([]string, 0, len(d.OpenFDA))
		for k := range d.OpenFDA {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- **%s:** %s\n", k, strings.Join(d.OpenFDA[k], ", "))
		}
	}

	if m.renderer != nil {
		if rendered, err := m.renderer.Render(sb.String()); err == nil {
			return rendered
		}
	}
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		medicines, err := m.port.List(context.Background())
		return LoadedMsg{Medicines: medicines, Err: err}
	}
}

func (m Model) loadDetailCmd(id int) tea.Cmd {
	return func() tea.Msg {
		medicine, err := m.port.Get(context.Background(), id)
		return DetailLoadedMsg{Medicine: medicine, Err: err}
	}
}
