package prescriptions

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	rxdto "medtrack/internal/modules/prescription/dto"
	"medtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PrescriptionPort interface {
	ListMine(ctx context.Context) ([]rxdto.PrescriptionOutput, error)
	Create(ctx context.Context, input rxdto.SaveInput) error
	Update(ctx context.Context, id int, input rxdto.SaveInput) error
	Delete(ctx context.Context, id int) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Prescriptions []rxdto.PrescriptionOutput
	Err           error
}

// SavedMsg reports the outcome of a create or update.
type SavedMsg struct{ Err error }

type DeletedMsg struct{ Err error }

// ─── list item ───────────────────────────────────────────────────────────────

type rxItem struct {
	rx rxdto.PrescriptionOutput
}

func (i rxItem) Title() string { return i.rx.MedicineName }
func (i rxItem) Description() string {
	span := i.rx.StartDate
	if i.rx.Ongoing {
		span += " → ongoing"
	} else {
		span += " → " + i.rx.EndDate
	}
	return fmt.Sprintf("%g %s  %s", i.rx.DosageAmount, i.rx.DosageUnit, span)
}
func (i rxItem) FilterValue() string { return i.rx.MedicineName }

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeBrowse mode = iota
	modeEdit
)

const fieldCount = 8

// editor field indices, in tab order.
const (
	fieldMedicine = iota
	fieldAmount
	fieldUnit
	fieldStart
	fieldEnd
	fieldTz
	fieldDay
	fieldTime
)

type Model struct {
	port    PrescriptionPort
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	loading bool
	mode    mode

	// editor state
	inputs  [fieldCount]textinput.Model
	focus   int
	rows    []rxdto.RowInput
	editID  int
	formErr string

	width  int
	height int
}

func New(port PrescriptionPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Prescriptions"
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

	m := Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
	placeholders := [fieldCount]string{
		"medicine id", "amount", "unit (e.g. TABLET)", "start YYYY-MM-DD",
		"end YYYY-MM-DD (blank = ongoing)", "time zone (e.g. Europe/London)",
		"day (blank = daily)", "time HH:MM",
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		m.inputs[i] = ti
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Reload refetches the listing.
func (m *Model) Reload() tea.Cmd {
	m.loading = true
	m.mode = modeBrowse
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Editing reports whether the editor form is open, in which case global key
// bindings must yield to allow free typing.
func (m Model) Editing() bool { return m.mode == modeEdit }

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SelectedID returns the current selection's prescription id, if any.
func (m Model) SelectedID() (int, bool) {
	if item, ok := m.list.SelectedItem().(rxItem); ok {
		return item.rx.ID, true
	}
	return 0, false
}

// OpenNew opens the editor with a blank draft.
func (m *Model) OpenNew() tea.Cmd {
	m.startEdit(rxdto.PrescriptionOutput{}, false)
	return m.inputs[fieldMedicine].Focus()
}

// OpenEdit opens the editor pre-filled with the selected prescription.
func (m *Model) OpenEdit() tea.Cmd {
	item, ok := m.list.SelectedItem().(rxItem)
	if !ok {
		return nil
	}
	m.startEdit(item.rx, true)
	return m.inputs[fieldMedicine].Focus()
}

// DeleteSelected removes the selected prescription.
func (m Model) DeleteSelected() tea.Cmd {
	id, ok := m.SelectedID()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return DeletedMsg{Err: m.port.Delete(context.Background(), id)}
	}
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
			m.list.Title = "Prescriptions — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Prescriptions"
		items := make([]list.Item, len(msg.Prescriptions))
		for i, rx := range msg.Prescriptions {
			items[i] = rxItem{rx: rx}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.refreshPreview()

	case SavedMsg:
		if msg.Err != nil {
			m.formErr = msg.Err.Error()
			return m, nil
		}
		cmds = append(cmds, m.Reload())

	case DeletedMsg:
		if msg.Err == nil {
			cmds = append(cmds, m.Reload())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.mode == modeEdit {
			return m.updateEditor(msg)
		}
	}

	if m.mode == modeBrowse && !m.loading {
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
			m.spinner.View()+" Loading prescriptions…")
	}
	if m.mode == modeEdit {
		return m.editorView()
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

// ─── editor ──────────────────────────────────────────────────────────────────

func (m *Model) startEdit(rx rxdto.PrescriptionOutput, existing bool) {
	m.mode = modeEdit
	m.focus = fieldMedicine
	m.formErr = ""
	m.rows = nil
	m.editID = 0

	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	if existing {
		m.editID = rx.ID
		m.inputs[fieldMedicine].SetValue(strconv.Itoa(rx.MedicineID))
		m.inputs[fieldAmount].SetValue(strconv.FormatFloat(rx.DosageAmount, 'f', -1, 64))
		m.inputs[fieldUnit].SetValue(rx.DosageUnit)
		m.inputs[fieldStart].SetValue(rx.StartDate)
		m.inputs[fieldEnd].SetValue(rx.EndDate)
		m.inputs[fieldTz].SetValue(rx.TimeZone)
		m.rows = append(m.rows, rx.Rows...)
	}
}

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "ctrl+a", "enter":
		if msg.String() == "enter" && m.focus != fieldDay && m.focus != fieldTime {
			return m.moveFocus(1)
		}
		return m.addRow()
	case "ctrl+x":
		if len(m.rows) > 0 {
			m.rows = m.rows[:len(m.rows)-1]
		}
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	return m, m.inputs[m.focus].Focus()
}

// addRow appends a schedule row from the day/time inputs. A blank day means
// the row repeats daily.
func (m Model) addRow() (Model, tea.Cmd) {
	day := strings.ToUpper(strings.TrimSpace(m.inputs[fieldDay].Value()))
	at := strings.TrimSpace(m.inputs[fieldTime].Value())
	if at == "" {
		m.formErr = "a schedule row needs a time"
		return m, nil
	}
	row := rxdto.RowInput{Time: at}
	if day == "" {
		row.Daily = true
	} else {
		row.Day = day
	}
	m.rows = append(m.rows, row)
	m.formErr = ""
	m.inputs[fieldDay].SetValue("")
	m.inputs[fieldTime].SetValue("")
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	medicineID, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldMedicine].Value()))
	if err != nil {
		m.formErr = "medicine id must be a number"
		return m, nil
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldAmount].Value()), 64)
	if err != nil {
		m.formErr = "dosage amount must be a number"
		return m, nil
	}
	input := rxdto.SaveInput{
		MedicineID:   medicineID,
		DosageAmount: amount,
		DosageUnit:   strings.TrimSpace(m.inputs[fieldUnit].Value()),
		StartDate:    strings.TrimSpace(m.inputs[fieldStart].Value()),
		EndDate:      strings.TrimSpace(m.inputs[fieldEnd].Value()),
		TimeZone:     strings.TrimSpace(m.inputs[fieldTz].Value()),
		Rows:         m.rows,
	}
	id := m.editID
	port := m.port
	return m, func() tea.Msg {
		if id != 0 {
			return SavedMsg{Err: port.Update(context.Background(), id, input)}
		}
		return SavedMsg{Err: port.Create(context.Background(), input)}
	}
}

func (m Model) editorView() string {
	labels := [fieldCount]string{
		"medicine: ", "amount:   ", "unit:     ", "start:    ",
		"end:      ", "zone:     ", "day:      ", "time:     ",
	}

	var sb strings.Builder
	title := "New prescription"
	if m.editID != 0 {
		title = fmt.Sprintf("Edit prescription #%d", m.editID)
	}
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	for i := fieldMedicine; i <= fieldTz; i++ {
		sb.WriteString(theme.Muted.Render(labels[i]) + m.inputs[i].View() + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Schedule") + "\n")
	if len(m.rows) == 0 {
		sb.WriteString(theme.Muted.Render("  (no rows yet)") + "\n")
	}
	for _, row := range m.rows {
		sb.WriteString("  " + formatRow(row) + "\n")
	}
	sb.WriteString("\n")
	for i := fieldDay; i <= fieldTime; i++ {
		sb.WriteString(theme.Muted.Render(labels[i]) + m.inputs[i].View() + "\n")
	}

	sb.WriteString("\n")
	if m.formErr != "" {
		sb.WriteString(theme.Bad.Render(m.formErr) + "\n")
	}
	sb.WriteString(theme.Muted.Render("ctrl+a: add row  ctrl+x: drop last row  ctrl+s: save  esc: cancel"))

	form := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Padding(1, 2).
		Render(sb.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m *Model) refreshPreview() {
	if item, ok := m.list.SelectedItem().(rxItem); ok {
		m.preview.SetContent(renderDetail(item.rx))
		m.preview.GotoTop()
	} else {
		m.preview.SetContent(theme.Muted.Render("No prescriptions yet. Press n to add one."))
	}
}

func renderDetail(rx rxdto.PrescriptionOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(rx.MedicineName) + "\n\n")
	sb.WriteString(theme.Muted.Render("dosage: ") + fmt.Sprintf("%g %s", rx.DosageAmount, rx.DosageUnit) + "\n")
	sb.WriteString(theme.Muted.Render("start:  ") + rx.StartDate + "\n")
	if rx.Ongoing {
		sb.WriteString(theme.Muted.Render("end:    ") + "ongoing\n")
	} else {
		sb.WriteString(theme.Muted.Render("end:    ") + rx.EndDate + "\n")
	}
	sb.WriteString(theme.Muted.Render("zone:   ") + rx.TimeZone + "\n")

	sb.WriteString("\n" + theme.Title.Render("Schedule") + "\n")
	if rx.RowsErr != "" {
		sb.WriteString(theme.Bad.Render("⚠ "+rx.RowsErr) + "\n")
		for _, e := range rx.Entries {
			sb.WriteString(fmt.Sprintf("  %s @ %s\n", e.Day, e.Time))
		}
	} else {
		for _, row := range rx.Rows {
			sb.WriteString("  " + formatRow(row) + "\n")
		}
	}

	sb.WriteString("\n" + theme.Muted.Render("n: new  e: edit  d: delete"))
	return sb.String()
}

func formatRow(row rxdto.RowInput) string {
	if row.Daily {
		return "daily @ " + row.Time
	}
	return row.Day + " @ " + row.Time
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		prescriptions, err := m.port.ListMine(context.Background())
		return LoadedMsg{Prescriptions: prescriptions, Err: err}
	}
}
