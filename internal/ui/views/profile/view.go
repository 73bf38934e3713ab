package profile

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	profdto "medtrack/internal/modules/profile/dto"
	"medtrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProfilePort interface {
	Get(ctx context.Context) (profdto.ProfileOutput, error)
	SavePatient(ctx context.Context, input profdto.PatientProfileInput) (profdto.ProfileOutput, error)
	SaveDoctor(ctx context.Context, input profdto.DoctorProfileInput) (profdto.ProfileOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Profile profdto.ProfileOutput
	Err     error
}

type SavedMsg struct {
	Profile profdto.ProfileOutput
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeView mode = iota
	modeEditPatient
	modeEditDoctor
)

var patientLabels = []string{
	"name", "gender", "date of birth", "phone", "address",
	"blood type", "allergies", "medical history",
}

var doctorLabels = []string{
	"first name", "last name", "specialization",
	"license number", "phone", "clinic address",
}

type Model struct {
	port    ProfilePort
	profile profdto.ProfileOutput
	view    viewport.Model
	spinner spinner.Model
	loading bool
	mode    mode

	inputs  []textinput.Model
	labels  []string
	focus   int
	formErr string

	width  int
	height int
}

func New(port ProfilePort) Model {
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
		view:    vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Editing reports whether a section form is open.
func (m Model) Editing() bool { return m.mode != modeView }

// EditPatient opens the patient section form pre-filled from the profile.
func (m *Model) EditPatient() tea.Cmd {
	m.mode = modeEditPatient
	m.labels = patientLabels
	m.buildInputs(len(patientLabels))
	if p := m.profile.Patient; p != nil {
		values := []string{
			p.Name, p.Gender, p.DateOfBirth, p.Phone, p.Address,
			p.BloodType, p.Allergies, p.MedicalHistory,
		}
		for i, v := range values {
			m.inputs[i].SetValue(v)
		}
	}
	return m.inputs[0].Focus()
}

// EditDoctor opens the doctor section form pre-filled from the profile.
func (m *Model) EditDoctor() tea.Cmd {
	m.mode = modeEditDoctor
	m.labels = doctorLabels
	m.buildInputs(len(doctorLabels))
	if d := m.profile.Doctor; d != nil {
		values := []string{
			d.FirstName, d.LastName, d.Specialization,
			d.LicenseNumber, d.Phone, d.ClinicAddress,
		}
		for i, v := range values {
			m.inputs[i].SetValue(v)
		}
	}
	return m.inputs[0].Focus()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = m.width - 4
		m.view.Height = m.height - 4

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.view.SetContent(theme.Bad.Render("Error: " + msg.Err.Error()))
			return m, nil
		}
		m.profile = msg.Profile
		m.view.SetContent(m.renderProfile())

	case SavedMsg:
		if msg.Err != nil {
			m.formErr = msg.Err.Error()
			return m, nil
		}
		m.mode = modeView
		m.profile = msg.Profile
		m.view.SetContent(m.renderProfile())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.mode != modeView {
			return m.updateForm(msg)
		}
	}

	var vCmd tea.Cmd
	m.view, vCmd = m.view.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading profile…")
	}
	if m.mode != modeView {
		return m.formView()
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.view.View())
}

// ─── form ────────────────────────────────────────────────────────────────────

func (m *Model) buildInputs(n int) {
	m.inputs = make([]textinput.Model, n)
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		m.inputs[i] = ti
	}
	m.focus = 0
	m.formErr = ""
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeView
		return m, nil
	case "tab", "down", "enter":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "ctrl+s":
		return m.submit()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	n := len(m.inputs)
	m.focus = (m.focus + delta + n) % n
	return m, m.inputs[m.focus].Focus()
}

func (m Model) submit() (Model, tea.Cmd) {
	port := m.port
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = strings.TrimSpace(m.inputs[i].Value())
	}
	if m.mode == modeEditPatient {
		input := profdto.PatientProfileInput{
			Name: values[0], Gender: values[1], DateOfBirth: values[2],
			Phone: values[3], Address: values[4], BloodType: values[5],
			Allergies: values[6], MedicalHistory: values[7],
		}
		return m, func() tea.Msg {
			out, err := port.SavePatient(context.Background(), input)
			return SavedMsg{Profile: out, Err: err}
		}
	}
	input := profdto.DoctorProfileInput{
		FirstName: values[0], LastName: values[1], Specialization: values[2],
		LicenseNumber: values[3], Phone: values[4], ClinicAddress: values[5],
	}
	return m, func() tea.Msg {
		out, err := port.SaveDoctor(context.Background(), input)
		return SavedMsg{Profile: out, Err: err}
	}
}

func (m Model) formView() string {
	var sb strings.Builder
	if m.mode == modeEditPatient {
		sb.WriteString(theme.Title.Render("Patient information") + "\n\n")
	} else {
		sb.WriteString(theme.Title.Render("Doctor information") + "\n\n")
	}
	pad := 0
	for _, l := range m.labels {
		if len(l) > pad {
			pad = len(l)
		}
	}
	for i, l := range m.labels {
		sb.WriteString(theme.Muted.Render(l+strings.Repeat(" ", pad-len(l))+": ") + m.inputs[i].View() + "\n")
	}
	sb.WriteString("\n")
	if m.formErr != "" {
		sb.WriteString(theme.Bad.Render(m.formErr) + "\n")
	}
	sb.WriteString(theme.Muted.Render("ctrl+s: save  esc: cancel"))

	form := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Padding(1, 2).
		Render(sb.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderProfile() string {
	p := m.profile
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("email: ") + p.Email + "\n")
	sb.WriteString(theme.Muted.Render("roles: ") + strings.Join(p.Roles, ", ") + "\n")

	if pat := p.Patient; pat != nil {
		sb.WriteString("\n" + theme.Title.Render("Patient information") + "\n")
		writeField(&sb, "name", pat.Name)
		writeField(&sb, "gender", pat.Gender)
		writeField(&sb, "born", pat.DateOfBirth)
		writeField(&sb, "phone", pat.Phone)
		writeField(&sb, "address", pat.Address)
		writeField(&sb, "blood", pat.BloodType)
		writeField(&sb, "allergies", pat.Allergies)
		writeField(&sb, "history", pat.MedicalHistory)
	}
	if doc := p.Doctor; doc != nil {
		sb.WriteString("\n" + theme.Title.Render("Doctor information") + "\n")
		writeField(&sb, "name", strings.TrimSpace(doc.FirstName+" "+doc.LastName))
		writeField(&sb, "specialty", doc.Specialization)
		writeField(&sb, "license", doc.LicenseNumber)
		writeField(&sb, "phone", doc.Phone)
		writeField(&sb, "clinic", doc.ClinicAddress)
	}

	sb.WriteString("\n" + theme.Muted.Render("p: edit patient section  o: edit doctor section"))
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(theme.Muted.Render("  "+label+": ") + value + "\n")
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.port.Get(context.Background())
		return LoadedMsg{Profile: profile, Err: err}
	}
}
