package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	admdto "medtrack/internal/modules/admin/dto"
	authdto "medtrack/internal/modules/auth/dto"
	meddto "medtrack/internal/modules/medicine/dto"
	profdto "medtrack/internal/modules/profile/dto"
	rxdto "medtrack/internal/modules/prescription/dto"
	"medtrack/internal/ui/components"
	"medtrack/internal/ui/theme"
	adminview "medtrack/internal/ui/views/admin"
	loginview "medtrack/internal/ui/views/login"
	medicinesview "medtrack/internal/ui/views/medicines"
	prescriptionsview "medtrack/internal/ui/views/prescriptions"
	profileview "medtrack/internal/ui/views/profile"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Init(ctx context.Context) authdto.SessionOutput
	Login(ctx context.Context, email, password string) (authdto.SessionOutput, error)
	Logout() authdto.SessionOutput
	Register(ctx context.Context, name, email, password string) (authdto.RegisterOutput, error)
	Current() authdto.SessionOutput
}

type medicinePort interface {
	List(ctx context.Context) ([]meddto.MedicineOutput, error)
	Get(ctx context.Context, id int) (meddto.MedicineOutput, error)
	Delete(ctx context.Context, id int) error
	ImportFile(ctx context.Context, path string) (meddto.ImportOutput, error)
	Sync(ctx context.Context) (meddto.SyncOutput, error)
	LocalSearch(ctx context.Context, query string, limit int) ([]meddto.MedicineOutput, error)
}

type prescriptionPort interface {
	ListMine(ctx context.Context) ([]rxdto.PrescriptionOutput, error)
	Create(ctx context.Context, input rxdto.SaveInput) error
	Update(ctx context.Context, id int, input rxdto.SaveInput) error
	Delete(ctx context.Context, id int) error
}

type profilePort interface {
	Get(ctx context.Context) (profdto.ProfileOutput, error)
	SavePatient(ctx context.Context, input profdto.PatientProfileInput) (profdto.ProfileOutput, error)
	SaveDoctor(ctx context.Context, input profdto.DoctorProfileInput) (profdto.ProfileOutput, error)
}

type adminPort interface {
	ListUsers(ctx context.Context, input admdto.ListInput) ([]admdto.AccountOutput, error)
	Roles(ctx context.Context) ([]string, error)
	SetRoles(ctx context.Context, userID int, roles []string) error
	DeleteUser(ctx context.Context, userID int) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabMedicines tabID = iota
	tabPrescriptions
	tabProfile
	tabAdmin
	tabCount
)

var tabLabels = [tabCount]string{
	"Medicines", "Prescriptions", "Profile", "Admin",
}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionInitMsg struct {
	session authdto.SessionOutput
}

type loginDoneMsg struct {
	session authdto.SessionOutput
	err     error
}

type registerDoneMsg struct {
	out authdto.RegisterOutput
	err error
}

type syncDoneMsg struct {
	out meddto.SyncOutput
	err error
}

type importDoneMsg struct {
	out meddto.ImportOutput
	err error
}

type medDeletedMsg struct{ err error }

type rxDeletedMsg struct{ err error }

type searchDoneMsg struct {
	query string
	hits  []meddto.MedicineOutput
	err   error
}

type adminDoneMsg struct {
	action string
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Reload  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new prescription")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Reload},
		{k.New, k.Edit, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns session state, tab routing,
// the login form, the global help overlay, and the command palette. All
// business logic is delegated to port interfaces; all rendering is
// delegated to sub-views.
type Model struct {
	auth  authPort
	med   medicinePort
	rx    prescriptionPort
	prof  profilePort
	admin adminPort

	// sub-views
	loginView loginview.Model
	medView   medicinesview.Model
	rxView    prescriptionsview.Model
	profView  profileview.Model
	adminView adminview.Model

	// global UI state
	session    authdto.SessionOutput
	booted     bool
	activeTab  tabID
	keys       keyMap
	help       help.Model
	showHelp   bool
	palette    components.Palette
	status     string
	width      int
	height     int
}

func NewModel(
	auth authPort,
	med medicinePort,
	rx prescriptionPort,
	prof profilePort,
	admin adminPort,
) Model {
	return Model{
		auth:      auth,
		med:       med,
		rx:        rx,
		prof:      prof,
		admin:     admin,
		loginView: loginview.New(),
		medView:   medicinesview.New(medicinePortBridge{p: med}),
		rxView:    prescriptionsview.New(rx),
		profView:  profileview.New(prof),
		adminView: adminview.New(adminPortBridge{p: admin}),
		activeTab: tabMedicines,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "connecting…",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loginView.Init(), m.restoreSessionCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case sessionInitMsg:
		m.booted = true
		m.session = msg.session
		if msg.session.Authenticated {
			m.status = "signed in as " + msg.session.Email
			cmds = append(cmds, m.initTabsCmd())
		} else if msg.session.Err != "" {
			m.loginView.SetError(msg.session.Err)
			m.status = "ready"
		} else {
			m.status = "ready"
		}

	case loginDoneMsg:
		m.session = msg.session
		if msg.err != nil {
			m.loginView.SetError(msg.err.Error())
			return m, nil
		}
		if !msg.session.Authenticated {
			errMsg := msg.session.Err
			if errMsg == "" {
				errMsg = "Login failed"
			}
			m.loginView.SetError(errMsg)
			return m, nil
		}
		m.status = "signed in as " + msg.session.Email
		m.activeTab = m.firstTab()
		cmds = append(cmds, m.initTabsCmd())

	case registerDoneMsg:
		if msg.err != nil {
			m.loginView.SetError(msg.err.Error())
			return m, nil
		}
		m.loginView.SetError("account created, sign in to continue")
		return m, nil

	case loginview.SubmitMsg:
		m.loginView.SetBusy()
		cmds = append(cmds, m.loginCmd(msg.Email, msg.Password))

	case loginview.RegisterMsg:
		m.loginView.SetBusy()
		cmds = append(cmds, m.registerCmd(msg.Name, msg.Email, msg.Password))

	case syncDoneMsg:
		if msg.err != nil {
			m.status = "sync failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("synced %d medicines to the local cache", msg.out.Cached)
		}

	case importDoneMsg:
		if msg.err != nil {
			m.status = "import failed: " + msg.err.Error()
		} else {
			m.status = msg.out.Message
			cmds = append(cmds, m.medView.Reload())
		}

	case medDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
		} else {
			m.status = "medicine deleted"
			cmds = append(cmds, m.medView.Reload())
		}

	case rxDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
		} else {
			m.status = "prescription deleted"
			cmds = append(cmds, m.rxView.Reload())
		}

	case searchDoneMsg:
		if msg.err != nil {
			m.status = "local search: " + msg.err.Error()
		} else {
			names := make([]string, 0, len(msg.hits))
			for _, h := range msg.hits {
				names = append(names, h.Name)
			}
			if len(names) == 0 {
				m.status = fmt.Sprintf("no cached medicines match %q", msg.query)
			} else {
				m.status = fmt.Sprintf("cache: %s", strings.Join(names, ", "))
			}
		}

	case adminDoneMsg:
		if msg.err != nil {
			m.status = msg.action + " failed: " + msg.err.Error()
		} else {
			m.status = msg.action + " done"
			cmds = append(cmds, m.adminView.Reload())
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if !m.session.Authenticated {
			// "q" types into the form; only ctrl+c quits here.
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.loginView, cmd = m.loginView.Update(msg)
			return m, cmd
		}

		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when a search filter or editor form is active.
		if m.subViewCapturing() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = m.nextTab(1)
		case "shift+tab":
			m.activeTab = m.nextTab(-1)
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "r":
			cmds = append(cmds, m.reloadActive())
		case "n":
			if m.activeTab == tabPrescriptions && m.canPrescribe() {
				cmds = append(cmds, m.rxView.OpenNew())
			}
		case "e":
			if m.activeTab == tabPrescriptions && m.canPrescribe() {
				cmds = append(cmds, m.rxView.OpenEdit())
			}
		case "d":
			if m.activeTab == tabPrescriptions && m.canPrescribe() {
				cmds = append(cmds, m.rxView.DeleteSelected())
			}
		case "p":
			if m.activeTab == tabProfile {
				cmds = append(cmds, m.profView.EditPatient())
			}
		case "o":
			if m.activeTab == tabProfile {
				cmds = append(cmds, m.profView.EditDoctor())
			}
		}
	}

	if !m.session.Authenticated {
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabMedicines:
		m.medView, tabCmd = m.medView.Update(msg)
	case tabPrescriptions:
		m.rxView, tabCmd = m.rxView.Update(msg)
	case tabProfile:
		m.profView, tabCmd = m.profView.Update(msg)
	case tabAdmin:
		m.adminView, tabCmd = m.adminView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.booted {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("medtrack — connecting…"))
	}
	if !m.session.Authenticated {
		return m.loginView.View()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabMedicines:
		return m.medView.View()
	case tabPrescriptions:
		return m.rxView.View()
	case tabProfile:
		return m.profView.View()
	case tabAdmin:
		return m.adminView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	var parts []string
	for i := tabID(0); i < tabCount; i++ {
		if !m.tabVisible(i) {
			continue
		}
		label := tabLabels[i]
		if i == m.activeTab {
			parts = append(parts, theme.Hot.Render(" "+label+" "))
		} else {
			parts = append(parts, theme.Muted.Render(" "+label+" "))
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "medtrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.session.Authenticated {
		left = theme.Ok.Render("● "+m.session.Email) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "med:sync":
		m.status = "syncing…"
		return m, m.syncCmd()

	case "med:search":
		if len(parts) < 2 {
			m.status = "usage: med:search <text>"
			return m, nil
		}
		query := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.searchCmd(query)

	case "med:import":
		if !m.isAdmin() {
			m.status = "import requires the ADMIN role"
			return m, nil
		}
		if len(parts) < 2 {
			m.status = "usage: med:import <path>"
			return m, nil
		}
		path := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		m.status = "importing " + path + "…"
		return m, m.importCmd(path)

	case "med:delete":
		if !m.isAdmin() {
			m.status = "delete requires the ADMIN role"
			return m, nil
		}
		id, ok := m.argID(parts)
		if !ok {
			if id, ok = m.medView.SelectedID(); !ok {
				m.status = "usage: med:delete <id>"
				return m, nil
			}
		}
		return m, m.deleteMedicineCmd(id)

	case "rx:delete":
		id, ok := m.argID(parts)
		if !ok {
			if id, ok = m.rxView.SelectedID(); !ok {
				m.status = "usage: rx:delete <id>"
				return m, nil
			}
		}
		return m, func() tea.Msg {
			return rxDeletedMsg{err: m.rx.Delete(context.Background(), id)}
		}

	case "admin:filter":
		if !m.isAdmin() {
			m.status = "admin commands require the ADMIN role"
			return m, nil
		}
		role := ""
		only := false
		if len(parts) >= 2 {
			role = parts[1]
		}
		if len(parts) >= 3 && parts[2] == "only" {
			only = true
		}
		m.activeTab = tabAdmin
		return m, m.adminView.SetFilter(role, only)

	case "admin:set-roles":
		if !m.isAdmin() {
			m.status = "admin commands require the ADMIN role"
			return m, nil
		}
		if len(parts) < 3 {
			m.status = "usage: admin:set-roles <id> <role> [role...]"
			return m, nil
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid user id"
			return m, nil
		}
		roles := parts[2:]
		m.activeTab = tabAdmin
		return m, func() tea.Msg {
			return adminDoneMsg{action: "role update", err: m.admin.SetRoles(context.Background(), id, roles)}
		}

	case "admin:delete":
		if !m.isAdmin() {
			m.status = "admin commands require the ADMIN role"
			return m, nil
		}
		id, ok := m.argID(parts)
		if !ok {
			if id, ok = m.adminView.SelectedID(); !ok {
				m.status = "usage: admin:delete <id>"
				return m, nil
			}
		}
		m.activeTab = tabAdmin
		return m, func() tea.Msg {
			return adminDoneMsg{action: "user delete", err: m.admin.DeleteUser(context.Background(), id)}
		}

	case "session:logout":
		m.session = m.auth.Logout()
		m.loginView = loginview.New()
		m.status = "signed out"
		return m, m.loginView.Init()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// Role checks are substring matches on the combined role string, matching
// the backend's reporting format (e.g. "PATIENT,ADMIN").
func (m Model) isAdmin() bool {
	return strings.Contains(m.session.Role, "ADMIN")
}

func (m Model) canPrescribe() bool {
	return strings.Contains(m.session.Role, "PATIENT") || strings.Contains(m.session.Role, "DOCTOR")
}

func (m Model) tabVisible(t tabID) bool {
	switch t {
	case tabPrescriptions:
		return m.canPrescribe()
	case tabAdmin:
		return m.isAdmin()
	}
	return true
}

func (m Model) firstTab() tabID {
	for i := tabID(0); i < tabCount; i++ {
		if m.tabVisible(i) {
			return i
		}
	}
	return tabMedicines
}

func (m Model) nextTab(delta tabID) tabID {
	t := m.activeTab
	for i := 0; i < int(tabCount); i++ {
		t = (t + delta + tabCount) % tabCount
		if m.tabVisible(t) {
			return t
		}
	}
	return m.activeTab
}

func (m Model) argID(parts []string) (int, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// subViewCapturing reports whether the active tab is consuming raw key
// input (list filter or editor form), in which case global bindings yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabMedicines:
		return m.medView.Filtering()
	case tabPrescriptions:
		return m.rxView.Filtering() || m.rxView.Editing()
	case tabProfile:
		return m.profView.Editing()
	case tabAdmin:
		return m.adminView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.loginView, _ = m.loginView.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.medView, _ = m.medView.Update(sz)
	m.rxView, _ = m.rxView.Update(sz)
	m.profView, _ = m.profView.Update(sz)
	m.adminView, _ = m.adminView.Update(sz)
}

func (m *Model) reloadActive() tea.Cmd {
	switch m.activeTab {
	case tabMedicines:
		return m.medView.Reload()
	case tabPrescriptions:
		return m.rxView.Reload()
	case tabProfile:
		return m.profView.Init()
	case tabAdmin:
		return m.adminView.Reload()
	}
	return nil
}

// initTabsCmd starts loading every tab the signed-in user can see.
func (m Model) initTabsCmd() tea.Cmd {
	cmds := []tea.Cmd{m.medView.Init(), m.profView.Init()}
	if m.canPrescribe() {
		cmds = append(cmds, m.rxView.Init())
	}
	if m.isAdmin() {
		cmds = append(cmds, m.adminView.Init())
	}
	return tea.Batch(cmds...)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) restoreSessionCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionInitMsg{session: m.auth.Init(context.Background())}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := m.auth.Login(context.Background(), email, password)
		return loginDoneMsg{session: session, err: err}
	}
}

func (m Model) registerCmd(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.auth.Register(context.Background(), name, email, password)
		return registerDoneMsg{out: out, err: err}
	}
}

func (m Model) syncCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.med.Sync(context.Background())
		return syncDoneMsg{out: out, err: err}
	}
}

func (m Model) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.med.ImportFile(context.Background(), path)
		return importDoneMsg{out: out, err: err}
	}
}

func (m Model) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		hits, err := m.med.LocalSearch(context.Background(), query, 10)
		return searchDoneMsg{query: query, hits: hits, err: err}
	}
}

func (m Model) deleteMedicineCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return medDeletedMsg{err: m.med.Delete(context.Background(), id)}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed
// by a specific sub-view, keeping view packages free of knowledge about the
// wider port surface.

type medicinePortBridge struct{ p medicinePort }

func (b medicinePortBridge) List(ctx context.Context) ([]meddto.MedicineOutput, error) {
	return b.p.List(ctx)
}
func (b medicinePortBridge) Get(ctx context.Context, id int) (meddto.MedicineOutput, error) {
	return b.p.Get(ctx, id)
}

type adminPortBridge struct{ p adminPort }

func (b adminPortBridge) ListUsers(ctx context.Context, input admdto.ListInput) ([]admdto.AccountOutput, error) {
	return b.p.ListUsers(ctx, input)
}
func (b adminPortBridge) Roles(ctx context.Context) ([]string, error) {
	return b.p.Roles(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
