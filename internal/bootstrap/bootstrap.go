package bootstrap

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	admininadapter "medtrack/internal/modules/admin/adapter/in"
	adminoutadapter "medtrack/internal/modules/admin/adapter/out"
	adminusecase "medtrack/internal/modules/admin/usecase"
	authinadapter "medtrack/internal/modules/auth/adapter/in"
	authoutadapter "medtrack/internal/modules/auth/adapter/out"
	authservice "medtrack/internal/modules/auth/service"
	authusecase "medtrack/internal/modules/auth/usecase"
	medicineinadapter "medtrack/internal/modules/medicine/adapter/in"
	medicineoutadapter "medtrack/internal/modules/medicine/adapter/out"
	medicineservice "medtrack/internal/modules/medicine/service"
	medicineusecase "medtrack/internal/modules/medicine/usecase"
	rxinadapter "medtrack/internal/modules/prescription/adapter/in"
	rxoutadapter "medtrack/internal/modules/prescription/adapter/out"
	rxservice "medtrack/internal/modules/prescription/service"
	rxusecase "medtrack/internal/modules/prescription/usecase"
	profileinadapter "medtrack/internal/modules/profile/adapter/in"
	profileoutadapter "medtrack/internal/modules/profile/adapter/out"
	profileusecase "medtrack/internal/modules/profile/usecase"
	"medtrack/internal/platform/clock"
	"medtrack/internal/platform/config"
	"medtrack/internal/platform/logging"
	"medtrack/internal/platform/rest"
	uiapp "medtrack/internal/ui/app"
)

// App holds the wired inbound handlers, one per module.
type App struct {
	AuthCLI     authinadapter.CLIHandler
	MedicineCLI medicineinadapter.CLIHandler
	RxCLI       rxinadapter.CLIHandler
	ProfileCLI  profileinadapter.CLIHandler
	AdminCLI    admininadapter.CLIHandler

	log *zap.Logger
}

// New builds the full adapter → service → usecase graph from config.
func New(cfg config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.HomeDir, 0o700); err != nil {
		return nil, fmt.Errorf("create home dir: %w", err)
	}
	log, err := logging.New(cfg.LogPath, false)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	client := rest.New(cfg.BaseURL, cfg.RequestTimeout, log)

	authUC := authusecase.NewInteractor(authservice.NewSessionService(
		authoutadapter.NewHTTPAuthAPI(client),
		authoutadapter.NewFileTokenStore(cfg.TokenPath),
	))
	// The auth interactor doubles as the bearer-token source for every
	// other module.
	tokens := authUC

	cache, err := medicineoutadapter.NewSQLiteCache(cfg.CachePath, clock.SystemClock{})
	if err != nil {
		return nil, fmt.Errorf("open medicine cache: %w", err)
	}
	medicineUC := medicineusecase.NewInteractor(
		medicineservice.NewMedicineService(medicineoutadapter.NewHTTPMedicineAPI(client), cache),
		tokens,
	)

	rxUC := rxusecase.NewInteractor(
		rxservice.NewPrescriptionService(rxoutadapter.NewHTTPPrescriptionAPI(client)),
		tokens,
	)

	profileUC := profileusecase.NewInteractor(profileoutadapter.NewHTTPProfileAPI(client), tokens)
	adminUC := adminusecase.NewInteractor(adminoutadapter.NewHTTPAdminAPI(client), tokens)

	return &App{
		AuthCLI:     authinadapter.NewCLIHandler(authUC),
		MedicineCLI: medicineinadapter.NewCLIHandler(medicineUC),
		RxCLI:       rxinadapter.NewCLIHandler(rxUC),
		ProfileCLI:  profileinadapter.NewCLIHandler(profileUC),
		AdminCLI:    admininadapter.NewCLIHandler(adminUC),
		log:         log,
	}, nil
}

// Close flushes the log sink.
func (a *App) Close() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthCLI, app.MedicineCLI, app.RxCLI, app.ProfileCLI, app.AdminCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
