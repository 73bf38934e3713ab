package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"medtrack/internal/bootstrap"
	admdto "medtrack/internal/modules/admin/dto"
	profdto "medtrack/internal/modules/profile/dto"
	rxdto "medtrack/internal/modules/prescription/dto"
	"medtrack/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homeDir, apiURL string

	root := &cobra.Command{
		Use:           "medtrack",
		Short:         "Medication tracking terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homeDir, "home", "", "state directory (default ~/.medtrack)")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "backend base URL override")

	load := func() (*bootstrap.App, error) {
		cfg, err := config.Load(homeDir)
		if err != nil {
			return nil, err
		}
		if apiURL != "" {
			cfg.BaseURL = apiURL
		}
		return bootstrap.New(cfg)
	}

	root.AddCommand(newTUICmd(load))
	root.AddCommand(newLoginCmd(load))
	root.AddCommand(newLogoutCmd(load))
	root.AddCommand(newRegisterCmd(load))
	root.AddCommand(newWhoamiCmd(load))
	root.AddCommand(newMedicineCmd(load))
	root.AddCommand(newPrescriptionCmd(load))
	root.AddCommand(newProfileCmd(load))
	root.AddCommand(newAdminCmd(load))
	return root
}

type appLoader func() (*bootstrap.App, error)

// requireSession restores a persisted token and fails with a hint when no
// usable session exists.
func requireSession(ctx context.Context, app *bootstrap.App) error {
	session := app.AuthCLI.Init(ctx)
	if session.Authenticated {
		return nil
	}
	if session.Err != "" {
		return fmt.Errorf("%s: run 'medtrack login'", session.Err)
	}
	return fmt.Errorf("not signed in: run 'medtrack login'")
}

func newTUICmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the medtrack terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newLoginCmd(load appLoader) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login --email <email> --password <password>",
		Short: "Sign in and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			session, err := app.AuthCLI.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", session.Email, session.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			app.AuthCLI.Logout()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newRegisterCmd(load appLoader) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register --name <name> --email <email> --password <password>",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
				return fmt.Errorf("--name, --email and --password are required")
			}
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AuthCLI.Register(context.Background(), name, email, password)
			if err != nil {
				return err
			}
			if out.Message != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "account created, sign in with 'medtrack login'")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newWhoamiCmd(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			session := app.AuthCLI.Current()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> roles=%s\n", session.Name, session.Email, session.Role)
			return nil
		},
	}
}

func newMedicineCmd(load appLoader) *cobra.Command {
	medicine := &cobra.Command{Use: "medicine", Short: "Medicine catalog commands"}

	medicine.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all medicines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			medicines, err := app.MedicineCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(medicines) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no medicines")
				return nil
			}
			for _, m := range medicines {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", m.ID, m.Name, m.GenericName, m.Manufacturer)
			}
			return nil
		},
	})

	var page, size int
	var local bool
	search := &cobra.Command{
		Use:   "search <text>",
		Short: "Search medicines by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if local {
				medicines, err := app.MedicineCLI.LocalSearch(context.Background(), args[0], size)
				if err != nil {
					return err
				}
				for _, m := range medicines {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", m.ID, m.Name, m.GenericName)
				}
				return nil
			}
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			result, err := app.MedicineCLI.Paged(context.Background(), page, size, args[0])
			if err != nil {
				return err
			}
			for _, m := range result.Content {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", m.ID, m.Name, m.GenericName)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d (%d total)\n", result.Page+1, result.TotalPages, result.TotalElements)
			return nil
		},
	}
	search.Flags().IntVar(&page, "page", 0, "zero-based page")
	search.Flags().IntVar(&size, "size", 20, "page size")
	search.Flags().BoolVar(&local, "local", false, "search the offline cache instead of the backend")
	medicine.AddCommand(search)

	var showID int
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show a medicine's details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			m, err := app.MedicineCLI.Get(context.Background(), showID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %d\nname: %s\ngeneric: %s\nmanufacturer: %s\nactive: %t\n",
				m.ID, m.Name, m.GenericName, m.Manufacturer, m.Active)
			for k, values := range m.OpenFDA {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, strings.Join(values, ", "))
			}
			return nil
		},
	}
	show.Flags().IntVar(&showID, "id", 0, "medicine id")
	medicine.AddCommand(show)

	importCmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Upload an openFDA database dump (.json)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			out, err := app.MedicineCLI.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d imported)\n", out.Message, out.Imported)
			return nil
		},
	}
	medicine.AddCommand(importCmd)

	var deleteID int
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a medicine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			if err := app.MedicineCLI.Delete(context.Background(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	deleteCmd.Flags().IntVar(&deleteID, "id", 0, "medicine id")
	medicine.AddCommand(deleteCmd)

	medicine.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Refresh the offline medicine cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			out, err := app.MedicineCLI.Sync(context.Background())
			if err != nil {
				return err
			}
			if out.SyncedAt != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cached %d medicines at %s\n", out.Cached, out.SyncedAt)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cached %d medicines\n", out.Cached)
			}
			return nil
		},
	})

	return medicine
}

// parseRows turns --daily/--row flags into schedule rows. --daily takes a
// time, --row takes DAY@TIME.
func parseRows(daily, rows []string) ([]rxdto.RowInput, error) {
	var out []rxdto.RowInput
	for _, t := range daily {
		out = append(out, rxdto.RowInput{Time: strings.TrimSpace(t), Daily: true})
	}
	for _, r := range rows {
		day, at, ok := strings.Cut(r, "@")
		if !ok {
			return nil, fmt.Errorf("invalid --row %q: want DAY@HH:MM", r)
		}
		out = append(out, rxdto.RowInput{
			Day:  strings.ToUpper(strings.TrimSpace(day)),
			Time: strings.TrimSpace(at),
		})
	}
	return out, nil
}

func newPrescriptionCmd(load appLoader) *cobra.Command {
	rx := &cobra.Command{Use: "prescription", Short: "Prescription commands"}

	rx.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List my prescriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			prescriptions, err := app.RxCLI.ListMine(context.Background())
			if err != nil {
				return err
			}
			if len(prescriptions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no prescriptions")
				return nil
			}
			for _, p := range prescriptions {
				end := p.EndDate
				if p.Ongoing {
					end = "ongoing"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%g %s\t%s → %s\n",
					p.ID, p.MedicineName, p.DosageAmount, p.DosageUnit, p.StartDate, end)
				if p.RowsErr != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\tschedule: %s\n", p.RowsErr)
					for _, e := range p.Entries {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t  %s %s\n", e.Day, e.Time)
					}
					continue
				}
				for _, row := range p.Rows {
					if row.Daily {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t  daily %s\n", row.Time)
					} else {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t  %s %s\n", row.Day, row.Time)
					}
				}
			}
			return nil
		},
	})

	buildSaveCmd := func(use, short string, withID bool) *cobra.Command {
		var id, medicineID int
		var amount float64
		var unit, start, end, zone string
		var daily, rows []string
		cmd := &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := load()
				if err != nil {
					return err
				}
				defer app.Close()
				if err := requireSession(context.Background(), app); err != nil {
					return err
				}
				parsed, err := parseRows(daily, rows)
				if err != nil {
					return err
				}
				input := rxdto.SaveInput{
					MedicineID:   medicineID,
					DosageAmount: amount,
					DosageUnit:   unit,
					StartDate:    start,
					EndDate:      end,
					TimeZone:     zone,
					Rows:         parsed,
				}
				if withID {
					if err := app.RxCLI.Update(context.Background(), id, input); err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "updated")
					return nil
				}
				if err := app.RxCLI.Create(context.Background(), input); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "created")
				return nil
			},
		}
		if withID {
			cmd.Flags().IntVar(&id, "id", 0, "prescription id")
		}
		cmd.Flags().IntVar(&medicineID, "medicine", 0, "medicine id")
		cmd.Flags().Float64Var(&amount, "amount", 0, "dosage amount")
		cmd.Flags().StringVar(&unit, "unit", "", "dosage unit, e.g. TABLET")
		cmd.Flags().StringVar(&start, "start", "", "start date YYYY-MM-DD")
		cmd.Flags().StringVar(&end, "end", "", "end date YYYY-MM-DD (omit for ongoing)")
		cmd.Flags().StringVar(&zone, "zone", "", "IANA time zone, e.g. Europe/London")
		cmd.Flags().StringSliceVar(&daily, "daily", nil, "daily dose time HH:MM (repeatable)")
		cmd.Flags().StringSliceVar(&rows, "row", nil, "weekly dose DAY@HH:MM (repeatable)")
		return cmd
	}

	rx.AddCommand(buildSaveCmd("add", "Create a prescription", false))
	rx.AddCommand(buildSaveCmd("update --id <id>", "Update a prescription", true))

	var deleteID int
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a prescription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			if err := app.RxCLI.Delete(context.Background(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	deleteCmd.Flags().IntVar(&deleteID, "id", 0, "prescription id")
	rx.AddCommand(deleteCmd)

	return rx
}

func newProfileCmd(load appLoader) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Account profile commands"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show my profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			p, err := app.ProfileCLI.Get(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> roles=%s\n", p.Name, p.Email, strings.Join(p.Roles, ","))
			if pat := p.Patient; pat != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "patient: %s born=%s blood=%s phone=%s\n",
					pat.Name, pat.DateOfBirth, pat.BloodType, pat.Phone)
				if pat.Allergies != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "allergies: %s\n", pat.Allergies)
				}
			}
			if doc := p.Doctor; doc != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "doctor: %s %s (%s) license=%s\n",
					doc.FirstName, doc.LastName, doc.Specialization, doc.LicenseNumber)
			}
			return nil
		},
	})

	var patient profdto.PatientProfileInput
	setPatient := &cobra.Command{
		Use:   "set-patient --name <name>",
		Short: "Update the patient section of my profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			if _, err := app.ProfileCLI.SavePatient(context.Background(), patient); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "patient profile saved")
			return nil
		},
	}
	setPatient.Flags().StringVar(&patient.Name, "name", "", "full name")
	setPatient.Flags().StringVar(&patient.Gender, "gender", "", "gender")
	setPatient.Flags().StringVar(&patient.DateOfBirth, "born", "", "date of birth YYYY-MM-DD")
	setPatient.Flags().StringVar(&patient.Phone, "phone", "", "phone number")
	setPatient.Flags().StringVar(&patient.Address, "address", "", "postal address")
	setPatient.Flags().StringVar(&patient.BloodType, "blood", "", "blood type")
	setPatient.Flags().StringVar(&patient.Allergies, "allergies", "", "known allergies")
	setPatient.Flags().StringVar(&patient.MedicalHistory, "history", "", "medical history")
	profile.AddCommand(setPatient)

	var doctor profdto.DoctorProfileInput
	setDoctor := &cobra.Command{
		Use:   "set-doctor --first <name> --last <name>",
		Short: "Update the doctor section of my profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			if _, err := app.ProfileCLI.SaveDoctor(context.Background(), doctor); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "doctor profile saved")
			return nil
		},
	}
	setDoctor.Flags().StringVar(&doctor.FirstName, "first", "", "first name")
	setDoctor.Flags().StringVar(&doctor.LastName, "last", "", "last name")
	setDoctor.Flags().StringVar(&doctor.Specialization, "specialization", "", "medical specialization")
	setDoctor.Flags().StringVar(&doctor.LicenseNumber, "license", "", "license number")
	setDoctor.Flags().StringVar(&doctor.Phone, "phone", "", "phone number")
	setDoctor.Flags().StringVar(&doctor.ClinicAddress, "clinic", "", "clinic address")
	profile.AddCommand(setDoctor)

	return profile
}

func newAdminCmd(load appLoader) *cobra.Command {
	admin := &cobra.Command{Use: "admin", Short: "User administration commands"}

	var role string
	var only bool
	users := &cobra.Command{
		Use:   "users",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			accounts, err := app.AdminCLI.ListUsers(context.Background(), admdto.ListInput{Role: role, Only: only})
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no users")
				return nil
			}
			for _, a := range accounts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n",
					a.UserID, a.Name, a.Email, a.Role, a.CreatedAt)
			}
			return nil
		},
	}
	users.Flags().StringVar(&role, "role", "", "filter by role")
	users.Flags().BoolVar(&only, "only", false, "match accounts holding exactly this role")
	admin.AddCommand(users)

	admin.AddCommand(&cobra.Command{
		Use:   "roles",
		Short: "List assignable roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			roles, err := app.AdminCLI.Roles(context.Background())
			if err != nil {
				return err
			}
			for _, r := range roles {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	})

	var setID int
	var setRoles []string
	setCmd := &cobra.Command{
		Use:   "set-roles --id <id> --roles <role,role>",
		Short: "Replace a user's role set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			if err := app.AdminCLI.SetRoles(context.Background(), setID, setRoles); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "roles updated")
			return nil
		},
	}
	setCmd.Flags().IntVar(&setID, "id", 0, "user id")
	setCmd.Flags().StringSliceVar(&setRoles, "roles", nil, "roles to assign")
	admin.AddCommand(setCmd)

	var deleteID int
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := load()
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireSession(context.Background(), app); err != nil {
				return err
			}
			if err := app.AdminCLI.DeleteUser(context.Background(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "user deleted")
			return nil
		},
	}
	deleteCmd.Flags().IntVar(&deleteID, "id", 0, "user id")
	admin.AddCommand(deleteCmd)

	return admin
}
