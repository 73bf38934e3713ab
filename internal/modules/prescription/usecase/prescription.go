package usecase

import (
	"context"

	"medtrack/internal/modules/prescription/domain"
	"medtrack/internal/modules/prescription/dto"
	rxin "medtrack/internal/modules/prescription/port/in"
	rxout "medtrack/internal/modules/prescription/port/out"
	"medtrack/internal/modules/prescription/service"
)

type Interactor struct {
	svc    *service.PrescriptionService
	tokens rxout.TokenSource
}

func NewInteractor(svc *service.PrescriptionService, tokens rxout.TokenSource) rxin.Usecase {
	return &Interactor{svc: svc, tokens: tokens}
}

func (i *Interactor) Create(ctx context.Context, input dto.SaveInput) error {
	token, err := i.tokens.Token()
	if err != nil {
		return err
	}
	return i.svc.Create(ctx, token, toDraft(input))
}

func (i *Interactor) Update(ctx context.Context, id int, input dto.SaveInput) error {
	token, err := i.tokens.Token()
	if err != nil {
		return err
	}
	return i.svc.Update(ctx, token, id, toDraft(input))
}

func (i *Interactor) ListMine(ctx context.Context) ([]dto.PrescriptionOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return nil, err
	}
	prescriptions, err := i.svc.ListMine(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrescriptionOutput, len(prescriptions))
	for idx, p := range prescriptions {
		out[idx] = toOutput(p)
	}
	return out, nil
}

func (i *Interactor) Delete(ctx context.Context, id int) error {
	token, err := i.tokens.Token()
	if err != nil {
		return err
	}
	return i.svc.Delete(ctx, token, id)
}

func toDraft(input dto.SaveInput) domain.Draft {
	rows := make([]domain.CompactRow, len(input.Rows))
	for i, r := range input.Rows {
		rows[i] = domain.CompactRow{DayOfWeek: domain.Weekday(r.Day), TimeOfDay: r.Time, Daily: r.Daily}
	}
	return domain.Draft{
		MedicineID: input.MedicineID,
		Dosage:     domain.Dosage{Amount: input.DosageAmount, Unit: input.DosageUnit},
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		TimeZone:   input.TimeZone,
		Rows:       rows,
	}
}

func toOutput(p domain.Prescription) dto.PrescriptionOutput {
	out := dto.PrescriptionOutput{
		ID:           p.ID,
		MedicineID:   p.MedicineID,
		MedicineName: p.MedicineName,
		DosageAmount: p.Dosage.Amount,
		DosageUnit:   p.Dosage.Unit,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		TimeZone:     p.TimeZone,
		Ongoing:      p.Ongoing(),
	}
	out.Entries = make([]dto.EntryOutput, len(p.Schedule))
	for i, e := range p.Schedule {
		out.Entries[i] = dto.EntryOutput{Day: string(e.DayOfWeek), Time: e.TimeOfDay}
	}
	rows, err := domain.CollapseSchedule(p.Schedule)
	if err != nil {
		// Duplicate slots in backend data: report instead of silently
		// dropping the extra dose.
		out.RowsErr = err.Error()
		return out
	}
	out.Rows = make([]dto.RowInput, len(rows))
	for i, r := range rows {
		out.Rows[i] = dto.RowInput{Day: string(r.DayOfWeek), Time: r.TimeOfDay, Daily: r.Daily}
	}
	return out
}
