package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/applier"
	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/importer"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

type scheduleService struct {
	schedules repository.ScheduleRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewScheduleService(schedules repository.ScheduleRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{schedules: schedules, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Import validates a schedule file against the stored roster and saves it as
// the date's official schedule. Any open session for the date is discarded.
func (s *scheduleService) Import(ctx context.Context, filePath string) (result *ScheduleImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"file": filePath}
	defer func() { observe(ctx, s.observer, "import-schedule", startedAt, fields, &err) }()

	f, err := importer.LoadScheduleFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading schedule file: %w", err)
	}
	fields["date"] = f.Date

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		roster, err := repository.NewSQLiteRosterRepo(tx).Load(ctx)
		if err != nil {
			return err
		}
		if errs := importer.ValidateSchedule(f, roster); len(errs) > 0 {
			return formatValidationErrors(errs)
		}
		schedule, err := importer.ConvertSchedule(f, roster)
		if err != nil {
			return fmt.Errorf("converting schedule: %w", err)
		}

		txSessions := repository.NewSQLiteSessionRepo(tx)
		discarded := true
		if _, err := txSessions.Get(ctx, f.Date); errors.Is(err, repository.ErrNotFound) {
			discarded = false
		} else if err != nil {
			return err
		}
		if err := repository.NewSQLiteScheduleRepo(tx).Save(ctx, f.Date, schedule, repository.SourceImport); err != nil {
			return err
		}
		if discarded {
			if err := txSessions.Delete(ctx, f.Date); err != nil {
				return err
			}
		}

		result = &ScheduleImportResult{Date: f.Date, StaffCount: len(schedule), DiscardedSession: discarded}
		for _, d := range schedule {
			result.SlotCount += len(d.Slots)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *scheduleService) Get(ctx context.Context, date string) (domain.Schedule, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	schedule, err := s.schedules.Get(ctx, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w %s", ErrNoSchedule, date)
	}
	return schedule, err
}

func (s *scheduleService) Dates(ctx context.Context) ([]string, error) {
	return s.schedules.ListDates(ctx)
}

func (s *scheduleService) Check(ctx context.Context, date string) (*CheckReport, error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	report := &CheckReport{Date: date, Mode: "official"}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var schedule domain.Schedule
		state, err := repository.NewSQLiteSessionRepo(tx).Get(ctx, date)
		switch {
		case err == nil:
			schedule = state.Working()
			report.Mode = string(state.Mode)
		case errors.Is(err, repository.ErrNotFound):
			schedule, err = repository.NewSQLiteScheduleRepo(tx).Get(ctx, date)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w %s", ErrNoSchedule, date)
			}
			if err != nil {
				return err
			}
		default:
			return err
		}
		report.Duplicates = applier.FindDuplicateAssignments(schedule)
		report.Overlapping = applier.Overlapping(schedule)
		report.OpenSlots = applier.OpenSlots(schedule)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
