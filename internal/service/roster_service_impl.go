package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/importer"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

type rosterService struct {
	rosters  repository.RosterRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRosterService(rosters repository.RosterRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RosterService {
	return &rosterService{rosters: rosters, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *rosterService) Import(ctx context.Context, filePath string) (*RosterImportResult, error) {
	f, err := importer.LoadRosterFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading roster file: %w", err)
	}
	return s.ImportFromFile(ctx, f)
}

// ImportFromFile upserts every staff member and client in one transaction.
// Staff go first so client links can reference them.
func (s *rosterService) ImportFromFile(ctx context.Context, f *importer.RosterFile) (result *RosterImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"staff": len(f.Staff), "clients": len(f.Clients)}
	defer func() { observe(ctx, s.observer, "import-roster", startedAt, fields, &err) }()

	if errs := importer.ValidateRoster(f); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	roster := importer.ConvertRoster(f)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRosters := repository.NewSQLiteRosterRepo(tx)
		for _, st := range roster.Staff {
			if err := txRosters.UpsertStaff(ctx, st); err != nil {
				return fmt.Errorf("creating staff %q: %w", st.ID, err)
			}
		}
		for _, c := range roster.Clients {
			if err := txRosters.UpsertClient(ctx, c); err != nil {
				return fmt.Errorf("creating client %q: %w", c.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RosterImportResult{StaffCount: len(roster.Staff), ClientCount: len(roster.Clients)}, nil
}

func (s *rosterService) Load(ctx context.Context) (domain.Roster, error) {
	return s.rosters.Load(ctx)
}
