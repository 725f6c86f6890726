package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/rosterdesk/internal/advisor"
	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
	"github.com/alexanderramin/rosterdesk/internal/editor"
	"github.com/alexanderramin/rosterdesk/internal/repository"
)

// EditorConfig carries the session limits from configuration. Zero values
// fall back to the editor defaults.
type EditorConfig struct {
	UndoLimit      int
	MaxSuggestions int
}

type editorService struct {
	uow      db.UnitOfWork
	cfg      EditorConfig
	observer UseCaseObserver
	// now overrides the engine clock in tests.
	now func() time.Time
}

func NewEditorService(uow db.UnitOfWork, cfg EditorConfig, observers ...UseCaseObserver) EditorService {
	if cfg.UndoLimit <= 0 {
		cfg.UndoLimit = editor.DefaultUndoLimit
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = advisor.DefaultLimit
	}
	return &editorService{uow: uow, cfg: cfg, observer: useCaseObserverOrNoop(observers)}
}

// session is one use case's view of a date: the loaded state, an engine for
// the current roster, and tx-scoped repos.
type session struct {
	state     *editor.State
	engine    *editor.Engine
	sessions  repository.SessionRepo
	schedules repository.ScheduleRepo
	changeLog repository.ChangeLogRepo
}

func (s *session) save(ctx context.Context) error {
	return s.sessions.Save(ctx, s.state)
}

// withSession loads or starts the date's session inside a transaction and
// runs fn against it. fn decides whether to save.
func (s *editorService) withSession(ctx context.Context, date string, fn func(ctx context.Context, sess *session) error) error {
	if err := checkDate(date); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sess := &session{
			sessions:  repository.NewSQLiteSessionRepo(tx),
			schedules: repository.NewSQLiteScheduleRepo(tx),
			changeLog: repository.NewSQLiteChangeLogRepo(tx),
		}

		roster, err := repository.NewSQLiteRosterRepo(tx).Load(ctx)
		if err != nil {
			return err
		}

		state, err := sess.sessions.Get(ctx, date)
		if errors.Is(err, repository.ErrNotFound) {
			official, err := sess.schedules.Get(ctx, date)
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w %s", ErrNoSchedule, date)
			}
			if err != nil {
				return err
			}
			state = editor.NewState(date, official, editor.WithUndoLimit(s.cfg.UndoLimit))
		} else if err != nil {
			return err
		}

		engine := editor.NewEngine(roster)
		engine.MaxSuggestions = s.cfg.MaxSuggestions
		if s.now != nil {
			engine.Now = s.now
		}
		sess.state, sess.engine = state, engine
		return fn(ctx, sess)
	})
}

func (s *editorService) Open(ctx context.Context, date string) (state *editor.State, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date}
	defer func() { observe(ctx, s.observer, "open-session", startedAt, fields, &err) }()

	err = s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		state = sess.state
		fields["mode"] = string(state.Mode)
		return sess.save(ctx)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *editorService) Stage(ctx context.Context, date string, edit domain.Edit) (warnings []domain.Warning, err error) {
	err = s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		warnings, err = sess.engine.Stage(sess.state, edit)
		if err != nil {
			return err
		}
		return sess.save(ctx)
	})
	if err != nil {
		return nil, err
	}
	return warnings, nil
}

// Apply commits edit in the session's mode. A draft edit's change log entry
// is appended to the persistent log in the same transaction as the session.
func (s *editorService) Apply(ctx context.Context, date string, edit domain.Edit, override bool) (outcome *editor.Outcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date, "override": override}
	if edit != nil {
		fields["edit_type"] = string(edit.Kind())
	}
	defer func() { observe(ctx, s.observer, "apply-edit", startedAt, fields, &err) }()

	err = s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		fields["mode"] = string(sess.state.Mode)
		out, err := sess.engine.Apply(sess.state, edit, editor.ApplyOptions{Override: override})
		if err != nil {
			outcome = &out
			return err
		}
		fields["warnings"] = len(out.Warnings)
		fields["suggestions"] = len(out.Advisor.Suggestions)
		if out.Entry != nil {
			if err := sess.changeLog.Append(ctx, date, *out.Entry); err != nil {
				return err
			}
		}
		outcome = &out
		return sess.save(ctx)
	})
	if err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (s *editorService) Simulate(ctx context.Context, date string, edit domain.Edit) (*editor.Outcome, error) {
	var outcome editor.Outcome
	err := s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		var err error
		outcome, err = sess.engine.Preview(sess.state, edit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (s *editorService) SetMode(ctx context.Context, date string, mode editor.Mode) (state *editor.State, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date, "mode": string(mode)}
	defer func() { observe(ctx, s.observer, "set-mode", startedAt, fields, &err) }()

	err = s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		if err := sess.engine.SetMode(sess.state, mode); err != nil {
			return err
		}
		state = sess.state
		return sess.save(ctx)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *editorService) Undo(ctx context.Context, date string) (state *editor.State, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date}
	defer func() { observe(ctx, s.observer, "undo", startedAt, fields, &err) }()

	err = s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		if err := sess.engine.Undo(sess.state); err != nil {
			return err
		}
		fields["remaining"] = sess.state.UndoStack.Len()
		state = sess.state
		return sess.save(ctx)
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Finalize stores the draft as the official schedule and closes the session.
// The persistent change log is kept.
func (s *editorService) Finalize(ctx context.Context, date string) (official domain.Schedule, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date}
	defer func() { observe(ctx, s.observer, "finalize", startedAt, fields, &err) }()

	err = s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		fields["edits"] = len(sess.state.ChangeLog)
		official, err = sess.engine.Finalize(sess.state)
		if err != nil {
			return err
		}
		if err := sess.schedules.Save(ctx, date, official, repository.SourceFinalize); err != nil {
			return err
		}
		return sess.sessions.Delete(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	return official, nil
}

// Abandon drops the session. The official schedule and the persistent change
// log are untouched.
func (s *editorService) Abandon(ctx context.Context, date string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date}
	defer func() { observe(ctx, s.observer, "abandon", startedAt, fields, &err) }()

	if err := checkDate(date); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).Delete(ctx, date)
	})
}

func (s *editorService) ChangeLog(ctx context.Context, date string) (entries []domain.ChangeLogEntry, err error) {
	if err := checkDate(date); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entries, err = repository.NewSQLiteChangeLogRepo(tx).ListByDate(ctx, date)
		return err
	})
	return entries, err
}

func (s *editorService) Advise(ctx context.Context, date string) (advisor.State, error) {
	var st advisor.State
	err := s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		st = sess.state.Advisor
		return nil
	})
	return st, err
}

func (s *editorService) ExecuteSuggestion(ctx context.Context, date, suggestionID string, override bool) (outcome *editor.Outcome, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": date, "suggestion": suggestionID}
	defer func() { observe(ctx, s.observer, "execute-suggestion", startedAt, fields, &err) }()

	err = s.withSession(ctx, date, func(ctx context.Context, sess *session) error {
		var found *advisor.Suggestion
		for i, sg := range sess.state.Advisor.Suggestions {
			if sg.ID == suggestionID {
				found = &sess.state.Advisor.Suggestions[i]
				break
			}
		}
		if found == nil {
			return fmt.Errorf("%w: %s", ErrSuggestionNotFound, suggestionID)
		}
		fields["action"] = string(found.Action)

		edit, err := advisor.Execute(*found)
		if errors.Is(err, advisor.ErrNothingToExecute) {
			sess.state.Advisor = advisor.State{}
			return sess.save(ctx)
		}
		if err != nil {
			return err
		}

		out, err := sess.engine.Apply(sess.state, edit, editor.ApplyOptions{Override: override})
		if err != nil {
			outcome = &out
			return err
		}
		if out.Entry != nil {
			if err := sess.changeLog.Append(ctx, date, *out.Entry); err != nil {
				return err
			}
		}
		outcome = &out
		return sess.save(ctx)
	})
	if err != nil {
		return outcome, err
	}
	return outcome, nil
}
