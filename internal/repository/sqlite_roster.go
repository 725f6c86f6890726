package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/rosterdesk/internal/db"
	"github.com/alexanderramin/rosterdesk/internal/domain"
)

// Client link kinds stored in client_staff_links.
const (
	linkExcluded = "excluded"
	linkTrained  = "trained"
	linkFocus    = "focus"
)

// SQLiteRosterRepo implements RosterRepo using a SQLite database.
type SQLiteRosterRepo struct {
	db db.DBTX
}

func NewSQLiteRosterRepo(conn db.DBTX) *SQLiteRosterRepo {
	return &SQLiteRosterRepo{db: conn}
}

func (r *SQLiteRosterRepo) UpsertStaff(ctx context.Context, s domain.Staff) error {
	now := nowUTC()
	query := `INSERT INTO staff (id, name, role, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			active = excluded.active,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, string(s.Role), boolToInt(s.Active), now, now); err != nil {
		return fmt.Errorf("upserting staff %s: %w", s.ID, err)
	}
	return nil
}

// UpsertClient writes the client and replaces its staff lists. Every listed
// staff member must already exist.
func (r *SQLiteRosterRepo) UpsertClient(ctx context.Context, c domain.Client) error {
	now := nowUTC()
	query := `INSERT INTO clients (id, name, crisis, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			crisis = excluded.crisis,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, boolToInt(c.Crisis), now, now); err != nil {
		return fmt.Errorf("upserting client %s: %w", c.ID, err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_staff_links WHERE client_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clearing links for client %s: %w", c.ID, err)
	}
	links := []struct {
		kind string
		ids  []string
	}{
		{linkExcluded, c.ExcludedStaff},
		{linkTrained, c.TrainedStaff},
		{linkFocus, c.FocusStaff},
	}
	for _, l := range links {
		for _, staffID := range l.ids {
			if _, err := r.db.ExecContext(ctx,
				`INSERT OR IGNORE INTO client_staff_links (client_id, staff_id, kind) VALUES (?, ?, ?)`,
				c.ID, staffID, l.kind); err != nil {
				return fmt.Errorf("linking %s staff %s to client %s: %w", l.kind, staffID, c.ID, err)
			}
		}
	}
	return nil
}

func (r *SQLiteRosterRepo) GetStaff(ctx context.Context, id string) (domain.Staff, error) {
	var s domain.Staff
	var role string
	var active int
	err := r.db.QueryRowContext(ctx, `SELECT id, name, role, active FROM staff WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &role, &active)
	if err != nil {
		if notFound(err) {
			return domain.Staff{}, fmt.Errorf("staff %s: %w", id, ErrNotFound)
		}
		return domain.Staff{}, fmt.Errorf("scanning staff: %w", err)
	}
	s.Role = domain.StaffRole(role)
	s.Active = intToBool(active)
	return s, nil
}

func (r *SQLiteRosterRepo) GetClient(ctx context.Context, id string) (domain.Client, error) {
	var c domain.Client
	var crisis int
	err := r.db.QueryRowContext(ctx, `SELECT id, name, crisis FROM clients WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &crisis)
	if err != nil {
		if notFound(err) {
			return domain.Client{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return domain.Client{}, fmt.Errorf("scanning client: %w", err)
	}
	c.Crisis = intToBool(crisis)

	clients := []domain.Client{c}
	if err := r.attachLinks(ctx, clients, `WHERE client_id = ?`, id); err != nil {
		return domain.Client{}, err
	}
	return clients[0], nil
}

func (r *SQLiteRosterRepo) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, role, active FROM staff ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	defer rows.Close()

	var out []domain.Staff
	for rows.Next() {
		var s domain.Staff
		var role string
		var active int
		if err := rows.Scan(&s.ID, &s.Name, &role, &active); err != nil {
			return nil, fmt.Errorf("scanning staff row: %w", err)
		}
		s.Role = domain.StaffRole(role)
		s.Active = intToBool(active)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff: %w", err)
	}
	return out, nil
}

func (r *SQLiteRosterRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, crisis FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	var out []domain.Client
	for rows.Next() {
		var c domain.Client
		var crisis int
		if err := rows.Scan(&c.ID, &c.Name, &crisis); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning client row: %w", err)
		}
		c.Crisis = intToBool(crisis)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	rows.Close()

	if err := r.attachLinks(ctx, out, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteRosterRepo) Load(ctx context.Context) (domain.Roster, error) {
	staff, err := r.ListStaff(ctx)
	if err != nil {
		return domain.Roster{}, err
	}
	clients, err := r.ListClients(ctx)
	if err != nil {
		return domain.Roster{}, err
	}
	return domain.Roster{Staff: staff, Clients: clients}, nil
}

// attachLinks fills the staff lists of clients from client_staff_links rows
// matching where.
func (r *SQLiteRosterRepo) attachLinks(ctx context.Context, clients []domain.Client, where string, args ...any) error {
	index := make(map[string]int, len(clients))
	for i, c := range clients {
		index[c.ID] = i
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT client_id, staff_id, kind FROM client_staff_links `+where+` ORDER BY client_id, kind, staff_id`, args...)
	if err != nil {
		return fmt.Errorf("listing client links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clientID, staffID, kind string
		if err := rows.Scan(&clientID, &staffID, &kind); err != nil {
			return fmt.Errorf("scanning client link: %w", err)
		}
		i, ok := index[clientID]
		if !ok {
			continue
		}
		c := &clients[i]
		switch kind {
		case linkExcluded:
			c.ExcludedStaff = append(c.ExcludedStaff, staffID)
		case linkTrained:
			c.TrainedStaff = append(c.TrainedStaff, staffID)
		case linkFocus:
			c.FocusStaff = append(c.FocusStaff, staffID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating client links: %w", err)
	}
	return nil
}
