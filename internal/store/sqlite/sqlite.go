package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hogar-app/hogar/internal/model"
	"github.com/hogar-app/hogar/internal/store"
)

// New constructs a SQLite-backed store on an open connection. The schema is
// ensured so that a fresh database file is immediately usable.
func New(db *sql.DB) (store.Store, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Events() store.Events                     { return &events{db: s.db} }
func (s *sqliteStore) Members() store.Members                   { return &members{db: s.db} }
func (s *sqliteStore) ShoppingItems() store.ShoppingItems       { return &shoppingItems{db: s.db} }
func (s *sqliteStore) ChatInteractions() store.ChatInteractions { return &chatInteractions{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

// --- Events ---

type events struct{ db *sql.DB }

func (e *events) Create(ctx context.Context, m *model.Event) (*model.Event, error) {
	id := m.EventID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := e.db.ExecContext(ctx,
		`INSERT INTO events (event_id, name, date, type, description, creation_time) VALUES (?,?,?,?,?,?)`,
		id, m.Name, m.Date, m.Type, m.Description, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.EventID = id
	out.CreationTime = now
	return &out, nil
}

func (e *events) GetByID(ctx context.Context, eventID string) (*model.Event, error) {
	row := e.db.QueryRowContext(ctx,
		`SELECT event_id, name, date, type, description, creation_time FROM events WHERE event_id = ?`, eventID)
	return scanEvent(row)
}

func (e *events) List(ctx context.Context) ([]*model.Event, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT event_id, name, date, type, description, creation_time FROM events ORDER BY date ASC, creation_time ASC`)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (e *events) ListUpcoming(ctx context.Context, from string, limit int) ([]*model.Event, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT event_id, name, date, type, description, creation_time FROM events WHERE date >= ? ORDER BY date ASC, creation_time ASC LIMIT ?`,
		from, limit)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (e *events) Update(ctx context.Context, m *model.Event) (*model.Event, error) {
	res, err := e.db.ExecContext(ctx,
		`UPDATE events SET name = ?, date = ?, type = ?, description = ? WHERE event_id = ?`,
		m.Name, m.Date, m.Type, m.Description, m.EventID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return e.GetByID(ctx, m.EventID)
}

func (e *events) Delete(ctx context.Context, eventID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM events WHERE event_id = ?`, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (e *events) AttachMember(ctx context.Context, eventID, memberID string) error {
	_, err := e.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO event_members (event_id, member_id) VALUES (?,?)`, eventID, memberID)
	return err
}

func (e *events) ListAttendees(ctx context.Context, eventID string) ([]*model.Member, error) {
	rows, err := e.db.QueryContext(ctx,
		`SELECT m.member_id, m.name, m.email, m.phone, m.birth_date, m.avatar, m.creation_time
         FROM members m JOIN event_members em ON em.member_id = m.member_id
         WHERE em.event_id = ? ORDER BY m.name ASC`, eventID)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

func scanEvent(row *sql.Row) (*model.Event, error) {
	var m model.Event
	if err := row.Scan(&m.EventID, &m.Name, &m.Date, &m.Type, &m.Description, &m.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &m, nil
}

func collectEvents(rows *sql.Rows) ([]*model.Event, error) {
	defer rows.Close()
	var out []*model.Event
	for rows.Next() {
		var m model.Event
		if err := rows.Scan(&m.EventID, &m.Name, &m.Date, &m.Type, &m.Description, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Members ---

type members struct{ db *sql.DB }

func (r *members) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	id := m.MemberID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (member_id, name, email, phone, birth_date, avatar, creation_time) VALUES (?,?,?,?,?,?,?)`,
		id, m.Name, m.Email, m.Phone, m.BirthDate, m.Avatar, now)
	if err != nil {
		return nil, err
	}
	out := *m
	out.MemberID = id
	out.CreationTime = now
	return &out, nil
}

func (r *members) GetByID(ctx context.Context, memberID string) (*model.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT member_id, name, email, phone, birth_date, avatar, creation_time FROM members WHERE member_id = ?`, memberID)
	var m model.Member
	if err := row.Scan(&m.MemberID, &m.Name, &m.Email, &m.Phone, &m.BirthDate, &m.Avatar, &m.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &m, nil
}

func (r *members) List(ctx context.Context) ([]*model.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT member_id, name, email, phone, birth_date, avatar, creation_time FROM members ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

func (r *members) Update(ctx context.Context, m *model.Member) (*model.Member, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members SET name = ?, email = ?, phone = ?, birth_date = ?, avatar = ? WHERE member_id = ?`,
		m.Name, m.Email, m.Phone, m.BirthDate, m.Avatar, m.MemberID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.GetByID(ctx, m.MemberID)
}

func (r *members) Delete(ctx context.Context, memberID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE member_id = ?`, memberID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func collectMembers(rows *sql.Rows) ([]*model.Member, error) {
	defer rows.Close()
	var out []*model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.MemberID, &m.Name, &m.Email, &m.Phone, &m.BirthDate, &m.Avatar, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// --- Shopping items ---

type shoppingItems struct{ db *sql.DB }

func (r *shoppingItems) Create(ctx context.Context, it *model.ShoppingItem) (*model.ShoppingItem, error) {
	id := it.ItemID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_items (item_id, name, completed, creation_time) VALUES (?,?,?,?)`,
		id, it.Name, it.Completed, now)
	if err != nil {
		return nil, err
	}
	out := *it
	out.ItemID = id
	out.CreationTime = now
	return &out, nil
}

func (r *shoppingItems) List(ctx context.Context) ([]*model.ShoppingItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, name, completed, creation_time FROM shopping_items ORDER BY creation_time ASC`)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *shoppingItems) ListPending(ctx context.Context, limit int) ([]*model.ShoppingItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, name, completed, creation_time FROM shopping_items WHERE completed = 0 ORDER BY creation_time ASC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	return collectItems(rows)
}

func (r *shoppingItems) ToggleCompleted(ctx context.Context, itemID string) (*model.ShoppingItem, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shopping_items SET completed = NOT completed WHERE item_id = ?`, itemID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT item_id, name, completed, creation_time FROM shopping_items WHERE item_id = ?`, itemID)
	var it model.ShoppingItem
	if err := row.Scan(&it.ItemID, &it.Name, &it.Completed, &it.CreationTime); err != nil {
		return nil, mapNotFound(err)
	}
	return &it, nil
}

func (r *shoppingItems) Delete(ctx context.Context, itemID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE item_id = ?`, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func collectItems(rows *sql.Rows) ([]*model.ShoppingItem, error) {
	defer rows.Close()
	var out []*model.ShoppingItem
	for rows.Next() {
		var it model.ShoppingItem
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Completed, &it.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// --- Chat interactions ---

type chatInteractions struct{ db *sql.DB }

func (r *chatInteractions) Append(ctx context.Context, ci *model.ChatInteraction) (*model.ChatInteraction, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_interactions (interaction_id, message, response, creation_time) VALUES (?,?,?,?)`,
		id, ci.Message, ci.Response, now)
	if err != nil {
		return nil, err
	}
	out := *ci
	out.InteractionID = id
	out.CreationTime = now
	return &out, nil
}

func (r *chatInteractions) ListRecent(ctx context.Context, limit int) ([]*model.ChatInteraction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT interaction_id, message, response, creation_time FROM chat_interactions ORDER BY creation_time DESC, interaction_id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.ChatInteraction
	for rows.Next() {
		var ci model.ChatInteraction
		if err := rows.Scan(&ci.InteractionID, &ci.Message, &ci.Response, &ci.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &ci)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// reverse into chronological order, oldest of the window first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
