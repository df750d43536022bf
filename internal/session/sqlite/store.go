package sqlite

import (
	"context"
	"database/sql"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"

	_ "modernc.org/sqlite"
)

// Store persists the session credential across process restarts. It is the
// CLI analogue of browser local storage: a single row holding the bearer
// token and the user it authenticates.
type Store struct {
	db           *sql.DB
	writeTimeout time.Duration
}

// New creates a new SQLite-backed credential store.
func New(dbPath string, writeTimeout time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeRepository, "open credential database")
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, errors.WrapError(err, errors.ErrorTypeRepository, "migrate credential database")
	}

	return &Store{db: db, writeTimeout: writeTimeout}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCredential stores the credential, replacing any previous one.
// At most one credential row exists at any time.
func (s *Store) SaveCredential(ctx context.Context, cred domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	query := `
	INSERT INTO credentials (id, token, user_id, email, name, saved_at)
	VALUES (1, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		token = excluded.token,
		user_id = excluded.user_id,
		email = excluded.email,
		name = excluded.name,
		saved_at = excluded.saved_at`

	_, err := s.db.ExecContext(ctx, query,
		cred.Token, cred.User.ID, cred.User.Email, cred.User.Name,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeRepository, "save credential")
	}
	return nil
}

// LoadCredential returns the persisted credential, or nil when none exists.
func (s *Store) LoadCredential(ctx context.Context) (*domain.Credential, error) {
	query := `
	SELECT token, user_id, email, name
	FROM credentials
	WHERE id = 1`

	var cred domain.Credential
	err := s.db.QueryRowContext(ctx, query).Scan(
		&cred.Token, &cred.User.ID, &cred.User.Email, &cred.User.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeRepository, "load credential")
	}
	return &cred, nil
}

// ClearCredential removes the persisted credential. Clearing an already
// empty store is not an error.
func (s *Store) ClearCredential(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`); err != nil {
		return errors.WrapError(err, errors.ErrorTypeRepository, "clear credential")
	}
	return nil
}
