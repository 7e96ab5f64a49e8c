package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"openhouse/internal/domain"
)

// Sentinel errors the API layer maps to HTTP statuses.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const uniqueViolationCode = "23505"

// PostgresStore handles interactions with the PostgreSQL database.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

// EnsureSchema creates the tables on startup when they do not exist.
// Dates are stored as ISO YYYY-MM-DD text, so lexicographic comparison
// is chronological.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         SERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS open_houses (
			id              SERIAL PRIMARY KEY,
			user_id         INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			address         TEXT NOT NULL,
			price           TEXT NOT NULL DEFAULT '',
			zestimate       TEXT NOT NULL DEFAULT '',
			monthly_payment TEXT NOT NULL DEFAULT '',
			date            TEXT NOT NULL DEFAULT '',
			time            TEXT NOT NULL DEFAULT '',
			image_url       TEXT NOT NULL DEFAULT '',
			image_data      TEXT NOT NULL DEFAULT '',
			listing_url     TEXT NOT NULL DEFAULT '',
			notes           TEXT NOT NULL DEFAULT '',
			visited         BOOLEAN NOT NULL DEFAULT FALSE,
			favorited       BOOLEAN NOT NULL DEFAULT FALSE,
			disliked        BOOLEAN NOT NULL DEFAULT FALSE,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_open_houses_user_date ON open_houses (user_id, date);
	`)
	return err
}

// CreateUser inserts a new account. The password must already be hashed.
func (s *PostgresStore) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (name, email, password) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		user.Name, user.Email, user.Password,
	).Scan(&user.ID, &user.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(ctx,
		`SELECT id, name, email, password, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(ctx,
		`SELECT id, name, email, password, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

const openHouseColumns = `id, user_id, address, price, zestimate, monthly_payment,
	date, time, image_url, image_data, listing_url, notes,
	visited, favorited, disliked, created_at`

func scanOpenHouse(row pgx.Row) (*domain.OpenHouse, error) {
	var h domain.OpenHouse
	err := row.Scan(&h.ID, &h.UserID, &h.Address, &h.Price, &h.Zestimate, &h.MonthlyPayment,
		&h.Date, &h.Time, &h.ImageURL, &h.ImageData, &h.ListingURL, &h.Notes,
		&h.Visited, &h.Favorited, &h.Disliked, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateOpenHouse inserts a listing for the owning user and returns it
// with its assigned ID.
func (s *PostgresStore) CreateOpenHouse(ctx context.Context, h *domain.OpenHouse) (*domain.OpenHouse, error) {
	return scanOpenHouse(s.db.QueryRow(ctx,
		`INSERT INTO open_houses (user_id, address, price, zestimate, monthly_payment,
			date, time, image_url, image_data, listing_url, notes,
			visited, favorited, disliked)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+openHouseColumns,
		h.UserID, h.Address, h.Price, h.Zestimate, h.MonthlyPayment,
		h.Date, h.Time, h.ImageURL, h.ImageData, h.ListingURL, h.Notes,
		h.Visited, h.Favorited, h.Disliked,
	))
}

func (s *PostgresStore) GetOpenHouse(ctx context.Context, userID, id int) (*domain.OpenHouse, error) {
	return scanOpenHouse(s.db.QueryRow(ctx,
		`SELECT `+openHouseColumns+` FROM open_houses WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
}

// ListOpenHouses returns the user's listings ordered by open-house date.
func (s *PostgresStore) ListOpenHouses(ctx context.Context, userID int) ([]*domain.OpenHouse, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+openHouseColumns+` FROM open_houses WHERE user_id = $1 ORDER BY date, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	houses := []*domain.OpenHouse{}
	for rows.Next() {
		h, err := scanOpenHouse(rows)
		if err != nil {
			return nil, err
		}
		houses = append(houses, h)
	}
	return houses, rows.Err()
}

// UpdateOpenHouse applies a partial update; nil fields keep their stored
// value through COALESCE, since nil pointers arrive as SQL NULLs.
func (s *PostgresStore) UpdateOpenHouse(ctx context.Context, userID, id int, u *domain.OpenHouseUpdate) (*domain.OpenHouse, error) {
	return scanOpenHouse(s.db.QueryRow(ctx,
		`UPDATE open_houses SET
			address         = COALESCE($3, address),
			price           = COALESCE($4, price),
			zestimate       = COALESCE($5, zestimate),
			monthly_payment = COALESCE($6, monthly_payment),
			date            = COALESCE($7, date),
			time            = COALESCE($8, time),
			image_url       = COALESCE($9, image_url),
			image_data      = COALESCE($10, image_data),
			listing_url     = COALESCE($11, listing_url),
			notes           = COALESCE($12, notes),
			visited         = COALESCE($13, visited),
			favorited       = COALESCE($14, favorited),
			disliked        = COALESCE($15, disliked)
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+openHouseColumns,
		id, userID,
		u.Address, u.Price, u.Zestimate, u.MonthlyPayment,
		u.Date, u.Time, u.ImageURL, u.ImageData, u.ListingURL, u.Notes,
		u.Visited, u.Favorited, u.Disliked,
	))
}

// DeleteOpenHouse removes a listing. It reports false when the listing
// does not exist or belongs to another user.
func (s *PostgresStore) DeleteOpenHouse(ctx context.Context, userID, id int) (bool, error) {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM open_houses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetStats aggregates the user's listings in one query. The week windows
// are half-open ISO date ranges computed by the caller, so the text
// comparison below is a chronological one.
func (s *PostgresStore) GetStats(ctx context.Context, userID int, today, weekEnd, nextWeekEnd string) (*domain.Stats, error) {
	var st domain.Stats
	err := s.db.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE date >= $2 AND date < $3),
			COUNT(*) FILTER (WHERE date >= $3 AND date < $4),
			COUNT(*) FILTER (WHERE visited),
			COUNT(*) FILTER (WHERE NOT visited),
			COUNT(*) FILTER (WHERE favorited),
			COUNT(*) FILTER (WHERE disliked)
		 FROM open_houses WHERE user_id = $1`,
		userID, today, weekEnd, nextWeekEnd,
	).Scan(&st.Total, &st.ThisWeek, &st.NextWeek, &st.Visited, &st.NotVisited, &st.Liked, &st.Disliked)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
