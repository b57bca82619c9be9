package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Client is the PostgreSQL backed contributor directory and location store
type Client struct {
	db *sql.DB
}

var (
	_ interfaces.ContributorDirectory = (*Client)(nil)
	_ interfaces.LocationRepository   = (*Client)(nil)
	_ interfaces.HookRepository       = (*Client)(nil)
)

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database connection")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to verify database connection")
	}

	return New(db), nil
}

// New wraps an existing connection pool
func New(db *sql.DB) *Client {
	return &Client{db: db}
}

// Migrate applies the embedded schema migrations
func (c *Client) Migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return goerr.Wrap(err, "failed to load migrations")
	}

	driver, err := migratepg.WithInstance(c.db, &migratepg.Config{})
	if err != nil {
		return goerr.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return goerr.Wrap(err, "failed to create migration instance")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return goerr.Wrap(err, "failed to run migrations")
	}
	return nil
}

// Close closes the connection pool
func (c *Client) Close() error {
	if err := c.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close database connection")
	}
	return nil
}

// FindContributor returns the contributor ID for an exact name match, or zero
func (c *Client) FindContributor(ctx context.Context, name string) (types.UserID, error) {
	const query = `SELECT contributor_id FROM contributors WHERE contributor_name = $1`

	var id int64
	err := c.db.QueryRowContext(ctx, query, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, goerr.Wrap(err, "failed to find contributor", goerr.V("name", name))
	}
	return types.UserID(id), nil
}

// GetUserLocation returns the geocoded location linked to a user, or nil
func (c *Client) GetUserLocation(ctx context.Context, userID types.UserID) (*model.ContributorLocation, error) {
	const query = `
		SELECT l.location_name, l.location_lat, l.location_lon
		FROM user_locations u
		JOIN locations l ON l.location_name = u.location_name
		WHERE u.user_id = $1
	`

	var loc model.ContributorLocation
	err := c.db.QueryRowContext(ctx, query, int64(userID)).Scan(&loc.Name, &loc.Lat, &loc.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get user location", goerr.V("user_id", userID))
	}
	return &loc, nil
}

// IsGeocoded reports whether a location with this name is stored
func (c *Client) IsGeocoded(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM locations WHERE location_name = $1)`

	var exists bool
	if err := c.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, goerr.Wrap(err, "failed to check location", goerr.V("name", name))
	}
	return exists, nil
}

// SaveLocation inserts a geocoded location; an existing name keeps its coordinates
func (c *Client) SaveLocation(ctx context.Context, loc *model.Location) error {
	const query = `
		INSERT INTO locations (location_name, location_lat, location_lon)
		VALUES ($1, $2, $3)
		ON CONFLICT (location_name) DO NOTHING
	`

	if _, err := c.db.ExecContext(ctx, query, loc.Name, loc.Lat, loc.Lon); err != nil {
		return goerr.Wrap(err, "failed to insert location", goerr.V("name", loc.Name))
	}
	return nil
}

// SetUserLocation links a user to a stored location
func (c *Client) SetUserLocation(ctx context.Context, userID types.UserID, name string) error {
	const query = `
		INSERT INTO user_locations (user_id, location_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET location_name = EXCLUDED.location_name
	`

	if _, err := c.db.ExecContext(ctx, query, int64(userID), name); err != nil {
		return goerr.Wrap(err, "failed to set user location",
			goerr.V("user_id", userID),
			goerr.V("name", name),
		)
	}
	return nil
}

// UpdateAccessToken sets the token on all hooks owned by the user
func (c *Client) UpdateAccessToken(ctx context.Context, userID types.UserID, token string) (int64, error) {
	const query = `UPDATE hooks SET hook_access_token = $1 WHERE hook_user = $2`

	res, err := c.db.ExecContext(ctx, query, token, int64(userID))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to update hook access token", goerr.V("user_id", userID))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to read affected rows")
	}
	return n, nil
}
