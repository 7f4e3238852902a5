package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"spacelister/internal/model"
)

// PostgresRepository stores published listings in PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL listing store
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// CreateTable creates the listings table if it doesn't exist
func (r *PostgresRepository) CreateTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS listings (
		id                   SERIAL PRIMARY KEY,
		listing_id           TEXT UNIQUE NOT NULL,
		session_id           TEXT UNIQUE NOT NULL,
		location             TEXT NOT NULL,
		neighborhood         TEXT,
		square_feet          INTEGER NOT NULL,
		space_type           TEXT,
		desk_capacity        INTEGER,
		private_offices      INTEGER,
		conference_rooms     INTEGER,
		amenities            JSONB,
		standout_features    TEXT,
		available_from       TEXT,
		minimum_term         TEXT,
		restrictions         TEXT,
		monthly_rate         INTEGER NOT NULL,
		price_per_sqft       NUMERIC(10,4) DEFAULT 0,
		title                TEXT,
		description          TEXT,
		conversation_history JSONB,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_listings_location ON listings (location);
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Save upserts a listing keyed by session id
func (r *PostgresRepository) Save(ctx context.Context, listing *model.Listing) error {
	query := `
		INSERT INTO listings (
			listing_id, session_id, location, neighborhood, square_feet,
			space_type, desk_capacity, private_offices, conference_rooms,
			amenities, standout_features, available_from, minimum_term,
			restrictions, monthly_rate, price_per_sqft, title, description,
			conversation_history, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (session_id) DO UPDATE SET
			listing_id = EXCLUDED.listing_id,
			location = EXCLUDED.location,
			neighborhood = EXCLUDED.neighborhood,
			square_feet = EXCLUDED.square_feet,
			space_type = EXCLUDED.space_type,
			desk_capacity = EXCLUDED.desk_capacity,
			private_offices = EXCLUDED.private_offices,
			conference_rooms = EXCLUDED.conference_rooms,
			amenities = EXCLUDED.amenities,
			standout_features = EXCLUDED.standout_features,
			available_from = EXCLUDED.available_from,
			minimum_term = EXCLUDED.minimum_term,
			restrictions = EXCLUDED.restrictions,
			monthly_rate = EXCLUDED.monthly_rate,
			price_per_sqft = EXCLUDED.price_per_sqft,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			conversation_history = EXCLUDED.conversation_history
	`
	_, err := r.db.ExecContext(ctx, query,
		listing.ListingID, listing.SessionID, listing.Location, listing.Neighborhood,
		listing.SquareFeet, listing.SpaceType, listing.DeskCapacity,
		listing.PrivateOffices, listing.ConferenceRooms, listing.Amenities,
		listing.StandoutFeatures, listing.AvailableFrom, listing.MinimumTerm,
		listing.Restrictions, listing.MonthlyRate, listing.PricePerSqft,
		listing.Title, listing.Description, listing.ConversationHistory,
		listing.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

const listingColumns = `
	listing_id, session_id, location, neighborhood, square_feet, space_type,
	desk_capacity, private_offices, conference_rooms, amenities,
	standout_features, available_from, minimum_term, restrictions,
	monthly_rate, price_per_sqft, title, description, conversation_history,
	created_at
`

// GetByListingID retrieves a single listing by its public id
func (r *PostgresRepository) GetByListingID(ctx context.Context, listingID string) (*model.Listing, error) {
	var listing model.Listing
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE listing_id = $1`, listingColumns)
	err := r.db.GetContext(ctx, &listing, query, listingID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// List returns all published listings, newest first
func (r *PostgresRepository) List(ctx context.Context) ([]model.Listing, error) {
	var listings []model.Listing
	query := fmt.Sprintf(`SELECT %s FROM listings ORDER BY created_at DESC`, listingColumns)
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}
