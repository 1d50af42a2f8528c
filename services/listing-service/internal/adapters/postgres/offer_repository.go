package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

const uniqueViolationCode = "23505"

const offerColumns = `id, offered_by, price, property_id, property_kind, property_location, property_bedrooms, property_area`

// PostgresOfferRepository - реализация OfferRepositoryPort на pgx.
type PostgresOfferRepository struct {
	pool *pgxpool.Pool
}

var _ port.OfferRepositoryPort = (*PostgresOfferRepository)(nil)

func NewPostgresOfferRepository(pool *pgxpool.Pool) (*PostgresOfferRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres adapter: pool cannot be nil")
	}
	return &PostgresOfferRepository{pool: pool}, nil
}

// ApplyMigrations выполняет SQL-файлы схемы по порядку имен.
// Файлы должны быть идемпотентными.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, migrations fs.FS) error {
	names, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffer(row rowScanner) (contracts.Offer, error) {
	var o contracts.Offer
	err := row.Scan(
		&o.ID, &o.OfferedBy, &o.Price,
		&o.Property.ID, &o.Property.Kind, &o.Property.Location, &o.Property.Bedrooms, &o.Property.Area,
	)
	return o, err
}

// ListOffers выполняет подсчет и выборку страницы в одной транзакции.
func (r *PostgresOfferRepository) ListOffers(ctx context.Context, query domain.ListOffersQuery) (domain.OfferPage, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresOfferRepository",
		"method":    "ListOffers",
		"limit":     query.Limit,
		"offset":    query.Offset,
	})

	order, err := orderClause(query.Order, query.Descending)
	if err != nil {
		return domain.OfferPage{}, err
	}
	whereClause, args := applyFilters(query.Filter)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return domain.OfferPage{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM offers %s", whereClause)
	var total int
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count offers", err, port.Fields{"query": countQuery})
		return domain.OfferPage{}, fmt.Errorf("failed to count offers: %w", err)
	}

	page := domain.OfferPage{Offers: []contracts.Offer{}, Total: total}
	if total == 0 {
		return page, nil
	}

	dataQuery := fmt.Sprintf("SELECT %s FROM offers %s %s LIMIT $%d OFFSET $%d",
		offerColumns, whereClause, order, len(args)+1, len(args)+2)
	rows, err := tx.Query(ctx, dataQuery, append(args, query.Limit, query.Offset)...)
	if err != nil {
		repoLogger.Error("Failed to query offers", err, port.Fields{"query": dataQuery})
		return domain.OfferPage{}, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return domain.OfferPage{}, fmt.Errorf("failed to scan offer: %w", err)
		}
		page.Offers = append(page.Offers, o)
	}
	if err := rows.Err(); err != nil {
		return domain.OfferPage{}, fmt.Errorf("failed to iterate offers: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.OfferPage{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Offers page loaded", port.Fields{"count": len(page.Offers), "total": total})
	return page, nil
}

func (r *PostgresOfferRepository) GetOffer(ctx context.Context, offerID int64) (contracts.Offer, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+offerColumns+" FROM offers WHERE id = $1", offerID)
	o, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contracts.Offer{}, fmt.Errorf("%w: id %d", domain.ErrOfferNotFound, offerID)
		}
		return contracts.Offer{}, fmt.Errorf("failed to get offer %d: %w", offerID, err)
	}
	return o, nil
}

func (r *PostgresOfferRepository) CreateOffer(ctx context.Context, offer contracts.Offer) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresOfferRepository",
		"method":    "CreateOffer",
		"offer_id":  offer.ID,
	})

	_, err := r.pool.Exec(ctx,
		"INSERT INTO offers ("+offerColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		offer.ID, offer.OfferedBy, offer.Price,
		offer.Property.ID, offer.Property.Kind, offer.Property.Location, offer.Property.Bedrooms, offer.Property.Area,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: id %d", domain.ErrOfferExists, offer.ID)
		}
		repoLogger.Error("Failed to insert offer", err, nil)
		return fmt.Errorf("failed to insert offer: %w", err)
	}
	return nil
}

func (r *PostgresOfferRepository) DeleteOffer(ctx context.Context, offerID int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM offers WHERE id = $1", offerID)
	if err != nil {
		return fmt.Errorf("failed to delete offer %d: %w", offerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrOfferNotFound, offerID)
	}
	return nil
}

// ListProperties возвращает объекты без повторов; для каждого берется
// снимок из самого раннего предложения.
func (r *PostgresOfferRepository) ListProperties(ctx context.Context) ([]contracts.Property, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (property_id)
			property_id, property_kind, property_location, property_bedrooms, property_area
		FROM offers
		ORDER BY property_id, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]contracts.Property, 0)
	for rows.Next() {
		var p contracts.Property
		if err := rows.Scan(&p.ID, &p.Kind, &p.Location, &p.Bedrooms, &p.Area); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}
	return properties, nil
}
