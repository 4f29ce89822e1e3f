package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tukang-design/studio-api/internal/catalog"
)

// Querier is the subset of pgxpool.Pool used by the repository. It is
// satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores contact messages in the relational database.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db Querier) *PostgresRepository {
	if db == nil {
		panic("contact: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateMessageRequest) (*Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO contact_messages (id, name, email, company, phone, message, region)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Company,
		req.Phone,
		req.Message,
		string(req.Region),
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("contact: insert failed: %w", err)
	}

	return &Message{
		ID:        id.String(),
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		Message:   req.Message,
		Region:    req.Region,
		CreatedAt: createdAt,
	}, nil
}

const messageColumns = `id, name, email, company, phone, message, region, created_at`

// GetByID retrieves a message by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Message, error) {
	row := r.db.QueryRow(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = $1`, id)
	m, err := scanMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("contact: get failed: %w", err)
	}
	return m, nil
}

// List returns messages newest first, honoring the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Message, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + messageColumns + ` FROM contact_messages`
	args := []any{}
	if filter.Region != "" {
		query += ` WHERE region = $1`
		args = append(args, filter.Region)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("contact: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("contact: scan failed: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMessage(row pgx.Row) (*Message, error) {
	var m Message
	var region string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Company, &m.Phone,
		&m.Message, &region, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Region = catalog.Region(region)
	return &m, nil
}
