package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/pricing"
)

// Querier is the subset of pgxpool.Pool used by the repository. It is
// satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores bookings in the relational database.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db Querier) *PostgresRepository {
	if db == nil {
		panic("booking: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	reference := newReference(time.Now().UTC())
	addOnsJSON, err := json.Marshal(req.AddOns)
	if err != nil {
		return nil, fmt.Errorf("booking: encode add-ons: %w", err)
	}

	query := `
		INSERT INTO bookings (id, reference, name, email, company, phone,
		    service_id, service_name, service_price, add_ons, domain, payment_plan,
		    business_name, business_description, main_goal,
		    estimated_total, due_now, region)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		reference,
		req.Name,
		req.Email,
		req.Company,
		req.Phone,
		req.ServiceID,
		req.ServiceName,
		req.ServicePrice,
		addOnsJSON,
		string(req.Domain),
		string(req.PaymentPlan),
		req.BusinessName,
		req.BusinessDescription,
		req.MainGoal,
		req.EstimatedTotal,
		req.DueNow,
		string(req.Region),
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("booking: insert failed: %w", err)
	}

	return &Booking{
		ID:                  id.String(),
		Reference:           reference,
		Name:                req.Name,
		Email:               req.Email,
		Company:             req.Company,
		Phone:               req.Phone,
		ServiceID:           req.ServiceID,
		ServiceName:         req.ServiceName,
		ServicePrice:        req.ServicePrice,
		AddOns:              append([]AddOnSelection(nil), req.AddOns...),
		Domain:              req.Domain,
		PaymentPlan:         req.PaymentPlan,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		MainGoal:            req.MainGoal,
		EstimatedTotal:      req.EstimatedTotal,
		DueNow:              req.DueNow,
		Region:              req.Region,
		CreatedAt:           createdAt,
	}, nil
}

const bookingColumns = `id, reference, name, email, company, phone,
	service_id, service_name, service_price, add_ons, domain, payment_plan,
	business_name, business_description, main_goal,
	estimated_total, due_now, region, created_at`

// GetByID retrieves a booking by ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("booking: get failed: %w", err)
	}
	return b, nil
}

// List returns bookings newest first, honoring the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Booking, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	args := []any{}
	if filter.Region != "" {
		query += ` WHERE region = $1`
		args = append(args, filter.Region)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("booking: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("booking: scan failed: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var addOnsJSON []byte
	var domain, plan, region string
	if err := row.Scan(&b.ID, &b.Reference, &b.Name, &b.Email, &b.Company, &b.Phone,
		&b.ServiceID, &b.ServiceName, &b.ServicePrice, &addOnsJSON, &domain, &plan,
		&b.BusinessName, &b.BusinessDescription, &b.MainGoal,
		&b.EstimatedTotal, &b.DueNow, &region, &b.CreatedAt); err != nil {
		return nil, err
	}
	if len(addOnsJSON) > 0 {
		if err := json.Unmarshal(addOnsJSON, &b.AddOns); err != nil {
			return nil, fmt.Errorf("decode add-ons: %w", err)
		}
	}
	if b.AddOns == nil {
		b.AddOns = []AddOnSelection{}
	}
	b.Domain = pricing.DomainChoice(domain)
	b.PaymentPlan = pricing.PaymentPlan(plan)
	b.Region = catalog.Region(region)
	return &b, nil
}
