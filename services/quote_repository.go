package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/WilkerGw/LP-OTICA/models"
)

var ErrQuoteNotFound = errors.New("quote not found")

type QuoteRepository interface {
	Save(ctx context.Context, q *models.Quote) error
	FindByID(ctx context.Context, id string) (*models.Quote, error)
	List(ctx context.Context, limit int) ([]models.Quote, error)
}

// ============================================================================
// POSTGRES
// ============================================================================

type PostgresQuoteRepository struct {
	db *sql.DB
}

func NewPostgresQuoteRepository(db *sql.DB) *PostgresQuoteRepository {
	return &PostgresQuoteRepository{db: db}
}

func (r *PostgresQuoteRepository) Save(ctx context.Context, q *models.Quote) error {
	selections, err := json.Marshal(q.Selections)
	if err != nil {
		return fmt.Errorf("failed to marshal selections: %w", err)
	}
	budget, err := json.Marshal(q.Budget)
	if err != nil {
		return fmt.Errorf("failed to marshal budget: %w", err)
	}
	summary, err := json.Marshal(q.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO quotes (id, selections, budget, summary, total_cents, final_cents,
		                    customer_name, customer_phone, whatsapp_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, q.ID, selections, budget, summary, int64(q.Budget.Total), int64(q.Summary.Final),
		nullString(q.CustomerName), nullString(q.CustomerPhone), q.WhatsAppURL, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

const quoteColumns = `id, selections, budget, summary, customer_name, customer_phone, whatsapp_url, created_at`

func (r *PostgresQuoteRepository) FindByID(ctx context.Context, id string) (*models.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *PostgresQuoteRepository) List(ctx context.Context, limit int) ([]models.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []models.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, *q)
	}
	return quotes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuote(row rowScanner) (*models.Quote, error) {
	var (
		q                           models.Quote
		selections, budget, summary []byte
		name, phone                 sql.NullString
	)
	if err := row.Scan(&q.ID, &selections, &budget, &summary, &name, &phone, &q.WhatsAppURL, &q.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(selections, &q.Selections); err != nil {
		return nil, fmt.Errorf("failed to decode selections: %w", err)
	}
	if err := json.Unmarshal(budget, &q.Budget); err != nil {
		return nil, fmt.Errorf("failed to decode budget: %w", err)
	}
	if err := json.Unmarshal(summary, &q.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	q.CustomerName = name.String
	q.CustomerPhone = phone.String
	return &q, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ============================================================================
// MEMORY - used when DATABASE_URL is not set, and in tests
// ============================================================================

type MemoryQuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]models.Quote
}

func NewMemoryQuoteRepository() *MemoryQuoteRepository {
	return &MemoryQuoteRepository{quotes: make(map[string]models.Quote)}
}

func (r *MemoryQuoteRepository) Save(_ context.Context, q *models.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes[q.ID] = *q
	return nil
}

func (r *MemoryQuoteRepository) FindByID(_ context.Context, id string) (*models.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quotes[id]
	if !ok {
		return nil, ErrQuoteNotFound
	}
	return &q, nil
}

func (r *MemoryQuoteRepository) List(_ context.Context, limit int) ([]models.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := make([]models.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.After(quotes[j].CreatedAt)
	})
	if limit > 0 && len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes, nil
}
