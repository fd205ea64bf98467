package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/WilkerGw/LP-OTICA/config"
	"github.com/WilkerGw/LP-OTICA/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow hands stored column values to scanQuote the way database/sql does
// for the quotes table.
type fakeRow []interface{}

func (r fakeRow) Scan(dest ...interface{}) error {
	if len(dest) != len(r) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r))
	}
	for i, d := range dest {
		switch d := d.(type) {
		case *string:
			*d = r[i].(string)
		case *[]byte:
			*d = []byte(r[i].(string))
		case *sql.NullString:
			if r[i] == nil {
				*d = sql.NullString{}
			} else {
				*d = sql.NullString{String: r[i].(string), Valid: true}
			}
		case *time.Time:
			*d = r[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func TestScanQuote(t *testing.T) {
	created := time.Date(2026, 5, 2, 10, 30, 0, 0, time.UTC)
	row := fakeRow{
		"4f8b1c3e-2d51-4a8e-9a57-0f0d9a6a1b22",
		`{"lens_type":"multifocal","vision_field":"premium","refractive_index":"1.74","treatments":["antirreflexo","polarizado"]}`,
		`{"total":2169.9,"breakdown":[{"label":"Lente Multifocal Premium","value":1799.9},{"label":"Índice 1.74 Ultra Fina","value":220},{"label":"Polarizado","value":150}]}`,
		`{"original":2169.9,"discount":200,"final":1969.9,"installments":10,"installment":196.99}`,
		"Maria",
		nil,
		"https://wa.me/551123628799?text=x",
		created,
	}

	q, err := scanQuote(row)
	require.NoError(t, err)

	want := models.Selections{
		LensType:        "multifocal",
		VisionField:     strPtr("premium"),
		RefractiveIndex: "1.74",
		Treatments:      []string{"antirreflexo", "polarizado"},
	}
	assert.Empty(t, cmp.Diff(want, q.Selections))
	assert.Equal(t, models.Reais(2169.90), q.Budget.Total)
	require.Len(t, q.Budget.Breakdown, 3)
	assert.Equal(t, models.Reais(220), q.Budget.Breakdown[1].Value)
	assert.Equal(t, models.Reais(196.99), q.Summary.Installment)
	assert.Equal(t, "Maria", q.CustomerName)
	assert.Empty(t, q.CustomerPhone)
	assert.Equal(t, created, q.CreatedAt)
}

func TestScanQuote_BadJSON(t *testing.T) {
	row := fakeRow{"id", `{"lens_type":`, `{}`, `{}`, nil, nil, "", time.Now()}
	_, err := scanQuote(row)
	assert.ErrorContains(t, err, "selections")

	_, err = scanQuote(fakeRow{"id"})
	assert.Error(t, err)
}

// TestPostgresQuoteRepository runs against a real database when
// TEST_DATABASE_URL is set.
func TestPostgresQuoteRepository(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := config.InitDB(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, config.RunMigrations(db))

	repo := NewPostgresQuoteRepository(db)
	ctx := context.Background()
	cat := DefaultCatalog()

	base := time.Now().UTC().Truncate(time.Second)
	older := newStoredQuote(cat, base.Add(-time.Minute), "Ana", "enc:abc")
	newer := newStoredQuote(cat, base, "", "")
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM quotes WHERE id = ANY($1::uuid[])`, "{"+older.ID+","+newer.ID+"}")
	})

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	got, err := repo.FindByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(older.Selections, got.Selections))
	assert.Equal(t, older.Budget, got.Budget)
	assert.Equal(t, older.Summary, got.Summary)
	assert.Equal(t, "Ana", got.CustomerName)
	assert.Equal(t, "enc:abc", got.CustomerPhone)
	assert.True(t, older.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.FindByID(ctx, uuid.New().String())
	assert.True(t, errors.Is(err, ErrQuoteNotFound))

	list, err := repo.List(ctx, MaxQuoteLimit)
	require.NoError(t, err)
	var order []string
	for _, q := range list {
		if q.ID == older.ID || q.ID == newer.ID {
			order = append(order, q.ID)
		}
	}
	assert.Equal(t, []string{newer.ID, older.ID}, order)
}

func newStoredQuote(cat *Catalog, createdAt time.Time, name, phone string) *models.Quote {
	sel := completeSelection()
	budget := CalculateBudget(cat, sel)
	return &models.Quote{
		ID:            uuid.New().String(),
		Selections:    sel,
		Budget:        budget,
		Summary:       Summarize(budget.Total, models.Reais(200)),
		CustomerName:  name,
		CustomerPhone: phone,
		WhatsAppURL:   "https://wa.me/551123628799",
		CreatedAt:     createdAt,
	}
}
