package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/google/uuid"
)

const (
	encryptedPrefix   = "enc:"
	DefaultQuoteLimit = 50
	MaxQuoteLimit     = 500
)

type QuoteNotifier interface {
	SendQuoteNotification(ctx context.Context, q *models.Quote, phone string) error
}

type QuoteOptions struct {
	Discount       models.Money
	WhatsAppNumber string
	// EncryptionKey encrypts customer phones at rest when set (32 bytes).
	EncryptionKey string
}

// QuoteService saves confirmed wizard results as leads.
type QuoteService struct {
	repo     QuoteRepository
	catalog  *Catalog
	notifier QuoteNotifier
	opts     QuoteOptions
}

func NewQuoteService(repo QuoteRepository, catalog *Catalog, notifier QuoteNotifier, opts QuoteOptions) *QuoteService {
	return &QuoteService{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		opts:     opts,
	}
}

// Price computes everything a quote shows, without saving anything.
func (s *QuoteService) Price(sel models.Selections) (models.BudgetResult, models.PriceSummary, string) {
	budget := CalculateBudget(s.catalog, sel)
	summary := Summarize(budget.Total, s.opts.Discount)
	link := BuildWhatsAppLink(s.opts.WhatsAppNumber, BuildWhatsAppMessage(s.catalog, sel, summary))
	return budget, summary, link
}

func (s *QuoteService) Create(ctx context.Context, req models.CreateQuoteRequest) (*models.Quote, error) {
	if err := ValidateSelections(s.catalog, req.Selections); err != nil {
		return nil, err
	}

	budget, summary, link := s.Price(req.Selections)
	phone := strings.TrimSpace(req.CustomerPhone)

	quote := &models.Quote{
		ID:           uuid.New().String(),
		Selections:   req.Selections.Clone(),
		Budget:       budget,
		Summary:      summary,
		CustomerName: strings.TrimSpace(req.CustomerName),
		WhatsAppURL:  link,
		CreatedAt:    time.Now().UTC(),
	}

	stored := *quote
	if phone != "" {
		sealed, err := s.sealPhone(phone)
		if err != nil {
			return nil, err
		}
		stored.CustomerPhone = sealed
	}

	if err := s.repo.Save(ctx, &stored); err != nil {
		return nil, err
	}

	quote.CustomerPhone = phone
	utils.LogQuoteAction("created", quote.ID, utils.FormatBRL(summary.Final))

	if s.notifier != nil {
		notified := *quote
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.notifier.SendQuoteNotification(ctx, &notified, phone); err != nil {
				utils.SafeWarn("⚠️ Quote notification failed: %v", err)
			}
		}()
	}

	return quote, nil
}

func (s *QuoteService) Get(ctx context.Context, id string) (*models.Quote, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrQuoteNotFound
	}
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.openPhone(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuoteService) List(ctx context.Context, limit int) ([]models.Quote, error) {
	if limit <= 0 {
		limit = DefaultQuoteLimit
	}
	if limit > MaxQuoteLimit {
		limit = MaxQuoteLimit
	}
	quotes, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if err := s.openPhone(&quotes[i]); err != nil {
			return nil, err
		}
	}
	return quotes, nil
}

// Catalog exposes the tables the service prices with.
func (s *QuoteService) Catalog() *Catalog {
	return s.catalog
}

func (s *QuoteService) sealPhone(phone string) (string, error) {
	if s.opts.EncryptionKey == "" {
		return phone, nil
	}
	sealed, err := utils.Encrypt(s.opts.EncryptionKey, []byte(phone))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt phone: %w", err)
	}
	return encryptedPrefix + sealed, nil
}

func (s *QuoteService) openPhone(q *models.Quote) error {
	if !strings.HasPrefix(q.CustomerPhone, encryptedPrefix) {
		return nil
	}
	plain, err := utils.Decrypt(s.opts.EncryptionKey, strings.TrimPrefix(q.CustomerPhone, encryptedPrefix))
	if err != nil {
		return fmt.Errorf("failed to decrypt phone: %w", err)
	}
	q.CustomerPhone = string(plain)
	return nil
}
