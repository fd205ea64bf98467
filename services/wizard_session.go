package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/utils"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// StateListener is told about every change of a wizard session.
type StateListener interface {
	SessionUpdated(view models.WizardView)
}

type wizardSession struct {
	state     models.WizardState
	updatedAt time.Time
	// version grows by one on every applied action, under the service lock
	version uint64

	// notifyMu orders listener calls; notified is the last version delivered
	notifyMu sync.Mutex
	notified uint64
}

// WizardSessionService keeps wizard sessions in memory. Nothing is persisted:
// a session disappears after ttl without activity.
type WizardSessionService struct {
	catalog  *Catalog
	discount models.Money
	ttl      time.Duration

	mu       sync.RWMutex
	sessions map[string]*wizardSession
	listener StateListener
}

func NewWizardSessionService(catalog *Catalog, discount models.Money, ttl time.Duration) *WizardSessionService {
	return &WizardSessionService{
		catalog:  catalog,
		discount: discount,
		ttl:      ttl,
		sessions: make(map[string]*wizardSession),
	}
}

func (s *WizardSessionService) SetListener(l StateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

func (s *WizardSessionService) Create() models.WizardView {
	id := uuid.New().String()
	sess := &wizardSession{state: models.NewWizardState(), updatedAt: time.Now()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	utils.LogWizardAction("created", id, sess.state.Step)
	return s.view(id, sess)
}

func (s *WizardSessionService) Get(id string) (models.WizardView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, time.Now()) {
		return models.WizardView{}, ErrSessionNotFound
	}
	return s.view(id, sess), nil
}

// Apply runs one wizard action against the session and notifies the
// listener with the resulting view.
func (s *WizardSessionService) Apply(id string, action models.WizardAction) (models.WizardView, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, time.Now()) {
		s.mu.Unlock()
		return models.WizardView{}, ErrSessionNotFound
	}

	next, err := Reduce(s.catalog, sess.state, action)
	if err != nil {
		s.mu.Unlock()
		return models.WizardView{}, err
	}
	sess.state = next
	sess.updatedAt = time.Now()
	sess.version++
	view := s.view(id, sess)
	listener := s.listener
	s.mu.Unlock()

	utils.LogWizardAction(string(action.Type), id, next.Step)
	if listener != nil {
		s.notify(sess, listener, view)
	}
	return view, nil
}

// notify delivers views of one session in version order. A view that lost the
// race against a newer one is dropped so the listener never ends on a stale
// state.
func (s *WizardSessionService) notify(sess *wizardSession, listener StateListener, view models.WizardView) {
	sess.notifyMu.Lock()
	defer sess.notifyMu.Unlock()

	if view.Version <= sess.notified {
		return
	}
	sess.notified = view.Version
	listener.SessionUpdated(view)
}

func (s *WizardSessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Cleanup drops expired sessions and returns how many were removed.
func (s *WizardSessionService) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (s *WizardSessionService) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				utils.SafeInfo("🧹 Cleaned %d expired wizard sessions", n)
			}
		}
	}
}

func (s *WizardSessionService) expired(sess *wizardSession, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.updatedAt) > s.ttl
}

func (s *WizardSessionService) view(id string, sess *wizardSession) models.WizardView {
	view := BuildWizardView(s.catalog, id, sess.state, s.discount, sess.updatedAt)
	view.Version = sess.version
	return view
}

// BuildWizardView derives everything the front-end shows for a state.
func BuildWizardView(cat *Catalog, id string, state models.WizardState, discount models.Money, updatedAt time.Time) models.WizardView {
	budget := CalculateBudget(cat, state.Selections)
	return models.WizardView{
		ID:         id,
		State:      models.WizardState{Step: state.Step, Selections: state.Selections.Clone()},
		Steps:      StepSequence(state.Selections),
		Progress:   Progress(state),
		CanAdvance: CanAdvance(state),
		Budget:     budget,
		Summary:    Summarize(budget.Total, discount),
		UpdatedAt:  updatedAt,
	}
}
