package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
	"github.com/andikarh/parlaybot/internal/domain/selection"
	"github.com/andikarh/parlaybot/internal/platform/logging"
)

// SelectionStore persists a chat's confirmed selection across restarts.
type SelectionStore interface {
	SaveSelection(ctx context.Context, chatID int64, leagues []int64, fixtures []int64) error
	LoadSelection(ctx context.Context, chatID int64) (leagues []int64, fixtures []int64, ok bool)
	ClearSelection(ctx context.Context, chatID int64) error
}

// SessionService owns one selection session per chat. All access is
// serialized through the service mutex; sessions themselves are not
// concurrency-safe.
type SessionService struct {
	mu       sync.Mutex
	sessions map[int64]*selection.Session
	store    SelectionStore
	logger   *logging.Logger
}

func NewSessionService(store SelectionStore, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SessionService{
		sessions: make(map[int64]*selection.Session),
		store:    store,
		logger:   logger,
	}
}

// Begin starts a fresh selection round for the chat over the given
// fixtures. A round already in progress is discarded.
func (s *SessionService) Begin(chatID int64, fixtures []fixture.Fixture) *selection.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = selection.NewSession(chatID)
		s.sessions[chatID] = sess
	}
	sess.Start(fixtures)
	return sess
}

// Toggle flips one league in the chat's in-progress selection and reports
// the new membership state.
func (s *SessionService) Toggle(chatID int64, leagueID int64) (*selection.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || sess.State != selection.StateLeaguesListed {
		return nil, false, fmt.Errorf("%w: no selection in progress for chat %d", ErrNotFound, chatID)
	}
	if !sess.HasLeague(leagueID) {
		return nil, false, fmt.Errorf("%w: league %d is not offered in this round", ErrInvalidInput, leagueID)
	}
	sess.Toggle(leagueID)
	return sess, sess.IsSelected(leagueID), nil
}

// Confirm resolves the chat's selection to a fixture list and persists it.
// Persistence failures are logged and never block the round.
func (s *SessionService) Confirm(ctx context.Context, chatID int64) ([]fixture.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || sess.State != selection.StateLeaguesListed {
		return nil, fmt.Errorf("%w: no selection in progress for chat %d", ErrNotFound, chatID)
	}
	if err := sess.Confirm(); err != nil {
		return nil, err
	}

	if s.store != nil {
		leagues := selectedLeagueIDs(sess)
		if err := s.store.SaveSelection(ctx, chatID, leagues, sess.FixtureIDs); err != nil {
			s.logger.WarnContext(ctx, "persist selection failed", "chat_id", chatID, "error", err)
		}
	}
	return sess.ConfirmedFixtures(), nil
}

// Restore resumes a confirmed selection that outlived the process. The
// persisted fixture ids are resolved against freshly discovered fixtures;
// an entry that no longer matches anything is stale and gets cleared. A
// round currently in progress always wins over persisted state.
func (s *SessionService) Restore(ctx context.Context, chatID int64, discovered []fixture.Fixture) ([]fixture.Fixture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok && sess.State != selection.StateIdle {
		return nil, false
	}
	if s.store == nil {
		return nil, false
	}

	_, fixtureIDs, ok := s.store.LoadSelection(ctx, chatID)
	if !ok {
		return nil, false
	}

	wanted := make(map[int64]struct{}, len(fixtureIDs))
	for _, id := range fixtureIDs {
		wanted[id] = struct{}{}
	}
	var resolved []fixture.Fixture
	for _, f := range discovered {
		if _, ok := wanted[f.ID]; ok {
			resolved = append(resolved, f)
		}
	}

	if len(resolved) == 0 {
		if err := s.store.ClearSelection(ctx, chatID); err != nil {
			s.logger.WarnContext(ctx, "clear stale selection failed", "chat_id", chatID, "error", err)
		}
		return nil, false
	}

	s.logger.InfoContext(ctx, "resumed persisted selection", "chat_id", chatID, "fixtures", len(resolved))
	return resolved, true
}

// Session returns the chat's current session, if any.
func (s *SessionService) Session(chatID int64) (*selection.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Reset clears the chat's session and its persisted selection. Called
// after report delivery and on explicit restarts.
func (s *SessionService) Reset(ctx context.Context, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[chatID]; ok {
		sess.Reset()
	}
	if s.store != nil {
		if err := s.store.ClearSelection(ctx, chatID); err != nil {
			s.logger.WarnContext(ctx, "clear persisted selection failed", "chat_id", chatID, "error", err)
		}
	}
}

func selectedLeagueIDs(sess *selection.Session) []int64 {
	ids := make([]int64, 0, len(sess.Selected))
	for id := range sess.Selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
