package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/affiliate/internal/client/models"
	"github.com/dmitrijs2005/affiliate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/affiliate/internal/common"
	"github.com/dmitrijs2005/affiliate/internal/dbx"
	"github.com/dmitrijs2005/affiliate/internal/logging"
)

// ErrCorruptPrincipal marks a persisted shop value that cannot be restored.
var ErrCorruptPrincipal = errors.New("corrupt persisted shop")

// Authenticator exchanges credentials for the shop record and an access token.
// Implementations must not persist anything.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.Shop, string, error)
}

// Navigator moves the current view, replacing the history entry.
type Navigator interface {
	Replace(path string)
}

// Store holds the session. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	auth   Authenticator
	nav    Navigator
	logger logging.Logger

	mu    sync.RWMutex
	state State
	shop  *models.Shop
}

// NewStore creates an uninitialized Store. nav may be nil when no view
// changes are wanted.
func NewStore(db *sql.DB, auth Authenticator, nav Navigator, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{db: db, auth: auth, nav: nav, logger: logger}
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Initialize restores the shop persisted by a previous Login. Any read or
// decode failure leaves the store logged out; a corrupt value is removed.
// Only the first call does anything.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = StateLoading
	s.mu.Unlock()

	shop, err := s.restore(ctx)
	switch {
	case errors.Is(err, ErrCorruptPrincipal):
		s.logger.Warn(ctx, "discarding persisted shop", "error", err)
		if derr := s.repo().Delete(ctx, common.StorageKeyShop); derr != nil {
			s.logger.Error(ctx, "failed to delete persisted shop", "error", derr)
		}
	case err != nil:
		s.logger.Error(ctx, "failed to read persisted shop", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if shop != nil {
		s.shop = shop
		s.state = StateLoggedIn
		return
	}
	s.state = StateLoggedOut
}

// restore returns nil, nil when nothing is persisted.
func (s *Store) restore(ctx context.Context) (*models.Shop, error) {
	raw, err := s.repo().Get(ctx, common.StorageKeyShop)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return decodeShop(raw)
}

func decodeShop(raw []byte) (*models.Shop, error) {
	var shop *models.Shop
	if err := json.Unmarshal(raw, &shop); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptPrincipal, err)
	}
	if shop == nil {
		return nil, fmt.Errorf("%w: null value", ErrCorruptPrincipal)
	}
	if err := checkShop(shop); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptPrincipal, err)
	}
	return shop, nil
}

// checkShop is the single acceptance rule for a principal, applied both when
// it is written on login and when it is restored. Profile fields such as the
// email are whatever the server says they are and are not checked here.
func checkShop(shop *models.Shop) error {
	if shop.ID <= 0 {
		return fmt.Errorf("invalid shop id %d", shop.ID)
	}
	return nil
}

// Login authenticates and, on success, persists the shop and the token in
// one transaction before updating memory and moving to the dashboard.
// On failure nothing changes.
func (s *Store) Login(ctx context.Context, email, password string) error {
	shop, token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if shop == nil {
		return errors.New("login: empty shop in response")
	}
	if err := checkShop(shop); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	raw, err := json.Marshal(shop)
	if err != nil {
		return fmt.Errorf("login: encode shop: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.StorageKeyShop, raw); err != nil {
			return err
		}
		return repo.Set(ctx, common.StorageKeyAccessToken, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("login: persist session: %w", err)
	}

	cp := *shop
	s.mu.Lock()
	s.shop = &cp
	s.state = StateLoggedIn
	s.mu.Unlock()

	s.logger.Info(ctx, "logged in", "shop_id", shop.ID)
	s.replace(common.ViewDashboard)
	return nil
}

// Logout forgets the session in memory and in storage and moves to the
// login view. Storage failures are logged, the in-memory session is still
// cleared.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.shop = nil
	s.state = StateLoggedOut
	s.mu.Unlock()

	if err := s.repo().Delete(ctx, common.StorageKeyShop, common.StorageKeyAccessToken); err != nil {
		s.logger.Error(ctx, "failed to clear persisted session", "error", err)
	}

	s.logger.Info(ctx, "logged out")
	s.replace(common.ViewLogin)
}

func (s *Store) replace(path string) {
	if s.nav != nil {
		s.nav.Replace(path)
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shop != nil
}

// Shop returns a copy of the current shop, or nil when logged out.
func (s *Store) Shop() *models.Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.shop == nil {
		return nil
	}
	cp := *s.shop
	return &cp
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether Initialize is still running.
func (s *Store) Loading() bool {
	return s.State() == StateLoading
}
