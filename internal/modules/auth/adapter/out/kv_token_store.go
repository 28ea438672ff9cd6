package out

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"skillsetu/internal/modules/auth/domain"
)

// Slots is the persisted key-value storage the token lives in.
type Slots interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// KVTokenStore reads the slot on every call so a token written or cleared by
// another process is seen immediately.
type KVTokenStore struct {
	slots  Slots
	logger hclog.Logger
}

func NewKVTokenStore(slots Slots, logger hclog.Logger) *KVTokenStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KVTokenStore{slots: slots, logger: logger}
}

func (s *KVTokenStore) Set(ctx context.Context, token domain.Credential) error {
	if token.IsZero() {
		return s.Clear(ctx)
	}
	if err := s.slots.Set(ctx, domain.TokenKey, string(token)); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *KVTokenStore) Get(ctx context.Context) (domain.Credential, bool, error) {
	raw, ok, err := s.slots.Get(ctx, domain.TokenKey)
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	token := domain.Credential(raw)
	if !ok || token.IsZero() {
		return "", false, nil
	}
	return token, true, nil
}

func (s *KVTokenStore) Clear(ctx context.Context) error {
	if err := s.slots.Delete(ctx, domain.TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *KVTokenStore) Present(ctx context.Context) bool {
	_, ok, err := s.Get(ctx)
	if err != nil {
		s.logger.Warn("token presence check failed", "error", err)
		return false
	}
	return ok
}

// Token lets the HTTP session read the credential without knowing the domain type.
func (s *KVTokenStore) Token(ctx context.Context) (string, bool, error) {
	token, ok, err := s.Get(ctx)
	return string(token), ok, err
}
