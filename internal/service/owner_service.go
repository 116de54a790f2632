package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"portfolio-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type OwnerRepository interface {
	CreateOwner(ctx context.Context, owner *entity.Owner) (*entity.Owner, error)
	GetOwnerByEmail(ctx context.Context, email string) (*entity.Owner, error)
	GetOwnerByUsername(ctx context.Context, username string) (*entity.Owner, error)
}

// SessionStore remembers the latest token issued to each owner.
type SessionStore interface {
	Save(ctx context.Context, username, token string, ttl time.Duration) error
	Lookup(ctx context.Context, username string) (string, error)
	Revoke(ctx context.Context, username string) error
}

type OwnerService struct {
	repo     OwnerRepository
	tokens   *TokenIssuer
	sessions SessionStore
}

// NewOwnerService creates a new instance of OwnerService. sessions may be nil,
// in which case tokens are checked by signature and expiry only.
func NewOwnerService(repo OwnerRepository, tokens *TokenIssuer, sessions SessionStore) *OwnerService {
	return &OwnerService{repo: repo, tokens: tokens, sessions: sessions}
}

// CreateOwner registers a new owner, refusing an email that is already taken.
func (s *OwnerService) CreateOwner(ctx context.Context, in entity.OwnerSignup) (*entity.Owner, error) {
	_, err := s.repo.GetOwnerByEmail(ctx, in.Email)
	if err == nil {
		return nil, fmt.Errorf("email %q: %w", in.Email, entity.ErrConflict)
	}
	if !errors.Is(err, entity.ErrNotFound) {
		logger.Error().Err(err).Msg("Error checking owner email")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	owner, err := s.repo.CreateOwner(ctx, &entity.Owner{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: string(hash),
	})
	if err != nil {
		if !errors.Is(err, entity.ErrConflict) {
			logger.Error().Err(err).Msg("Error creating owner")
		}
		return nil, err
	}

	logger.Info().Int("id", owner.ID).Str("username", owner.Username).Msg("Owner created")
	return owner, nil
}

// Authenticate returns the owner only if password matches the stored hash.
func (s *OwnerService) Authenticate(ctx context.Context, username, password string) (*entity.Owner, error) {
	owner, err := s.repo.GetOwnerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrUnauthorized
		}
		logger.Error().Err(err).Msgf("Error getting owner %s", username)
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(owner.HashedPassword), []byte(password)) != nil {
		return nil, entity.ErrUnauthorized
	}
	return owner, nil
}

// IssueSession authenticates the owner and returns a signed, time-bound bearer token.
func (s *OwnerService) IssueSession(ctx context.Context, username, password string) (*entity.AccessToken, error) {
	owner, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(owner.Username)
	if err != nil {
		logger.Error().Err(err).Msg("Error signing token")
		return nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, owner.Username, token, s.tokens.TTL()); err != nil {
			logger.Error().Err(err).Msgf("Error saving session for %s", owner.Username)
			return nil, err
		}
	}

	return &entity.AccessToken{AccessToken: token, TokenType: "bearer"}, nil
}

// ResolveCaller maps a bearer token back to its owner.
func (s *OwnerService) ResolveCaller(ctx context.Context, token string) (*entity.Owner, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		logger.Debug().Err(err).Msg("Rejected token")
		return nil, entity.ErrUnauthorized
	}

	if s.sessions != nil {
		current, err := s.sessions.Lookup(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, entity.ErrNotFound) {
				return nil, entity.ErrUnauthorized
			}
			logger.Error().Err(err).Msgf("Error looking up session for %s", claims.Subject)
			return nil, err
		}
		if current != token {
			return nil, entity.ErrUnauthorized
		}
	}

	owner, err := s.repo.GetOwnerByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrUnauthorized
		}
		logger.Error().Err(err).Msgf("Error getting owner %s", claims.Subject)
		return nil, err
	}
	return owner, nil
}

// RevokeSession ends the caller's session before the token expires.
func (s *OwnerService) RevokeSession(ctx context.Context, token string) error {
	owner, err := s.ResolveCaller(ctx, token)
	if err != nil {
		return err
	}
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Revoke(ctx, owner.Username); err != nil {
		logger.Error().Err(err).Msgf("Error revoking session for %s", owner.Username)
		return err
	}
	return nil
}
