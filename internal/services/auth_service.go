package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-board/internal/models"
	"github.com/adanyl0v/go-todo-board/internal/storage"
)

type authServiceImpl struct {
	logger          zerolog.Logger
	store           *storage.Store
	hasher          PasswordHasher
	tokenIssuer     string
	tokenSigningKey []byte
	tokenTTL        time.Duration
	latency         time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	store *storage.Store,
	hasher PasswordHasher,
	tokenIssuer string,
	tokenSigningKey []byte,
	tokenTTL time.Duration,
	latency time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:          logger,
		store:           store,
		hasher:          hasher,
		tokenIssuer:     tokenIssuer,
		tokenSigningKey: tokenSigningKey,
		tokenTTL:        tokenTTL,
		latency:         latency,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	err := simulateLatency(ctx, s.latency)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  params.Username,
		Email:     params.Email,
		CreatedAt: time.Now().UTC(),
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	user.Password, err = s.hasher.Hash(params.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}

	token, expiresAt, err := s.generateToken(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token")
		return nil, err
	}

	err = s.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		for _, existing := range users {
			if sameEmail(existing.Email, user.Email) {
				return nil, ErrUserAlreadyExists
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	err = s.store.SaveToken(token)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")
	return &AuthResult{
		User:           user.WithoutPassword(),
		Token:          token,
		TokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	err := simulateLatency(ctx, s.latency)
	if err != nil {
		return nil, err
	}

	var user *models.User
	users := s.store.Users()
	for i := range users {
		if sameEmail(users[i].Email, params.Email) {
			user = &users[i]
			break
		}
	}
	if user == nil {
		s.logger.Error().
			Str("email", params.Email).
			Msg("user not found")
		return nil, ErrInvalidCredentials
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("selected user")

	match, err := s.hasher.Compare(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, ErrInvalidCredentials
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate token")
		return nil, err
	}

	err = s.store.SaveToken(token)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return &AuthResult{
		User:           user.WithoutPassword(),
		Token:          token,
		TokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) GetCurrentUser(ctx context.Context, token string) (*models.User, error) {
	err := simulateLatency(ctx, s.latency)
	if err != nil {
		return nil, err
	}

	if token == "" {
		s.logger.Error().Msg("no token provided")
		return nil, ErrNoToken
	}

	users := s.store.Users()
	if len(users) == 0 {
		s.logger.Error().Msg("no users found")
		return nil, ErrUserNotFound
	}

	claims, err := s.ParseToken(token)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to parse token")
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	for _, user := range users {
		if user.ID == claims.Subject {
			user = user.WithoutPassword()
			s.logger.Info().
				Str("user_id", user.ID).
				Msg("user found")
			return &user, nil
		}
	}

	s.logger.Error().
		Str("user_id", claims.Subject).
		Msg("user not found")
	return nil, ErrUserNotFound
}

func (s *authServiceImpl) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.store.ClearToken()
	if err != nil {
		return err
	}

	s.logger.Info().Msg("logged out")
	return nil
}

func (s *authServiceImpl) ParseToken(token string) (*jwt.RegisteredClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithIssuer(s.tokenIssuer),
		jwt.WithIssuedAt(),
	}
	if s.tokenTTL > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.tokenSigningKey, nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token is expired: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("failed to parse token: missing subject")
	}
	return claims, nil
}

// generateToken issues a token whose subject is the user ID. A zero TTL
// issues a token that never expires.
func (s *authServiceImpl) generateToken(userID string) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.tokenIssuer,
		Subject:   userID,
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	var expiresAt time.Time
	if s.tokenTTL > 0 {
		expiresAt = now.Add(s.tokenTTL)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.tokenSigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
