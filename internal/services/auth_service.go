package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mkravets/go-task-api/internal/models"
)

type authServiceImpl struct {
	logger            zerolog.Logger
	pgPool            *pgxpool.Pool
	jwtIssuer         string
	jwtSigningKey     []byte
	jwtAccessTokenTTL time.Duration
}

func NewAuthService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	jwtIssuer string,
	jwtSigningKey []byte,
	jwtAccessTokenTTL time.Duration,
) AuthService {
	return &authServiceImpl{
		logger:            logger,
		pgPool:            pgPool,
		jwtIssuer:         jwtIssuer,
		jwtSigningKey:     jwtSigningKey,
		jwtAccessTokenTTL: jwtAccessTokenTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	user := models.User{
		Email:     params.Email,
		CreatedAt: time.Now(),
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	const insertUserQuery = `
INSERT INTO users (id,
                   email,
                   password,
                   created_at)
VALUES ($1, $2, $3, $4)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Email,
		user.Password,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				s.logger.Error().
					Str("email", user.Email).
					Msg("user with this email already exists")
				return nil, ErrEmailTaken
			}
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

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")
	return &user, nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user := models.User{
		Email: email,
	}

	const selectUserByEmailQuery = `
SELECT id,
       password,
       created_at
FROM users
WHERE email = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Password,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Same error as a password mismatch, so responses do not
			// reveal whether the email is registered.
			s.logger.Error().
				Str("email", user.Email).
				Msg("user not found")
			return nil, ErrInvalidCredentials
		}

		s.logger.Error().
			Err(err).
			Str("email", user.Email).
			Msg("failed to select user by email")
		return nil, err
	}

	match, err := argon2id.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		// A malformed stored hash fails closed.
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, ErrInvalidCredentials
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrInvalidCredentials
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("authenticated user")

	return &user, nil
}

func (s *authServiceImpl) IssueToken(userID string) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtAccessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.jwtIssuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.jwtSigningKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Warn().Msg("token expired")
			return "", ErrTokenExpired
		}

		s.logger.Error().
			Err(err).
			Msg("failed to parse token")
		return "", ErrTokenMalformed
	}
	if claims.Subject == "" {
		s.logger.Error().Msg("token has no subject")
		return "", ErrTokenMalformed
	}

	const selectUserExistsQuery = `
SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
`
	var exists bool
	err = s.pgPool.QueryRow(
		ctx,
		selectUserExistsQuery,
		claims.Subject,
	).Scan(&exists)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", claims.Subject).
			Msg("failed to resolve token subject")
		return "", err
	}
	if !exists {
		s.logger.Error().
			Str("user_id", claims.Subject).
			Msg("token subject no longer resolves to a user")
		return "", ErrUnknownSubject
	}

	return claims.Subject, nil
}

func (s *authServiceImpl) parseToken(token string) (*jwt.RegisteredClaims, error) {
	t, err := jwt.ParseWithClaims(
		token,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.jwtSigningKey, nil
		},
		jwt.WithIssuer(s.jwtIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, errors.New("unexpected token claims")
	}
	return claims, nil
}
