package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tugasku/tugasku-server/internal/models"
)

type userServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) UserService {
	return &userServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{
		ID: userID,
	}

	const selectUserByIDQuery = `
SELECT email,
       name,
       phone,
       gender,
       birth_date,
       photo,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.Gender,
		&user.BirthDate,
		&user.Photo,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to select user by id")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user by id")

	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error) {
	user, err := s.GetUserByID(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.Phone != nil {
		user.Phone = *params.Phone
	}
	if params.Gender != nil {
		user.Gender = *params.Gender
	}
	if params.BirthDate != nil {
		user.BirthDate = params.BirthDate
	}
	if params.Photo != nil {
		user.Photo = *params.Photo
	}
	user.UpdatedAt = time.Now()

	const updateUserQuery = `
UPDATE users
SET name = $1,
    phone = $2,
    gender = $3,
    birth_date = $4,
    photo = $5,
    updated_at = $6
WHERE id = $7
`
	_, err = s.pgPool.Exec(
		ctx,
		updateUserQuery,
		user.Name,
		user.Phone,
		user.Gender,
		user.BirthDate,
		user.Photo,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("updated profile")
	return user, nil
}
