package repository

import (
	"UserAccountBackend/internal"
	"UserAccountBackend/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"time"
)

// ErrUserNotFound возвращается, когда запись аккаунта отсутствует.
var ErrUserNotFound = errors.New("пользователь не найден")

type UserRepository struct {
	*internal.Database
}

func NewUserRepository(database *internal.Database) *UserRepository {
	return &UserRepository{database}
}

func (repository *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.UUID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	query := `INSERT INTO users (uuid, username, email, full_name, password_hash, avatar_url, cover_image_url, created_at, updated_at)
			  VALUES (:uuid, :username, :email, :full_name, :password_hash, :avatar_url, :cover_image_url, :created_at, :updated_at)`

	if _, err := repository.DB.NamedExecContext(ctx, query, user); err != nil {
		return nil, fmt.Errorf("ошибка вставки пользователя: %w", err)
	}

	return repository.FindByUUID(ctx, user.UUID)
}

func (repository *UserRepository) FindByUUID(ctx context.Context, userUUID string) (*model.User, error) {
	var user model.User

	query := `SELECT * FROM users WHERE uuid = $1`
	if err := repository.DB.GetContext(ctx, &user, query, userUUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &user, nil
}

// FindByUsernameOrEmail ищет аккаунт по любому из двух идентификаторов.
// Идентификаторы должны быть нормализованы (lowercase) до вызова.
func (repository *UserRepository) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	var user model.User

	query := `SELECT * FROM users WHERE username = $1 OR email = $2 LIMIT 1`
	if err := repository.DB.GetContext(ctx, &user, query, username, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	if err := repository.DB.GetContext(ctx, &exists, query, username, email); err != nil {
		return false, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return exists, nil
}

// UpdateRefreshToken записывает новый refresh токен аккаунта.
// nil очищает токен (logout).
func (repository *UserRepository) UpdateRefreshToken(ctx context.Context, userUUID string, refreshToken *string) error {
	value := sql.NullString{}
	if refreshToken != nil {
		value = sql.NullString{String: *refreshToken, Valid: true}
	}

	query := `UPDATE users SET refresh_token = $1, updated_at = now() WHERE uuid = $2`
	return repository.exec(ctx, query, value, userUUID)
}

func (repository *UserRepository) UpdatePassword(ctx context.Context, userUUID string, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE uuid = $2`
	return repository.exec(ctx, query, passwordHash, userUUID)
}

func (repository *UserRepository) UpdateProfile(ctx context.Context, userUUID string, fullName string, email string) error {
	query := `UPDATE users SET full_name = $1, email = $2, updated_at = now() WHERE uuid = $3`
	return repository.exec(ctx, query, fullName, email, userUUID)
}

func (repository *UserRepository) UpdateAvatarURL(ctx context.Context, userUUID string, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $1, updated_at = now() WHERE uuid = $2`
	return repository.exec(ctx, query, avatarURL, userUUID)
}

func (repository *UserRepository) UpdateCoverImageURL(ctx context.Context, userUUID string, coverImageURL string) error {
	query := `UPDATE users SET cover_image_url = $1, updated_at = now() WHERE uuid = $2`
	return repository.exec(ctx, query, coverImageURL, userUUID)
}

func (repository *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := repository.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления данных в БД: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось проверить, обновлена ли запись: %w", err)
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
