package ports

import (
	"UserAccountBackend/internal/model"
	"UserAccountBackend/internal/security"
	"context"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error)
	UpdateRefreshToken(ctx context.Context, uuid string, refreshToken *string) error
	UpdatePassword(ctx context.Context, uuid string, passwordHash string) error
	UpdateProfile(ctx context.Context, uuid string, fullName string, email string) error
	UpdateAvatarURL(ctx context.Context, uuid string, avatarURL string) error
	UpdateCoverImageURL(ctx context.Context, uuid string, coverImageURL string) error
}

type JWTServiceInterface interface {
	GenerateAccessRefreshTokens(userUUID string) (*model.TokensPair, error)
	Validate(tokenString string, expected security.TokenType) (*security.Claims, error)
}

type PasswordHasherInterface interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, digest string) bool
}

// MediaStoreInterface — хранилище медиафайлов: принимает путь к локальному
// файлу, возвращает публичный URL.
type MediaStoreInterface interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// SecurityNotifierInterface — уведомление о повторном использовании
// уже ротированного refresh токена.
type SecurityNotifierInterface interface {
	NotifyTokenReuse(userUUID string)
}
