package service

import (
	"UserAccountBackend/internal/apperror"
	"UserAccountBackend/internal/model"
	"UserAccountBackend/internal/ports"
	"UserAccountBackend/internal/repository"
	"UserAccountBackend/internal/security"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strings"
)

// AccountService управляет жизненным циклом аккаунта и его сессии:
// регистрация, вход, ротация refresh токена, выход, смена пароля.
// Все зависимости внедряются через интерфейсы из ports.
type AccountService struct {
	UserRepository ports.UserRepositoryInterface
	JWTService     ports.JWTServiceInterface
	PasswordHasher ports.PasswordHasherInterface
	MediaStore     ports.MediaStoreInterface
	Notifier       ports.SecurityNotifierInterface
}

func NewAccountService(
	userRepository ports.UserRepositoryInterface,
	jwtService ports.JWTServiceInterface,
	passwordHasher ports.PasswordHasherInterface,
	mediaStore ports.MediaStoreInterface,
	notifier ports.SecurityNotifierInterface,
) *AccountService {
	return &AccountService{
		UserRepository: userRepository,
		JWTService:     jwtService,
		PasswordHasher: passwordHasher,
		MediaStore:     mediaStore,
		Notifier:       notifier,
	}
}

type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	AvatarPath string
	CoverPath  string
}

// Register создает новый аккаунт. Аватар обязателен, обложка опциональна.
// Регистрация не начинает сессию: токены не выпускаются.
func (service *AccountService) Register(ctx context.Context, input RegisterInput) (*model.UserView, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.ToLower(strings.TrimSpace(input.Username))

	// Пароль проверяется на пустоту после обрезки, но хешируется как есть:
	// Login сравнивает строку байт в байт с тем, что ввел пользователь.
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperror.WithMessage(apperror.ErrBadRequest, "все поля обязательны для заполнения")
	}
	if input.AvatarPath == "" {
		return nil, apperror.WithMessage(apperror.ErrBadRequest, "файл аватара обязателен")
	}

	exists, err := service.UserRepository.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}
	if exists {
		return nil, apperror.WithMessage(apperror.ErrConflict, "имя пользователя или email уже заняты")
	}

	avatarURL, err := service.MediaStore.Upload(ctx, input.AvatarPath)
	if err != nil || avatarURL == "" {
		return nil, apperror.Wrap(apperror.ErrUploadFailed, err)
	}

	user := &model.User{
		Username:  username,
		Email:     email,
		FullName:  fullName,
		AvatarURL: avatarURL,
	}

	if input.CoverPath != "" {
		coverURL, err := service.MediaStore.Upload(ctx, input.CoverPath)
		if err != nil {
			// Обложка опциональна, ее потеря не отменяет регистрацию.
			log.Printf("не удалось загрузить обложку: %v", err)
		} else {
			user.CoverImageURL.String = coverURL
			user.CoverImageURL.Valid = true
		}
	}

	passwordHash, err := service.PasswordHasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}
	user.PasswordHash = passwordHash

	created, err := service.UserRepository.Create(ctx, user)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}

	return created.View(), nil
}

// Login проверяет учетные данные и выпускает новую пару токенов.
// Refresh токен записывается на аккаунт до возврата пары (одна из двух
// записей без другой не допускается).
func (service *AccountService) Login(ctx context.Context, username string, email string, password string) (*model.UserView, *model.TokensPair, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" && email == "" {
		return nil, nil, apperror.WithMessage(apperror.ErrBadRequest, "требуется имя пользователя или email")
	}

	user, err := service.UserRepository.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, apperror.Wrap(apperror.ErrNotFound, err)
		}
		return nil, nil, apperror.Wrap(apperror.ErrInternal, err)
	}

	if service.PasswordHasher.Verify(password, user.PasswordHash) == false {
		return nil, nil, apperror.WithMessage(apperror.ErrUnauthorized, "неверный пароль")
	}

	tokensPair, err := service.rotateTokens(ctx, user.UUID)
	if err != nil {
		return nil, nil, err
	}

	return user.View(), tokensPair, nil
}

// RefreshTokens проверяет входящий refresh токен и ротирует его.
// Синтаксически валидный, но уже замененный токен — отдельный признак
// компрометации (Forbidden), в отличие от просроченного (Unauthorized).
func (service *AccountService) RefreshTokens(ctx context.Context, incomingToken string) (*model.TokensPair, error) {
	if incomingToken == "" {
		return nil, apperror.WithMessage(apperror.ErrUnauthorized, "refresh токен отсутствует")
	}

	claims, err := service.JWTService.Validate(incomingToken, security.RefreshToken)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, err)
	}

	user, err := service.UserRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.Wrap(apperror.ErrUnauthorized, err)
		}
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}

	if user.RefreshToken.Valid == false ||
		subtle.ConstantTimeCompare([]byte(user.RefreshToken.String), []byte(incomingToken)) != 1 {
		service.notifyTokenReuse(user.UUID)
		return nil, apperror.WithMessage(apperror.ErrForbidden, "refresh токен просрочен или уже использован")
	}

	return service.rotateTokens(ctx, user.UUID)
}

// Logout очищает refresh токен аккаунта. Повторный вызов — no-op.
func (service *AccountService) Logout(ctx context.Context, userUUID string) error {
	if err := service.UserRepository.UpdateRefreshToken(ctx, userUUID, nil); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, err)
		}
		return apperror.Wrap(apperror.ErrInternal, err)
	}
	return nil
}

// ChangePassword меняет пароль после проверки старого.
// Сессия переживает смену пароля: refresh токен не трогается.
func (service *AccountService) ChangePassword(ctx context.Context, userUUID string, oldPassword string, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperror.WithMessage(apperror.ErrBadRequest, "новый пароль не может быть пустым")
	}

	user, err := service.UserRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.Wrap(apperror.ErrNotFound, err)
		}
		return apperror.Wrap(apperror.ErrInternal, err)
	}

	if service.PasswordHasher.Verify(oldPassword, user.PasswordHash) == false {
		return apperror.WithMessage(apperror.ErrUnauthorized, "неверный старый пароль")
	}

	passwordHash, err := service.PasswordHasher.Hash(newPassword)
	if err != nil {
		return apperror.Wrap(apperror.ErrInternal, err)
	}

	if err := service.UserRepository.UpdatePassword(ctx, userUUID, passwordHash); err != nil {
		return apperror.Wrap(apperror.ErrInternal, err)
	}

	return nil
}

// CurrentUser возвращает публичное представление аккаунта.
func (service *AccountService) CurrentUser(ctx context.Context, userUUID string) (*model.UserView, error) {
	user, err := service.UserRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, err)
		}
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}
	return user.View(), nil
}

// UpdateProfile обновляет имя и email. Уникальность email сохраняется.
// Сессионные поля не затрагиваются.
func (service *AccountService) UpdateProfile(ctx context.Context, userUUID string, fullName string, email string) (*model.UserView, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" && email == "" {
		return nil, apperror.WithMessage(apperror.ErrBadRequest, "нечего обновлять")
	}

	user, err := service.UserRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, err)
		}
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}

	if fullName == "" {
		fullName = user.FullName
	}
	if email == "" {
		email = user.Email
	}

	if email != user.Email {
		owner, err := service.UserRepository.FindByUsernameOrEmail(ctx, "", email)
		if err != nil && errors.Is(err, repository.ErrUserNotFound) == false {
			return nil, apperror.Wrap(apperror.ErrInternal, err)
		}
		if owner != nil && owner.UUID != userUUID {
			return nil, apperror.WithMessage(apperror.ErrConflict, "email уже занят")
		}
	}

	if err := service.UserRepository.UpdateProfile(ctx, userUUID, fullName, email); err != nil {
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}

	return service.CurrentUser(ctx, userUUID)
}

// UpdateAvatar загружает новый аватар и заменяет сохраненный URL.
func (service *AccountService) UpdateAvatar(ctx context.Context, userUUID string, localPath string) (*model.UserView, error) {
	return service.updateImage(ctx, userUUID, localPath, service.UserRepository.UpdateAvatarURL)
}

// UpdateCoverImage загружает новую обложку и заменяет сохраненный URL.
func (service *AccountService) UpdateCoverImage(ctx context.Context, userUUID string, localPath string) (*model.UserView, error) {
	return service.updateImage(ctx, userUUID, localPath, service.UserRepository.UpdateCoverImageURL)
}

func (service *AccountService) updateImage(ctx context.Context, userUUID string, localPath string, save func(context.Context, string, string) error) (*model.UserView, error) {
	if localPath == "" {
		return nil, apperror.WithMessage(apperror.ErrBadRequest, "файл изображения обязателен")
	}

	url, err := service.MediaStore.Upload(ctx, localPath)
	if err != nil || url == "" {
		return nil, apperror.Wrap(apperror.ErrUploadFailed, err)
	}

	if err := save(ctx, userUUID, url); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, err)
		}
		return nil, apperror.Wrap(apperror.ErrInternal, err)
	}

	return service.CurrentUser(ctx, userUUID)
}

// rotateTokens выпускает новую пару и записывает refresh токен на аккаунт.
// Если запись не удалась, пара клиенту не отдается: выпуск и запись —
// одна логическая операция.
func (service *AccountService) rotateTokens(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	tokensPair, err := service.JWTService.GenerateAccessRefreshTokens(userUUID)
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrInternal, fmt.Errorf("ошибка генерации токенов: %w", err))
	}

	if err := service.UserRepository.UpdateRefreshToken(ctx, userUUID, &tokensPair.RefreshToken); err != nil {
		return nil, apperror.Wrap(apperror.ErrInternal, fmt.Errorf("не удалось сохранить refresh токен: %w", err))
	}

	return tokensPair, nil
}

func (service *AccountService) notifyTokenReuse(userUUID string) {
	if service.Notifier != nil {
		service.Notifier.NotifyTokenReuse(userUUID)
	}
}
