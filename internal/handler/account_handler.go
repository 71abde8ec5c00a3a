package handler

import (
	"UserAccountBackend/internal/model"
	"UserAccountBackend/internal/security"
	"UserAccountBackend/internal/service"
	"UserAccountBackend/internal/web"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const requestTimeout = 10 * time.Second

type AccountHandler struct {
	*service.AccountService
	// Каталог для временного сохранения multipart-файлов перед загрузкой
	// в медиахранилище.
	TempDir string
}

// LoginRequest содержит учетные данные для входа
// swagger:model
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest содержит refresh токен в json формате
// swagger:model
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest содержит старый и новый пароли
// swagger:model
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest содержит обновляемые поля профиля
// swagger:model
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// LoginResponse содержит представление аккаунта и пару токенов
// swagger:model
type LoginResponse struct {
	User   *model.UserView   `json:"user"`
	Tokens *model.TokensPair `json:"tokens"`
}

// MessageResponse содержит строку с сообщением
// swagger:model
type MessageResponse struct {
	Message string `json:"message"`
}

func NewAccountHandler(accountService *service.AccountService, tempDir string) *AccountHandler {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &AccountHandler{AccountService: accountService, TempDir: tempDir}
}

// Register регистрирует новый аккаунт
// @Summary Регистрация
// @Description Создает аккаунт из multipart-формы: fullName, email, username, password, avatar (файл, обязателен), coverImage (файл, опционален). Сессия не начинается, токены не выпускаются.
// @Tags Accounts
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} model.UserView
// @Failure 400 {object} web.APIResponse
// @Failure 409 {object} web.APIResponse "имя пользователя или email уже заняты"
// @Router /register [post]
func (handler *AccountHandler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	if err := request.ParseMultipartForm(32 << 20); err != nil {
		web.ErrorWithMessage(writer, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	avatarPath, err := handler.saveUploadedFile(request, "avatar")
	if err != nil {
		web.ErrorWithMessage(writer, http.StatusBadRequest, "файл аватара обязателен")
		return
	}
	defer removeTempFile(avatarPath)

	coverPath, _ := handler.saveUploadedFile(request, "coverImage")
	defer removeTempFile(coverPath)

	view, err := handler.AccountService.Register(ctx, service.RegisterInput{
		FullName:   request.FormValue("fullName"),
		Email:      request.FormValue("email"),
		Username:   request.FormValue("username"),
		Password:   request.FormValue("password"),
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		log.Printf("ошибка регистрации: %v", err)
		web.Error(writer, err)
		return
	}

	web.JSON(writer, http.StatusCreated, view)
}

// Login выполняет вход и выпускает пару токенов
// @Summary Вход
// @Description Проверяет пароль по имени пользователя или email, выпускает access и refresh токены. Токены возвращаются в теле и устанавливаются как httpOnly cookie.
// @Tags Accounts
// @Accept json
// @Produce json
// @Success 200 {object} LoginResponse
// @Failure 400 {object} web.APIResponse
// @Failure 401 {object} web.APIResponse "неверный пароль"
// @Failure 404 {object} web.APIResponse
// @Router /login [post]
func (handler *AccountHandler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	var loginRequest LoginRequest
	if err := json.NewDecoder(request.Body).Decode(&loginRequest); err != nil {
		web.ErrorWithMessage(writer, http.StatusBadRequest, "неверный json")
		return
	}

	view, tokensPair, err := handler.AccountService.Login(ctx, loginRequest.Username, loginRequest.Email, loginRequest.Password)
	if err != nil {
		log.Printf("ошибка входа: %v", err)
		web.Error(writer, err)
		return
	}

	setAuthCookies(writer, tokensPair)
	web.JSON(writer, http.StatusOK, &LoginResponse{User: view, Tokens: tokensPair})
}

// RefreshToken обновляет пару токенов
// @Summary Ротация токенов
// @Description Принимает refresh токен из cookie или тела запроса, выпускает новую пару и заменяет cookie. Повторное использование уже ротированного токена — 403.
// @Tags Accounts
// @Accept json
// @Produce json
// @Success 200 {object} model.TokensPair
// @Failure 401 {object} web.APIResponse "токен отсутствует, просрочен или невалиден"
// @Failure 403 {object} web.APIResponse "токен уже использован"
// @Router /refresh-token [post]
func (handler *AccountHandler) RefreshToken(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	incomingToken := ""
	if cookie, err := request.Cookie("refreshToken"); err == nil {
		incomingToken = cookie.Value
	}
	if incomingToken == "" && request.Body != nil {
		var refreshRequest RefreshTokenRequest
		if err := json.NewDecoder(request.Body).Decode(&refreshRequest); err == nil {
			incomingToken = refreshRequest.RefreshToken
		}
	}

	tokensPair, err := handler.AccountService.RefreshTokens(ctx, incomingToken)
	if err != nil {
		log.Printf("не удалось обновить токены: %v", err)
		web.Error(writer, err)
		return
	}

	setAuthCookies(writer, tokensPair)
	web.JSON(writer, http.StatusOK, tokensPair)
}

// Logout завершает сессию
// @Summary Выход из аккаунта
// @Description Очищает refresh токен аккаунта и сбрасывает cookie. Повторный вызов безопасен.
// @Tags Accounts
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} web.APIResponse
// @Security ApiKeyAuth
// @Router /logout [post]
func (handler *AccountHandler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	claims, ok := security.ClaimsFromContext(request.Context())
	if ok == false {
		web.ErrorWithMessage(writer, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := handler.AccountService.Logout(ctx, claims.UserUUID); err != nil {
		log.Printf("ошибка выхода: %v", err)
		web.Error(writer, err)
		return
	}

	clearAuthCookies(writer)
	web.JSON(writer, http.StatusOK, &MessageResponse{Message: "выполнен выход из аккаунта"})
}

// ChangePassword меняет пароль аккаунта
// @Summary Смена пароля
// @Description Проверяет старый пароль и записывает хэш нового. Сессия переживает смену пароля.
// @Tags Accounts
// @Accept json
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} web.APIResponse "неверный старый пароль"
// @Security ApiKeyAuth
// @Router /change-password [post]
func (handler *AccountHandler) ChangePassword(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	claims, ok := security.ClaimsFromContext(request.Context())
	if ok == false {
		web.ErrorWithMessage(writer, http.StatusUnauthorized, "не авторизован")
		return
	}

	var changeRequest ChangePasswordRequest
	if err := json.NewDecoder(request.Body).Decode(&changeRequest); err != nil {
		web.ErrorWithMessage(writer, http.StatusBadRequest, "неверный json")
		return
	}

	if err := handler.AccountService.ChangePassword(ctx, claims.UserUUID, changeRequest.OldPassword, changeRequest.NewPassword); err != nil {
		log.Printf("ошибка смены пароля: %v", err)
		web.Error(writer, err)
		return
	}

	web.JSON(writer, http.StatusOK, &MessageResponse{Message: "пароль успешно изменен"})
}

// GetCurrentUser возвращает аккаунт текущего пользователя
// @Summary Текущий пользователь
// @Tags Accounts
// @Produce json
// @Success 200 {object} model.UserView
// @Failure 401 {object} web.APIResponse
// @Security ApiKeyAuth
// @Router /me [get]
func (handler *AccountHandler) GetCurrentUser(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	claims, ok := security.ClaimsFromContext(request.Context())
	if ok == false {
		web.ErrorWithMessage(writer, http.StatusUnauthorized, "не авторизован")
		return
	}

	view, err := handler.AccountService.CurrentUser(ctx, claims.UserUUID)
	if err != nil {
		web.Error(writer, err)
		return
	}

	web.JSON(writer, http.StatusOK, view)
}

// UpdateProfile обновляет имя и email
// @Summary Обновление профиля
// @Tags Accounts
// @Accept json
// @Produce json
// @Success 200 {object} model.UserView
// @Failure 409 {object} web.APIResponse "email уже занят"
// @Security ApiKeyAuth
// @Router /update-profile [patch]
func (handler *AccountHandler) UpdateProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	claims, ok := security.ClaimsFromContext(request.Context())
	if ok == false {
		web.ErrorWithMessage(writer, http.StatusUnauthorized, "не авторизован")
		return
	}

	var updateRequest UpdateProfileRequest
	if err := json.NewDecoder(request.Body).Decode(&updateRequest); err != nil {
		web.ErrorWithMessage(writer, http.StatusBadRequest, "неверный json")
		return
	}

	view, err := handler.AccountService.UpdateProfile(ctx, claims.UserUUID, updateRequest.FullName, updateRequest.Email)
	if err != nil {
		log.Printf("ошибка обновления профиля: %v", err)
		web.Error(writer, err)
		return
	}

	web.JSON(writer, http.StatusOK, view)
}

// UpdateAvatar заменяет аватар
// @Summary Обновление аватара
// @Tags Accounts
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} model.UserView
// @Security ApiKeyAuth
// @Router /update-avatar [patch]
func (handler *AccountHandler) UpdateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, "avatar", handler.AccountService.UpdateAvatar)
}

// UpdateCoverImage заменяет обложку
// @Summary Обновление обложки
// @Tags Accounts
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} model.UserView
// @Security ApiKeyAuth
// @Router /update-cover-image [patch]
func (handler *AccountHandler) UpdateCoverImage(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, "coverImage", handler.AccountService.UpdateCoverImage)
}

func (handler *AccountHandler) updateImage(writer http.ResponseWriter, request *http.Request, field string, update func(context.Context, string, string) (*model.UserView, error)) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	claims, ok := security.ClaimsFromContext(request.Context())
	if ok == false {
		web.ErrorWithMessage(writer, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := request.ParseMultipartForm(32 << 20); err != nil {
		web.ErrorWithMessage(writer, http.StatusBadRequest, "некорректная multipart форма")
		return
	}

	localPath, err := handler.saveUploadedFile(request, field)
	if err != nil {
		web.ErrorWithMessage(writer, http.StatusBadRequest, "файл изображения обязателен")
		return
	}
	defer removeTempFile(localPath)

	view, err := update(ctx, claims.UserUUID, localPath)
	if err != nil {
		log.Printf("ошибка обновления изображения: %v", err)
		web.Error(writer, err)
		return
	}

	web.JSON(writer, http.StatusOK, view)
}

// saveUploadedFile сохраняет файл из multipart формы во временный каталог
// и возвращает путь. Отсутствие файла — ошибка, решать опционален ли он —
// дело вызывающего.
func (handler *AccountHandler) saveUploadedFile(request *http.Request, field string) (string, error) {
	file, header, err := request.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("файл %s отсутствует: %w", field, err)
	}
	defer file.Close()

	return handler.writeTempFile(file, header)
}

func (handler *AccountHandler) writeTempFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(handler.TempDir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания временного каталога: %w", err)
	}

	localPath := filepath.Join(handler.TempDir, uuid.New().String()+filepath.Ext(header.Filename))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(localPath)
		return "", fmt.Errorf("ошибка записи временного файла: %w", err)
	}

	return localPath, nil
}

// removeTempFile подчищает временный файл независимо от исхода запроса.
func removeTempFile(localPath string) {
	if localPath == "" {
		return
	}
	if err := os.Remove(localPath); err != nil {
		log.Printf("не удалось удалить временный файл %s: %v", localPath, err)
	}
}

func setAuthCookies(writer http.ResponseWriter, tokensPair *model.TokensPair) {
	http.SetCookie(writer, &http.Cookie{
		Name:     "accessToken",
		Value:    tokensPair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     "refreshToken",
		Value:    tokensPair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAuthCookies(writer http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
