package handler

import (
	"UserAccountBackend/config"
	"UserAccountBackend/internal/model"
	"UserAccountBackend/internal/repository"
	"UserAccountBackend/internal/security"
	"UserAccountBackend/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserRepository — потокобезопасная замена Postgres для сквозных тестов.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*model.User{}}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	clone.UUID = uuid.New().String()
	r.users[clone.UUID] = &clone

	result := clone
	return &result, nil
}

func (r *memoryUserRepository) FindByUUID(_ context.Context, userUUID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userUUID]
	if ok == false {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepository) FindByUsernameOrEmail(_ context.Context, username string, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if (username != "" && user.Username == username) || (email != "" && user.Email == email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username string, email string) (bool, error) {
	_, err := r.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *memoryUserRepository) UpdateRefreshToken(_ context.Context, userUUID string, refreshToken *string) error {
	return r.update(userUUID, func(user *model.User) {
		user.RefreshToken.Valid = refreshToken != nil
		user.RefreshToken.String = ""
		if refreshToken != nil {
			user.RefreshToken.String = *refreshToken
		}
	})
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, userUUID string, passwordHash string) error {
	return r.update(userUUID, func(user *model.User) { user.PasswordHash = passwordHash })
}

func (r *memoryUserRepository) UpdateProfile(_ context.Context, userUUID string, fullName string, email string) error {
	return r.update(userUUID, func(user *model.User) {
		user.FullName = fullName
		user.Email = email
	})
}

func (r *memoryUserRepository) UpdateAvatarURL(_ context.Context, userUUID string, avatarURL string) error {
	return r.update(userUUID, func(user *model.User) { user.AvatarURL = avatarURL })
}

func (r *memoryUserRepository) UpdateCoverImageURL(_ context.Context, userUUID string, coverImageURL string) error {
	return r.update(userUUID, func(user *model.User) {
		user.CoverImageURL.String = coverImageURL
		user.CoverImageURL.Valid = true
	})
}

func (r *memoryUserRepository) update(userUUID string, mutate func(user *model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userUUID]
	if ok == false {
		return repository.ErrUserNotFound
	}
	mutate(user)
	return nil
}

// stubMediaStore возвращает детерминированный URL без сетевых вызовов.
type stubMediaStore struct{}

func (stubMediaStore) Upload(_ context.Context, localPath string) (string, error) {
	return "http://cdn.test/" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(localPath)).String(), nil
}

type testEnv struct {
	router  *chi.Mux
	repo    *memoryUserRepository
	tempDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtService, err := security.NewJWTService(&config.JWTConfig{
		AccessSecretKey:  "test-access-secret",
		RefreshSecretKey: "test-refresh-secret",
		AccessTokenTTL:   "15m",
		RefreshTokenTTL:  "24h",
		Issuer:           "test",
	})
	require.NoError(t, err)

	repo := newMemoryUserRepository()
	accountService := service.NewAccountService(
		repo,
		jwtService,
		security.NewPasswordHasher(),
		stubMediaStore{},
		nil,
	)
	tempDir := t.TempDir()
	accountHandler := NewAccountHandler(accountService, tempDir)

	router := chi.NewRouter()
	router.Route("/api-users", func(r chi.Router) {
		r.Post("/register", accountHandler.Register)
		r.Post("/login", accountHandler.Login)
		r.Post("/refresh-token", accountHandler.RefreshToken)
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService))
			r.Get("/me", accountHandler.GetCurrentUser)
			r.Post("/logout", accountHandler.Logout)
			r.Post("/change-password", accountHandler.ChangePassword)
			r.Patch("/update-profile", accountHandler.UpdateProfile)
			r.Patch("/update-avatar", accountHandler.UpdateAvatar)
			r.Patch("/update-cover-image", accountHandler.UpdateCoverImage)
		})
	})

	return &testEnv{router: router, repo: repo, tempDir: tempDir}
}

func (env *testEnv) do(request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, request)
	return recorder
}

func registerRequest(t *testing.T, username string, email string, password string, withCover bool) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	require.NoError(t, form.WriteField("fullName", "Ada Lovelace"))
	require.NoError(t, form.WriteField("email", email))
	require.NoError(t, form.WriteField("username", username))
	require.NoError(t, form.WriteField("password", password))

	avatar, err := form.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = io.Copy(avatar, strings.NewReader("png-bytes"))
	require.NoError(t, err)

	if withCover {
		cover, err := form.CreateFormFile("coverImage", "cover.jpg")
		require.NoError(t, err)
		_, err = io.Copy(cover, strings.NewReader("jpg-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api-users/register", body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	return request
}

func jsonRequest(method string, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	request := httptest.NewRequest(method, target, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func cookieByName(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestRegister_CreatesAccountWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(registerRequest(t, "Ada", "A@x.com", "secret", true))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	// учетные поля не попадают в ответ
	assert.NotContains(t, recorder.Body.String(), "passwordHash")
	assert.NotContains(t, recorder.Body.String(), "password_hash")
	assert.NotContains(t, recorder.Body.String(), "refreshToken")

	// регистрация не устанавливает cookie
	assert.Empty(t, recorder.Result().Cookies())

	envelope := decodeEnvelope(t, recorder)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "ada", data["username"])
	assert.Equal(t, "a@x.com", data["email"])
	assert.NotEmpty(t, data["avatarUrl"])
	assert.NotEmpty(t, data["coverImageUrl"])
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	recorder := env.do(registerRequest(t, "ADA", "other@x.com", "secret", false))
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"success":false`)
}

func TestRegister_MissingAvatar(t *testing.T) {
	env := newTestEnv(t)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("fullName", "Ada"))
	require.NoError(t, form.WriteField("email", "a@x.com"))
	require.NoError(t, form.WriteField("username", "ada"))
	require.NoError(t, form.WriteField("password", "secret"))
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api-users/register", body)
	request.Header.Set("Content-Type", form.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, env.do(request).Code)
}

// Временные файлы multipart-загрузок подчищаются и при успехе, и при отказе.
func TestRegister_TempFilesCleanedUp(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", true)).Code)

	// конфликт обрывает регистрацию до загрузки, файл не должен осиротеть
	require.Equal(t, http.StatusConflict, env.do(registerRequest(t, "ada", "other@x.com", "secret", true)).Code)

	entries, err := os.ReadDir(env.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLogin_SetsCookiesAndRecordsRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	recorder := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	accessCookie := cookieByName(recorder, "accessToken")
	refreshCookie := cookieByName(recorder, "refreshToken")
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)
	assert.True(t, accessCookie.HttpOnly)
	assert.True(t, accessCookie.Secure)
	assert.True(t, refreshCookie.HttpOnly)
	assert.True(t, refreshCookie.Secure)

	// выданный refresh токен сразу записан на аккаунт
	user, err := env.repo.FindByUsernameOrEmail(context.Background(), "ada", "")
	require.NoError(t, err)
	require.True(t, user.RefreshToken.Valid)
	assert.Equal(t, refreshCookie.Value, user.RefreshToken.String)

	assert.NotContains(t, recorder.Body.String(), "passwordHash")
}

func TestLogin_ByEmail(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	recorder := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Email: "A@X.COM", Password: "secret"}))
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	tests := []struct {
		name       string
		request    LoginRequest
		wantStatus int
	}{
		{"отсутствуют идентификаторы", LoginRequest{Password: "secret"}, http.StatusBadRequest},
		{"неизвестный пользователь", LoginRequest{Username: "nobody", Password: "secret"}, http.StatusNotFound},
		{"неверный пароль", LoginRequest{Username: "ada", Password: "wrong"}, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := env.do(jsonRequest(http.MethodPost, "/api-users/login", tc.request))
			assert.Equal(t, tc.wantStatus, recorder.Code)
		})
	}
}

// Пароль с пробелами по краям хранится как есть: вход той же строкой проходит.
func TestLogin_PasswordWithSurroundingSpaces(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", " secret ", false)).Code)

	recorder := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: " secret "}))
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// обрезанный вариант — уже другой пароль
	trimmed := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	assert.Equal(t, http.StatusUnauthorized, trimmed.Code)
}

func TestRefresh_RotationInvalidatesPreviousToken(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	require.Equal(t, http.StatusOK, login.Code)
	firstRefresh := cookieByName(login, "refreshToken")
	require.NotNil(t, firstRefresh)

	// первая ротация проходит
	request := httptest.NewRequest(http.MethodPost, "/api-users/refresh-token", nil)
	request.AddCookie(firstRefresh)
	rotated := env.do(request)
	require.Equal(t, http.StatusOK, rotated.Code, rotated.Body.String())

	secondRefresh := cookieByName(rotated, "refreshToken")
	require.NotNil(t, secondRefresh)
	assert.NotEqual(t, firstRefresh.Value, secondRefresh.Value)

	// повторное использование первого токена — признак компрометации
	replay := httptest.NewRequest(http.MethodPost, "/api-users/refresh-token", nil)
	replay.AddCookie(firstRefresh)
	assert.Equal(t, http.StatusForbidden, env.do(replay).Code)

	// актуальный токен продолжает работать
	current := httptest.NewRequest(http.MethodPost, "/api-users/refresh-token", nil)
	current.AddCookie(secondRefresh)
	assert.Equal(t, http.StatusOK, env.do(current).Code)
}

func TestRefresh_TokenFromBody(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	refreshCookie := cookieByName(login, "refreshToken")
	require.NotNil(t, refreshCookie)

	// мобильный клиент без cookie передает токен в теле
	recorder := env.do(jsonRequest(http.MethodPost, "/api-users/refresh-token", RefreshTokenRequest{RefreshToken: refreshCookie.Value}))
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
}

func TestRefresh_MissingAndGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	missing := httptest.NewRequest(http.MethodPost, "/api-users/refresh-token", nil)
	assert.Equal(t, http.StatusUnauthorized, env.do(missing).Code)

	garbage := httptest.NewRequest(http.MethodPost, "/api-users/refresh-token", nil)
	garbage.AddCookie(&http.Cookie{Name: "refreshToken", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, env.do(garbage).Code)
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	accessCookie := cookieByName(login, "accessToken")
	refreshCookie := cookieByName(login, "refreshToken")
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)

	logout := httptest.NewRequest(http.MethodPost, "/api-users/logout", nil)
	logout.AddCookie(accessCookie)
	recorder := env.do(logout)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	// cookie сбрасываются
	cleared := cookieByName(recorder, "refreshToken")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// прежний refresh токен отвергается после выхода
	replay := httptest.NewRequest(http.MethodPost, "/api-users/refresh-token", nil)
	replay.AddCookie(refreshCookie)
	assert.Equal(t, http.StatusForbidden, env.do(replay).Code)

	// повторный выход безопасен
	again := httptest.NewRequest(http.MethodPost, "/api-users/logout", nil)
	again.AddCookie(accessCookie)
	assert.Equal(t, http.StatusOK, env.do(again).Code)
}

func TestChangePassword_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	accessCookie := cookieByName(login, "accessToken")
	require.NotNil(t, accessCookie)

	// неверный старый пароль
	wrong := jsonRequest(http.MethodPost, "/api-users/change-password", ChangePasswordRequest{OldPassword: "wrong", NewPassword: "brand-new"})
	wrong.AddCookie(accessCookie)
	assert.Equal(t, http.StatusUnauthorized, env.do(wrong).Code)

	// старый пароль все еще действует
	assert.Equal(t, http.StatusOK, env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"})).Code)

	// успешная смена
	change := jsonRequest(http.MethodPost, "/api-users/change-password", ChangePasswordRequest{OldPassword: "secret", NewPassword: "brand-new"})
	change.AddCookie(accessCookie)
	require.Equal(t, http.StatusOK, env.do(change).Code)

	// старый пароль больше не подходит, новый работает
	assert.Equal(t, http.StatusUnauthorized, env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"})).Code)
	assert.Equal(t, http.StatusOK, env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "brand-new"})).Code)
}

// Смена пароля не сбрасывает сессию: записанный refresh токен остается валидным.
func TestChangePassword_SessionSurvives(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	accessCookie := cookieByName(login, "accessToken")
	refreshCookie := cookieByName(login, "refreshToken")
	require.NotNil(t, accessCookie)
	require.NotNil(t, refreshCookie)

	change := jsonRequest(http.MethodPost, "/api-users/change-password", ChangePasswordRequest{OldPassword: "secret", NewPassword: "brand-new"})
	change.AddCookie(accessCookie)
	require.Equal(t, http.StatusOK, env.do(change).Code)

	refresh := httptest.NewRequest(http.MethodPost, "/api-users/refresh-token", nil)
	refresh.AddCookie(refreshCookie)
	assert.Equal(t, http.StatusOK, env.do(refresh).Code)
}

func TestMe_RequiresAuthentication(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, env.do(httptest.NewRequest(http.MethodGet, "/api-users/me", nil)).Code)
}

func TestMe_ReturnsAccountView(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	accessCookie := cookieByName(login, "accessToken")
	require.NotNil(t, accessCookie)

	request := httptest.NewRequest(http.MethodGet, "/api-users/me", nil)
	request.AddCookie(accessCookie)
	recorder := env.do(request)
	require.Equal(t, http.StatusOK, recorder.Code)

	envelope := decodeEnvelope(t, recorder)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "ada", data["username"])
	assert.Equal(t, "Ada Lovelace", data["fullName"])
}

func TestUpdateProfile_Conflict(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "grace", "g@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	accessCookie := cookieByName(login, "accessToken")
	require.NotNil(t, accessCookie)

	conflict := jsonRequest(http.MethodPatch, "/api-users/update-profile", UpdateProfileRequest{Email: "g@x.com"})
	conflict.AddCookie(accessCookie)
	assert.Equal(t, http.StatusConflict, env.do(conflict).Code)

	ok := jsonRequest(http.MethodPatch, "/api-users/update-profile", UpdateProfileRequest{FullName: "Ada King"})
	ok.AddCookie(accessCookie)
	recorder := env.do(ok)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Ada King")
}

func TestUpdateAvatar_ReplacesURL(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	accessCookie := cookieByName(login, "accessToken")
	require.NotNil(t, accessCookie)

	before, err := env.repo.FindByUsernameOrEmail(context.Background(), "ada", "")
	require.NoError(t, err)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	avatar, err := form.CreateFormFile("avatar", "new-avatar.png")
	require.NoError(t, err)
	_, err = io.Copy(avatar, strings.NewReader("new-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPatch, "/api-users/update-avatar", body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	request.AddCookie(accessCookie)

	recorder := env.do(request)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	after, err := env.repo.FindByUsernameOrEmail(context.Background(), "ada", "")
	require.NoError(t, err)
	assert.NotEqual(t, before.AvatarURL, after.AvatarURL)
}

func TestBearerHeaderAuthentication(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(registerRequest(t, "ada", "a@x.com", "secret", false)).Code)

	login := env.do(jsonRequest(http.MethodPost, "/api-users/login", LoginRequest{Username: "ada", Password: "secret"}))
	envelope := decodeEnvelope(t, login)
	data := envelope["data"].(map[string]any)
	tokens := data["tokens"].(map[string]any)
	accessToken, _ := tokens["accessToken"].(string)
	require.NotEmpty(t, accessToken)

	request := httptest.NewRequest(http.MethodGet, "/api-users/me", nil)
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	assert.Equal(t, http.StatusOK, env.do(request).Code)
}
