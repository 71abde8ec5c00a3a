package model

import (
	"database/sql"
	"time"
)

// User — запись аккаунта в БД. PasswordHash и RefreshToken никогда
// не попадают в ответы API (см. View).
type User struct {
	UUID          string         `db:"uuid"`
	Username      string         `db:"username"`
	Email         string         `db:"email"`
	FullName      string         `db:"full_name"`
	PasswordHash  string         `db:"password_hash"`
	AvatarURL     string         `db:"avatar_url"`
	CoverImageURL sql.NullString `db:"cover_image_url"`
	RefreshToken  sql.NullString `db:"refresh_token"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// UserView содержит публичные поля аккаунта
// swagger:model
type UserView struct {
	UUID          string    `json:"uuid"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatarUrl"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// View возвращает представление аккаунта без учетных полей.
func (u *User) View() *UserView {
	view := &UserView{
		UUID:      u.UUID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
	if u.CoverImageURL.Valid {
		view.CoverImageURL = u.CoverImageURL.String
	}
	return view
}
