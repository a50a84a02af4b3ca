package domain

import "time"

// User platform member. Credentials live on Account rows so one user can hold
// both a local (email/password) account and social accounts.
type User struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    *string `gorm:"size:100;uniqueIndex" json:"username,omitempty"`
	Nickname    string  `gorm:"size:100;uniqueIndex;not null" json:"nickname"`
	ProfileImg  string  `gorm:"size:255" json:"profile_img,omitempty"`
	IsActive    bool    `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser bool    `gorm:"not null;default:false" json:"is_superuser"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_user table
func (User) TableName() string {
	return "tb_user"
}

// Account an authentication identity bound to a user: either the local
// email/password pair or an OAuth provider account.
type Account struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	Provider       string `gorm:"size:32;not null;uniqueIndex:uq_account_provider_email,priority:1" json:"provider"`
	ProviderUserID string `gorm:"size:128" json:"provider_user_id,omitempty"`
	Email          string `gorm:"size:120;not null;uniqueIndex:uq_account_provider_email,priority:2" json:"email"`
	PasswordHash   string `gorm:"size:128" json:"-"`
	AccessToken    string `gorm:"type:text" json:"-"`
	RefreshToken   string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_account table
func (Account) TableName() string {
	return "tb_account"
}

// RefreshToken a persisted refresh token session
type RefreshToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;index" json:"user_id"`
	AccountID int64     `gorm:"column:account_id;not null" json:"account_id"`
	Token     string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	UserAgent string    `gorm:"size:255" json:"user_agent,omitempty"`
	IPAddress string    `gorm:"size:45" json:"ip_address,omitempty"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original tb_refresh_token table
func (RefreshToken) TableName() string {
	return "tb_refresh_token"
}

// Actor the authenticated caller of a mutating operation
type Actor struct {
	ID          int64
	IsSuperuser bool
}

// CanMutate reports whether the actor may modify a resource owned by ownerID
func (a Actor) CanMutate(ownerID int64) bool {
	return a.ID == ownerID || a.IsSuperuser
}

// UserResponse public user fields
type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username,omitempty"`
	Nickname    string    `json:"nickname"`
	ProfileImg  string    `json:"profile_img,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"crt_date"`
}

// ToResponse converts a user row to its public form
func (u *User) ToResponse() *UserResponse {
	username := ""
	if u.Username != nil {
		username = *u.Username
	}
	return &UserResponse{
		ID:          u.ID,
		Username:    username,
		Nickname:    u.Nickname,
		ProfileImg:  u.ProfileImg,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// SocialAccountResponse public fields of a linked provider account
type SocialAccountResponse struct {
	ID             int64     `json:"id"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"provider_user_id,omitempty"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"crt_date"`
}

// ToResponse converts an account row to its public form
func (a *Account) ToResponse() *SocialAccountResponse {
	return &SocialAccountResponse{
		ID:             a.ID,
		Provider:       a.Provider,
		ProviderUserID: a.ProviderUserID,
		Email:          a.Email,
		CreatedAt:      a.CreatedAt,
	}
}
