package models

import "time"

// Account is the single persisted entity: one user with credentials,
// profile fields and settings.
type Account struct {
	ID                   string               `json:"_id"`
	Name                 string               `json:"name"`
	Email                string               `json:"email"`
	PasswordHash         string               `json:"-"`
	DateOfBirth          time.Time            `json:"dateOfBirth"`
	Address              string               `json:"address"`
	ZipCode              string               `json:"zipCode"`
	City                 string               `json:"city"`
	Phone                string               `json:"phone"`
	RegNu                string               `json:"regNu"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
	PreferenceSettings   PreferenceSettings   `json:"preferenceSettings"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// PublicAccount is what leaves the service. It has no password field at
// all, so a hash cannot leak through a forgotten json tag.
type PublicAccount struct {
	ID                   string               `json:"_id"`
	Name                 string               `json:"name"`
	Email                string               `json:"email"`
	DateOfBirth          time.Time            `json:"dateOfBirth"`
	Address              string               `json:"address"`
	ZipCode              string               `json:"zipCode"`
	City                 string               `json:"city"`
	Phone                string               `json:"phone"`
	RegNu                string               `json:"regNu"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
	PreferenceSettings   PreferenceSettings   `json:"preferenceSettings"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// NewAccount returns an account with every optional field at its default.
func NewAccount(id, name, email, passwordHash string, dateOfBirth, now time.Time) *Account {
	return &Account{
		ID:                   id,
		Name:                 name,
		Email:                email,
		PasswordHash:         passwordHash,
		DateOfBirth:          dateOfBirth,
		NotificationSettings: DefaultNotificationSettings(),
		PreferenceSettings:   DefaultPreferenceSettings(),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:                   a.ID,
		Name:                 a.Name,
		Email:                a.Email,
		DateOfBirth:          a.DateOfBirth,
		Address:              a.Address,
		ZipCode:              a.ZipCode,
		City:                 a.City,
		Phone:                a.Phone,
		RegNu:                a.RegNu,
		NotificationSettings: a.NotificationSettings,
		PreferenceSettings:   a.PreferenceSettings,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
