package models

import "time"

// ProfilePatch is a partial profile update. A nil field means "keep the
// stored value", never "reset to default". DateOfBirth and Password arrive
// as raw strings and are parsed or hashed by the service before Apply.
type ProfilePatch struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	DateOfBirth *string `json:"dateOfBirth"`
	Password    *string `json:"password"`
	Address     *string `json:"address"`
	ZipCode     *string `json:"zipCode"`
	City        *string `json:"city"`
	Phone       *string `json:"phone"`
	RegNu       *string `json:"regNu"`
}

// ResolvedProfile carries the validated and converted values of a
// ProfilePatch: the date parsed, the password replaced by its hash.
type ResolvedProfile struct {
	Name         *string
	Email        *string
	DateOfBirth  *time.Time
	PasswordHash *string
	Address      *string
	ZipCode      *string
	City         *string
	Phone        *string
	RegNu        *string
}

// Apply overlays every supplied field onto a.
func (a *Account) Apply(p ResolvedProfile) {
	setString(&a.Name, p.Name)
	setString(&a.Email, p.Email)
	setString(&a.PasswordHash, p.PasswordHash)
	setString(&a.Address, p.Address)
	setString(&a.ZipCode, p.ZipCode)
	setString(&a.City, p.City)
	setString(&a.Phone, p.Phone)
	setString(&a.RegNu, p.RegNu)
	if p.DateOfBirth != nil {
		a.DateOfBirth = *p.DateOfBirth
	}
}

type NotificationSettingsPatch struct {
	ReceiveSMSActive              *bool `json:"receiveSMSActive"`
	ReceiveNotificationsActive    *bool `json:"receiveNotificationsActive"`
	ReceiveSMSExpiring            *bool `json:"receiveSMSExpiring"`
	ReceiveNotificationsExpiring  *bool `json:"receiveNotificationsExpiring"`
	ReceiveEmailReceipts          *bool `json:"receiveEmailReceipts"`
	ReceiveNotificationsMarketing *bool `json:"receiveNotificationsMarketing"`
	ActiveParkingHours            *int  `json:"activeParkingHours"`
	ExpiringSoonHours             *int  `json:"expiringSoonHours"`
}

// Apply returns s with the supplied keys of p overlaid.
func (s NotificationSettings) Apply(p NotificationSettingsPatch) NotificationSettings {
	setBool(&s.ReceiveSMSActive, p.ReceiveSMSActive)
	setBool(&s.ReceiveNotificationsActive, p.ReceiveNotificationsActive)
	setBool(&s.ReceiveSMSExpiring, p.ReceiveSMSExpiring)
	setBool(&s.ReceiveNotificationsExpiring, p.ReceiveNotificationsExpiring)
	setBool(&s.ReceiveEmailReceipts, p.ReceiveEmailReceipts)
	setBool(&s.ReceiveNotificationsMarketing, p.ReceiveNotificationsMarketing)
	if p.ActiveParkingHours != nil {
		s.ActiveParkingHours = *p.ActiveParkingHours
	}
	if p.ExpiringSoonHours != nil {
		s.ExpiringSoonHours = *p.ExpiringSoonHours
	}
	return s
}

type PreferenceSettingsPatch struct {
	DarkMode *bool   `json:"darkMode"`
	Language *string `json:"language"`
}

// Apply returns s with the supplied keys of p overlaid.
func (s PreferenceSettings) Apply(p PreferenceSettingsPatch) PreferenceSettings {
	setBool(&s.DarkMode, p.DarkMode)
	setString(&s.Language, p.Language)
	return s
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
