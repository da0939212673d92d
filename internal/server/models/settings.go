package models

const (
	DefaultActiveParkingHours = 15
	DefaultExpiringSoonHours  = 15
	DefaultLanguage           = "danish"
)

type NotificationSettings struct {
	ReceiveSMSActive              bool `json:"receiveSMSActive"`
	ReceiveNotificationsActive    bool `json:"receiveNotificationsActive"`
	ReceiveSMSExpiring            bool `json:"receiveSMSExpiring"`
	ReceiveNotificationsExpiring  bool `json:"receiveNotificationsExpiring"`
	ReceiveEmailReceipts          bool `json:"receiveEmailReceipts"`
	ReceiveNotificationsMarketing bool `json:"receiveNotificationsMarketing"`
	ActiveParkingHours            int  `json:"activeParkingHours"`
	ExpiringSoonHours             int  `json:"expiringSoonHours"`
}

type PreferenceSettings struct {
	DarkMode bool   `json:"darkMode"`
	Language string `json:"language"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		ActiveParkingHours: DefaultActiveParkingHours,
		ExpiringSoonHours:  DefaultExpiringSoonHours,
	}
}

func DefaultPreferenceSettings() PreferenceSettings {
	return PreferenceSettings{Language: DefaultLanguage}
}
