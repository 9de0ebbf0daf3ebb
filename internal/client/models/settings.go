package models

// NotificationPreferences selects which notifications a member receives.
type NotificationPreferences struct {
	NewMembers         bool `json:"newMembers"`
	WeeklySummary      bool `json:"weeklySummary"`
	SupplyUpdates      bool `json:"supplyUpdates"`
	EmailNotifications bool `json:"emailNotifications"`
}

// Settings are the member's local portal preferences.
type Settings struct {
	Language      string                  `json:"language"`
	DarkMode      bool                    `json:"darkMode"`
	Notifications NotificationPreferences `json:"notifications"`
}

// DefaultSettings is what a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		Language: "en",
		DarkMode: false,
		Notifications: NotificationPreferences{
			NewMembers:         true,
			WeeklySummary:      false,
			SupplyUpdates:      true,
			EmailNotifications: true,
		},
	}
}
