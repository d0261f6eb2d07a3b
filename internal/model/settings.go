package model

// Time unit and date format constants for display preferences.
const (
	TimeUnitHours   = "hours"
	TimeUnitMinutes = "minutes"

	DateFormatISO = "YYYY-MM-DD"
	DateFormatEU  = "DD/MM/YYYY"
	DateFormatUS  = "MM/DD/YYYY"
)

// Settings holds user preferences. Loaders unmarshal persisted JSON
// into a DefaultSettings value so that missing keys keep their
// defaults.
type Settings struct {
	TimeUnit            string  `json:"timeUnit"`
	DateFormat          string  `json:"dateFormat"`
	DueReminders        bool    `json:"dueReminders"`
	GoalAlerts          bool    `json:"goalAlerts"`
	DurationCap         float64 `json:"durationCap"`
	CaseSensitiveSearch bool    `json:"caseSensitiveSearch"`
}

// DefaultSettings returns the baseline preferences.
func DefaultSettings() Settings {
	return Settings{
		TimeUnit:            TimeUnitHours,
		DateFormat:          DateFormatISO,
		DueReminders:        true,
		GoalAlerts:          false,
		DurationCap:         8,
		CaseSensitiveSearch: false,
	}
}
