package config

// RemindersConfig resolves Open Question OQ1: which time zone governs
// relative and ambiguous reminder phrases such as "tomorrow" with no
// time of day given (defaults to 09:00 in this zone).
type RemindersConfig struct {
	TimeZone          string `yaml:"timeZone"`
	DefaultHourOfDay  int    `yaml:"defaultHourOfDay"`
}

func (r *RemindersConfig) setDefaults() {
	if r.TimeZone == "" {
		r.TimeZone = "UTC"
	}
	if r.DefaultHourOfDay == 0 {
		r.DefaultHourOfDay = 9
	}
}
