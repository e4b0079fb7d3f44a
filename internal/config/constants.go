package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./selah.db"

	// DefaultVerseOfTheDaySchedule rotates the verse of the day at midnight
	DefaultVerseOfTheDaySchedule = "0 0 * * *"
)
