package domain

// Default configuration values
const (
	DefaultBufferMinutes          = 30
	DefaultMinLeadDays            = 1
	DefaultMaxAdvanceDays         = 60
	DefaultSessionDurationMinutes = 120
	DefaultWeekendSurcharge       = 750
)

// Business validation constants
const (
	MinBufferMinutes          = 0
	MaxBufferMinutes          = 240 // 4 hours
	MinLeadDaysLimit          = 0
	MaxLeadDaysLimit          = 30
	MinAdvanceDaysLimit       = 1
	MaxAdvanceDaysLimit       = 365 // 1 year
	MinSessionDurationMinutes = 30
	MaxSessionDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 1000
	MaxClientNameLength       = 200
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// SessionCategories известные категории съёмок
// Шаблон расписания и анкеты привязываются к категории по имени
var SessionCategories = []string{
	"portrait",
	"family",
	"wedding",
	"commercial",
}

// IsKnownCategory returns true if the category is one of the configured session categories
func IsKnownCategory(category string) bool {
	for _, c := range SessionCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ActiveStatuses статусы бронирований, занимающих слот
// Используются при расчёте доступности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusRescheduled,
}
