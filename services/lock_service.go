package services

import (
	"time"

	"pickem-app-go/config"
	"pickem-app-go/logging"
)

// LockService decides whether a game's pick window has closed. The policy is
// deliberately fail-open: malformed dates, an unknown timezone, or a bad
// deadline string all yield "not locked". A false "locked" blocks a
// participant with no recourse; a false "unlocked" is merely a late pick.
type LockService struct {
	deadlineHour   int
	deadlineMinute int
	location       *time.Location
	usable         bool
	logger         *logging.Logger
}

// NewLockService creates a lock service from the configured deadline time
// ("HH:MM", 24-hour) and IANA timezone id. Configuration errors are logged
// and leave the service permanently fail-open rather than failing startup.
func NewLockService(deadlineTime, timezone string) *LockService {
	logger := logging.WithPrefix("LockService")

	s := &LockService{logger: logger}

	hour, minute, err := config.ParseDeadline(deadlineTime)
	if err != nil {
		logger.Warnf("Unparseable deadline time %q, all games treated as unlocked: %v", deadlineTime, err)
		return s
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warnf("Unknown timezone %q, all games treated as unlocked: %v", timezone, err)
		return s
	}

	s.deadlineHour = hour
	s.deadlineMinute = minute
	s.location = loc
	s.usable = true
	return s
}

// IsLockedAt reports whether a game dated gameDate ("2006-01-02") is locked
// as of now. Games with an absent or unparseable date are never locked.
func (s *LockService) IsLockedAt(gameDate string, now time.Time) bool {
	if !s.usable || gameDate == "" {
		return false
	}

	day, err := time.ParseInLocation("2006-01-02", gameDate, s.location)
	if err != nil {
		s.logger.Debugf("Unparseable game date %q, treating as unlocked", gameDate)
		return false
	}

	lockInstant := time.Date(day.Year(), day.Month(), day.Day(),
		s.deadlineHour, s.deadlineMinute, 0, 0, s.location)

	return !now.Before(lockInstant)
}

// IsLocked reports whether a game dated gameDate is locked right now
func (s *LockService) IsLocked(gameDate string) bool {
	return s.IsLockedAt(gameDate, time.Now())
}

// LockInstant returns the computed lock time for a game date, if one can be
// computed at all.
func (s *LockService) LockInstant(gameDate string) (time.Time, bool) {
	if !s.usable || gameDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", gameDate, s.location)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		s.deadlineHour, s.deadlineMinute, 0, 0, s.location), true
}
