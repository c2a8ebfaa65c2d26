package timezone

import (
	"shareit/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	mu          sync.RWMutex
	appLocation = time.UTC
	clock       = time.Now
)

func init() {
	Init(config.Get().App.Timezone)
}

// Init sets the application location by IANA name.
func Init(name string) {
	loc := time.UTC

	switch name {
	case "":
		log.Warn().Msg("No timezone configured, using UTC as default")
	default:
		loaded, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

			break
		}

		loc = loaded
	}

	mu.Lock()
	appLocation = loc
	mu.Unlock()

	log.Info().Str("location", loc.String()).Msg("Application timezone initialized")
}

// SetClock replaces the source of Now and returns a function restoring the previous one.
func SetClock(now func() time.Time) (restore func()) {
	mu.Lock()
	previous := clock
	clock = now
	mu.Unlock()

	return func() {
		mu.Lock()
		clock = previous
		mu.Unlock()
	}
}

// Now returns the current instant in the application location.
func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()

	return clock().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func GetLocation() *time.Location {
	mu.RLock()
	defer mu.RUnlock()

	return appLocation
}

// Parse reads a zone-less value in the application location.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
