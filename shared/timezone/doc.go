// Package timezone holds the application location and clock.
//
// Booking intervals arrive as zone-less local timestamps and are read in the application
// location; responses are formatted back in it:
//
//	start, err := timezone.Parse(constant.LocalDateFormat, "2026-03-11T10:00:00")
//	out := timezone.Format(booking.StartTime, constant.LocalDateFormat)
//
// Every "now" used to classify bookings comes from Now, so tests can pin it:
//
//	restore := timezone.SetClock(func() time.Time { return fixed })
//	defer restore()
//
// The location is read from APP_TIMEZONE (an IANA name such as "Europe/Moscow");
// an empty or unknown name falls back to UTC.
package timezone
