// Package duration formats elapsed time between two timestamps into the
// short human-readable form used in notification subtitles.
package duration

import (
	"strconv"
	"time"

	"github.com/thebtf/ccnotify/internal/i18n"
)

// Formatter renders durations with localized unit suffixes.
type Formatter struct {
	tr *i18n.Translator
}

// NewFormatter returns a Formatter using tr for unit strings.
func NewFormatter(tr *i18n.Translator) *Formatter {
	return &Formatter{tr: tr}
}

// Between formats the elapsed time from start to end. A negative span is
// clamped to zero.
func (f *Formatter) Between(start, end time.Time) string {
	return f.Format(end.Sub(start))
}

// Format renders d using three buckets: under a minute, under an hour,
// and an hour or more. Remainders of zero collapse to the single-unit
// form ("5m", not "5m 0s").
func (f *Formatter) Format(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}

	switch {
	case total < 60:
		return f.tr.T("duration.seconds", map[string]string{
			"seconds": strconv.Itoa(total),
		})
	case total < 3600:
		minutes := total / 60
		seconds := total % 60
		if seconds == 0 {
			return f.tr.T("duration.minutes", map[string]string{
				"minutes": strconv.Itoa(minutes),
			})
		}
		return f.tr.T("duration.minutes_seconds", map[string]string{
			"minutes": strconv.Itoa(minutes),
			"seconds": strconv.Itoa(seconds),
		})
	default:
		hours := total / 3600
		minutes := (total % 3600) / 60
		if minutes == 0 {
			return f.tr.T("duration.hours", map[string]string{
				"hours": strconv.Itoa(hours),
			})
		}
		return f.tr.T("duration.hours_minutes", map[string]string{
			"hours":   strconv.Itoa(hours),
			"minutes": strconv.Itoa(minutes),
		})
	}
}

// Unknown returns the localized sentinel used when a duration cannot be
// computed.
func (f *Formatter) Unknown() string {
	return f.tr.T("duration.unknown", nil)
}
