package types

import (
	"time"

	"github.com/samber/lo"
)

// DateFormat is the display format preference carried on contracts
// and invoices. The values mirror the format strings users pick in
// document settings.
type DateFormat string

const (
	DateFormatMDY     DateFormat = "MM/dd/yyyy"
	DateFormatDMY     DateFormat = "dd/MM/yyyy"
	DateFormatISO     DateFormat = "yyyy-MM-dd"
	DateFormatMonDY   DateFormat = "MMM dd, yyyy"
	DateFormatDMonY   DateFormat = "dd MMM yyyy"
	DateFormatDotted  DateFormat = "dd.MM.yyyy"
	DefaultDateFormat            = DateFormatDMY
)

var dateFormatLayouts = map[DateFormat]string{
	DateFormatMDY:    "01/02/2006",
	DateFormatDMY:    "02/01/2006",
	DateFormatISO:    "2006-01-02",
	DateFormatMonDY:  "Jan 02, 2006",
	DateFormatDMonY:  "02 Jan 2006",
	DateFormatDotted: "02.01.2006",
}

func (f DateFormat) String() string {
	return string(f)
}

func (f DateFormat) Validate() error {
	allowed := []DateFormat{
		DateFormatMDY,
		DateFormatDMY,
		DateFormatISO,
		DateFormatMonDY,
		DateFormatDMonY,
		DateFormatDotted,
	}
	if !lo.Contains(allowed, f) {
		return newValidationError("date_format", string(f))
	}
	return nil
}

// Layout returns the Go time layout for the format, defaulting to
// dd/MM/yyyy for unknown values rather than failing a render.
func (f DateFormat) Layout() string {
	if layout, ok := dateFormatLayouts[f]; ok {
		return layout
	}
	return dateFormatLayouts[DefaultDateFormat]
}

// FormatDate renders a date using the format's layout.
func (f DateFormat) FormatDate(t time.Time) string {
	return t.Format(f.Layout())
}
