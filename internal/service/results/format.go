package results

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/Domenick1991/airbooking-web/config"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders flight fields for display in one locale and time zone.
type Formatter struct {
	printer  *message.Printer
	currency string
	loc      *time.Location
}

func NewFormatter(cfg config.DisplayConfig) (*Formatter, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", cfg.Locale, err)
	}
	loc := time.UTC
	if cfg.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
		}
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: cfg.CurrencySymbol,
		loc:      loc,
	}, nil
}

// Time renders e.g. "06:30 AM".
func (f *Formatter) Time(t time.Time) string {
	return t.In(f.loc).Format("03:04 PM")
}

// Date renders e.g. "1 Jun".
func (f *Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format("2 Jan")
}

func (f *Formatter) LongDate(t time.Time) string {
	return t.In(f.loc).Format("Mon, 2 Jan 2006")
}

// Duration renders minutes as "2h 10m".
func (f *Formatter) Duration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Price renders an amount with the currency prefix and locale grouping.
func (f *Formatter) Price(d decimal.Decimal) string {
	return f.currency + f.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}
