package models

import (
	"fmt"
	"time"
)

// Lang is a supported deck language. English is the base language;
// other languages are partial overlays merged over it.
type Lang string

const (
	LangEN Lang = "en"
	LangUK Lang = "uk"
)

// ParseLang normalizes a language code, defaulting to English.
func ParseLang(s string) Lang {
	if s == string(LangUK) {
		return LangUK
	}
	return LangEN
}

// Ukrainian month names in the genitive case, as used in dates.
var ukMonths = [12]string{
	"січня", "лютого", "березня", "квітня", "травня", "червня",
	"липня", "серпня", "вересня", "жовтня", "листопада", "грудня",
}

// FormatDate renders a reading date as a locale-formatted display
// string. These strings travel inside share tokens as-is, so the
// format must stay stable per language.
func FormatDate(t time.Time, lang Lang) string {
	if lang == LangUK {
		return fmt.Sprintf("%d %s %d р.", t.Day(), ukMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 2, 2006")
}
