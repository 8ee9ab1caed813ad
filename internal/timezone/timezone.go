package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location devolve o fuso pedido ou, se inválido, o padrão.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate interpreta "YYYY-MM-DD" como meia-noite no fuso informado.
func ParseDate(date string, tz string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(tz))
}

// MinutesOfDay devolve os minutos desde a meia-noite de t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
