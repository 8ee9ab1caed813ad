package availability

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock converte "HH:MM" (ou "HH:MM:SS", como o postgres devolve
// colunas time) em minutos desde a meia-noite.
func ParseClock(hm string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(hm), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, false
	}

	if len(parts) == 3 {
		s, err := strconv.Atoi(parts[2])
		if err != nil || s < 0 || s > 59 {
			return 0, false
		}
	}

	return h*60 + m, true
}

// FormatClock é o inverso de ParseClock, sempre com zero à esquerda.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
