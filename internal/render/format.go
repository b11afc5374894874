// Package render turns a normalized pack into human-readable text.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
)

const (
	jo  = 1e12
	eok = 1e8
	man = 1e4
)

// FormatAmount formats a market-size value. KRW uses the compact 조/억/만
// units; other currencies get grouped digits followed by the unit. Text
// values are returned as-is.
func FormatAmount(q models.Quantity, unit string) string {
	v, ok := q.Float64()
	if !ok {
		return orNA(q.Text)
	}
	if isWon(unit) {
		return formatWon(v)
	}
	return withUnit(GroupDigits(v), unit)
}

// FormatValue formats a hypothesis value according to its unit.
func FormatValue(q models.Quantity, unit string) string {
	v, ok := q.Float64()
	if !ok {
		return withUnit(orNA(q.Text), unit)
	}
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "krw", "원":
		return formatWon(v)
	case "%":
		return trimFloat(v) + "%"
	case "명", "users", "people":
		if math.Abs(v) >= man {
			return fmt.Sprintf("%.1f만명", v/man)
		}
		return GroupDigits(v) + "명"
	case "회", "times":
		return trimFloat(v) + "회"
	default:
		return withUnit(GroupDigits(v), unit)
	}
}

func formatWon(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= jo:
		return fmt.Sprintf("₩%.2f조", v/jo)
	case abs >= eok:
		return fmt.Sprintf("₩%.1f억", v/eok)
	case abs >= man:
		return fmt.Sprintf("₩%.1f만", v/man)
	default:
		return "₩" + GroupDigits(v)
	}
}

// GroupDigits writes v with comma thousands separators and at most three
// fractional digits.
func GroupDigits(v float64) string {
	return humanize.Commaf(math.Round(v*1000) / 1000)
}

func isWon(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "krw", "원", "₩":
		return true
	}
	return false
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func withUnit(value, unit string) string {
	if unit = strings.TrimSpace(unit); unit == "" {
		return value
	}
	return value + " " + unit
}
