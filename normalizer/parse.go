package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	ic "github.com/patricioibar/points-dashboard/innercommunication"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	nonNumericChars = regexp.MustCompile(`[^0-9,.]`)
	nonDigitChars   = regexp.MustCompile(`[^0-9]`)
)

// Excel serial of 9999-12-31.
const maxExcelSerial = 2958465

// Slash dates are day-first, unlike the month-first default of most
// spreadsheet tooling.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/1/2",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2/1/2006",
	"02-01-2006",
}

// ParseNumber keeps digits, commas and dots, turns commas into dots and parses
// the rest as a decimal. Anything that does not parse is reported as false and
// reads as zero.
func ParseNumber(value interface{}) (float64, bool) {
	if f, ok := value.(float64); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return math.Abs(f), true
	}
	cleaned := nonNumericChars.ReplaceAllString(ic.ToString(value), "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// ParseDate accepts time values, ISO and day-first strings and Excel serial
// numbers.
func ParseDate(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, !v.IsZero()
	case float64:
		return fromExcelSerial(v)
	case int:
		return fromExcelSerial(float64(v))
	}

	s := strings.TrimSpace(ic.ToString(value))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromExcelSerial(f)
	}
	return time.Time{}, false
}

func fromExcelSerial(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial <= 0 || serial > maxExcelSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseSeason reads a season number. Missing, non-numeric and negative values
// read as season 0.
func ParseSeason(value interface{}) (int, bool) {
	s := strings.TrimSpace(ic.ToString(value))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return int(f), true
}

// CleanIdentifier strips every non-digit character.
func CleanIdentifier(value interface{}) string {
	return nonDigitChars.ReplaceAllString(ic.ToString(value), "")
}
