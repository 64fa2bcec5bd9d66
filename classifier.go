package csvqsniffer

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// classifierPatterns holds the compiled regex table used by Classify. Built
// once via classifierOnce and read-only thereafter, matching the source's
// single-assignment lazy initializer.
type classifierPatterns struct {
	boolean  *regexp.Regexp
	integer  *regexp.Regexp
	float    *regexp.Regexp
	dateISO  *regexp.Regexp
	time     *regexp.Regexp
	dateTime *regexp.Regexp
	email    *regexp.Regexp
	url      *regexp.Regexp
	phone    *regexp.Regexp
}

var (
	classifierOnce sync.Once
	patterns       *classifierPatterns
)

// currencySymbols is the fixed allow-list from spec section 4.1.
var currencySymbols = []string{"$", "€", "£", "¥"}

const timeBody = `([01]?\d|2[0-3]):[0-5]\d(:[0-5]\d)?(\.\d+)?(\s?(?i:AM|PM))?(Z|[+-]\d{2}:\d{2})?`
const dateBody = `\d{1,4}[-/]\d{1,2}[-/]\d{1,4}`

func initClassifier() *classifierPatterns {
	return &classifierPatterns{
		boolean:  regexp.MustCompile(`(?i)^(true|false|yes|no|t|f|y|n)$`),
		integer:  regexp.MustCompile(`^[+-]?(0|[1-9]\d*|[1-9]\d{0,2}(,\d{3})+)$`),
		float:    regexp.MustCompile(`^[+-]?((0|[1-9]\d*|[1-9]\d{0,2}(,\d{3})*)\.\d+|\d+(\.\d+)?[eE][+-]?\d+)$`),
		dateISO:  regexp.MustCompile(`^(\d{1,4})[-/](\d{1,2})[-/](\d{1,4})$`),
		time:     regexp.MustCompile(`^` + timeBody + `$`),
		dateTime: regexp.MustCompile(`^(` + dateBody + `)[ T](` + timeBody + `)$`),
		email:    regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),
		url:      regexp.MustCompile(`(?i)^(https?|ftp)://\S+$`),
		phone:    regexp.MustCompile(`^\+?[\d\s\-().]{7,20}$`),
	}
}

// classifierTables returns the process-global compiled pattern set,
// compiling it on first use. Regex construction failures are programmer
// errors and would panic inside regexp.MustCompile at startup, not surface
// as a runtime error.
func classifierTables() *classifierPatterns {
	classifierOnce.Do(func() {
		patterns = initClassifier()
	})
	return patterns
}

// Classify returns the DataType tag for one cell's raw bytes. Classification
// is deterministic and stateless; cell is trimmed of ASCII whitespace before
// testing but the caller's original bytes are never modified.
func Classify(cell []byte) DataType {
	trimmed := strings.TrimFunc(string(cell), isASCIISpace)
	if trimmed == "" {
		return Empty
	}
	return classifyTrimmed(trimmed)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func classifyTrimmed(trimmed string) DataType {
	p := classifierTables()

	if isBareDigitZeroOrOne(trimmed) {
		return Integer
	}
	if p.boolean.MatchString(trimmed) {
		return Boolean
	}
	if p.integer.MatchString(trimmed) {
		return Integer
	}
	if p.float.MatchString(trimmed) {
		return Float
	}
	if isCurrency(trimmed, p) {
		return Currency
	}
	if isPercentage(trimmed, p) {
		return Percentage
	}
	if p.dateTime.MatchString(trimmed) {
		return DateTime
	}
	if isDate(trimmed, p) {
		return Date
	}
	if p.time.MatchString(trimmed) {
		return Time
	}
	if p.email.MatchString(trimmed) {
		return Email
	}
	if p.url.MatchString(trimmed) {
		return Url
	}
	if isPhone(trimmed) {
		return Phone
	}
	return Text
}

// isBareDigitZeroOrOne implements the boolean/integer tie-break in spec
// section 4.1 rule 2: a bare "0" or "1" classifies as Integer, not Boolean,
// even though both appear in the boolean word list conceptually.
func isBareDigitZeroOrOne(s string) bool {
	return s == "0" || s == "1"
}

func isCurrency(s string, p *classifierPatterns) bool {
	for _, sym := range currencySymbols {
		if strings.HasPrefix(s, sym) {
			rest := s[len(sym):]
			if rest == "" {
				continue
			}
			if p.integer.MatchString(rest) || p.float.MatchString(rest) {
				return true
			}
		}
		if strings.HasSuffix(s, sym) {
			rest := s[:len(s)-len(sym)]
			if rest == "" {
				continue
			}
			if p.integer.MatchString(rest) || p.float.MatchString(rest) {
				return true
			}
		}
	}
	return false
}

func isPercentage(s string, p *classifierPatterns) bool {
	if !strings.HasSuffix(s, "%") {
		return false
	}
	rest := s[:len(s)-1]
	if rest == "" {
		return false
	}
	return p.integer.MatchString(rest) || p.float.MatchString(rest)
}

// isDate validates the shape match from p.dateISO against the range rules in
// spec section 4.1 rule 8: month 1-12, day 1-31, no calendar correctness
// check beyond ranges.
func isDate(s string, p *classifierPatterns) bool {
	m := p.dateISO.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	return plausibleDateParts(m[1], m[2], m[3])
}

func plausibleDateParts(a, b, c string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	nc, errC := strconv.Atoi(c)
	if errA != nil || errB != nil || errC != nil {
		return false
	}

	// The 4-digit-length group is the year; the other two are day/month in
	// either order.
	switch {
	case len(a) == 4:
		return dayMonthPlausible(nb, nc)
	case len(c) == 4:
		return dayMonthPlausible(na, nb)
	default:
		// No 4-digit group: treat all three as 2-digit fields (2-digit year
		// plus a day/month pair in either order).
		return dayMonthPlausible(na, nb) || dayMonthPlausible(nb, nc) || dayMonthPlausible(na, nc)
	}
}

func dayMonthPlausible(x, y int) bool {
	inRange := func(v, lo, hi int) bool { return v >= lo && v <= hi }
	if !inRange(x, 1, 31) || !inRange(y, 1, 31) {
		return false
	}
	return inRange(x, 1, 12) || inRange(y, 1, 12)
}

// isPhone checks the shape rule from spec section 4.1 rule 12: digits with
// optional +, spaces, -, parens, and at least 7 digits total.
func isPhone(s string) bool {
	p := classifierTables()
	if !p.phone.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}
