package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Error carries field-specific validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// tickerPattern matches exchange-style tickers: 1-10 uppercase letters,
// digits or dots (e.g. VAS, VGS.AX, IVV).
var tickerPattern = regexp.MustCompile(`^[A-Z0-9.]{1,10}$`)

// ValidateTicker checks that a ticker is present and in the accepted format.
func ValidateTicker(ticker string) error {
	if strings.TrimSpace(ticker) == "" {
		return &Error{Fields: map[string]string{"ticker": "ticker is required"}}
	}
	if !tickerPattern.MatchString(ticker) {
		return &Error{Fields: map[string]string{"ticker": fmt.Sprintf("invalid ticker format: %s", ticker)}}
	}
	return nil
}
