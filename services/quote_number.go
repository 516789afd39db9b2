package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

const (
	quoteSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	quoteSuffixLength   = 6

	// quoteNumberAttempts bounds how many regenerations the uniqueness check
	// will try before giving up.
	quoteNumberAttempts = 5
)

// QuoteNumberPattern matches a well-formed quote number, e.g. QUO-20260901-7KQ2ZX.
var QuoteNumberPattern = regexp.MustCompile(`^QUO-\d{8}-[A-Z0-9]{6}$`)

// formatQuoteNumber constructs the quote number string from its components.
func formatQuoteNumber(date time.Time, suffix string) string {
	return fmt.Sprintf("QUO-%s-%s", date.Format("20060102"), suffix)
}

// randomQuoteSuffix returns 6 random uppercase alphanumerics.
func randomQuoteSuffix() string {
	b := make([]byte, quoteSuffixLength)
	for i := range b {
		b[i] = quoteSuffixAlphabet[rand.IntN(len(quoteSuffixAlphabet))]
	}
	return string(b)
}

// GenerateQuoteNumber creates a candidate quote number for the given date.
// Format: QUO-{YYYYMMDD}-{6 random uppercase alphanumerics}. The random
// suffix makes collisions unlikely but does not guarantee uniqueness; callers
// persisting a quote must go through EnsureUniqueQuoteNumber.
func GenerateQuoteNumber(now time.Time) string {
	return formatQuoteNumber(now, randomQuoteSuffix())
}

// EnsureUniqueQuoteNumber generates a quote number and verifies no stored
// quote already carries it, regenerating up to quoteNumberAttempts times.
// The unique index on quote_number is the hard guarantee; this check only
// avoids burning a save attempt on an obvious collision.
func EnsureUniqueQuoteNumber(app core.App, now time.Time) (string, error) {
	for range quoteNumberAttempts {
		candidate := GenerateQuoteNumber(now)

		_, err := app.FindFirstRecordByFilter(
			"quotes",
			"quote_number = {:quoteNumber}",
			map[string]any{"quoteNumber": candidate},
		)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return candidate, nil
		case err != nil:
			return "", fmt.Errorf("check quote number %s: %w", candidate, err)
		}
	}
	return "", errors.New("could not generate a unique quote number")
}
