package chat

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

type unitPair struct {
	from, to string
}

var unitFactors = map[unitPair]float64{
	{"km", "miles"}:  0.621371,
	{"miles", "km"}:  1.60934,
	{"kg", "pounds"}: 2.20462,
	{"pounds", "kg"}: 0.453592,
}

const (
	unitsUsage         = "Please use: convert 5 km to miles"
	currencyConvFailed = "Couldn't convert currency."
)

// handleConvertUnits expects "convert <value> <from> to <to>". Tokens are read
// by position, the "to" token itself is not checked.
func (s *Service) handleConvertUnits(_ context.Context, t *Turn) Reply {
	parts := strings.Fields(t.Input)
	if len(parts) < 5 {
		return say(unitsUsage)
	}

	value, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return say(unitsUsage)
	}

	from, to := parts[2], parts[4]

	factor, ok := unitFactors[unitPair{from, to}]
	if !ok {
		return say("Conversion not supported.")
	}

	return say(fmt.Sprintf("%s %s = %.3f %s", formatFloat(value), from, value*factor, to))
}

// handleConvertCurrency expects "convert currency <amount> <FROM> to <TO>".
// Any failure, malformed input included, gets the same reply.
func (s *Service) handleConvertCurrency(ctx context.Context, t *Turn) Reply {
	parts := strings.Fields(t.Input)
	if len(parts) < 6 {
		return say(currencyConvFailed)
	}

	amount, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return say(currencyConvFailed)
	}

	from, to := strings.ToUpper(parts[3]), strings.ToUpper(parts[5])

	rates, err := s.opts.Currency.Rates(ctx, from)
	if err != nil {
		slog.Warn("Currency rates lookup failed", "base", from, "error", err)
		return say(currencyConvFailed)
	}

	rate, ok := rates[to]
	if !ok {
		slog.Warn("Currency rate missing", "base", from, "target", to)
		return say(currencyConvFailed)
	}

	return say(fmt.Sprintf("%s %s = %.2f %s", formatFloat(amount), from, amount*rate, to))
}

// formatFloat prints f the way the chat has always shown numbers: the shortest
// representation, always with a fractional part or an exponent.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
