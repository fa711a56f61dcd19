package chat

import (
	"context"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

var (
	arithmeticRe = regexp.MustCompile(`^what is \d+\s*[+\-*/]\s*\d+$`)
	expressionRe = regexp.MustCompile(`^(\d+)\s*([+\-*/])\s*(\d+)$`)

	errDivisionByZero = errors.New("division by zero")
	errBadExpression  = errors.New("not an <int> <op> <int> expression")
)

func isArithmetic(t *Turn) bool {
	return arithmeticRe.MatchString(t.Input)
}

func (s *Service) handleArithmetic(_ context.Context, t *Turn) Reply {
	result, err := evaluate(strings.TrimSpace(strings.TrimPrefix(t.Input, "what is")))
	if err != nil {
		return say("I couldn't calculate that.")
	}

	return say("The answer is " + result)
}

// evaluate computes "<int> <op> <int>" for + - * /. Integer operators keep
// arbitrary precision; division is true division and prints as a float.
func evaluate(expr string) (string, error) {
	m := expressionRe.FindStringSubmatch(expr)
	if m == nil {
		return "", errBadExpression
	}

	a, okA := new(big.Int).SetString(m[1], 10)
	b, okB := new(big.Int).SetString(m[3], 10)
	if !okA || !okB {
		return "", errBadExpression
	}

	switch m[2] {
	case "+":
		return new(big.Int).Add(a, b).String(), nil
	case "-":
		return new(big.Int).Sub(a, b).String(), nil
	case "*":
		return new(big.Int).Mul(a, b).String(), nil
	default:
		if b.Sign() == 0 {
			return "", errDivisionByZero
		}
		f, _ := new(big.Rat).SetFrac(a, b).Float64()
		return formatFloat(f), nil
	}
}
