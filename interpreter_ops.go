package lox

import (
	"strconv"
	"strings"
)

// isTruthy implements Lox truthiness: nil and false are falsey, everything
// else — including 0 and "" — is truthy (spec §4.4).
func isTruthy(value Value) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: nil equals only nil, and values of
// different underlying Go types are never equal (so 1 != "1").
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func checkNumberOperand(operator Token, operand Value) float64 {
	if n, ok := operand.(float64); ok {
		return n
	}
	panic(newRuntimeError(operator, "Operand must be a number."))
}

func checkNumberOperands(operator Token, left, right Value) (float64, float64) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if lok && rok {
		return l, r
	}
	panic(newRuntimeError(operator, "Operands must be numbers."))
}

// formatNumber renders a float64 the way Lox prints numbers: integral
// values drop their trailing ".0" (spec §4.4/§8), everything else uses Go's
// shortest round-trippable representation.
func formatNumber(n float64) string {
	text := strconv.FormatFloat(n, 'g', -1, 64)
	if strings.ContainsAny(text, "eE") {
		// Large/small magnitudes already render without a trailing ".0";
		// leave exponential notation untouched.
		return text
	}
	if !strings.Contains(text, ".") {
		return text
	}
	return strings.TrimSuffix(strings.TrimRight(text, "0"), ".")
}
