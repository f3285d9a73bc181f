package evaluator

import (
	"cmp"
	"fmt"

	"github.com/titivuk/lino/object"
	"github.com/titivuk/lino/token"
)

func evalPrefixExpression(operator string, right object.Object) (object.Object, error) {
	switch operator {
	case token.BANG:
		return nativeBoolToBooleanObject(!isTruthy(right)), nil
	case token.MINUS:
		if right.Type() != object.NUMBER_OBJ {
			return nil, fmt.Errorf("%w: -%s", ErrTypeMismatch, right.Type())
		}

		value := right.(*object.Number).Value
		return &object.Number{Value: -value}, nil
	default:
		return nil, fmt.Errorf("%w: %s%s", ErrInvalidOperator, operator, right.Type())
	}
}

// arithmetic is defined on numbers only, division by zero follows IEEE 754
func evalInfixExpression(left object.Object, operator string, right object.Object) (object.Object, error) {
	if left.Type() != object.NUMBER_OBJ || right.Type() != object.NUMBER_OBJ {
		return nil, fmt.Errorf("%w: %s %s %s", ErrTypeMismatch, left.Type(), operator, right.Type())
	}

	leftValue := left.(*object.Number).Value
	rightValue := right.(*object.Number).Value

	switch operator {
	case token.PLUS:
		return &object.Number{Value: leftValue + rightValue}, nil
	case token.MINUS:
		return &object.Number{Value: leftValue - rightValue}, nil
	case token.ASTERISK:
		return &object.Number{Value: leftValue * rightValue}, nil
	case token.SLASH:
		return &object.Number{Value: leftValue / rightValue}, nil
	default:
		return nil, fmt.Errorf("%w: %s %s %s", ErrInvalidOperator, left.Type(), operator, right.Type())
	}
}

// Both operands must be of the same kind. Booleans order false < true,
// nil equals nil, lists and functions only compare by identity.
func evalRelationalExpression(left object.Object, operator string, right object.Object) (object.Object, error) {
	if left.Type() != right.Type() {
		return nil, fmt.Errorf("%w: %s %s %s", ErrTypeMismatch, left.Type(), operator, right.Type())
	}

	var (
		result bool
		ok     bool
	)
	switch left := left.(type) {
	case *object.Number:
		result, ok = compare(operator, left.Value, right.(*object.Number).Value)
	case *object.String:
		result, ok = compare(operator, left.Value, right.(*object.String).Value)
	case *object.Boolean:
		result, ok = compare(operator, boolRank(left.Value), boolRank(right.(*object.Boolean).Value))
	case *object.Nil:
		result, ok = compare(operator, 0, 0)
	default:
		result, ok = compareIdentity(operator, left, right)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s %s %s", ErrInvalidOperator, left.Type(), operator, right.Type())
	}

	return nativeBoolToBooleanObject(result), nil
}

func compare[T cmp.Ordered](operator string, l, r T) (bool, bool) {
	switch operator {
	case token.EQ:
		return l == r, true
	case token.NOT_EQ:
		return l != r, true
	case token.LT:
		return l < r, true
	case token.LT_EQ:
		return l <= r, true
	case token.GT:
		return l > r, true
	case token.GT_EQ:
		return l >= r, true
	default:
		return false, false
	}
}

func compareIdentity(operator string, l, r object.Object) (bool, bool) {
	switch operator {
	case token.EQ:
		return l == r, true
	case token.NOT_EQ:
		return l != r, true
	default:
		return false, false
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// Bool by value, nil is false, numbers are true unless zero, strings
// unless empty. Lists and functions are always true.
func isTruthy(obj object.Object) bool {
	switch obj := obj.(type) {
	case *object.Boolean:
		return obj.Value
	case *object.Nil:
		return false
	case *object.Number:
		return obj.Value != 0
	case *object.String:
		return obj.Value != ""
	default:
		return true
	}
}
