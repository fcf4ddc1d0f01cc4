package rules

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"

	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
)

// ExpressionCondition holds a CEL expression compiled once at load time
type ExpressionCondition struct {
	expression string
	program    cel.Program
}

// NewExpressionCondition compiles expression against registry
func NewExpressionCondition(registry *Registry, expression string) (*ExpressionCondition, error) {
	prog, err := registry.Compile(expression)
	if err != nil {
		return nil, err
	}
	return &ExpressionCondition{expression: expression, program: prog}, nil
}

// Expression returns the source text
func (c *ExpressionCondition) Expression() string {
	return c.expression
}

// Holds implements Condition
func (c *ExpressionCondition) Holds(scope *Scope) (bool, error) {
	out, _, err := c.program.Eval(scope.activation())
	if err != nil {
		return false, battleErr.Wrapf(err, "failed to evaluate %q", c.expression).
			WithMeta("expression", c.expression)
	}
	held, ok := out.Value().(bool)
	if !ok {
		return false, battleErr.Internalf("expression %q produced %T", c.expression, out.Value())
	}
	return held, nil
}

// VariableEquals holds when a table variable equals Value. Numbers compare
// by value regardless of their Go type.
type VariableEquals struct {
	Name  string
	Value any
}

// Holds implements Condition
func (c VariableEquals) Holds(scope *Scope) (bool, error) {
	v, ok := scope.Variable(c.Name)
	if !ok {
		return false, nil
	}
	return valuesEqual(v, c.Value), nil
}

func valuesEqual(a, b any) bool {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func (c VariableEquals) String() string {
	return fmt.Sprintf("%s == %v", c.Name, c.Value)
}
