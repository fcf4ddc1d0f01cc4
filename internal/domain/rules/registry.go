package rules

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	battleErr "github.com/KirkDiggler/creature-battler/internal/errors"
	"github.com/KirkDiggler/creature-battler/internal/random"
)

// diceType is the CEL type of the rng variable
var diceType = cel.OpaqueType("battler.Dice")

// dice is the rng value bound for one evaluation
type dice struct {
	src random.Source
}

func (d dice) ConvertToNative(typeDesc reflect.Type) (any, error) {
	return nil, fmt.Errorf("rng cannot be converted to %v", typeDesc)
}

func (d dice) ConvertToType(typeValue ref.Type) ref.Val {
	return types.NewErr("rng cannot be converted to %s", typeValue.TypeName())
}

func (d dice) Equal(other ref.Val) ref.Val {
	o, ok := other.(dice)
	return types.Bool(ok && o.src == d.src)
}

func (d dice) Type() ref.Type { return diceType }
func (d dice) Value() any     { return d.src }

// roll draws from [low, high]. A table without a source returns low.
func (d dice) roll(low, high int) int {
	if d.src == nil {
		return min(low, high)
	}
	return d.src.UniformInt(low, high)
}

// Registry owns the CEL environment rule expressions compile against.
//
// Expressions see four variables:
//
//	event  the dispatched event name
//	vars   the rule table's variables
//	facts  data attached to the event, e.g. facts.victim.team
//	rng    the battle's random source, e.g. rng.roll(1, 6) >= 5
type Registry struct {
	env *cel.Env
}

// NewRegistry builds the environment
func NewRegistry() (*Registry, error) {
	env, err := cel.NewEnv(
		cel.Variable("event", cel.StringType),
		cel.Variable("vars", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("facts", cel.MapType(cel.StringType, cel.AnyType)),
		cel.Variable("rng", diceType),

		cel.Function("roll",
			cel.MemberOverload("dice_roll_int_int",
				[]*cel.Type{diceType, cel.IntType, cel.IntType},
				cel.IntType,
				cel.FunctionBinding(func(args ...ref.Val) ref.Val {
					d, ok := args[0].(dice)
					if !ok {
						return types.NoSuchOverloadErr()
					}
					low, lowOK := args[1].(types.Int)
					high, highOK := args[2].(types.Int)
					if !lowOK || !highOK {
						return types.NoSuchOverloadErr()
					}
					return types.Int(d.roll(int(low), int(high)))
				}),
			),
		),
	)
	if err != nil {
		return nil, battleErr.Wrap(err, "failed to create rule environment")
	}
	return &Registry{env: env}, nil
}

// Compile parses and checks a boolean expression once. Expressions whose
// type is only known at runtime are accepted and checked on evaluation.
func (r *Registry) Compile(expression string) (cel.Program, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, battleErr.WrapWithCode(iss.Err(), battleErr.CodeValidation, "invalid rule expression").
			WithMeta("expression", expression)
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, battleErr.Validationf("rule expression %q must be boolean, got %s", expression, out).
			WithMeta("expression", expression)
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, battleErr.WrapWithCode(err, battleErr.CodeValidation, "failed to plan rule expression").
			WithMeta("expression", expression)
	}
	return prog, nil
}
