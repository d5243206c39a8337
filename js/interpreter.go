package js

import "log/slog"

// Interpreter is a tree-walking evaluator. It owns a single
// identifier→Value environment; there is no lexical scoping or
// closures (see the package's non-goals). A function call clones the
// interpreter wholesale before binding parameters and walking the
// body, so callee mutations never leak back into the caller.
type Interpreter struct {
	Variables map[string]Value
	returning *Value
	log       *slog.Logger
}

// InterpreterOption configures NewInterpreter.
type InterpreterOption func(*Interpreter)

// WithLogger sets the logger used to report thrown values at Debug
// level as they propagate out of Run. Defaults to slog.Default().
func WithLogger(l *slog.Logger) InterpreterOption {
	return func(in *Interpreter) { in.log = l }
}

// NewInterpreter returns an interpreter with an empty environment.
func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{Variables: map[string]Value{}, log: slog.Default()}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (in *Interpreter) clone() *Interpreter {
	vars := make(map[string]Value, len(in.Variables))
	for k, v := range in.Variables {
		vars[k] = v
	}
	return &Interpreter{Variables: vars, log: in.log}
}

// Run executes every statement of prog in order, returning the value
// of the last statement executed or the first error encountered.
func (in *Interpreter) Run(prog Program) (Value, error) {
	var result Value
	for _, stmt := range prog.Body {
		var err error
		result, err = in.execStatement(stmt)
		if err != nil {
			in.log.Debug("js execution error", slog.String("error", err.Error()))
			return Value{}, err
		}
	}
	return result, nil
}

func (in *Interpreter) execStatement(s Statement) (Value, error) {
	switch s.Kind {
	case StmtExpression:
		return in.evalExpression(*s.Expression)

	case StmtBlock:
		return in.execBlock(s.Body)

	case StmtReturn:
		var ret Value
		if s.ReturnArgument != nil {
			var err error
			ret, err = in.evalExpression(*s.ReturnArgument)
			if err != nil {
				return Value{}, err
			}
		}
		in.returning = &ret
		return Value{}, nil

	case StmtIf:
		test, err := in.evalExpression(*s.Test)
		if err != nil {
			return Value{}, err
		}
		if test.AsBool() {
			return in.execStatement(*s.IfBranch)
		}
		if s.ElseBranch != nil {
			return in.execStatement(*s.ElseBranch)
		}
		return Value{}, nil

	case StmtWhile:
		for {
			test, err := in.evalExpression(*s.Test)
			if err != nil {
				return Value{}, err
			}
			if !test.AsBool() {
				return Value{}, nil
			}

			if _, err := in.execStatement(*s.WhileBody); err != nil {
				return Value{}, err
			}
			if in.returning != nil {
				return Value{}, nil
			}
		}

	case StmtEmpty:
		return Value{}, nil

	case StmtFunctionDeclaration:
		in.Variables[s.FunctionID.Name] = FunctionValue(s.FunctionBody)
		return Value{}, nil

	case StmtVariableDeclaration:
		for _, decl := range s.Declarations {
			var v Value
			if decl.Init != nil {
				var err error
				v, err = in.evalExpression(*decl.Init)
				if err != nil {
					return Value{}, err
				}
			}
			in.Variables[decl.ID.Name] = v
		}
		return Value{}, nil

	default:
		return Value{}, nil
	}
}

// execBlock runs statements in place (not in a clone), checking the
// returning slot after each one so a nested return unwinds the block.
func (in *Interpreter) execBlock(body []Statement) (Value, error) {
	var result Value
	for _, stmt := range body {
		var err error
		result, err = in.execStatement(stmt)
		if err != nil {
			return Value{}, err
		}
		if in.returning != nil {
			return result, nil
		}
	}
	return result, nil
}

// execFunctionBody runs a function's statements and, once the
// returning slot is set, clears it and yields the returned value —
// the interpreter's only side channel for propagating a return out of
// arbitrarily nested blocks and loops.
func (in *Interpreter) execFunctionBody(body []Statement) (Value, error) {
	for _, stmt := range body {
		if _, err := in.execStatement(stmt); err != nil {
			return Value{}, err
		}
		if in.returning != nil {
			ret := *in.returning
			in.returning = nil
			return ret, nil
		}
	}
	return Value{}, nil
}

func (in *Interpreter) evalExpression(e Expression) (Value, error) {
	switch e.Kind {
	case ExprNumericLiteral:
		return NumberValue(e.NumValue), nil
	case ExprStringLiteral:
		return StringValue(e.StrValue), nil

	case ExprIdentifier:
		v, ok := in.Variables[e.Identifier.Name]
		if !ok {
			return Value{}, NewError(Undefined)
		}
		return v, nil

	case ExprBinary:
		lhs, err := in.evalExpression(*e.LHS)
		if err != nil {
			return Value{}, err
		}
		rhs, err := in.evalExpression(*e.RHS)
		if err != nil {
			return Value{}, err
		}
		switch e.Op {
		case BinaryPlus:
			return NumberValue(lhs.Number + rhs.Number), nil
		case BinaryMinus:
			return NumberValue(lhs.Number - rhs.Number), nil
		default:
			return Value{}, NewError(Undefined)
		}

	case ExprAssignment:
		if e.LHS.Kind != ExprIdentifier {
			return Value{}, NewError(Undefined)
		}
		v, err := in.evalExpression(*e.RHS)
		if err != nil {
			return Value{}, err
		}
		in.Variables[e.LHS.Identifier.Name] = v
		return v, nil

	case ExprCall:
		return in.evalCall(e)

	case ExprMember:
		object, err := in.evalExpression(*e.Object)
		if err != nil {
			return Value{}, err
		}
		// TODO: "foo".length and similar should be allowed.
		if !object.IsObject() {
			return Value{}, NewError(Undefined)
		}
		v, ok := object.Object[e.Property.Name]
		if !ok {
			return Value{}, NewError(Undefined)
		}
		return v, nil

	default:
		return Value{}, NewError(Undefined)
	}
}

// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Functions/arguments
func (in *Interpreter) evalCall(e Expression) (Value, error) {
	scope := in.clone()

	callee, err := in.evalExpression(*e.Callee)
	if err != nil {
		return Value{}, err
	}
	if !callee.IsFunction() && !callee.IsNativeFunction() {
		return Value{}, NewError(Undefined)
	}

	args := make([]Value, 0, len(e.Arguments))
	for _, argExpr := range e.Arguments {
		v, err := in.evalExpression(*argExpr)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}

	scope.Variables["arguments"] = ArrayValue(args)

	if callee.IsNativeFunction() {
		return callee.Native(args)
	}

	fn := callee.Function
	for i, param := range fn.Params {
		if i < len(args) {
			scope.Variables[param.Name] = args[i]
		} else {
			scope.Variables[param.Name] = Undefined
		}
	}
	return scope.execFunctionBody(fn.Body)
}
