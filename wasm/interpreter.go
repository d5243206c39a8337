package wasm

import (
	"encoding/binary"
	"math/bits"
)

// Trap enumerates the fatal runtime conditions the interpreter can
// raise; a trap terminates the current Run.
type Trap int

const (
	MemoryAccessOutOfBounds Trap = iota
	UnhandledInstruction
)

func (t Trap) String() string {
	switch t {
	case MemoryAccessOutOfBounds:
		return "memory access out of bounds"
	case UnhandledInstruction:
		return "unhandled instruction"
	default:
		return "unknown trap"
	}
}

func (t Trap) Error() string { return t.String() }

// Interpreter is a concrete stack machine that runs a flat slice of
// instructions — not a full module. It does not nest call frames: the
// validator fully models control flow, but Run traps with
// UnhandledInstruction if execution actually reaches a Block, Loop,
// Branch, BranchIf, or Call.
type Interpreter struct {
	Stack   []int32
	Locals  []int32
	Globals []int32
	Memory  []byte

	features Features
}

// InterpreterOption configures NewInterpreter.
type InterpreterOption func(*Interpreter)

// WithFeatures sets the interpreter's feature gates, typically
// resolved via FeaturesFromConfig. All gates default to enabled.
func WithFeatures(f Features) InterpreterOption {
	return func(in *Interpreter) { in.features = f }
}

// NewInterpreter returns an interpreter with the given locals, globals,
// and a zeroed linear memory of memSize bytes.
func NewInterpreter(locals, globals []int32, memSize int, opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{
		Locals:   locals,
		Globals:  globals,
		Memory:   make([]byte, memSize),
		features: DefaultFeatures(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run steps through insns one at a time, returning the top of the
// value stack once execution reaches the end of the sequence (or no
// value if the stack is empty).
func (in *Interpreter) Run(insns []Instruction) (*int32, error) {
	for _, inst := range insns {
		if err := in.step(inst); err != nil {
			return nil, err
		}
	}
	if len(in.Stack) == 0 {
		return nil, nil
	}
	top := in.Stack[len(in.Stack)-1]
	return &top, nil
}

func (in *Interpreter) push(v int32) { in.Stack = append(in.Stack, v) }

func (in *Interpreter) pop() int32 {
	v := in.Stack[len(in.Stack)-1]
	in.Stack = in.Stack[:len(in.Stack)-1]
	return v
}

func (in *Interpreter) step(inst Instruction) error {
	switch inst.Op {
	case OpI32Const:
		in.push(inst.I32Value)
		return nil

	case OpI32EqualZero:
		v := in.pop()
		in.push(boolToI32(v == 0))
		return nil
	case OpI32CountLeadingZeros:
		v := in.pop()
		in.push(int32(bits.LeadingZeros32(uint32(v))))
		return nil
	case OpI32CountTrailingZeros:
		v := in.pop()
		in.push(int32(bits.TrailingZeros32(uint32(v))))
		return nil
	case OpI32PopulationCount:
		v := in.pop()
		in.push(int32(bits.OnesCount32(uint32(v))))
		return nil

	case OpI32Equal:
		return in.relop(func(l, r int32) bool { return l == r })
	case OpI32NotEqual:
		return in.relop(func(l, r int32) bool { return l != r })
	case OpI32LessThanSigned:
		return in.relop(func(l, r int32) bool { return l < r })
	case OpI32LessThanUnsigned:
		return in.relopU(func(l, r uint32) bool { return l < r })
	case OpI32GreaterThanSigned:
		return in.relop(func(l, r int32) bool { return l > r })
	case OpI32GreaterThanUnsigned:
		return in.relopU(func(l, r uint32) bool { return l > r })
	case OpI32LessThanEqualSigned:
		return in.relop(func(l, r int32) bool { return l <= r })
	case OpI32LessThanEqualUnsigned:
		return in.relopU(func(l, r uint32) bool { return l <= r })
	case OpI32GreaterThanEqualSigned:
		return in.relop(func(l, r int32) bool { return l >= r })
	case OpI32GreaterThanEqualUnsigned:
		return in.relopU(func(l, r uint32) bool { return l >= r })

	case OpI32Add:
		return in.binop(func(l, r int32) int32 { return l + r })
	case OpI32Subtract:
		return in.binop(func(l, r int32) int32 { return l - r })
	case OpI32Multiply:
		return in.binop(func(l, r int32) int32 { return l * r })
	case OpI32DivideSigned:
		return in.binopErr(func(l, r int32) (int32, error) {
			if r == 0 {
				return 0, UnhandledInstruction
			}
			return l / r, nil
		})
	case OpI32DivideUnsigned:
		return in.binopErr(func(l, r int32) (int32, error) {
			if r == 0 {
				return 0, UnhandledInstruction
			}
			return int32(uint32(l) / uint32(r)), nil
		})
	case OpI32RemainderSigned:
		return in.binopErr(func(l, r int32) (int32, error) {
			if r == 0 {
				return 0, UnhandledInstruction
			}
			return l % r, nil
		})
	case OpI32RemainderUnsigned:
		return in.binopErr(func(l, r int32) (int32, error) {
			if r == 0 {
				return 0, UnhandledInstruction
			}
			return int32(uint32(l) % uint32(r)), nil
		})
	case OpI32And:
		return in.binop(func(l, r int32) int32 { return l & r })
	case OpI32Or:
		return in.binop(func(l, r int32) int32 { return l | r })
	case OpI32ExclusiveOr:
		return in.binop(func(l, r int32) int32 { return l ^ r })
	case OpI32ShiftLeft:
		return in.binopU(func(l, r uint32) uint32 { return l << (r % 32) })
	case OpI32ShiftRightSigned:
		return in.binop(func(l, r int32) int32 { return l >> (uint32(r) % 32) })
	case OpI32ShiftRightUnsigned:
		return in.binopU(func(l, r uint32) uint32 { return l >> (r % 32) })
	case OpI32RotateLeft:
		return in.binopU(func(l, r uint32) uint32 { return bits.RotateLeft32(l, int(r)) })
	case OpI32RotateRight:
		return in.binopU(func(l, r uint32) uint32 { return bits.RotateLeft32(l, -int(r)) })

	case OpI32WrapI64, OpI32TruncateF32Signed, OpI32TruncateF32Unsigned,
		OpI32TruncateF64Signed, OpI32TruncateF64Unsigned, OpI32ReinterpretF32:
		// The value stack is i32-only; conversions from i64/f32/f64
		// operands have no source operand representation here.
		return UnhandledInstruction

	case OpI32Extend8Signed:
		if !in.features.SignExtension {
			return UnhandledInstruction
		}
		v := in.pop()
		in.push(int32(int8(v)))
		return nil
	case OpI32Extend16Signed:
		if !in.features.SignExtension {
			return UnhandledInstruction
		}
		v := in.pop()
		in.push(int32(int16(v)))
		return nil

	case OpLocalGet:
		in.push(in.Locals[inst.Index])
		return nil
	case OpLocalSet:
		in.Locals[inst.Index] = in.pop()
		return nil
	case OpLocalTee:
		in.Locals[inst.Index] = in.Stack[len(in.Stack)-1]
		return nil
	case OpGlobalGet:
		in.push(in.Globals[inst.Index])
		return nil
	case OpGlobalSet:
		in.Globals[inst.Index] = in.pop()
		return nil

	case OpI32Load:
		i := in.pop()
		ea := int64(i) + int64(inst.MemArg.Offset)
		if ea < 0 || ea+4 > int64(len(in.Memory)) {
			return MemoryAccessOutOfBounds
		}
		in.push(int32(binary.LittleEndian.Uint32(in.Memory[ea : ea+4])))
		return nil

	case OpI32Store:
		toStore := in.pop()
		i := in.pop()
		ea := int64(i) + int64(inst.MemArg.Offset)
		if ea < 0 || ea+4 > int64(len(in.Memory)) {
			return MemoryAccessOutOfBounds
		}
		binary.LittleEndian.PutUint32(in.Memory[ea:ea+4], uint32(toStore))
		return nil

	default:
		// Block, Loop, Branch, BranchIf, Call, Return, End: the validator
		// models these fully, but this interpreter does not implement
		// nested frames.
		return UnhandledInstruction
	}
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (in *Interpreter) relop(op func(l, r int32) bool) error {
	rhs := in.pop()
	lhs := in.pop()
	in.push(boolToI32(op(lhs, rhs)))
	return nil
}

func (in *Interpreter) relopU(op func(l, r uint32) bool) error {
	rhs := uint32(in.pop())
	lhs := uint32(in.pop())
	in.push(boolToI32(op(lhs, rhs)))
	return nil
}

func (in *Interpreter) binop(op func(l, r int32) int32) error {
	rhs := in.pop()
	lhs := in.pop()
	in.push(op(lhs, rhs))
	return nil
}

func (in *Interpreter) binopU(op func(l, r uint32) uint32) error {
	rhs := uint32(in.pop())
	lhs := uint32(in.pop())
	in.push(int32(op(lhs, rhs)))
	return nil
}

func (in *Interpreter) binopErr(op func(l, r int32) (int32, error)) error {
	rhs := in.pop()
	lhs := in.pop()
	v, err := op(lhs, rhs)
	if err != nil {
		return err
	}
	in.push(v)
	return nil
}
