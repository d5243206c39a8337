package wasm

// ValueType is the tagged enum of value types the binary format can
// name: https://webassembly.github.io/spec/core/syntax/types.html.
type ValueType uint8

const (
	I32 ValueType = iota
	I64
	F32
	F64
	V128
	FuncRef
	ExternRef
)

func (v ValueType) String() string {
	switch v {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case V128:
		return "v128"
	case FuncRef:
		return "funcref"
	case ExternRef:
		return "externref"
	default:
		return "unknown"
	}
}

// valueTypeFromByte decodes a single value-type tag byte per
// https://webassembly.github.io/spec/core/binary/types.html.
func valueTypeFromByte(b byte) (ValueType, bool) {
	switch b {
	case 0x7f:
		return I32, true
	case 0x7e:
		return I64, true
	case 0x7d:
		return F32, true
	case 0x7c:
		return F64, true
	case 0x7b:
		return V128, true
	case 0x70:
		return FuncRef, true
	case 0x6f:
		return ExternRef, true
	default:
		return 0, false
	}
}

// Limits bounds a table or memory's size:
// https://webassembly.github.io/spec/core/binary/types.html#limits.
type Limits struct {
	Min uint32
	Max *uint32
}

// FunctionType is a function signature:
// https://webassembly.github.io/spec/core/binary/types.html#function-types.
type FunctionType struct {
	Params  []ValueType
	Results []ValueType
}

func equalFunctionTypes(a, b FunctionType) bool {
	return equalValueTypes(a.Params, b.Params) && equalValueTypes(a.Results, b.Results)
}

func equalValueTypes(a, b []ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TableType is an element type plus its size limits:
// https://webassembly.github.io/spec/core/binary/types.html#table-types.
type TableType struct {
	ElementType ValueType
	Limits      Limits
}

// MemType reuses Limits: a memory's size is measured in 64KiB pages.
type MemType = Limits

// GlobalType is a value type plus a mutability flag.
type GlobalType struct {
	Type    ValueType
	Mutable bool
}
