package wasm

// ValidationError enumerates every precondition the validator can
// reject a module or function body for.
type ValidationError int

const (
	ErrBlockTypeInvalid ValidationError = iota
	ErrCodeSectionUndefined
	ErrControlStackEmpty
	ErrFuncTypeInvalid
	ErrFunctionSectionUndefined
	ErrFuncUndefinedCode
	ErrLabelInvalid
	ErrLocalUndefined
	ErrMemoryBadAlignment
	ErrMemoryEmpty
	ErrMemorySectionUndefined
	ErrTableInvalid
	ErrTypeSectionUndefined
	ErrUnknownInstruction
	ErrValueStackHeightMismatch
	ErrValueStackUnderflow
	ErrValueStackUnexpected
)

func (e ValidationError) String() string {
	switch e {
	case ErrBlockTypeInvalid:
		return "block type of a block or loop is invalid"
	case ErrCodeSectionUndefined:
		return "a code section is required, but was not defined"
	case ErrControlStackEmpty:
		return "attempted to pop from the control stack, but the control stack is empty"
	case ErrFuncTypeInvalid:
		return "function section references a non-existent type"
	case ErrFunctionSectionUndefined:
		return "a function section is required, but was not defined"
	case ErrFuncUndefinedCode:
		return "function body is undefined/missing"
	case ErrLabelInvalid:
		return "attempted to branch to a label which isn't valid"
	case ErrLocalUndefined:
		return "attempted to index a local which isn't defined in the current code entry"
	case ErrMemoryBadAlignment:
		return "attempted a load or store with a bad alignment value"
	case ErrMemoryEmpty:
		return "attempted a load, but memory is empty"
	case ErrMemorySectionUndefined:
		return "attempted a load or store, but no memory section was defined"
	case ErrTableInvalid:
		return "a table has invalid limits"
	case ErrTypeSectionUndefined:
		return "a type section is required, but was not defined"
	case ErrUnknownInstruction:
		return "unknown instruction encountered"
	case ErrValueStackHeightMismatch:
		return "value stack height on exiting a control frame does not match the height on entry"
	case ErrValueStackUnderflow:
		return "attempted to pop from the value stack, but stack height would underflow"
	case ErrValueStackUnexpected:
		return "attempted to pop an expected value from the value stack, but got a different value"
	default:
		return "unknown validation error"
	}
}

func (e ValidationError) Error() string { return e.String() }

// valueOrUnknown models the operand-stack entry type: either a known
// ValueType or the polymorphic Unknown sentinel produced after
// unreachable code is entered.
type valueOrUnknown struct {
	known   bool
	unknown bool
	value   ValueType
}

func known(v ValueType) valueOrUnknown { return valueOrUnknown{known: true, value: v} }

var unknownValue = valueOrUnknown{unknown: true}

func (v valueOrUnknown) equalOrUnknown(other valueOrUnknown) bool {
	if v.unknown || other.unknown {
		return true
	}
	return v.known == other.known && v.value == other.value
}

// controlFrame tracks one nested block/loop's typing context, per
// https://webassembly.github.io/spec/core/appendix/algorithm.html#validation-algorithm.
type controlFrame struct {
	isLoop      bool
	params      []ValueType
	results     []ValueType
	stackHeight int
	unreachable bool
}

// instValidator is the abstract interpreter driving the operand/control
// stack discipline.
type instValidator struct {
	valueStack   []valueOrUnknown
	controlStack []controlFrame
}

func (v *instValidator) pushVal(val valueOrUnknown) {
	v.valueStack = append(v.valueStack, val)
}

func (v *instValidator) popVal() (valueOrUnknown, error) {
	top := v.controlStack[len(v.controlStack)-1]
	if len(v.valueStack) == top.stackHeight && top.unreachable {
		return unknownValue, nil
	}
	if len(v.valueStack) == top.stackHeight {
		return valueOrUnknown{}, ErrValueStackUnderflow
	}
	val := v.valueStack[len(v.valueStack)-1]
	v.valueStack = v.valueStack[:len(v.valueStack)-1]
	return val, nil
}

func (v *instValidator) popValExpect(expected valueOrUnknown) (valueOrUnknown, error) {
	actual, err := v.popVal()
	if err != nil {
		return valueOrUnknown{}, err
	}
	if !actual.equalOrUnknown(expected) {
		return valueOrUnknown{}, ErrValueStackUnexpected
	}
	return actual, nil
}

func (v *instValidator) pushVals(vals []ValueType) {
	for _, val := range vals {
		v.pushVal(known(val))
	}
}

func (v *instValidator) popVals(vals []ValueType) error {
	for i := len(vals) - 1; i >= 0; i-- {
		if _, err := v.popValExpect(known(vals[i])); err != nil {
			return err
		}
	}
	return nil
}

func (v *instValidator) pushCtrl(isLoop bool, params, results []ValueType) {
	if len(params) > 0 {
		v.pushVals(params)
	}
	v.controlStack = append(v.controlStack, controlFrame{
		isLoop:      isLoop,
		params:      params,
		results:     results,
		stackHeight: len(v.valueStack),
	})
}

func (v *instValidator) popCtrl() (controlFrame, error) {
	if len(v.controlStack) == 0 {
		return controlFrame{}, ErrControlStackEmpty
	}
	frame := v.controlStack[len(v.controlStack)-1]
	if len(frame.results) > 0 {
		if err := v.popVals(frame.results); err != nil {
			return controlFrame{}, err
		}
	}
	if len(v.valueStack) != frame.stackHeight {
		return controlFrame{}, ErrValueStackHeightMismatch
	}
	v.controlStack = v.controlStack[:len(v.controlStack)-1]
	return frame, nil
}

// labelTypes returns the types a branch to frame must supply: a
// loop's label is typed by its params (the loop re-enters with them),
// any other frame's label is typed by its results.
func labelTypes(frame controlFrame) []ValueType {
	if frame.isLoop {
		return frame.params
	}
	return frame.results
}

func (v *instValidator) markUnreachable() {
	top := &v.controlStack[len(v.controlStack)-1]
	v.valueStack = v.valueStack[:top.stackHeight]
	top.unreachable = true
}

// isValidBlockType checks a block type's type-index operand against
// the module's type section, per
// https://webassembly.github.io/spec/core/valid/types.html#block-types.
func isValidBlockType(bt BlockType, m *Module) bool {
	if bt.Kind != BlockTypeIndex {
		return true
	}
	if m.TypeSection == nil {
		return false
	}
	return bt.TypeIndex < uint32(len(m.TypeSection.Types))
}

// isValidLimits checks min <= max <= k, per
// https://webassembly.github.io/spec/core/valid/types.html#limits.
func isValidLimits(l Limits, k uint64) bool {
	if uint64(l.Min) > k {
		return false
	}
	if l.Max != nil {
		if uint64(*l.Max) > k || *l.Max < l.Min {
			return false
		}
	}
	return true
}

func isValidTableType(t TableType) bool {
	return isValidLimits(t.Limits, (1<<32)-1)
}

// validateFunction runs the abstract interpretation over one
// function's instruction sequence, per
// https://webassembly.github.io/spec/core/valid/instructions.html#instruction-sequences.
func validateFunction(funcIdx int, m *Module, fs *FunctionSection, ts *TypeSection, cs *CodeSection) error {
	funcType := ts.Types[fs.TypeIndices[funcIdx]]
	funcCode := cs.Entries[funcIdx]

	if len(funcCode.Code) == 0 {
		return nil
	}

	v := &instValidator{}
	v.pushCtrl(false, funcType.Params, funcType.Results)

	for _, inst := range funcCode.Code {
		switch {
		case inst.Op == OpI32Const:
			v.pushVal(known(I32))

		case inst.Op == OpI32WrapI64:
			if _, err := v.popValExpect(known(I64)); err != nil {
				return err
			}
			v.pushVal(known(I32))

		case inst.Op == OpI32TruncateF32Signed || inst.Op == OpI32TruncateF32Unsigned || inst.Op == OpI32ReinterpretF32:
			if _, err := v.popValExpect(known(F32)); err != nil {
				return err
			}
			v.pushVal(known(I32))

		case inst.Op == OpI32TruncateF64Signed || inst.Op == OpI32TruncateF64Unsigned:
			if _, err := v.popValExpect(known(F64)); err != nil {
				return err
			}
			v.pushVal(known(I32))

		case inst.Op.isUnopOrTestop():
			if _, err := v.popValExpect(known(I32)); err != nil {
				return err
			}
			v.pushVal(known(I32))

		case inst.Op.isBinop() || inst.Op.isRelop():
			if _, err := v.popValExpect(known(I32)); err != nil {
				return err
			}
			if _, err := v.popValExpect(known(I32)); err != nil {
				return err
			}
			v.pushVal(known(I32))

		case inst.Op == OpLocalGet:
			t, err := localType(funcCode, inst.Index)
			if err != nil {
				return err
			}
			v.pushVal(known(t))

		case inst.Op == OpLocalSet:
			t, err := localType(funcCode, inst.Index)
			if err != nil {
				return err
			}
			if _, err := v.popValExpect(known(t)); err != nil {
				return err
			}

		case inst.Op == OpLocalTee:
			t, err := localType(funcCode, inst.Index)
			if err != nil {
				return err
			}
			if _, err := v.popValExpect(known(t)); err != nil {
				return err
			}
			v.pushVal(known(t))

		case inst.Op == OpGlobalGet:
			t, err := globalType(m, inst.Index)
			if err != nil {
				return err
			}
			v.pushVal(known(t))

		case inst.Op == OpGlobalSet:
			t, err := globalType(m, inst.Index)
			if err != nil {
				return err
			}
			if _, err := v.popValExpect(known(t)); err != nil {
				return err
			}

		case inst.Op == OpI32Load:
			if m.MemorySection == nil {
				return ErrMemorySectionUndefined
			}
			if len(m.MemorySection.Memories) == 0 {
				return ErrMemoryEmpty
			}
			if inst.MemArg.Align > 32/8 {
				return ErrMemoryBadAlignment
			}
			if _, err := v.popValExpect(known(I32)); err != nil {
				return err
			}
			v.pushVal(known(I32))

		case inst.Op == OpI32Store:
			if m.MemorySection == nil {
				return ErrMemorySectionUndefined
			}
			if len(m.MemorySection.Memories) == 0 {
				return ErrMemoryEmpty
			}
			if inst.MemArg.Align > 32/8 {
				return ErrMemoryBadAlignment
			}
			if _, err := v.popValExpect(known(I32)); err != nil {
				return err
			}
			if _, err := v.popValExpect(known(I32)); err != nil {
				return err
			}

		case inst.Op == OpBlock:
			if !isValidBlockType(inst.BlockType, m) {
				return ErrBlockTypeInvalid
			}
			params, results := blockSignature(inst.BlockType, ts)
			v.pushCtrl(false, params, results)

		case inst.Op == OpLoop:
			if !isValidBlockType(inst.BlockType, m) {
				return ErrBlockTypeInvalid
			}
			params, results := blockSignature(inst.BlockType, ts)
			v.pushCtrl(true, params, results)

		case inst.Op == OpEnd:
			frame, err := v.popCtrl()
			if err != nil {
				return err
			}
			v.pushVals(frame.results)

		case inst.Op == OpBranch:
			if uint32(len(v.controlStack)) <= inst.Index {
				return ErrLabelInvalid
			}
			target := v.controlStack[len(v.controlStack)-1-int(inst.Index)]
			if err := v.popVals(labelTypes(target)); err != nil {
				return err
			}
			v.markUnreachable()

		case inst.Op == OpBranchIf:
			if uint32(len(v.controlStack)) <= inst.Index {
				return ErrLabelInvalid
			}
			if _, err := v.popValExpect(known(I32)); err != nil {
				return err
			}
			target := v.controlStack[len(v.controlStack)-1-int(inst.Index)]
			if err := v.popVals(labelTypes(target)); err != nil {
				return err
			}
			v.pushVals(labelTypes(target))

		case inst.Op == OpReturn:
			if err := v.popVals(labelTypes(v.controlStack[0])); err != nil {
				return err
			}
			v.markUnreachable()

		default:
			return ErrUnknownInstruction
		}
	}

	last := funcCode.Code[len(funcCode.Code)-1]
	if last.Op != OpReturn && len(v.controlStack) > 0 {
		if err := v.popVals(labelTypes(v.controlStack[0])); err != nil {
			return err
		}
	}

	return nil
}

func localType(entry CodeEntry, idx uint32) (ValueType, error) {
	var i uint32
	for _, l := range entry.Locals {
		if idx < i+l.Count {
			return l.Type, nil
		}
		i += l.Count
	}
	return 0, ErrLocalUndefined
}

func globalType(m *Module, idx uint32) (ValueType, error) {
	if m.GlobalSection != nil && idx < uint32(len(m.GlobalSection.Globals)) {
		return m.GlobalSection.Globals[idx].Type.Type, nil
	}
	return 0, ErrLocalUndefined
}

func blockSignature(bt BlockType, ts *TypeSection) (params, results []ValueType) {
	switch bt.Kind {
	case BlockTypeValue:
		return nil, []ValueType{bt.Value}
	case BlockTypeIndex:
		ft := ts.Types[bt.TypeIndex]
		return ft.Params, ft.Results
	default:
		return nil, nil
	}
}

func validateFunctions(m *Module, fs *FunctionSection) error {
	if m.TypeSection == nil {
		return ErrTypeSectionUndefined
	}
	if m.CodeSection == nil {
		return ErrCodeSectionUndefined
	}

	for i := range fs.TypeIndices {
		if fs.TypeIndices[i] >= uint32(len(m.TypeSection.Types)) {
			return ErrFuncTypeInvalid
		}
		if i >= len(m.CodeSection.Entries) {
			return ErrFuncUndefinedCode
		}
		if err := validateFunction(i, m, fs, m.TypeSection, m.CodeSection); err != nil {
			return err
		}
	}
	return nil
}

// Validate runs the type-checking abstract interpretation over every
// function body and table declaration in m, per
// https://webassembly.github.io/spec/core/valid/modules.html#modules.
func Validate(m *Module) error {
	if m.FunctionSection != nil {
		if err := validateFunctions(m, m.FunctionSection); err != nil {
			return err
		}
	}

	if m.TableSection != nil {
		for _, t := range m.TableSection.Tables {
			if !isValidTableType(t) {
				return ErrTableInvalid
			}
		}
	}

	return nil
}
