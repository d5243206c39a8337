package wasm

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
)

// ModuleParseError enumerates the byte-code parser's failure taxonomy.
type ModuleParseError int

const (
	ErrUnexpectedEOF ModuleParseError = iota
	ErrInvalidMagic
	ErrUnsupportedVersion
	ErrInvalidSectionID
	ErrInvalidSize
	ErrInvalidTypeSection
	ErrInvalidImportSection
	ErrInvalidFunctionSection
	ErrInvalidTableSection
	ErrInvalidMemorySection
	ErrInvalidGlobalSection
	ErrInvalidExportSection
	ErrInvalidStartSection
	ErrInvalidCodeSection
	ErrInvalidDataSection
	ErrInvalidDataCountSection
	ErrInvalidCustomSection
	ErrUnhandledSection
)

func (e ModuleParseError) String() string {
	switch e {
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	case ErrInvalidMagic:
		return "invalid magic number"
	case ErrUnsupportedVersion:
		return "unsupported version"
	case ErrInvalidSectionID:
		return "invalid section id"
	case ErrInvalidSize:
		return "invalid section size"
	case ErrInvalidTypeSection:
		return "invalid type section"
	case ErrInvalidImportSection:
		return "invalid import section"
	case ErrInvalidFunctionSection:
		return "invalid function section"
	case ErrInvalidTableSection:
		return "invalid table section"
	case ErrInvalidMemorySection:
		return "invalid memory section"
	case ErrInvalidGlobalSection:
		return "invalid global section"
	case ErrInvalidExportSection:
		return "invalid export section"
	case ErrInvalidStartSection:
		return "invalid start section"
	case ErrInvalidCodeSection:
		return "invalid code section"
	case ErrInvalidDataSection:
		return "invalid data section"
	case ErrInvalidDataCountSection:
		return "invalid data count section"
	case ErrInvalidCustomSection:
		return "invalid custom section"
	case ErrUnhandledSection:
		return "unhandled section"
	default:
		return "unknown module parse error"
	}
}

func (e ModuleParseError) Error() string { return e.String() }

// maxSequenceSize caps every decoded vector's element count, bounding
// memory for a malformed or adversarial module.
const maxSequenceSize = 65535

const (
	magicSize   = 4
	versionSize = 4
)

type sectionID uint8

const (
	sectionCustom sectionID = iota
	sectionType
	sectionImport
	sectionFunction
	sectionTable
	sectionMemory
	sectionGlobal
	sectionExport
	sectionStart
	sectionElement
	sectionCode
	sectionData
	sectionDataCount
)

// byteCodeParser holds the single *bufio.Reader a Decode call reads
// sequentially from. It carries no state across calls.
type byteCodeParser struct {
	r   *bufio.Reader
	log *slog.Logger
}

// DecodeOption configures Decode.
type DecodeOption func(*byteCodeParser)

// WithLogger attaches a structured logger that Decode uses to report
// diagnostic detail (e.g. which section failed) at Debug level. Parse
// errors are still returned as values; logging is observability only.
func WithLogger(l *slog.Logger) DecodeOption {
	return func(p *byteCodeParser) { p.log = l }
}

// Decode parses a module from r's binary encoding.
func Decode(r io.Reader, opts ...DecodeOption) (*Module, error) {
	p := &byteCodeParser{r: bufio.NewReader(r), log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p.parseModule()
}

func (p *byteCodeParser) parseModule() (*Module, error) {
	magic := make([]byte, magicSize)
	if _, err := io.ReadFull(p.r, magic); err != nil || !bytes.Equal(magic, []byte("\x00asm")) {
		return nil, ErrInvalidMagic
	}

	version := make([]byte, versionSize)
	if _, err := io.ReadFull(p.r, version); err != nil || !bytes.Equal(version, []byte{1, 0, 0, 0}) {
		return nil, ErrUnsupportedVersion
	}

	m := &Module{}

	for {
		idByte, err := p.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		if idByte > uint8(sectionDataCount) {
			return nil, ErrInvalidSectionID
		}

		size, err := DecodeUint32(p.r)
		if err != nil {
			if err == UnexpectedEOF {
				return nil, ErrUnexpectedEOF
			}
			return nil, ErrInvalidSize
		}

		payload := make([]byte, size)
		if _, err := io.ReadFull(p.r, payload); err != nil {
			return nil, ErrUnexpectedEOF
		}
		sec := bufio.NewReader(bytes.NewReader(payload))

		switch sectionID(idByte) {
		case sectionCustom:
			name, err := parseName(sec)
			if err != nil {
				return nil, ErrInvalidCustomSection
			}
			data, _ := io.ReadAll(sec)
			m.CustomSections = append(m.CustomSections, CustomSection{Name: name, Data: data})
		case sectionType:
			ts, err := parseTypeSection(sec)
			if err != nil {
				return nil, ErrInvalidTypeSection
			}
			m.TypeSection = ts
		case sectionImport:
			is, err := parseImportSection(sec)
			if err != nil {
				return nil, ErrInvalidImportSection
			}
			m.ImportSection = is
		case sectionFunction:
			fs, err := parseFunctionSection(sec)
			if err != nil {
				return nil, ErrInvalidFunctionSection
			}
			m.FunctionSection = fs
		case sectionTable:
			ts, err := parseTableSection(sec)
			if err != nil {
				return nil, ErrInvalidTableSection
			}
			m.TableSection = ts
		case sectionMemory:
			ms, err := parseMemorySection(sec)
			if err != nil {
				return nil, ErrInvalidMemorySection
			}
			m.MemorySection = ms
		case sectionGlobal:
			gs, err := parseGlobalSection(sec)
			if err != nil {
				return nil, ErrInvalidGlobalSection
			}
			m.GlobalSection = gs
		case sectionExport:
			es, err := parseExportSection(sec)
			if err != nil {
				return nil, ErrInvalidExportSection
			}
			m.ExportSection = es
		case sectionStart:
			start, err := DecodeUint32(sec)
			if err != nil {
				return nil, ErrInvalidStartSection
			}
			m.StartSection = &StartSection{Start: start}
		case sectionCode:
			cs, err := parseCodeSection(sec)
			if err != nil {
				return nil, ErrInvalidCodeSection
			}
			m.CodeSection = cs
		case sectionData:
			ds, err := parseDataSection(sec)
			if err != nil {
				return nil, ErrInvalidDataSection
			}
			m.DataSection = ds
		case sectionDataCount:
			count, err := DecodeUint32(sec)
			if err != nil {
				return nil, ErrInvalidDataCountSection
			}
			m.DataCountSection = &DataCountSection{Count: count}
		default:
			p.log.Debug("unhandled wasm section", slog.Int("id", int(idByte)))
			return nil, ErrUnhandledSection
		}
	}

	return m, nil
}

func parseName(r *bufio.Reader) (string, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return "", Invalid
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", Invalid
	}
	for _, c := range buf {
		if c > 0x7f {
			return "", Invalid
		}
	}
	return string(buf), nil
}

func parseValueType(r *bufio.Reader) (ValueType, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	vt, ok := valueTypeFromByte(b)
	if !ok {
		return 0, Invalid
	}
	return vt, nil
}

func parseValueTypeVector(r *bufio.Reader) ([]ValueType, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	out := make([]ValueType, 0, n)
	for i := uint32(0); i < n; i++ {
		vt, err := parseValueType(r)
		if err != nil {
			return nil, err
		}
		out = append(out, vt)
	}
	return out, nil
}

func parseLimits(r *bufio.Reader) (Limits, error) {
	hasMax, err := r.ReadByte()
	if err != nil || hasMax > 1 {
		return Limits{}, Invalid
	}
	min, err := DecodeUint32(r)
	if err != nil {
		return Limits{}, err
	}
	if hasMax == 0 {
		return Limits{Min: min}, nil
	}
	max, err := DecodeUint32(r)
	if err != nil {
		return Limits{}, err
	}
	return Limits{Min: min, Max: &max}, nil
}

func parseGlobalType(r *bufio.Reader) (GlobalType, error) {
	vt, err := parseValueType(r)
	if err != nil {
		return GlobalType{}, err
	}
	mut, err := r.ReadByte()
	if err != nil || mut > 1 {
		return GlobalType{}, Invalid
	}
	return GlobalType{Type: vt, Mutable: mut != 0}, nil
}

func parseFunctionType(r *bufio.Reader) (FunctionType, error) {
	magic, err := r.ReadByte()
	if err != nil || magic != 0x60 {
		return FunctionType{}, Invalid
	}
	params, err := parseValueTypeVector(r)
	if err != nil {
		return FunctionType{}, err
	}
	results, err := parseValueTypeVector(r)
	if err != nil {
		return FunctionType{}, err
	}
	return FunctionType{Params: params, Results: results}, nil
}

func parseTableType(r *bufio.Reader) (TableType, error) {
	et, err := parseValueType(r)
	if err != nil || (et != FuncRef && et != ExternRef) {
		return TableType{}, Invalid
	}
	limits, err := parseLimits(r)
	if err != nil {
		return TableType{}, err
	}
	return TableType{ElementType: et, Limits: limits}, nil
}

func parseTypeSection(r *bufio.Reader) (*TypeSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	types := make([]FunctionType, 0, n)
	for i := uint32(0); i < n; i++ {
		ft, err := parseFunctionType(r)
		if err != nil {
			return nil, err
		}
		types = append(types, ft)
	}
	return &TypeSection{Types: types}, nil
}

func parseImport(r *bufio.Reader) (Import, error) {
	mod, err := parseName(r)
	if err != nil {
		return Import{}, err
	}
	name, err := parseName(r)
	if err != nil {
		return Import{}, err
	}
	kind, err := r.ReadByte()
	if err != nil {
		return Import{}, err
	}

	imp := Import{Module: mod, Name: name}
	switch kind {
	case 0x00:
		idx, err := DecodeUint32(r)
		if err != nil {
			return Import{}, err
		}
		imp.Kind = ImportFunc
		imp.FuncTypeIdx = idx
	case 0x01:
		tt, err := parseTableType(r)
		if err != nil {
			return Import{}, err
		}
		imp.Kind = ImportTable
		imp.TableType = tt
	case 0x02:
		mt, err := parseLimits(r)
		if err != nil {
			return Import{}, err
		}
		imp.Kind = ImportMemory
		imp.MemType = mt
	case 0x03:
		gt, err := parseGlobalType(r)
		if err != nil {
			return Import{}, err
		}
		imp.Kind = ImportGlobal
		imp.GlobalType = gt
	default:
		return Import{}, Invalid
	}
	return imp, nil
}

func parseImportSection(r *bufio.Reader) (*ImportSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	imports := make([]Import, 0, n)
	for i := uint32(0); i < n; i++ {
		imp, err := parseImport(r)
		if err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return &ImportSection{Imports: imports}, nil
}

func parseFunctionSection(r *bufio.Reader) (*FunctionSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	indices := make([]TypeIdx, 0, n)
	for i := uint32(0); i < n; i++ {
		idx, err := DecodeUint32(r)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
	}
	return &FunctionSection{TypeIndices: indices}, nil
}

func parseTableSection(r *bufio.Reader) (*TableSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	tables := make([]TableType, 0, n)
	for i := uint32(0); i < n; i++ {
		tt, err := parseTableType(r)
		if err != nil {
			return nil, err
		}
		tables = append(tables, tt)
	}
	return &TableSection{Tables: tables}, nil
}

func parseMemorySection(r *bufio.Reader) (*MemorySection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	mems := make([]MemType, 0, n)
	for i := uint32(0); i < n; i++ {
		lim, err := parseLimits(r)
		if err != nil {
			return nil, err
		}
		mems = append(mems, lim)
	}
	return &MemorySection{Memories: mems}, nil
}

func parseGlobalSection(r *bufio.Reader) (*GlobalSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	globals := make([]Global, 0, n)
	for i := uint32(0); i < n; i++ {
		gt, err := parseGlobalType(r)
		if err != nil {
			return nil, err
		}
		init, err := parseInstructions(r)
		if err != nil {
			return nil, err
		}
		globals = append(globals, Global{Type: gt, Init: init})
	}
	return &GlobalSection{Globals: globals}, nil
}

func parseExport(r *bufio.Reader) (Export, error) {
	name, err := parseName(r)
	if err != nil {
		return Export{}, err
	}
	kind, err := r.ReadByte()
	if err != nil || kind > 0x03 {
		return Export{}, Invalid
	}
	idx, err := DecodeUint32(r)
	if err != nil {
		return Export{}, err
	}
	return Export{Name: name, Kind: ExportKind(kind), Index: idx}, nil
}

func parseExportSection(r *bufio.Reader) (*ExportSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	exports := make([]Export, 0, n)
	for i := uint32(0); i < n; i++ {
		e, err := parseExport(r)
		if err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return &ExportSection{Exports: exports}, nil
}

func parseLocal(r *bufio.Reader) (Local, error) {
	count, err := DecodeUint32(r)
	if err != nil {
		return Local{}, err
	}
	vt, err := parseValueType(r)
	if err != nil {
		return Local{}, err
	}
	return Local{Count: count, Type: vt}, nil
}

func parseCodeEntry(r *bufio.Reader) (CodeEntry, error) {
	size, err := DecodeUint32(r)
	if err != nil {
		return CodeEntry{}, err
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return CodeEntry{}, Invalid
	}
	body := bufio.NewReader(bytes.NewReader(payload))

	n, err := DecodeUint32(body)
	if err != nil || n > maxSequenceSize {
		return CodeEntry{}, Invalid
	}
	locals := make([]Local, 0, n)
	for i := uint32(0); i < n; i++ {
		l, err := parseLocal(body)
		if err != nil {
			return CodeEntry{}, err
		}
		locals = append(locals, l)
	}

	code, err := parseInstructions(body)
	if err != nil {
		return CodeEntry{}, err
	}
	return CodeEntry{Locals: locals, Code: code}, nil
}

func parseCodeSection(r *bufio.Reader) (*CodeSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	entries := make([]CodeEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		e, err := parseCodeEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return &CodeSection{Entries: entries}, nil
}

const (
	activeDataTag           = 0
	passiveDataTag          = 1
	activeDataWithMemIdxTag = 2
)

func parseByteVector(r *bufio.Reader) ([]byte, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, Invalid
	}
	return buf, nil
}

func parseDataSegment(r *bufio.Reader) (DataSegment, error) {
	tag, err := DecodeUint32(r)
	if err != nil {
		return DataSegment{}, err
	}

	if tag == passiveDataTag {
		init, err := parseByteVector(r)
		if err != nil {
			return DataSegment{}, err
		}
		return DataSegment{Kind: DataPassive, Init: init}, nil
	}

	var memIdx uint32
	kind := DataActive
	switch tag {
	case activeDataWithMemIdxTag:
		kind = DataActiveWithMemoryIndex
		idx, err := DecodeUint32(r)
		if err != nil {
			return DataSegment{}, err
		}
		memIdx = idx
	case activeDataTag:
	default:
		return DataSegment{}, Invalid
	}

	offset, err := parseInstructions(r)
	if err != nil {
		return DataSegment{}, err
	}
	init, err := parseByteVector(r)
	if err != nil {
		return DataSegment{}, err
	}

	return DataSegment{Kind: kind, MemoryIdx: memIdx, Offset: offset, Init: init}, nil
}

func parseDataSection(r *bufio.Reader) (*DataSection, error) {
	n, err := DecodeUint32(r)
	if err != nil || n > maxSequenceSize {
		return nil, Invalid
	}
	data := make([]DataSegment, 0, n)
	for i := uint32(0); i < n; i++ {
		d, err := parseDataSegment(r)
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}
	return &DataSection{Data: data}, nil
}

func parseBlockType(r *bufio.Reader) (BlockType, error) {
	const emptyTag = 0x40
	b, err := r.ReadByte()
	if err != nil {
		return BlockType{}, err
	}
	if b == emptyTag {
		return BlockType{Kind: BlockTypeEmpty}, nil
	}
	if vt, ok := valueTypeFromByte(b); ok {
		return BlockType{Kind: BlockTypeValue, Value: vt}, nil
	}

	// Only the empty and single-value shapes are decoded; a type-index
	// block type (LEB128-signed) is rejected.
	return BlockType{}, Invalid
}

func parseMemArg(r *bufio.Reader) (MemArg, error) {
	align, err := DecodeUint32(r)
	if err != nil {
		return MemArg{}, err
	}
	offset, err := DecodeUint32(r)
	if err != nil {
		return MemArg{}, err
	}
	return MemArg{Align: align, Offset: offset}, nil
}

// parseInstructions performs a recursive-descent-free walk over a flat
// instruction stream, tracking block/loop nesting itself so an End at
// nesting zero terminates the sequence (the offset/init expressions in
// global and data segments share this same terminator rule).
func parseInstructions(r *bufio.Reader) ([]Instruction, error) {
	var out []Instruction
	nesting := 0

	for {
		opcode, err := r.ReadByte()
		if err != nil {
			return nil, Invalid
		}

		switch opcode {
		case byteBlock:
			bt, err := parseBlockType(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpBlock, BlockType: bt})
			nesting++
		case byteLoop:
			bt, err := parseBlockType(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpLoop, BlockType: bt})
			nesting++
		case byteBranch:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpBranch, Index: idx})
		case byteBranchIf:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpBranchIf, Index: idx})
		case byteCall:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpCall, Index: idx})
		case byteReturn:
			out = append(out, Instruction{Op: OpReturn})
		case byteEnd:
			out = append(out, Instruction{Op: OpEnd})
			if nesting == 0 {
				return out, nil
			}
			nesting--
		case byteI32Const:
			v, err := DecodeInt32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpI32Const, I32Value: v})
		case byteI32EqualZero:
			out = append(out, Instruction{Op: OpI32EqualZero})
		case byteI32Equal:
			out = append(out, Instruction{Op: OpI32Equal})
		case byteI32NotEqual:
			out = append(out, Instruction{Op: OpI32NotEqual})
		case byteI32LessThanSigned:
			out = append(out, Instruction{Op: OpI32LessThanSigned})
		case byteI32LessThanUnsigned:
			out = append(out, Instruction{Op: OpI32LessThanUnsigned})
		case byteI32GreaterThanSigned:
			out = append(out, Instruction{Op: OpI32GreaterThanSigned})
		case byteI32GreaterThanUnsigned:
			out = append(out, Instruction{Op: OpI32GreaterThanUnsigned})
		case byteI32LessThanEqualSigned:
			out = append(out, Instruction{Op: OpI32LessThanEqualSigned})
		case byteI32LessThanEqualUnsigned:
			out = append(out, Instruction{Op: OpI32LessThanEqualUnsigned})
		case byteI32GreaterThanEqualSigned:
			out = append(out, Instruction{Op: OpI32GreaterThanEqualSigned})
		case byteI32GreaterThanEqualUnsigned:
			out = append(out, Instruction{Op: OpI32GreaterThanEqualUnsigned})
		case byteI32CountLeadingZeros:
			out = append(out, Instruction{Op: OpI32CountLeadingZeros})
		case byteI32CountTrailingZeros:
			out = append(out, Instruction{Op: OpI32CountTrailingZeros})
		case byteI32PopulationCount:
			out = append(out, Instruction{Op: OpI32PopulationCount})
		case byteI32Add:
			out = append(out, Instruction{Op: OpI32Add})
		case byteI32Subtract:
			out = append(out, Instruction{Op: OpI32Subtract})
		case byteI32Multiply:
			out = append(out, Instruction{Op: OpI32Multiply})
		case byteI32DivideSigned:
			out = append(out, Instruction{Op: OpI32DivideSigned})
		case byteI32DivideUnsigned:
			out = append(out, Instruction{Op: OpI32DivideUnsigned})
		case byteI32RemainderSigned:
			out = append(out, Instruction{Op: OpI32RemainderSigned})
		case byteI32RemainderUnsigned:
			out = append(out, Instruction{Op: OpI32RemainderUnsigned})
		case byteI32And:
			out = append(out, Instruction{Op: OpI32And})
		case byteI32Or:
			out = append(out, Instruction{Op: OpI32Or})
		case byteI32ExclusiveOr:
			out = append(out, Instruction{Op: OpI32ExclusiveOr})
		case byteI32ShiftLeft:
			out = append(out, Instruction{Op: OpI32ShiftLeft})
		case byteI32ShiftRightSigned:
			out = append(out, Instruction{Op: OpI32ShiftRightSigned})
		case byteI32ShiftRightUnsigned:
			out = append(out, Instruction{Op: OpI32ShiftRightUnsigned})
		case byteI32RotateLeft:
			out = append(out, Instruction{Op: OpI32RotateLeft})
		case byteI32RotateRight:
			out = append(out, Instruction{Op: OpI32RotateRight})
		case byteI32WrapI64:
			out = append(out, Instruction{Op: OpI32WrapI64})
		case byteI32TruncateF32Signed:
			out = append(out, Instruction{Op: OpI32TruncateF32Signed})
		case byteI32TruncateF32Unsigned:
			out = append(out, Instruction{Op: OpI32TruncateF32Unsigned})
		case byteI32TruncateF64Signed:
			out = append(out, Instruction{Op: OpI32TruncateF64Signed})
		case byteI32TruncateF64Unsigned:
			out = append(out, Instruction{Op: OpI32TruncateF64Unsigned})
		case byteI32ReinterpretF32:
			out = append(out, Instruction{Op: OpI32ReinterpretF32})
		case byteI32Extend8Signed:
			out = append(out, Instruction{Op: OpI32Extend8Signed})
		case byteI32Extend16Signed:
			out = append(out, Instruction{Op: OpI32Extend16Signed})
		case byteLocalGet:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpLocalGet, Index: idx})
		case byteLocalSet:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpLocalSet, Index: idx})
		case byteLocalTee:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpLocalTee, Index: idx})
		case byteGlobalGet:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpGlobalGet, Index: idx})
		case byteGlobalSet:
			idx, err := DecodeUint32(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpGlobalSet, Index: idx})
		case byteI32Load:
			arg, err := parseMemArg(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpI32Load, MemArg: arg})
		case byteI32Store:
			arg, err := parseMemArg(r)
			if err != nil {
				return nil, err
			}
			out = append(out, Instruction{Op: OpI32Store, MemArg: arg})
		default:
			return nil, Invalid
		}
	}
}
