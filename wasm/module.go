package wasm

// TypeIdx and FuncIdx index into a module's type and function spaces:
// https://webassembly.github.io/spec/core/binary/modules.html#indices.
type TypeIdx = uint32
type FuncIdx = uint32

// TypeSection is the vector of function signatures a module declares.
type TypeSection struct {
	Types []FunctionType
}

// ImportKind discriminates what an Import brings into scope.
type ImportKind int

const (
	ImportFunc ImportKind = iota
	ImportTable
	ImportMemory
	ImportGlobal
)

// Import is one entry of the import section:
// https://webassembly.github.io/spec/core/binary/modules.html#binary-import.
// Only the field matching Kind is populated.
type Import struct {
	Module string
	Name   string
	Kind   ImportKind

	FuncTypeIdx TypeIdx
	TableType   TableType
	MemType     MemType
	GlobalType  GlobalType
}

// ImportSection is a module's vector of imports.
type ImportSection struct {
	Imports []Import
}

// FunctionSection maps each locally-defined function to its signature.
type FunctionSection struct {
	TypeIndices []TypeIdx
}

// TableSection is a module's vector of table declarations.
type TableSection struct {
	Tables []TableType
}

// MemorySection is a module's vector of memory declarations.
type MemorySection struct {
	Memories []MemType
}

// Global is one entry of the global section: a type plus a constant
// initializer expression.
type Global struct {
	Type GlobalType
	Init []Instruction
}

// GlobalSection is a module's vector of global declarations.
type GlobalSection struct {
	Globals []Global
}

// ExportKind discriminates what an Export names.
type ExportKind int

const (
	ExportFunc ExportKind = iota
	ExportTable
	ExportMemory
	ExportGlobal
)

// Export is one entry of the export section:
// https://webassembly.github.io/spec/core/binary/modules.html#binary-export.
type Export struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// ExportSection is a module's vector of exports.
type ExportSection struct {
	Exports []Export
}

// StartSection names the function to run automatically once the
// module is instantiated.
type StartSection struct {
	Start FuncIdx
}

// Local is a run of locals sharing one declared type.
type Local struct {
	Count uint32
	Type  ValueType
}

// CodeEntry is one function body: its declared locals plus its
// instruction sequence.
type CodeEntry struct {
	Locals []Local
	Code   []Instruction
}

// CodeSection is a module's vector of function bodies, one per entry
// in the function section, same length and order.
type CodeSection struct {
	Entries []CodeEntry
}

// DataSegmentKind discriminates the three-valued tag of a data-section
// entry: https://webassembly.github.io/spec/core/binary/modules.html#data-section.
type DataSegmentKind int

const (
	DataActive DataSegmentKind = iota
	DataPassive
	DataActiveWithMemoryIndex
)

// DataSegment is one entry of the data section. Offset is populated
// only for active segments.
type DataSegment struct {
	Kind      DataSegmentKind
	MemoryIdx uint32
	Offset    []Instruction
	Init      []byte
}

// DataSection is a module's vector of data segments.
type DataSection struct {
	Data []DataSegment
}

// DataCountSection records the number of data segments, allowing
// memory.init/data.drop to validate ahead of the data section itself.
type DataCountSection struct {
	Count uint32
}

// CustomSection is an opaque, name-tagged section preserved verbatim;
// the parser never interprets its payload.
type CustomSection struct {
	Name string
	Data []byte
}

// Module is the decoded record of every section a module binary can
// carry. Optional sections are nil when absent.
type Module struct {
	TypeSection       *TypeSection
	ImportSection     *ImportSection
	FunctionSection   *FunctionSection
	TableSection      *TableSection
	MemorySection     *MemorySection
	GlobalSection     *GlobalSection
	ExportSection     *ExportSection
	StartSection      *StartSection
	CodeSection       *CodeSection
	DataSection       *DataSection
	DataCountSection  *DataCountSection
	CustomSections    []CustomSection
}
