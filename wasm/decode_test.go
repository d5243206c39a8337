package wasm

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmptyModule(t *testing.T) {
	m, err := Decode(bytes.NewReader([]byte("\x00asm\x01\x00\x00\x00")))
	require.NoError(t, err)
	assert.Nil(t, m.TypeSection)
	assert.Nil(t, m.FunctionSection)
}

func TestDecodeInvalidMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("hello")))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("\x00asm\x02\x00\x00\x00")))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeFunctionAndCodeSectionsMatch(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("\x00asm\x01\x00\x00\x00")

	// Type section: one function type () -> ().
	buf.Write([]byte{byte(sectionType), 0x04, 0x01, 0x60, 0x00, 0x00})
	// Function section: one function using type 0.
	buf.Write([]byte{byte(sectionFunction), 0x02, 0x01, 0x00})
	// Code section: one empty body (no locals, single `end`).
	buf.Write([]byte{byte(sectionCode), 0x04, 0x01, 0x02, 0x00, byteEnd})

	m, err := Decode(&buf)
	require.NoError(t, err)
	require.NotNil(t, m.FunctionSection)
	require.NotNil(t, m.CodeSection)
	assert.Equal(t, len(m.FunctionSection.TypeIndices), len(m.CodeSection.Entries))

	want := &Module{
		TypeSection:     &TypeSection{Types: []FunctionType{{}}},
		FunctionSection: &FunctionSection{TypeIndices: []TypeIdx{0}},
		CodeSection:     &CodeSection{Entries: []CodeEntry{{Code: []Instruction{{Op: OpEnd}}}}},
	}
	if diff := cmp.Diff(want, m, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("decoded module mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCustomSectionPreservedVerbatim(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("\x00asm\x01\x00\x00\x00")

	name := []byte("name")
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	section := append([]byte{byte(len(name))}, name...)
	section = append(section, payload...)
	buf.Write([]byte{byte(sectionCustom), byte(len(section))})
	buf.Write(section)

	m, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, m.CustomSections, 1)
	assert.Equal(t, "name", m.CustomSections[0].Name)
	assert.Equal(t, payload, m.CustomSections[0].Data)
}
