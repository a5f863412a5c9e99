package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeErrorsAreStable(t *testing.T) {
	_, err := DecodeLine("cmpb")
	assert.ErrorIs(t, err, ErrIncompleteInstruction)

	_, err = DecodeLine("cmpb ra")
	assert.ErrorIs(t, err, ErrIncompleteInstruction)

	_, err = DecodeLine("cmpb rx ra")
	var invReg *InvalidRegister
	require.ErrorAs(t, err, &invReg)
	assert.Equal(t, "rx", invReg.Token)

	_, err = DecodeLine("cmpb -1 ra")
	var invImm *InvalidImmediateValue
	require.ErrorAs(t, err, &invImm)
	assert.Equal(t, "-1", invImm.Token)

	_, err = DecodeLine("cmpb 200u8 ra")
	var invOperand *InvalidOperand
	require.ErrorAs(t, err, &invOperand)
	assert.Equal(t, "200u8", invOperand.Token)

	instr, err := DecodeLine("cmpb ra rb")
	require.NoError(t, err)
	assert.Equal(t, OpCompare, instr.Op)
}

func TestDecodeEmptyLine(t *testing.T) {
	_, err := DecodeLine("")
	assert.ErrorIs(t, err, ErrEmptyLine)

	_, err = DecodeLine("   ")
	assert.ErrorIs(t, err, ErrEmptyLine)
}

func TestDecodeUnknownMnemonic(t *testing.T) {
	_, err := DecodeLine("frobnicate ra")
	var unk *UnknownInstruction
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "frobnicate", unk.Token)
}

func TestDecodeAllWidthSuffixes(t *testing.T) {
	for _, suffix := range []string{"b", "q", "h", "w"} {
		instr, err := DecodeLine("add" + suffix + " ra 1")
		require.NoError(t, err)
		assert.Equal(t, OpAdd, instr.Op)
	}
}

func TestDecodeJumpVariants(t *testing.T) {
	cases := map[string]JumpCond{
		"jmp": JumpUnconditional,
		"jiz": JumpIfZero,
		"jnz": JumpIfNotZero,
		"jis": JumpIfSign,
		"jns": JumpIfNotSign,
		"jio": JumpIfOverflow,
		"jno": JumpIfNotOverflow,
		"jig": JumpIfGreater,
		"jil": JumpIfLesser,
		"jge": JumpIfGreaterOrEqual,
		"jle": JumpIfLesserOrEqual,
	}
	for mnemonic, cond := range cases {
		instr, err := DecodeLine(mnemonic + " 10")
		require.NoError(t, err)
		assert.Equal(t, OpJump, instr.Op)
		assert.Equal(t, cond, instr.Cond)
		assert.Equal(t, uint64(10), instr.Src.Value)
	}
}

func TestDecodeStopRetNopTakeNoArgs(t *testing.T) {
	_, err := DecodeLine("stop")
	require.NoError(t, err)
	_, err = DecodeLine("stop 1")
	assert.ErrorIs(t, err, ErrIncompleteInstruction)

	_, err = DecodeLine("ret")
	require.NoError(t, err)
	_, err = DecodeLine("ret 1")
	assert.ErrorIs(t, err, ErrIncompleteInstruction)

	_, err = DecodeLine("nop")
	require.NoError(t, err)
	_, err = DecodeLine("nop 1")
	assert.ErrorIs(t, err, ErrIncompleteInstruction)
}

func TestDecodePrintStackStringVariant(t *testing.T) {
	instr, err := DecodeLine("prss 2")
	require.NoError(t, err)
	assert.Equal(t, OpPrintStack, instr.Op)
	assert.True(t, instr.Str)
}
