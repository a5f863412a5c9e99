package core

import "strings"

// paramDecoder consumes the parameter tokens following a mnemonic and
// produces one decoded Instruction.
type paramDecoder func(params []string) (Instruction, error)

var mnemonicTable map[string]paramDecoder

func init() {
	mnemonicTable = make(map[string]paramDecoder)

	mnemonicTable["stop"] = noArgs(Instruction{Op: OpStop})
	mnemonicTable["ret"] = noArgs(Instruction{Op: OpReturn})
	mnemonicTable["nop"] = noArgs(Instruction{Op: OpNop})
	mnemonicTable["call"] = oneOperandWidth64(OpCall)

	jumps := map[string]JumpCond{
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
	for mnemonic, cond := range jumps {
		mnemonicTable[mnemonic] = jumpDecoder(cond)
	}

	for _, w := range []Width{WidthByte, WidthQuarter, WidthHalf, WidthWord} {
		s := string(w.Suffix())

		mnemonicTable["set"+s] = regOperand(OpSet, w)
		mnemonicTable["add"+s] = regOperand(OpAdd, w)
		mnemonicTable["sub"+s] = regOperand(OpSub, w)
		mnemonicTable["mul"+s] = regOperand(OpMul, w)
		mnemonicTable["div"+s] = regOperand(OpDiv, w)
		mnemonicTable["rem"+s] = regOperand(OpRem, w)
		mnemonicTable["and"+s] = regOperand(OpAnd, w)
		mnemonicTable["or"+s] = regOperand(OpOr, w)
		mnemonicTable["xor"+s] = regOperand(OpXor, w)

		mnemonicTable["not"+s] = oneRegister(OpNot, w)
		mnemonicTable["pop"+s] = oneRegister(OpPop, w)
		mnemonicTable["prr"+s] = oneRegister(OpPrintRegister, w)

		mnemonicTable["tst"+s] = operandOperand(OpTest, w)
		mnemonicTable["cmp"+s] = operandOperand(OpCompare, w)

		mnemonicTable["psh"+s] = onePushOperand(w)
		mnemonicTable["prs"+s] = onePrintStackOperand(w, false)
	}
	mnemonicTable["prss"] = onePrintStackOperand(WidthByte, true)
}

// DecodeLine implements spec §4.5: split on ASCII whitespace, resolve the
// mnemonic, dispatch to its parameter decoder.
func DecodeLine(line string) (Instruction, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Instruction{}, ErrEmptyLine
	}

	decode, ok := mnemonicTable[tokens[0]]
	if !ok {
		return Instruction{}, &UnknownInstruction{Token: tokens[0]}
	}

	return decode(tokens[1:])
}

func noArgs(instr Instruction) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 0 {
			return Instruction{}, ErrIncompleteInstruction
		}
		return instr, nil
	}
}

// decodeRegisterToken resolves a parameter that must name a register,
// following the same lowercase-first ordering spec §4.4 uses for operands:
// a digit-shaped token is never a register, it's simply not the shape this
// position requires.
func decodeRegisterToken(tok string) (Register, error) {
	if isLowerAlpha(tok) {
		r, ok := ParseRegisterName(tok)
		if !ok {
			return 0, &InvalidRegister{Token: tok}
		}
		return r, nil
	}
	return 0, &InvalidOperand{Token: tok}
}

func oneRegister(op Op, w Width) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 1 {
			return Instruction{}, ErrIncompleteInstruction
		}
		r, err := decodeRegisterToken(params[0])
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Width: w, Dst: r}, nil
	}
}

func regOperand(op Op, w Width) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 2 {
			return Instruction{}, ErrIncompleteInstruction
		}
		r, err := decodeRegisterToken(params[0])
		if err != nil {
			return Instruction{}, err
		}
		operand, err := DecodeOperand(params[1], w)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Width: w, Dst: r, Src: operand}, nil
	}
}

func operandOperand(op Op, w Width) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 2 {
			return Instruction{}, ErrIncompleteInstruction
		}
		lhs, err := DecodeOperand(params[0], w)
		if err != nil {
			return Instruction{}, err
		}
		rhs, err := DecodeOperand(params[1], w)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Width: w, Src: lhs, Rhs: rhs}, nil
	}
}

func onePushOperand(w Width) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 1 {
			return Instruction{}, ErrIncompleteInstruction
		}
		operand, err := DecodeOperand(params[0], w)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpPush, Width: w, Src: operand}, nil
	}
}

func onePrintStackOperand(w Width, str bool) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 1 {
			return Instruction{}, ErrIncompleteInstruction
		}
		operand, err := DecodeOperand(params[0], WidthWord)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpPrintStack, Width: w, Src: operand, Str: str}, nil
	}
}

func oneOperandWidth64(op Op) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 1 {
			return Instruction{}, ErrIncompleteInstruction
		}
		operand, err := DecodeOperand(params[0], WidthWord)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Width: WidthWord, Src: operand}, nil
	}
}

func jumpDecoder(cond JumpCond) paramDecoder {
	return func(params []string) (Instruction, error) {
		if len(params) != 1 {
			return Instruction{}, ErrIncompleteInstruction
		}
		operand, err := DecodeOperand(params[0], WidthWord)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: OpJump, Width: WidthWord, Src: operand, Cond: cond}, nil
	}
}

// IsMnemonic reports whether tok names a recognized instruction mnemonic —
// used by the preprocessor to reject function labels that collide with one
// (spec §4.7's FunctionNamedAfterInstruction check).
func IsMnemonic(tok string) bool {
	_, ok := mnemonicTable[tok]
	return ok
}
