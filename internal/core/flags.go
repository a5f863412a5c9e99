package core

// Flags holds the three condition booleans updated by arithmetic and
// bitwise operations.
type Flags struct {
	Zero     bool
	Sign     bool
	Overflow bool
}

// updateArith sets Zero/Sign from result at width w and Overflow from the
// operation's own reported overflow bit.
func (f *Flags) updateArith(w Width, result uint64, overflow bool) {
	f.Zero = w.IsZero(result)
	f.Sign = w.IsSigned(result)
	f.Overflow = overflow
}

// updateBitwise sets Zero/Sign from result and always clears Overflow.
func (f *Flags) updateBitwise(w Width, result uint64) {
	f.updateArith(w, result, false)
}

// Greater reports whether the last Compare found the left operand strictly
// greater than the right: ¬overflow ∧ ¬zero.
func (f Flags) Greater() bool { return !f.Overflow && !f.Zero }

// Lesser reports overflow ∧ ¬zero (the borrow-without-equality case).
func (f Flags) Lesser() bool { return f.Overflow && !f.Zero }

// GreaterOrEqual reports ¬overflow ∨ zero.
func (f Flags) GreaterOrEqual() bool { return !f.Overflow || f.Zero }

// LesserOrEqual reports overflow ∨ zero.
func (f Flags) LesserOrEqual() bool { return f.Overflow || f.Zero }
