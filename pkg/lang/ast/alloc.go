package ast

import "errors"

// ErrRegisterExhausted is returned by [RegisterFile.Acquire] when no scratch
// register is free in the requested class. Callers treat it as a fatal
// compilation error for the probe (expression too complex), not a retry.
var ErrRegisterExhausted = errors.New("out of scratch registers")

// Register identifies one scratch register of the target register file.
type Register int

// The three callee-saved scratch registers available to compiled probes.
const (
	Reg6 Register = 6
	Reg7 Register = 7
	Reg8 Register = 8
)

// RegClass is the role a register is acquired for.
type RegClass int

// Register classes.
const (
	// RegStatic holds values that stay live across the whole probe.
	RegStatic RegClass = iota
	// RegDynamic holds values live within a single expression.
	RegDynamic
)

func (c RegClass) String() string {
	if c == RegStatic {
		return "static"
	}

	return "dynamic"
}

// RegisterFile tracks the availability of the scratch registers for one
// probe's compilation. The file is split on demand between the static and
// dynamic classes, each with its own availability mask.
//
// Allocation is monotonic: once a register is acquired by either class it is
// permanently excluded from both for the remainder of the probe. There is no
// release operation. This is deliberate; the two masks model two roles drawn
// from one shared file, so Acquire tests the AND of both masks and clears the
// bit only in the requested class's mask.
type RegisterFile struct {
	masks [2]uint32
}

const regFileFull = 1<<Reg6 | 1<<Reg7 | 1<<Reg8

// NewRegisterFile returns a file with every register available to both
// classes.
func NewRegisterFile() RegisterFile {
	return RegisterFile{masks: [2]uint32{regFileFull, regFileFull}}
}

// Acquire returns the lowest-numbered register still available to both
// classes and claims it for the requested one. It returns
// [ErrRegisterExhausted] when no register qualifies.
func (f *RegisterFile) Acquire(class RegClass) (Register, error) {
	pool := &f.masks[class]
	compl := &f.masks[1-class]

	for reg := Reg6; reg <= Reg8; reg++ {
		bit := uint32(1) << reg
		if *pool&*compl&bit != 0 {
			*pool &^= bit

			return reg, nil
		}
	}

	return 0, ErrRegisterExhausted
}
