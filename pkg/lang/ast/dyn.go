package ast

// Loc says where a value lives once the later passes have placed it.
type Loc int

// Storage locations.
const (
	// LocNowhere means no placement decision has been made yet.
	LocNowhere Loc = iota
	// LocVirtual marks compile-time-only values that never materialize.
	LocVirtual
	// LocReg places the value in a scratch register.
	LocReg
	// LocStack places the value in the probe's stack frame.
	LocStack
)

func (l Loc) String() string {
	switch l {
	case LocNowhere:
		return "nowhere"
	case LocVirtual:
		return "virtual"
	case LocReg:
		return "reg"
	case LocStack:
		return "stack"
	}

	return "UNKNOWN"
}

// Provider is the resolved trace source of a probe. The concrete
// implementations live in pkg/lang/provider; the core only needs a stable
// identity to report.
type Provider interface {
	Name() string
}

// Dyn is the mutable annotation attached to every node. The parser leaves it
// zeroed; type inference fills Type and Size, the code generator fills Loc
// and the location payload.
//
// Ownership: every node owns its Dyn exclusively, except map and var nodes,
// whose Dyn is shared with the symbol table so that decisions made at one use
// site are visible at all of them. Shared annotations are owned by the table
// and survive tree release.
type Dyn struct {
	Type Kind
	Size int64
	Loc  Loc

	// Reg is valid when Loc == LocReg, Addr when Loc == LocStack.
	Reg  Register
	Addr int64

	// Probe is non-nil on probe nodes only.
	Probe *ProbeDyn
}

// ProbeDyn is the probe-only annotation extension: the per-probe register
// file, the frame stack pointer, and the resolved provider.
type ProbeDyn struct {
	Regs     RegisterFile
	SP       int64
	Provider Provider
}

// AcquireStack carves size bytes out of the probe's stack frame and returns
// the new, lower offset as the base of the region. The stack pointer only
// decreases; regions are never reclaimed within one probe's compilation.
func (pd *ProbeDyn) AcquireStack(size int64) int64 {
	pd.SP -= size

	return pd.SP
}
