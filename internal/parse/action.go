package parse

import (
	"fmt"

	"github.com/Youngermaster/Context-Free-Grammar-Parser/internal/grammar"
)

// LRActionType classifies an SLR(1) ACTION table entry.
type LRActionType int

const (
	LRShift LRActionType = iota
	LRReduce
	LRAccept
	LRError
)

func (t LRActionType) String() string {
	switch t {
	case LRShift:
		return "shift"
	case LRReduce:
		return "reduce"
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

// LRAction is one ACTION[state, terminal] table entry.
type LRAction struct {
	Type LRActionType

	// Production is used when Type is LRReduce: the production A -> β being
	// reduced (its LHS is A itself).
	Production grammar.Production

	// State is the target state, used when Type is LRShift.
	State int
}

func (a LRAction) String() string {
	switch a.Type {
	case LRShift:
		return fmt.Sprintf("shift %d", a.State)
	case LRReduce:
		return fmt.Sprintf("reduce %s", a.Production.String())
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

func (a LRAction) Equal(o LRAction) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case LRShift:
		return a.State == o.State
	case LRReduce:
		return a.Production.Equal(o.Production)
	default:
		return true
	}
}

// isShiftReduce reports whether a1 and a2 form a shift/reduce pair, and if
// so which of the two is the reduce action.
func isShiftReduce(a1, a2 LRAction) (reduce LRAction, ok bool) {
	if a1.Type == LRShift && a2.Type == LRReduce {
		return a2, true
	}
	if a2.Type == LRShift && a1.Type == LRReduce {
		return a1, true
	}
	return LRAction{}, false
}
