package exprlang

// Predicate is an ICmp comparison predicate.
type Predicate int

// The comparison predicates an ICmp node can carry.
const (
	PredEQ Predicate = iota
	PredNE
	PredSGT
	PredSGE
	PredSLT
	PredSLE
	PredUGT
	PredUGE
	PredULT
	PredULE
)

func (p Predicate) String() string {
	switch p {
	case PredEQ:
		return "eq"
	case PredNE:
		return "ne"
	case PredSGT:
		return "sgt"
	case PredSGE:
		return "sge"
	case PredSLT:
		return "slt"
	case PredSLE:
		return "sle"
	case PredUGT:
		return "ugt"
	case PredUGE:
		return "uge"
	case PredULT:
		return "ult"
	case PredULE:
		return "ule"
	default:
		return "pred(?)"
	}
}
