package evaluator

// Verdict is the tri-state outcome of judging a model response. NeedsReview
// means no heuristic rule could judge the response and a human must.
type Verdict int

const (
	NeedsReview Verdict = iota
	Pass
	Fail
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Pass:
		return "Pass"
	case Fail:
		return "Fail"
	default:
		return "NeedsReview"
	}
}

// ParseVerdict maps a report cell back to a Verdict. An empty cell is
// NeedsReview; that is how reviews serialize.
func ParseVerdict(s string) (Verdict, bool) {
	switch s {
	case "Pass":
		return Pass, true
	case "Fail":
		return Fail, true
	case "":
		return NeedsReview, true
	default:
		return NeedsReview, false
	}
}
