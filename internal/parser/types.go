package parser

// SourceLine is one line of analysed text after normalization
type SourceLine struct {
	Number int    // 1-based
	Text   string // comments stripped, outer whitespace trimmed
}

// Origin describes which pattern family discovered an allocation
type Origin int

const (
	OriginDeclared Origin = iota // type name = (cast) alloc(...)
	OriginAssigned               // name = (cast) alloc(...)
)

func (o Origin) String() string {
	switch o {
	case OriginDeclared:
		return "declared"
	case OriginAssigned:
		return "assigned"
	}
	return "unknown"
}

// AllocationRecord represents a matched allocation site
type AllocationRecord struct {
	VarName string
	Origin  Origin
	Line    int
	InLoop  bool // line contains "for" or "while"
}

// FindingKind classifies hygiene findings
type FindingKind string

const (
	KindReassigned      FindingKind = "reassigned-without-free"
	KindUnusedFuncInit  FindingKind = "unused-function-pointer"
	KindSourceChanged   FindingKind = "source-changed"
	KindInputUnreadable FindingKind = "input-unavailable"
)

// Finding represents an advisory diagnostic
type Finding struct {
	File     string      `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int         `json:"line" yaml:"line"`
	VarName  string      `json:"variable" yaml:"variable"`
	Kind     FindingKind `json:"kind" yaml:"kind"`
	Reason   string      `json:"reason" yaml:"reason"`
	Severity string      `json:"severity" yaml:"severity"` // always "warning"
}

// Message renders the finding as a diagnostic line
func (f Finding) Message() string {
	return "Warning: " + f.Reason
}
