package schema

import "fmt"

// ErrorKind classifies reference resolution failures.
type ErrorKind int

const (
	UnknownDocument ErrorKind = iota + 1
	DanglingReference
	UnsupportedReferenceForm
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownDocument:
		return "unknown document"
	case DanglingReference:
		return "dangling reference"
	case UnsupportedReferenceForm:
		return "unsupported reference form"
	}
	return "<unknown error kind>"
}

// ResolverError reports a reference that could not be resolved. DocID and
// Path locate the referencing node; Ref is the reference text as written.
type ResolverError struct {
	Kind   ErrorKind
	DocID  string
	Path   string
	Ref    string
	Reason string
}

func (e *ResolverError) Error() string {
	loc := e.DocID
	if e.Path != "" {
		loc += " ." + e.Path
	}
	msg := fmt.Sprintf("%s: %q", e.Kind, e.Ref)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if loc != "" {
		return msg + " at " + loc
	}
	return msg
}

// CombineErrorKind classifies combine failures.
type CombineErrorKind int

const (
	UnresolvableReference CombineErrorKind = iota + 1
	UnboundedClosure
)

func (k CombineErrorKind) String() string {
	switch k {
	case UnresolvableReference:
		return "unresolvable reference"
	case UnboundedClosure:
		return "unbounded closure"
	}
	return "<unknown combine error kind>"
}

// CombinerError aborts a combine. The merge is all-or-nothing: no partial
// output accompanies the error.
type CombinerError struct {
	Kind  CombineErrorKind
	DocID string
	Path  string
	Ref   string
	Err   error
}

func (e *CombinerError) Error() string {
	loc := e.DocID
	if e.Path != "" {
		loc += " ." + e.Path
	}
	msg := fmt.Sprintf("%s: %q at %s", e.Kind, e.Ref, loc)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CombinerError) Unwrap() error {
	return e.Err
}
