package schema

import (
	"regexp"
	"strings"
)

// Reference is a parsed schema reference. Three shapes are supported:
//
//   - "#/$defs/name"            — definition in the referencing document
//   - "/path/to/doc"            — another document's root schema
//   - "/path/to/doc#/$defs/name" — definition in another document
//
// Anything else (network URIs, query strings, other fragments) is an
// unsupported reference form. The resolver never fetches anything: a
// document path is only meaningful if a document with that ID was supplied
// to the same run.
type Reference struct {
	PathPrefix []string
	PathName   string
	Fragment   string
}

var refPattern = regexp.MustCompile(`^(?:((?:/[\w.-]+)*)/([\w.-]+))?(?:#/\$defs/([\w.-]+))?$`)

func NewReference(pathPrefix []string, pathName, fragment string) *Reference {
	return &Reference{
		PathPrefix: pathPrefix,
		PathName:   pathName,
		Fragment:   fragment,
	}
}

func FromPath(pathPrefix []string, pathName string) *Reference {
	return &Reference{
		PathPrefix: pathPrefix,
		PathName:   pathName,
	}
}

func FromFragment(fragment string) *Reference {
	return &Reference{Fragment: fragment}
}

// IsLocal reports whether the reference stays within the referencing
// document.
func (r *Reference) IsLocal() bool {
	return r.PathName == ""
}

// DocID returns the target document identifier, or "" for local
// references.
func (r *Reference) DocID() string {
	if r.IsLocal() {
		return ""
	}
	return "/" + strings.Join(append(append([]string{}, r.PathPrefix...), r.PathName), "/")
}

// Name returns the definition name the reference lands on, or the last
// document path segment for whole-document references.
func (r *Reference) Name() string {
	if r.Fragment != "" {
		return r.Fragment
	}
	return r.PathName
}

func (r *Reference) String() string {
	var b strings.Builder
	if !r.IsLocal() {
		for _, part := range r.PathPrefix {
			b.WriteByte('/')
			b.WriteString(part)
		}
		b.WriteByte('/')
		b.WriteString(r.PathName)
	}
	if r.Fragment != "" {
		b.WriteString("#/" + DefsKey + "/")
		b.WriteString(r.Fragment)
	}
	return b.String()
}

// ParseReference parses a reference string. Failures are returned as
// *ResolverError with Kind UnsupportedReferenceForm; the caller fills in
// the referencing location.
func ParseReference(s string) (*Reference, error) {
	if !strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "#") {
		return nil, &ResolverError{
			Kind:   UnsupportedReferenceForm,
			Ref:    s,
			Reason: "has scheme or is relative",
		}
	}
	if strings.Contains(s, "?") {
		return nil, &ResolverError{
			Kind:   UnsupportedReferenceForm,
			Ref:    s,
			Reason: "has query",
		}
	}
	m := refPattern.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "") {
		return nil, &ResolverError{
			Kind:   UnsupportedReferenceForm,
			Ref:    s,
			Reason: "invalid structure",
		}
	}
	var prefix []string
	if m[1] != "" {
		prefix = strings.Split(m[1], "/")[1:]
	}
	return &Reference{
		PathPrefix: prefix,
		PathName:   m[2],
		Fragment:   m[3],
	}, nil
}
