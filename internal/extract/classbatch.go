package extract

import (
	"regexp"
	"strings"
)

// RefKind tags a class/batch reference.
type RefKind string

// Reference kinds.
const (
	RefBatch RefKind = "batch"
	RefClass RefKind = "class"
	RefNone  RefKind = "none"
)

// ClassBatchRef is an extracted class or batch designator, uppercased.
// A batch is a class with a numeric group suffix: 7CE-A-2 is batch 2 of
// class 7CE-A.
type ClassBatchRef struct {
	Kind RefKind
	Name string
}

// The batch pattern is a superset of the class pattern, so it must be tried
// first: the looser class regex would otherwise swallow the prefix of every
// batch reference.
var (
	batchPattern = regexp.MustCompile(`(\d+[A-Z]{2,3}-[A-Z]-\d+)`)
	classPattern = regexp.MustCompile(`(\d+[A-Z]{2,3}-[A-Z])\b`)
)

// ClassBatch extracts a class or batch reference from text.
// Returns RefNone with an empty name when no designator is present.
func ClassBatch(text string) ClassBatchRef {
	upper := strings.ToUpper(text)

	if m := batchPattern.FindStringSubmatch(upper); m != nil {
		return ClassBatchRef{Kind: RefBatch, Name: m[1]}
	}
	if m := classPattern.FindStringSubmatch(upper); m != nil {
		return ClassBatchRef{Kind: RefClass, Name: m[1]}
	}
	return ClassBatchRef{Kind: RefNone}
}

// HasClassToken reports whether text contains anything class-shaped
// (the bare class pattern, which also matches the prefix of batch names).
func HasClassToken(text string) bool {
	return classPattern.MatchString(strings.ToUpper(text))
}

// HasBatchToken reports whether text contains a full batch reference with
// the numeric group suffix.
func HasBatchToken(text string) bool {
	return batchPattern.MatchString(strings.ToUpper(text))
}
