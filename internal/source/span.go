package source

import (
	"fmt"
)

// FileID identifies one header/translation unit the model was built from.
type FileID uint32

// NoFileID marks declarations with no recorded origin.
const NoFileID FileID = 0

// Span points at the declaration site inside its file. The model keeps
// only line granularity; that is enough for diagnostics and doc lookup.
type Span struct {
	File FileID
	Line uint32
}

func (s Span) Empty() bool {
	return s.File == NoFileID && s.Line == 0
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.File, s.Line)
}
