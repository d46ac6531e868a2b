package diag

import (
	"fmt"
)

// Code identifies a diagnostic class. Codes are stable: tools key on them.
type Code uint16

const (
	UnknownCode Code = 0

	// Model loading (manifest -> session).
	ModelInfo          Code = 1000
	ModelBadManifest   Code = 1001
	ModelUnknownType   Code = 1002
	ModelUnknownClass  Code = 1003
	ModelDuplicateName Code = 1004

	// Introspection queries.
	MetaInfo             Code = 2000
	MetaNoEnclosingClass Code = 2001
	MetaDeduceFailed     Code = 2002
	MetaLookupFailed     Code = 2003

	// Export utility.
	ExportInfo        Code = 3000
	ExportWriteFailed Code = 3001
)

func (c Code) String() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("MDL%04d", uint16(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("RFL%04d", uint16(c))
	case c >= 3000 && c < 4000:
		return fmt.Sprintf("EXP%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}
