package mushaf

import "errors"

// Edition type constants.
const (
	TypeMadinah = "madinah-604"
	TypeIndoPak = "indopak"
	TypeCustom  = "custom"
)

// Domain errors
var (
	ErrUnknownType = errors.New("unknown mushaf type")
	ErrZeroPages   = errors.New("total pages must be greater than zero")
)

// Edition describes a printed mushaf layout. The pacing engine only
// cares about the page count; type and name are kept for display and
// export metadata.
type Edition struct {
	Type       string
	Name       string
	TotalPages int
}

// Known editions by type.
var editions = map[string]Edition{
	TypeMadinah: {Type: TypeMadinah, Name: "Madinah Mushaf", TotalPages: 604},
	TypeIndoPak: {Type: TypeIndoPak, Name: "IndoPak Mushaf", TotalPages: 611},
}

// ByType returns the well-known edition for a type string.
// PRE: t is one of the Type* constants other than TypeCustom
// POST: Returns the edition or ErrUnknownType
func ByType(t string) (Edition, error) {
	e, ok := editions[t]
	if !ok {
		return Edition{}, ErrUnknownType
	}
	return e, nil
}

// Custom builds a custom edition with the given page count.
// PRE: totalPages > 0
// POST: Returns a TypeCustom edition or ErrZeroPages
func Custom(totalPages int) (Edition, error) {
	if totalPages <= 0 {
		return Edition{}, ErrZeroPages
	}
	return Edition{Type: TypeCustom, Name: "Custom Mushaf", TotalPages: totalPages}, nil
}

// Validate checks if the Edition has valid data.
// PRE: Edition struct is populated
// POST: Returns nil if valid, error otherwise
func (e Edition) Validate() error {
	if e.TotalPages <= 0 {
		return ErrZeroPages
	}
	if e.Type != TypeMadinah && e.Type != TypeIndoPak && e.Type != TypeCustom {
		return ErrUnknownType
	}
	return nil
}
