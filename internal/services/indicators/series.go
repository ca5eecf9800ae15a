package indicators

import (
	"fmt"

	"EquityLens/internal/domain/models"
)

// Series is a derived indicator aligned index-for-index with its source
// closes. Values before First are undefined and must not be read; callers
// that need "is this defined" check i >= First instead of testing for zero.
type Series struct {
	Values []float64 `json:"values"`
	First  int       `json:"first"`
}

// Last returns the latest defined value.
func (s Series) Last() float64 {
	return s.Values[len(s.Values)-1]
}

// Defined reports whether index i holds a computed value.
func (s Series) Defined(i int) bool {
	return i >= s.First && i < len(s.Values)
}

func requireHistory(n, need int, name string) error {
	if n < need {
		return fmt.Errorf("%w: %s needs %d closes, got %d", models.ErrInsufficientHistory, name, need, n)
	}
	return nil
}
