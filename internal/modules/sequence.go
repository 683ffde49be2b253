package modules

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Sequence hands out module aliases. One Sequence is owned by each
// compilation; numbers increase in registration order.
type Sequence struct {
	n int
}

func (s *Sequence) Next() int {
	s.n++
	return s.n
}

// Alias returns a unique identifier-safe alias for the module at path.
func (s *Sequence) Alias(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var sb strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9' && i > 0:
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String() + "_" + strconv.Itoa(s.Next())
}
