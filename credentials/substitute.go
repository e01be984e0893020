package credentials

import (
	"fmt"
	"regexp"
	"strings"
)

var variableRef = regexp.MustCompile(`\$\{([A-Za-z0-9_.-]+)\}`)

// ErrUnresolved wraps the names that could not be substituted.
type ErrUnresolved struct {
	Names []string
}

func (e *ErrUnresolved) Error() string {
	return fmt.Sprintf("credentials: unresolved variables: %s", strings.Join(e.Names, ", "))
}

// Substitute replaces every ${name} reference in s with the stored value.
// Unknown references leave the input untouched and are reported together.
func (s *Store) Substitute(input string) (string, error) {
	var missing []string
	out := variableRef.ReplaceAllStringFunc(input, func(ref string) string {
		name := variableRef.FindStringSubmatch(ref)[1]
		value, ok := s.variables[name]
		if !ok {
			missing = append(missing, name)
			return ref
		}
		return value
	})

	if len(missing) > 0 {
		return input, &ErrUnresolved{Names: missing}
	}
	return out, nil
}
