package typesystem

import "fmt"

// ArityError reports a generic alias instantiated with the wrong number of
// type arguments.
type ArityError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("Generic type '%s' requires %d type argument(s), got %d", e.Name, e.Expected, e.Got)
}

// NotGenericError reports type arguments applied to a non-generic type.
type NotGenericError struct {
	Name string
}

func (e *NotGenericError) Error() string {
	return fmt.Sprintf("Type '%s' is not generic", e.Name)
}

// CheckArity validates args against the parameters of a.
func CheckArity(a *Alias, args []Type) error {
	if len(a.Params) == 0 && len(args) > 0 {
		return &NotGenericError{Name: a.Name}
	}
	if len(a.Params) != len(args) {
		return &ArityError{Name: a.Name, Expected: len(a.Params), Got: len(args)}
	}
	return nil
}
