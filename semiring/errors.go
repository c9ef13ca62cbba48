package semiring

import "fmt"

// Error reports a semiring division that has no defined result: dividing
// by a zero weight, dividing a string by one that is not its prefix, or
// dividing Gallic weights whose inner semiring is not weakly divisible.
type Error struct {
	Semiring string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("semiring %s: %s", e.Semiring, e.Message)
}

func errNotDivisible(semiring, reason string) error {
	return &Error{Semiring: semiring, Message: "not divisible: " + reason}
}
