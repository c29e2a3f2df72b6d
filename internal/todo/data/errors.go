package data

import "fmt"

// ValidationError reports input that fails a shape check, such as an empty
// title or a duplicate ID during a collection replace.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError reports an operation that targets a task ID not present in
// the collection.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// FormatError reports input that cannot be decoded as text at all. Malformed
// content inside otherwise decodable text is recovered with defaults instead.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return e.Msg
}
