package catalog

import "fmt"

// ConfigFormatError reports a malformed document or a value of the wrong shape.
type ConfigFormatError struct {
	Path   string // dotted path of the offending value; empty for the whole document
	Reason string
	Err    error
}

func (e *ConfigFormatError) Error() string {
	where := e.Path
	if where == "" {
		where = "document"
	}
	if e.Err != nil {
		return fmt.Sprintf("catalog: invalid %s: %s: %v", where, e.Reason, e.Err)
	}
	return fmt.Sprintf("catalog: invalid %s: %s", where, e.Reason)
}

func (e *ConfigFormatError) Unwrap() error {
	return e.Err
}

// ConfigMissingFieldError reports a required field absent from the document.
type ConfigMissingFieldError struct {
	Field string
}

func (e *ConfigMissingFieldError) Error() string {
	return fmt.Sprintf("catalog: missing required field %q", e.Field)
}

// UnknownSetError is returned when a music set is not in the catalog.
type UnknownSetError struct {
	Set string
}

func (e *UnknownSetError) Error() string {
	return fmt.Sprintf("unknown music set %q", e.Set)
}

// UnknownHourError is returned when a set has no entry for the hour label.
type UnknownHourError struct {
	Set  string
	Hour string
}

func (e *UnknownHourError) Error() string {
	return fmt.Sprintf("music set %q has no sample for hour %q", e.Set, e.Hour)
}
