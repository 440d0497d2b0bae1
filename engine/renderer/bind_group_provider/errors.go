package bind_group_provider

import "fmt"

// MissingResourceError is returned by Entries when a layout binding has no resource stored for it.
type MissingResourceError struct {
	Label   string
	Binding int
	Kind    string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("bind group %q: binding %d has no %s", e.Label, e.Binding, e.Kind)
}
