package immo

import "fmt"

// Diagnostic records a record that was skipped or degraded during a computation.
//
// A diagnostic never aborts the batch: the rest of the result is still valid.
type Diagnostic struct {
	Source  string // "loan", "obligation", "property", "lease", "index"
	ID      string // identifier of the offending record, if any
	Message string
}

func (d Diagnostic) String() string {
	if d.ID == "" {
		return fmt.Sprintf("%s: %s", d.Source, d.Message)
	}
	return fmt.Sprintf("%s %q: %s", d.Source, d.ID, d.Message)
}

func (d Diagnostic) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("source", d.Source)
	w.Optional("id", d.ID)
	w.Append("message", d.Message)
	return w.MarshalJSON()
}

// Diagnostics is an ordered list of Diagnostic.
type Diagnostics []Diagnostic

// add appends a diagnostic built from err.
func (ds *Diagnostics) add(source, id string, err error) {
	*ds = append(*ds, Diagnostic{Source: source, ID: id, Message: err.Error()})
}

// addf appends a diagnostic with a formatted message.
func (ds *Diagnostics) addf(source, id string, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Source: source, ID: id, Message: fmt.Sprintf(format, args...)})
}
