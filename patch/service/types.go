package service

import "fmt"

// Rule is a single regular-expression substitution.
type Rule struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Entry pairs a file path with the rules applied to it, in order.
type Entry struct {
	Path  string `json:"path" yaml:"path"`
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Spec is the ordered patch table driving a run.
type Spec []Entry

// Status is the outcome kind of one entry.
type Status string

const (
	StatusNotFound  Status = "not_found"
	StatusFixed     Status = "fixed"
	StatusUnchanged Status = "unchanged"
	StatusError     Status = "error"
)

// Result captures the outcome for one entry.
type Result struct {
	Path    string `json:"path"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
	Matches int    `json:"matches,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

// Report aggregates a whole run.
type Report struct {
	RunID     string   `json:"runId"`
	DryRun    bool     `json:"dryRun,omitempty"`
	Results   []Result `json:"results"`
	Fixed     int      `json:"fixed"`
	Unchanged int      `json:"unchanged"`
	NotFound  int      `json:"notFound"`
	Failed    int      `json:"failed"`
}

// Err returns the entry failure, if any. Missing files match ErrNotFound.
func (r Result) Err() error {
	switch r.Status {
	case StatusNotFound:
		return fmt.Errorf("%s: %w", r.Path, ErrNotFound)
	case StatusError:
		return fmt.Errorf("%s: %s", r.Path, r.Error)
	}
	return nil
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusFixed:
		r.Fixed++
	case StatusUnchanged:
		r.Unchanged++
	case StatusNotFound:
		r.NotFound++
	case StatusError:
		r.Failed++
	}
}

// RunInput is the tool-facing request for a run.
type RunInput struct {
	DryRun bool     `json:"dryRun,omitempty" description:"report what would change without writing files"`
	Paths  []string `json:"paths,omitempty" description:"restrict the run to these table paths"`
}
