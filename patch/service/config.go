package service

const defaultDiffBytes = 8192

type Config struct {
	// BaseURL is an AFS URL root that relative entry paths resolve against.
	// Examples: file:///home/me/project, mem://localhost/project. Empty means the working directory.
	BaseURL string `json:"baseURL,omitempty"`
	// DryRun reports fixes with a diff preview without writing files.
	DryRun bool `json:"dryRun,omitempty"`
	// DiffBytes caps the preview diff size per entry (default 8192).
	DiffBytes int `json:"diffBytes,omitempty"`
	// If true, return tool results in the `data` field instead of `text`.
	UseData bool `json:"useData,omitempty"`
	// Verbose enables development logging of rule application.
	Verbose bool `json:"verbose,omitempty"`
}
