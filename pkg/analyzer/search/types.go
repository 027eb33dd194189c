package search

// Match is one keyword hit on one line of a file at HEAD.
type Match struct {
	Keyword string `json:"keyword"`
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

// Report is the result of scanning a repository's HEAD tree.
type Report struct {
	Repository   string   `json:"repository"`
	Keywords     []string `json:"keywords"`
	Matches      []Match  `json:"matches"`
	FilesScanned int      `json:"files_scanned"`
	FilesSkipped int      `json:"files_skipped"`
}
