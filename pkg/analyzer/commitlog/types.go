package commitlog

import "time"

// Document is the serialized commit-history extraction for one repository.
type Document struct {
	Repository     string    `json:"repository"`
	GeneratedAt    time.Time `json:"generated_at"`
	Window         string    `json:"window"`
	Commits        []Commit  `json:"commits"`
	CommitsSkipped int       `json:"commits_skipped,omitempty"`
}

// Signature identifies an author or committer.
type Signature struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FileStat carries one file's line churn within a commit.
type FileStat struct {
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// Stats aggregates a commit's churn.
type Stats struct {
	Insertions int                 `json:"insertions"`
	Deletions  int                 `json:"deletions"`
	Files      map[string]FileStat `json:"files"`
}

// Commit is one entry of the extraction. TreeID and BlobIDs are best-effort:
// an unreadable tree leaves them empty rather than dropping the commit.
type Commit struct {
	CommitHash   string    `json:"commit_hash"`
	Author       Signature `json:"author"`
	Committer    Signature `json:"committer"`
	CommitDate   time.Time `json:"commit_date"`
	Message      string    `json:"message"`
	Parents      []string  `json:"parents"`
	TreeID       string    `json:"tree_id,omitempty"`
	BlobIDs      []string  `json:"blob_ids,omitempty"`
	Stats        Stats     `json:"stats"`
	FilesChanged []string  `json:"files_changed"`
}
