package vcs

// VCSProvider abstracts the pull-request hosting API (GitHub, GitLab).
// It supplies the raw per-file patch text the patch parser consumes and
// posts the review output back.
type VCSProvider interface {
	Info() ProviderInfo
	FetchPR(projectID string, number int64) (*PullRequest, error)
	FetchPRFiles(projectID string, number int64) ([]FileDiff, error)
	PostSummary(projectID string, number int64, body string) error
	PostInlineComment(projectID string, number int64, refs DiffRefs, comment InlineComment) error
	Validate() error
}

// ProviderInfo describes a VCS provider.
type ProviderInfo struct {
	Name    string
	BaseURL string
}

// PullRequest holds platform-agnostic pull/merge request metadata.
type PullRequest struct {
	Number       int64
	Title        string
	Description  string
	Author       string
	SourceBranch string
	TargetBranch string
	State        string
	WebURL       string
	DiffRefs     DiffRefs
}

// DiffRefs holds the SHA references needed for inline comments.
type DiffRefs struct {
	BaseSHA  string
	HeadSHA  string
	StartSHA string
}

// FileDiff is one changed file in a pull request. Patch is the raw
// unified-diff text for that file as returned by the hosting API's
// compare endpoint.
type FileDiff struct {
	OldPath     string
	NewPath     string
	Patch       string
	NewFile     bool
	RenamedFile bool
	DeletedFile bool
}

// Path returns the reviewable path of the file.
func (f FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// InlineComment holds data for posting an inline review comment on a
// line range of the post-change file. StartLine is omitted from the API
// call when it equals Line (single-line comment).
type InlineComment struct {
	Path      string
	StartLine int
	Line      int
	Body      string
}
