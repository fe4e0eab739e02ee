package gitlab

import (
	"fmt"

	"github.com/purr-dev/purr/internal/vcs"
	gl "gitlab.com/gitlab-org/api/client-go"
)

// Provider implements vcs.VCSProvider for GitLab.
type Provider struct {
	api     *gl.Client
	baseURL string
	token   string
}

func init() {
	vcs.Register("gitlab", NewProvider)
}

// NewProvider creates a GitLab VCSProvider.
func NewProvider(creds vcs.Credentials) (vcs.VCSProvider, error) {
	if creds.Token == "" {
		return nil, fmt.Errorf("gitlab: token is required")
	}
	baseURL := creds.BaseURL
	if baseURL == "" {
		baseURL = "https://gitlab.com"
	}

	client, err := gl.NewClient(creds.Token, gl.WithBaseURL(baseURL+"/api/v4"))
	if err != nil {
		return nil, fmt.Errorf("gitlab: failed to create client: %w", err)
	}

	return &Provider{api: client, baseURL: baseURL, token: creds.Token}, nil
}

func (p *Provider) Info() vcs.ProviderInfo {
	return vcs.ProviderInfo{Name: "gitlab", BaseURL: p.baseURL}
}

func (p *Provider) Validate() error {
	if p.token == "" {
		return fmt.Errorf("gitlab: token is required")
	}
	return nil
}

func (p *Provider) FetchPR(projectID string, number int64) (*vcs.PullRequest, error) {
	mr, _, err := p.api.MergeRequests.GetMergeRequest(projectID, int(number), nil)
	if err != nil {
		return nil, fmt.Errorf("gitlab: failed to fetch MR !%d: %w", number, err)
	}

	return &vcs.PullRequest{
		Number:       int64(mr.IID),
		Title:        mr.Title,
		Description:  mr.Description,
		Author:       mr.Author.Username,
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
		State:        mr.State,
		WebURL:       mr.WebURL,
		DiffRefs: vcs.DiffRefs{
			BaseSHA:  mr.DiffRefs.BaseSha,
			HeadSHA:  mr.DiffRefs.HeadSha,
			StartSHA: mr.DiffRefs.StartSha,
		},
	}, nil
}

// FetchPRFiles lists the changed files of an MR; the Diff field GitLab
// returns per file is the raw patch text.
func (p *Provider) FetchPRFiles(projectID string, number int64) ([]vcs.FileDiff, error) {
	opts := &gl.ListMergeRequestDiffsOptions{
		ListOptions: gl.ListOptions{PerPage: 100},
	}

	var all []vcs.FileDiff
	for {
		diffs, resp, err := p.api.MergeRequests.ListMergeRequestDiffs(projectID, int(number), opts)
		if err != nil {
			return nil, fmt.Errorf("gitlab: failed to fetch MR diffs: %w", err)
		}

		for _, d := range diffs {
			all = append(all, vcs.FileDiff{
				OldPath:     d.OldPath,
				NewPath:     d.NewPath,
				Patch:       d.Diff,
				NewFile:     d.NewFile,
				RenamedFile: d.RenamedFile,
				DeletedFile: d.DeletedFile,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func (p *Provider) PostSummary(projectID string, number int64, body string) error {
	_, _, err := p.api.Notes.CreateMergeRequestNote(projectID, int(number), &gl.CreateMergeRequestNoteOptions{
		Body: &body,
	})
	if err != nil {
		return fmt.Errorf("gitlab: failed to post MR note: %w", err)
	}
	return nil
}

// PostInlineComment creates a discussion anchored to a line of the
// post-change file. GitLab positions address a single line, so the end
// of the range is used.
func (p *Provider) PostInlineComment(projectID string, number int64, refs vcs.DiffRefs, comment vcs.InlineComment) error {
	if comment.Line <= 0 {
		return fmt.Errorf("gitlab: invalid line number for inline comment")
	}

	posType := "text"
	newLine := comment.Line
	_, _, err := p.api.Discussions.CreateMergeRequestDiscussion(projectID, int(number), &gl.CreateMergeRequestDiscussionOptions{
		Body: &comment.Body,
		Position: &gl.PositionOptions{
			BaseSHA:      &refs.BaseSHA,
			HeadSHA:      &refs.HeadSHA,
			StartSHA:     &refs.StartSHA,
			PositionType: &posType,
			NewPath:      &comment.Path,
			NewLine:      &newLine,
		},
	})
	if err != nil {
		return fmt.Errorf("gitlab: failed to post inline comment: %w", err)
	}
	return nil
}
