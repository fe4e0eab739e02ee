package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/purr-dev/purr/internal/vcs"
)

// Provider implements vcs.VCSProvider for GitHub.
type Provider struct {
	client  *http.Client
	baseURL string
	token   string
}

func init() {
	vcs.Register("github", NewProvider)
}

// NewProvider creates a GitHub VCSProvider.
func NewProvider(creds vcs.Credentials) (vcs.VCSProvider, error) {
	if creds.Token == "" {
		return nil, fmt.Errorf("github: token is required")
	}
	baseURL := creds.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}

	return &Provider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   creds.Token,
	}, nil
}

func (p *Provider) Info() vcs.ProviderInfo {
	return vcs.ProviderInfo{Name: "github", BaseURL: p.baseURL}
}

func (p *Provider) Validate() error {
	if p.token == "" {
		return fmt.Errorf("github: token is required")
	}
	return nil
}

func (p *Provider) FetchPR(projectID string, number int64) (*vcs.PullRequest, error) {
	var pr struct {
		Number int64  `json:"number"`
		Title  string `json:"title"`
		Body   string `json:"body"`
		User   struct {
			Login string `json:"login"`
		} `json:"user"`
		Head struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		} `json:"head"`
		Base struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		} `json:"base"`
		State   string `json:"state"`
		HTMLURL string `json:"html_url"`
	}

	if err := p.getJSON(context.Background(), fmt.Sprintf("/repos/%s/pulls/%d", projectID, number), &pr); err != nil {
		return nil, fmt.Errorf("github: failed to fetch PR #%d: %w", number, err)
	}

	return &vcs.PullRequest{
		Number:       pr.Number,
		Title:        pr.Title,
		Description:  pr.Body,
		Author:       pr.User.Login,
		SourceBranch: pr.Head.Ref,
		TargetBranch: pr.Base.Ref,
		State:        pr.State,
		WebURL:       pr.HTMLURL,
		DiffRefs: vcs.DiffRefs{
			BaseSHA:  pr.Base.SHA,
			HeadSHA:  pr.Head.SHA,
			StartSHA: pr.Base.SHA,
		},
	}, nil
}

// FetchPRFiles lists the changed files of a PR along with the raw patch
// text GitHub computes per file.
func (p *Provider) FetchPRFiles(projectID string, number int64) ([]vcs.FileDiff, error) {
	type prFile struct {
		Filename         string `json:"filename"`
		PreviousFilename string `json:"previous_filename"`
		Status           string `json:"status"`
		Patch            string `json:"patch"`
	}

	var all []vcs.FileDiff
	page := 1
	for {
		endpoint := fmt.Sprintf("/repos/%s/pulls/%d/files?per_page=100&page=%d", projectID, number, page)
		var files []prFile
		resp, err := p.getJSONWithResponse(context.Background(), endpoint, &files)
		if err != nil {
			return nil, fmt.Errorf("github: failed to fetch PR files: %w", err)
		}

		for _, f := range files {
			oldPath := f.PreviousFilename
			if oldPath == "" {
				oldPath = f.Filename
			}
			status := strings.ToLower(f.Status)

			all = append(all, vcs.FileDiff{
				OldPath:     oldPath,
				NewPath:     f.Filename,
				Patch:       f.Patch,
				NewFile:     status == "added",
				DeletedFile: status == "removed",
				RenamedFile: status == "renamed",
			})
		}

		if !hasNextPage(resp.Header.Get("Link")) {
			break
		}
		page++
	}

	return all, nil
}

func (p *Provider) PostSummary(projectID string, number int64, body string) error {
	payload := map[string]string{"body": body}
	if err := p.postJSON(context.Background(),
		fmt.Sprintf("/repos/%s/issues/%d/comments", projectID, number),
		payload,
		nil,
	); err != nil {
		return fmt.Errorf("github: failed to post PR summary: %w", err)
	}
	return nil
}

// PostInlineComment creates a review comment on the post-change side of
// the diff. start_line is sent only for multi-line ranges.
func (p *Provider) PostInlineComment(projectID string, number int64, refs vcs.DiffRefs, comment vcs.InlineComment) error {
	if refs.HeadSHA == "" {
		return fmt.Errorf("github: missing head SHA for inline comment")
	}
	if comment.Line <= 0 {
		return fmt.Errorf("github: invalid line number for inline comment")
	}

	payload := map[string]interface{}{
		"body":      comment.Body,
		"commit_id": refs.HeadSHA,
		"path":      comment.Path,
		"line":      comment.Line,
		"side":      "RIGHT",
	}
	if comment.StartLine > 0 && comment.StartLine != comment.Line {
		payload["start_line"] = comment.StartLine
		payload["start_side"] = "RIGHT"
	}

	if err := p.postJSON(context.Background(),
		fmt.Sprintf("/repos/%s/pulls/%d/comments", projectID, number),
		payload,
		nil,
	); err != nil {
		return fmt.Errorf("github: failed to post inline comment: %w", err)
	}
	return nil
}

func (p *Provider) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	_, err := p.getJSONWithResponse(ctx, endpoint, out)
	return err
}

func (p *Provider) getJSONWithResponse(ctx context.Context, endpoint string, out interface{}) (*http.Response, error) {
	req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return resp, fmt.Errorf("github: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, err
		}
	}

	return resp, nil
}

func (p *Provider) postJSON(ctx context.Context, endpoint string, payload interface{}, out interface{}) error {
	var buf io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	req, err := p.newRequest(ctx, http.MethodPost, endpoint, buf)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (p *Provider) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(p.baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "purr-cli")
	req.Header.Set("Authorization", "Bearer "+p.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func hasNextPage(linkHeader string) bool {
	if linkHeader == "" {
		return false
	}
	parts := strings.Split(linkHeader, ",")
	for _, part := range parts {
		if strings.Contains(part, `rel="next"`) {
			return true
		}
	}
	return false
}
