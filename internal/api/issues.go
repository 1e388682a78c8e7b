package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// IssueScope provides operations on issues.
type IssueScope struct {
	client *Client
}

// Search runs a filtered search and returns the matching issues. Empty
// request fields are not sent, so a zero SearchRequest returns the
// newest issues up to the server's default page size.
func (i *IssueScope) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/api/search", i.client.baseURL)
	var result SearchResponse
	if err := i.client.doJSON(ctx, "POST", u, "search issues", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListIssuesOption configures filter and pagination for issue listing.
type ListIssuesOption func(params url.Values)

// List returns a page of issues matching the given filters.
func (i *IssueScope) List(ctx context.Context, opts ...ListIssuesOption) (*IssuePage, error) {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}

	u := fmt.Sprintf("%s/api/issues?%s", i.client.baseURL, params.Encode())
	var page IssuePage
	if err := i.client.doJSON(ctx, "GET", u, "list issues", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// WithStatus filters issues by status.
func WithStatus(status Status) ListIssuesOption {
	return func(p url.Values) { p.Set("status", string(status)) }
}

// WithSeverity filters issues by severity.
func WithSeverity(severity Severity) ListIssuesOption {
	return func(p url.Values) { p.Set("severity", string(severity)) }
}

// WithRelease filters issues by release.
func WithRelease(release string) ListIssuesOption {
	return func(p url.Values) { p.Set("release", release) }
}

// WithPlatform filters issues by platform code.
func WithPlatform(platform string) ListIssuesOption {
	return func(p url.Values) { p.Set("platform", platform) }
}

// WithBuild filters issues by build.
func WithBuild(build string) ListIssuesOption {
	return func(p url.Values) { p.Set("build", build) }
}

// WithTarget filters issues by target.
func WithTarget(target string) ListIssuesOption {
	return func(p url.Values) { p.Set("target", target) }
}

// WithTestCaseID filters issues by their generated test-case ID.
func WithTestCaseID(id string) ListIssuesOption {
	return func(p url.Values) { p.Set("test_case_id", id) }
}

// WithPage sets the page number (1-based) for listing.
func WithPage(n int) ListIssuesOption {
	return func(p url.Values) { p.Set("page", strconv.Itoa(n)) }
}

// WithPerPage sets the page size for listing.
func WithPerPage(size int) ListIssuesOption {
	return func(p url.Values) { p.Set("per_page", strconv.Itoa(size)) }
}

// Get returns a single issue by its numeric ID.
func (i *IssueScope) Get(ctx context.Context, id int) (*Issue, error) {
	u := fmt.Sprintf("%s/api/issues/%d", i.client.baseURL, id)
	var issue Issue
	if err := i.client.doJSON(ctx, "GET", u, "get issue", nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Create reports a new issue. The request is multipart form data so
// attachments can ride along under the "files" field; release and
// platform are derived server-side from the testcase path.
func (i *IssueScope) Create(ctx context.Context, draft IssueDraft) (*Issue, error) {
	const operation = "create issue"
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeDraft(mw, draft))
	}()

	u := fmt.Sprintf("%s/api/issues", i.client.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", u, pr)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var issue Issue
	if err := i.client.do(req, operation, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func writeDraft(mw *multipart.Writer, draft IssueDraft) error {
	fields := []struct{ name, value string }{
		{"testcase_title", draft.TestcaseTitle},
		{"testcase_path", draft.TestcasePath},
		{"severity", string(draft.Severity)},
		{"reporter_name", draft.ReporterName},
		{"test_case_ids", draft.TestCaseIDs},
		{"description", draft.Description},
		{"additional_comments", draft.AdditionalComments},
		{"build", draft.Build},
		{"target", draft.Target},
		{"tags", draft.Tags},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	for _, path := range draft.AttachmentPaths {
		if err := writeAttachment(mw, path); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeAttachment(mw *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	part, err := mw.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create attachment part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy attachment %s: %w", path, err)
	}
	return nil
}

// Update modifies an issue's mutable fields. Nil fields in the update
// are left untouched on the server.
func (i *IssueScope) Update(ctx context.Context, id int, update IssueUpdate) (*Issue, error) {
	u := fmt.Sprintf("%s/api/issues/%d", i.client.baseURL, id)
	var issue Issue
	if err := i.client.doJSON(ctx, "PUT", u, "update issue", update, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Vote casts an upvote or downvote on an issue and returns the issue
// with refreshed counts. Votes are anonymous tallies; the server does
// not track who voted.
func (i *IssueScope) Vote(ctx context.Context, id int, direction VoteDirection) (*Issue, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("vote issue: invalid direction %q", direction)
	}
	u := fmt.Sprintf("%s/api/issues/%d/%s", i.client.baseURL, id, direction)
	var issue Issue
	if err := i.client.doJSON(ctx, "POST", u, "vote issue", nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

type moveToCCRRQ struct {
	CCRNumber string `json:"ccr_number"`
}

// MoveToCCR transitions an issue to the ccr status, recording the CCR
// number. The server rejects the move for resolved issues.
func (i *IssueScope) MoveToCCR(ctx context.Context, id int, ccrNumber string) (*Issue, error) {
	const operation = "move issue to ccr"
	if ccrNumber == "" {
		return nil, fmt.Errorf("%s: ccr number is required", operation)
	}
	u := fmt.Sprintf("%s/api/issues/%d/move-to-ccr", i.client.baseURL, id)
	var issue Issue
	if err := i.client.doJSON(ctx, "POST", u, operation, moveToCCRRQ{CCRNumber: ccrNumber}, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

type addPathRQ struct {
	TestcasePath string `json:"testcase_path"`
	AddedBy      string `json:"added_by,omitempty"`
}

// AddTestcasePath attaches another test-case path to an existing issue,
// recording who added it. The server also tags the issue with the
// bucket name derived from the path. An empty addedBy is recorded as
// "System" server-side.
func (i *IssueScope) AddTestcasePath(ctx context.Context, id int, path, addedBy string) (*TestcasePath, error) {
	const operation = "add testcase path"
	if path == "" {
		return nil, fmt.Errorf("%s: path is required", operation)
	}
	u := fmt.Sprintf("%s/api/issues/%d/add-testcase-path", i.client.baseURL, id)
	var tp TestcasePath
	if err := i.client.doJSON(ctx, "POST", u, operation, addPathRQ{TestcasePath: path, AddedBy: addedBy}, &tp); err != nil {
		return nil, err
	}
	return &tp, nil
}

// RemoveTestcasePath detaches a previously added test-case path.
func (i *IssueScope) RemoveTestcasePath(ctx context.Context, issueID, pathID int) error {
	u := fmt.Sprintf("%s/api/issues/%d/remove-testcase-path/%d", i.client.baseURL, issueID, pathID)
	return i.client.doJSON(ctx, "DELETE", u, "remove testcase path", nil, nil)
}

// Comments returns all comments on an issue, newest first.
func (i *IssueScope) Comments(ctx context.Context, id int) ([]Comment, error) {
	u := fmt.Sprintf("%s/api/issues/%d/comments", i.client.baseURL, id)
	var comments []Comment
	if err := i.client.doJSON(ctx, "GET", u, "list comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

type addCommentRQ struct {
	Content string `json:"content"`
}

// AddComment posts a new comment on an issue.
func (i *IssueScope) AddComment(ctx context.Context, id int, content string) (*Comment, error) {
	const operation = "add comment"
	if content == "" {
		return nil, fmt.Errorf("%s: content is required", operation)
	}
	u := fmt.Sprintf("%s/api/issues/%d/comments", i.client.baseURL, id)
	var comment Comment
	if err := i.client.doJSON(ctx, "POST", u, operation, addCommentRQ{Content: content}, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
