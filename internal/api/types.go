package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Severity classifies how badly a defect affects the test case.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Status is the lifecycle state of an issue.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusCCR        Status = "ccr"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed, StatusCCR:
		return true
	}
	return false
}

// VoteDirection selects between the paired upvote/downvote endpoints.
type VoteDirection string

const (
	Upvote   VoteDirection = "upvote"
	Downvote VoteDirection = "downvote"
)

// Valid reports whether d is upvote or downvote.
func (d VoteDirection) Valid() bool {
	return d == Upvote || d == Downvote
}

// Timestamp wraps time.Time to accept the server's timestamp formats.
// The backend emits Python isoformat strings without a zone offset;
// RFC 3339 is accepted too. Serialization always produces RFC 3339.
type Timestamp time.Time

// timestampLayouts are tried in order on deserialization.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Time returns the underlying time.Time value.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// IsZero reports whether the timestamp is unset.
func (t Timestamp) IsZero() bool { return time.Time(t).IsZero() }

// MarshalJSON serializes the timestamp as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

// UnmarshalJSON deserializes a timestamp string, trying the known
// layouts in order. JSON null leaves the timestamp zero.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshal timestamp: %w", err)
	}
	if s == nil || *s == "" {
		*t = Timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, *s); err == nil {
			*t = Timestamp(parsed)
			return nil
		}
	}
	return fmt.Errorf("unmarshal timestamp: unrecognized format %q", *s)
}

// User is the authenticated account profile, owned by the auth
// collaborator; the client only holds read copies.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
	LastLogin Timestamp `json:"last_login"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == "admin" }

// Issue is a reported test-case defect.
type Issue struct {
	ID                      int            `json:"id"`
	TestcaseTitle           string         `json:"testcase_title"`
	TestcasePath            string         `json:"testcase_path"`
	Severity                Severity       `json:"severity"`
	TestCaseIDs             string         `json:"test_case_ids"`
	Release                 string         `json:"release"`
	Platform                string         `json:"platform"`
	PlatformDisplay         string         `json:"platform_display"`
	Build                   string         `json:"build"`
	Target                  string         `json:"target"`
	Description             string         `json:"description"`
	AdditionalComments      string         `json:"additional_comments"`
	ReporterName            string         `json:"reporter_name"`
	ReviewerName            string         `json:"reviewer_name"`
	Status                  Status         `json:"status"`
	CCRNumber               string         `json:"ccr_number"`
	CreatedAt               Timestamp      `json:"created_at"`
	UpdatedAt               Timestamp      `json:"updated_at"`
	Tags                    []string       `json:"tags"`
	CommentCount            int            `json:"comment_count"`
	HasVerifiedSolution     bool           `json:"has_verified_solution"`
	Upvotes                 int            `json:"upvotes"`
	Downvotes               int            `json:"downvotes"`
	Score                   int            `json:"score"`
	TestcaseCount           int            `json:"testcase_count"`
	AdditionalTestcasePaths []TestcasePath `json:"additional_testcase_paths"`
	Attachments             []Attachment   `json:"attachments,omitempty"`
}

// Comment belongs to exactly one issue.
type Comment struct {
	ID                 int       `json:"id"`
	IssueID            int       `json:"issue_id"`
	CommenterName      string    `json:"commenter_name"`
	Content            string    `json:"content"`
	IsVerifiedSolution bool      `json:"is_verified_solution"`
	CreatedAt          Timestamp `json:"created_at"`
	UpdatedAt          Timestamp `json:"updated_at"`
	Upvotes            int       `json:"upvotes"`
	Downvotes          int       `json:"downvotes"`
	Score              int       `json:"score"`
}

// Attachment is a file uploaded with an issue or comment.
type Attachment struct {
	ID         int       `json:"id"`
	IssueID    int       `json:"issue_id"`
	CommentID  int       `json:"comment_id,omitempty"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  Timestamp `json:"created_at"`
}

// TestcasePath is a secondary path where the same defect appears.
type TestcasePath struct {
	ID              int       `json:"id"`
	IssueID         int       `json:"issue_id"`
	Path            string    `json:"testcase_path"`
	Release         string    `json:"release"`
	Platform        string    `json:"platform"`
	PlatformDisplay string    `json:"platform_display"`
	AddedBy         string    `json:"added_by"`
	CreatedAt       Timestamp `json:"created_at"`
}

// Tag is a named label attached to issues.
type Tag struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"created_at"`
}

// PlatformOption pairs a platform code with its display name.
type PlatformOption struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// BucketReviewer maps a path-derived bucket to its responsible reviewer.
type BucketReviewer struct {
	ID           int       `json:"id"`
	BucketName   string    `json:"bucket_name"`
	ReviewerName string    `json:"reviewer_name"`
	CreatedAt    Timestamp `json:"created_at"`
	UpdatedAt    Timestamp `json:"updated_at"`
}

// SearchRequest is the POST /api/search payload. Empty fields are
// omitted from the encoded payload entirely, never sent as "".
type SearchRequest struct {
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	Severity string `json:"severity,omitempty"`
	Build    string `json:"build,omitempty"`
	Platform string `json:"platform,omitempty"`
	Release  string `json:"release,omitempty"`
	Target   string `json:"target,omitempty"`
	Size     int    `json:"size,omitempty"`
}

// SearchResponse is the search result envelope.
type SearchResponse struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
}

// IssuePage is the paginated envelope returned by GET /api/issues.
type IssuePage struct {
	Issues      []Issue `json:"issues"`
	Total       int     `json:"total"`
	Pages       int     `json:"pages"`
	CurrentPage int     `json:"current_page"`
}

// IssueDraft holds the fields submitted when reporting a new issue.
// Tags is the comma-joined serialization produced by tagset.Set.
type IssueDraft struct {
	TestcaseTitle      string
	TestcasePath       string
	Severity           Severity
	ReporterName       string
	TestCaseIDs        string
	Description        string
	AdditionalComments string
	Build              string
	Target             string
	Tags               string
	AttachmentPaths    []string
}

// Validate checks the required draft fields, mirroring the create
// form's client-side validation.
func (d *IssueDraft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.TestcaseTitle) == "" {
		missing = append(missing, "testcase title")
	}
	if strings.TrimSpace(d.TestcasePath) == "" {
		missing = append(missing, "testcase path")
	}
	if d.Severity == "" {
		missing = append(missing, "severity")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}
	if !d.Severity.Valid() {
		return fmt.Errorf("invalid severity %q", d.Severity)
	}
	return nil
}

// IssueUpdate holds the mutable fields for PUT /api/issues/:id.
// Nil pointers are omitted from the request. Changing the testcase
// path re-derives release and platform server-side; Tags replaces the
// whole tag list. The admin edit endpoint accepts the title,
// description, test-case IDs, status, reporter, and tags subset.
type IssueUpdate struct {
	TestcaseTitle      *string   `json:"testcase_title,omitempty"`
	TestcasePath       *string   `json:"testcase_path,omitempty"`
	Severity           *Severity `json:"severity,omitempty"`
	TestCaseIDs        *string   `json:"test_case_ids,omitempty"`
	Status             *Status   `json:"status,omitempty"`
	Description        *string   `json:"description,omitempty"`
	AdditionalComments *string   `json:"additional_comments,omitempty"`
	Build              *string   `json:"build,omitempty"`
	Target             *string   `json:"target,omitempty"`
	ReporterName       *string   `json:"reporter_name,omitempty"`
	Tags               []string  `json:"tags,omitempty"`
}

// UserUpdate holds the mutable fields for the admin user endpoint.
type UserUpdate struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
