package api

import (
	"context"
	"fmt"
)

// AdminScope provides the administrative surface. Every operation
// requires the session user to hold the admin role; the server answers
// HTTP 403 otherwise.
type AdminScope struct {
	client *Client
}

// Users returns all registered accounts.
func (a *AdminScope) Users(ctx context.Context) ([]User, error) {
	u := fmt.Sprintf("%s/api/admin/users", a.client.baseURL)
	var users []User
	if err := a.client.doJSON(ctx, "GET", u, "list users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser changes a user's role or active flag.
func (a *AdminScope) UpdateUser(ctx context.Context, id int, update UserUpdate) (*User, error) {
	u := fmt.Sprintf("%s/api/admin/users/%d", a.client.baseURL, id)
	var user User
	if err := a.client.doJSON(ctx, "PUT", u, "update user", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteIssue permanently removes an issue with its comments,
// attachments and extra paths.
func (a *AdminScope) DeleteIssue(ctx context.Context, id int) error {
	u := fmt.Sprintf("%s/api/admin/issues/%d", a.client.baseURL, id)
	return a.client.doJSON(ctx, "DELETE", u, "delete issue", nil, nil)
}

// EditIssue rewrites issue fields without the ownership checks the
// regular update endpoint applies.
func (a *AdminScope) EditIssue(ctx context.Context, id int, update IssueUpdate) (*Issue, error) {
	u := fmt.Sprintf("%s/api/admin/issues/%d/edit", a.client.baseURL, id)
	var issue Issue
	if err := a.client.doJSON(ctx, "PUT", u, "edit issue", update, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// IssueRef is the id/title pair returned by the bulk-selection
// listing.
type IssueRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type issueRefsRS struct {
	Issues []IssueRef `json:"issues"`
	Total  int        `json:"total"`
}

// IssueRefs returns the id and title of every issue, for bulk
// selection.
func (a *AdminScope) IssueRefs(ctx context.Context) ([]IssueRef, error) {
	u := fmt.Sprintf("%s/api/admin/issues/ids", a.client.baseURL)
	var result issueRefsRS
	if err := a.client.doJSON(ctx, "GET", u, "list issue ids", nil, &result); err != nil {
		return nil, err
	}
	return result.Issues, nil
}

type bulkDeleteRQ struct {
	IssueIDs []int `json:"issue_ids"`
}

type bulkDeleteRS struct {
	Deleted int `json:"deleted_count"`
}

// BulkDeleteIssues removes several issues in one call and returns the
// number actually deleted.
func (a *AdminScope) BulkDeleteIssues(ctx context.Context, ids []int) (int, error) {
	const operation = "bulk delete issues"
	if len(ids) == 0 {
		return 0, fmt.Errorf("%s: no issue ids given", operation)
	}
	u := fmt.Sprintf("%s/api/admin/issues/bulk-delete", a.client.baseURL)
	var result bulkDeleteRS
	if err := a.client.doJSON(ctx, "POST", u, operation, bulkDeleteRQ{IssueIDs: ids}, &result); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}

// DeleteComment permanently removes a comment.
func (a *AdminScope) DeleteComment(ctx context.Context, id int) error {
	u := fmt.Sprintf("%s/api/admin/comments/%d", a.client.baseURL, id)
	return a.client.doJSON(ctx, "DELETE", u, "delete comment", nil, nil)
}

// BucketReviewers returns the bucket-to-reviewer assignments.
func (a *AdminScope) BucketReviewers(ctx context.Context) ([]BucketReviewer, error) {
	u := fmt.Sprintf("%s/api/admin/bucket-reviewers", a.client.baseURL)
	var reviewers []BucketReviewer
	if err := a.client.doJSON(ctx, "GET", u, "list bucket reviewers", nil, &reviewers); err != nil {
		return nil, err
	}
	return reviewers, nil
}

type setReviewerRQ struct {
	BucketName   string `json:"bucket_name"`
	ReviewerName string `json:"reviewer_name"`
}

type messageRS struct {
	Message string `json:"message"`
}

// SetBucketReviewer assigns a reviewer to a bucket, replacing any
// previous assignment for the same bucket. It returns the server's
// confirmation message.
func (a *AdminScope) SetBucketReviewer(ctx context.Context, bucketName, reviewerName string) (string, error) {
	const operation = "set bucket reviewer"
	if bucketName == "" || reviewerName == "" {
		return "", fmt.Errorf("%s: bucket name and reviewer name are required", operation)
	}
	u := fmt.Sprintf("%s/api/admin/bucket-reviewers", a.client.baseURL)
	var result messageRS
	body := setReviewerRQ{BucketName: bucketName, ReviewerName: reviewerName}
	if err := a.client.doJSON(ctx, "POST", u, operation, body, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

// DeleteBucketReviewer removes a bucket-to-reviewer assignment.
func (a *AdminScope) DeleteBucketReviewer(ctx context.Context, id int) error {
	u := fmt.Sprintf("%s/api/admin/bucket-reviewers/%d", a.client.baseURL, id)
	return a.client.doJSON(ctx, "DELETE", u, "delete bucket reviewer", nil, nil)
}

// AvailableReviewers returns the usernames eligible for bucket
// assignment.
func (a *AdminScope) AvailableReviewers(ctx context.Context) ([]string, error) {
	u := fmt.Sprintf("%s/api/admin/available-reviewers", a.client.baseURL)
	var names []string
	if err := a.client.doJSON(ctx, "GET", u, "list available reviewers", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}
