package api

import (
	"context"
	"fmt"
)

// CommentScope provides operations on individual comments.
type CommentScope struct {
	client *Client
}

// Vote casts an upvote or downvote on a comment and returns the
// comment with refreshed counts.
func (c *CommentScope) Vote(ctx context.Context, id int, direction VoteDirection) (*Comment, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("vote comment: invalid direction %q", direction)
	}
	u := fmt.Sprintf("%s/api/comments/%d/%s", c.client.baseURL, id, direction)
	var comment Comment
	if err := c.client.doJSON(ctx, "POST", u, "vote comment", nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Verify marks a comment as the verified solution, unverifying every
// other comment on the same issue and resolving the issue. The server
// applies no guard of its own; callers enforce the resolved-issue
// rules before calling.
func (c *CommentScope) Verify(ctx context.Context, id int) (*Comment, error) {
	u := fmt.Sprintf("%s/api/comments/%d/verify", c.client.baseURL, id)
	var comment Comment
	if err := c.client.doJSON(ctx, "POST", u, "verify comment", nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
