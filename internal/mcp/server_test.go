package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"testertalk/internal/api"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)
	client, err := api.New(backend.URL)
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(client)
}

func TestHandleSearchIssues(t *testing.T) {
	var receivedBody map[string]any
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&receivedBody)
		json.NewEncoder(w).Encode(api.SearchResponse{
			Issues: []api.Issue{{ID: 1, TestcaseTitle: "timer drift"}},
			Total:  1,
		})
	})

	_, out, err := srv.handleSearchIssues(context.Background(), nil, searchIssuesInput{
		Search:  "timer",
		Release: "251",
	})
	if err != nil {
		t.Fatalf("search_issues: %v", err)
	}
	if out.Total != 1 || out.Issues[0].TestcaseTitle != "timer drift" {
		t.Errorf("unexpected output: %+v", out)
	}
	// Empty filters must not reach the server.
	if _, ok := receivedBody["status"]; ok {
		t.Errorf("empty status sent: %v", receivedBody)
	}
}

func TestHandleGetIssue(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/issues/7" {
			json.NewEncoder(w).Encode(api.Issue{ID: 7, Severity: api.SeverityHigh})
			return
		}
		http.NotFound(w, r)
	})

	_, out, err := srv.handleGetIssue(context.Background(), nil, getIssueInput{ID: 7})
	if err != nil {
		t.Fatalf("get_issue: %v", err)
	}
	if out.Issue.ID != 7 {
		t.Errorf("unexpected issue: %+v", out.Issue)
	}
}

func TestHandleGetIssue_NotFound(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Issue not found"})
	})

	_, _, err := srv.handleGetIssue(context.Background(), nil, getIssueInput{ID: 99})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestHandleListComments(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/issues/7/comments" {
			json.NewEncoder(w).Encode([]api.Comment{{ID: 1}, {ID: 2}})
			return
		}
		http.NotFound(w, r)
	})

	_, out, err := srv.handleListComments(context.Background(), nil, listCommentsInput{IssueID: 7})
	if err != nil {
		t.Fatalf("list_comments: %v", err)
	}
	if out.Total != 2 {
		t.Errorf("total = %d, want 2", out.Total)
	}
}

func TestHandleInspectPath(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("inspect_path must not call the server")
	})

	_, out, err := srv.handleInspectPath(context.Background(), nil, inspectPathInput{
		Path: "/lan/fed/etpv5/release/251/RHEL7.6/etautotest/bucket1/tc_timer",
	})
	if err != nil {
		t.Fatalf("inspect_path: %v", err)
	}
	if !out.Recognized || out.Release != "251" || out.Platform != "RHEL7.6" || out.Bucket != "BUCKET1" {
		t.Errorf("unexpected output: %+v", out)
	}

	_, out, err = srv.handleInspectPath(context.Background(), nil, inspectPathInput{Path: "/tmp/foo"})
	if err != nil {
		t.Fatalf("inspect_path: %v", err)
	}
	if out.Recognized {
		t.Errorf("unrecognized path reported as recognized: %+v", out)
	}
}
