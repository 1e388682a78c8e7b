// Package api is a client for the Tester Talk REST API.
//
// The client is organized into scopes mirroring the server's route
// groups: Auth for session management, Issues for issue CRUD and
// mutations, Comments for comment voting and solution verification,
// Meta for dropdown/metadata endpoints, and Admin for the
// administrative surface.
//
// All requests carry the session cookie when one is present in the
// configured cookie jar. Non-2xx responses are returned as *APIError
// preserving the server's error message verbatim.
package api
