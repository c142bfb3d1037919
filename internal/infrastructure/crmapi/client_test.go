package crmapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Recording backend
// ---------------------------------------------------------------------------

type recordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	Auth        string
	ContentType string
	Body        string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	response string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
	})
	status, response := b.status, b.response
	b.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, response)
}

func (b *fakeBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		t.Fatalf("backend received no request")
	}
	return b.requests[len(b.requests)-1]
}

func newTestClient(t *testing.T, backend *fakeBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL + "/api/"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func withToken(token string) context.Context {
	return domain.WithSession(context.Background(), &domain.Session{ID: "sid", Token: token})
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestClient_AttachesTokenWhenSessionPresent(t *testing.T) {
	backend := &fakeBackend{response: `[{"id":1,"first_name":"Ada","last_name":"Lovelace","full_name":"Ada Lovelace","email":"ada@example.com"}]`}
	c := newTestClient(t, backend)

	contacts, err := c.ListContacts(withToken("abc123"))
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0].FullName != "Ada Lovelace" {
		t.Fatalf("unexpected contacts: %+v", contacts)
	}

	req := backend.last(t)
	if req.Method != http.MethodGet || req.Path != "/api/contacts/" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
	if req.Auth != "Token abc123" {
		t.Fatalf("expected Authorization %q, got %q", "Token abc123", req.Auth)
	}
	if req.ContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", req.ContentType)
	}
}

func TestClient_NoTokenWithoutSession(t *testing.T) {
	backend := &fakeBackend{response: `[]`}
	c := newTestClient(t, backend)

	if _, err := c.ListCompanies(context.Background()); err != nil {
		t.Fatalf("ListCompanies: %v", err)
	}
	if got := backend.last(t).Auth; got != "" {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestClient_EmptyTokenSendsNoHeader(t *testing.T) {
	backend := &fakeBackend{response: `[]`}
	c := newTestClient(t, backend)

	if _, err := c.ListDeals(withToken("")); err != nil {
		t.Fatalf("ListDeals: %v", err)
	}
	if got := backend.last(t).Auth; got != "" {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestClient_ResourcePaths(t *testing.T) {
	backend := &fakeBackend{response: `{}`}
	c := newTestClient(t, backend)
	ctx := withToken("t")

	cases := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"get company", func() error { _, err := c.GetCompany(ctx, 7); return err }, http.MethodGet, "/api/companies/7/"},
		{"create company", func() error { _, err := c.CreateCompany(ctx, &domain.Company{Name: "Acme"}); return err }, http.MethodPost, "/api/companies/"},
		{"update company", func() error { _, err := c.UpdateCompany(ctx, 7, &domain.Company{Name: "Acme"}); return err }, http.MethodPut, "/api/companies/7/"},
		{"delete company", func() error { return c.DeleteCompany(ctx, 7) }, http.MethodDelete, "/api/companies/7/"},
		{"get contact", func() error { _, err := c.GetContact(ctx, 3); return err }, http.MethodGet, "/api/contacts/3/"},
		{"delete contact", func() error { return c.DeleteContact(ctx, 3) }, http.MethodDelete, "/api/contacts/3/"},
		{"update deal", func() error { _, err := c.UpdateDeal(ctx, 9, &domain.Deal{Title: "Big"}); return err }, http.MethodPut, "/api/deals/9/"},
		{"create task", func() error { _, err := c.CreateTask(ctx, &domain.Task{Title: "Call"}); return err }, http.MethodPost, "/api/tasks/"},
		{"delete task", func() error { return c.DeleteTask(ctx, 5) }, http.MethodDelete, "/api/tasks/5/"},
		{"get meeting", func() error { _, err := c.GetMeeting(ctx, 4); return err }, http.MethodGet, "/api/meetings/4/"},
		{"update meeting", func() error { _, err := c.UpdateMeeting(ctx, 4, &domain.MeetingInput{}); return err }, http.MethodPut, "/api/meetings/update/4/"},
		{"delete meeting", func() error { _, err := c.DeleteMeeting(ctx, 4); return err }, http.MethodDelete, "/api/meetings/delete/4/"},
		{"dashboard stats", func() error { _, err := c.GetDashboardStats(ctx); return err }, http.MethodGet, "/api/dashboard/stats/"},
		{"today count", func() error { _, err := c.GetTodaysMeetingCount(ctx); return err }, http.MethodGet, "/api/meetings/today/count/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			req := backend.last(t)
			if req.Method != tc.method || req.Path != tc.path {
				t.Fatalf("expected %s %s, got %s %s", tc.method, tc.path, req.Method, req.Path)
			}
		})
	}
}

func TestClient_CreateMeeting(t *testing.T) {
	backend := &fakeBackend{response: `{"success":true,"message":"Meeting created","meeting_id":12}`}
	c := newTestClient(t, backend)

	title := "Sync"
	ack, err := c.CreateMeeting(withToken("t"), &domain.MeetingInput{Title: &title})
	if err != nil {
		t.Fatalf("CreateMeeting: %v", err)
	}
	if !ack.Success || ack.MeetingID != 12 {
		t.Fatalf("unexpected ack: %+v", ack)
	}

	req := backend.last(t)
	if req.Method != http.MethodPost || req.Path != "/api/meetings/create/" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
	if req.Body != `{"title":"Sync"}` {
		t.Fatalf("unexpected body: %s", req.Body)
	}
}

func TestClient_CreateMeetingWireFormat(t *testing.T) {
	backend := &fakeBackend{response: `{"success":true,"meeting_id":13}`}
	c := newTestClient(t, backend)

	var in domain.MeetingInput
	body := `{"title":"Review","date_time":"2026-10-16T10:00:00+02:00","duration":45,"meeting_type":"virtual","status":"scheduled","company":8,"participants":[3,"current_user"]}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("decode input: %v", err)
	}
	if _, err := c.CreateMeeting(withToken("t"), &in); err != nil {
		t.Fatalf("CreateMeeting: %v", err)
	}

	want := `{"title":"Review","date_time":"2026-10-16T10:00:00","duration":45,"meeting_type":"virtual","status":"scheduled","company":8,"participants":[3,"current_user"]}`
	if got := backend.last(t).Body; got != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", got, want)
	}
}

func TestClient_UpdateMeetingSendsOnlyPresentKeys(t *testing.T) {
	backend := &fakeBackend{response: `{"success":true,"message":"Meeting updated"}`}
	c := newTestClient(t, backend)

	var in domain.MeetingInput
	if err := json.Unmarshal([]byte(`{"title":"Sync","date_time":"2026-10-16T10:00:00","duration":30,"deal":null}`), &in); err != nil {
		t.Fatalf("decode input: %v", err)
	}
	if _, err := c.UpdateMeeting(withToken("t"), 4, &in); err != nil {
		t.Fatalf("UpdateMeeting: %v", err)
	}

	req := backend.last(t)
	if req.Method != http.MethodPut || req.Path != "/api/meetings/update/4/" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
	want := `{"title":"Sync","date_time":"2026-10-16T10:00:00","duration":30,"deal":null}`
	if req.Body != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", req.Body, want)
	}
}

func TestClient_CreateCompanyBody(t *testing.T) {
	backend := &fakeBackend{status: http.StatusCreated, response: `{"id":5,"name":"Acme","contacts_count":0}`}
	c := newTestClient(t, backend)

	got, err := c.CreateCompany(withToken("t"), &domain.Company{Name: "Acme", Website: "https://acme.test"})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if got.ID != 5 {
		t.Fatalf("unexpected company: %+v", got)
	}

	want := `{"name":"Acme","industry":"","website":"https://acme.test","phone":"","email":"","address":"","notes":""}`
	if body := backend.last(t).Body; body != want {
		t.Fatalf("unexpected body:\n got %s\nwant %s", body, want)
	}
}

func TestClient_MeetingFilters(t *testing.T) {
	backend := &fakeBackend{response: `[{"id":1,"title":"Kickoff","date_time":"2026-10-16T09:00:00+00:00","duration":30,"meeting_type":"virtual","status":"scheduled","deal":42,"company":null,"participants":[3,"current_user"]}]`}
	c := newTestClient(t, backend)

	meetings, err := c.GetMeetingsForDeal(withToken("t"), 42)
	if err != nil {
		t.Fatalf("GetMeetingsForDeal: %v", err)
	}
	req := backend.last(t)
	if req.Path != "/api/meetings/filter/" || req.RawQuery != "deal=42" {
		t.Fatalf("unexpected request: %s?%s", req.Path, req.RawQuery)
	}
	if len(meetings) != 1 || len(meetings[0].Participants) != 2 || !meetings[0].Participants[1].CurrentUser {
		t.Fatalf("unexpected meetings: %+v", meetings)
	}

	if _, err := c.GetMeetingsForCompany(withToken("t"), 8); err != nil {
		t.Fatalf("GetMeetingsForCompany: %v", err)
	}
	if req := backend.last(t); req.RawQuery != "company=8" {
		t.Fatalf("unexpected query: %s", req.RawQuery)
	}

	if _, err := c.FilterMeetings(withToken("t"), domain.MeetingFilter{Company: 8, Status: domain.MeetingScheduled}); err != nil {
		t.Fatalf("FilterMeetings: %v", err)
	}
	if req := backend.last(t); req.RawQuery != "company=8&status=scheduled" {
		t.Fatalf("unexpected query: %s", req.RawQuery)
	}
}

func TestClient_DeleteIgnoresBody(t *testing.T) {
	backend := &fakeBackend{status: http.StatusNoContent}
	c := newTestClient(t, backend)

	if err := c.DeleteDeal(withToken("t"), 2); err != nil {
		t.Fatalf("DeleteDeal: %v", err)
	}
}

func TestClient_APIErrorKeepsStatusAndBody(t *testing.T) {
	backend := &fakeBackend{status: http.StatusNotFound, response: `{"detail":"Not found."}`}
	c := newTestClient(t, backend)

	_, err := c.GetTask(withToken("t"), 99)
	if err == nil {
		t.Fatalf("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || string(apiErr.Body) != `{"detail":"Not found."}` {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if code, ok := StatusCode(err); !ok || code != http.StatusNotFound {
		t.Fatalf("StatusCode() = %d, %v", code, ok)
	}
	if IsTransport(err) {
		t.Fatalf("api error must not be reported as transport error")
	}
}

func TestClient_TransportErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: base}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = c.ListTasks(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %T: %v", err, err)
	}
}

func TestClient_Login(t *testing.T) {
	backend := &fakeBackend{response: `{"token":"abc123","user":{"id":1,"username":"alice","email":"alice@example.com"}}`}
	c := newTestClient(t, backend)

	res, err := c.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "abc123" || res.User.Username != "alice" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	req := backend.last(t)
	if req.Method != http.MethodPost || req.Path != "/api/auth/login/" {
		t.Fatalf("unexpected request: %s %s", req.Method, req.Path)
	}
	if !strings.Contains(req.Body, `"username":"alice"`) || !strings.Contains(req.Body, `"password":"secret"`) {
		t.Fatalf("unexpected body: %s", req.Body)
	}
	if req.Auth != "" {
		t.Fatalf("login must not carry a token, got %q", req.Auth)
	}
}

func TestClient_Logout(t *testing.T) {
	backend := &fakeBackend{response: `{"message":"Logged out successfully"}`}
	c := newTestClient(t, backend)

	if err := c.Logout(withToken("abc123")); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	req := backend.last(t)
	if req.Method != http.MethodPost || req.Path != "/api/auth/logout/" || req.Auth != "Token abc123" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "ftp://example.com"}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c, err := New(Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("expected %s, got %s", DefaultBaseURL, c.BaseURL())
	}
}
