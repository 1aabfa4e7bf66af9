package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	httpmw "github.com/johnquangdev/meetingmind/internal/infrastructure/http/middleware"
	meetingUsecase "github.com/johnquangdev/meetingmind/internal/usecase/meeting"
	teamUsecase "github.com/johnquangdev/meetingmind/internal/usecase/team"
	"github.com/johnquangdev/meetingmind/pkg/config"
	"github.com/johnquangdev/meetingmind/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meetingmind/pkg/validator"
)

const testOrigin = "https://app.example.com"

type testServer struct {
	e        *echo.Echo
	calls    *storeCalls
	meetings *fakeMeetingRepo
	teams    *fakeTeamRepo
	tokens   *jwt.Manager
	logs     *observer.ObservedLogs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	calls := &storeCalls{}
	meetings := &fakeMeetingRepo{calls: calls, meetings: map[string]*entities.Meeting{}}
	teams := &fakeTeamRepo{calls: calls, teams: map[string]*entities.Team{}}
	tokens := jwt.NewManager("test-secret", "meetingmind", time.Hour)

	cfg := &config.Config{
		Server: config.ServerConfig{AllowedOrigin: testOrigin, Environment: "test"},
		Store:  config.StoreConfig{Backend: config.StoreBackendPostgres},
	}

	meetingSvc := meetingUsecase.NewMeetingService(meetings, teams, fakePresigner{}, meetingUsecase.Options{}, logger)
	teamSvc := teamUsecase.NewTeamService(teams, teamUsecase.ListingByIndex, logger)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
	NewRouter(cfg, NewMeetingHandler(meetingSvc, logger), NewTeamHandler(teamSvc, logger), httpmw.EchoAuth(tokens)).Setup(e)

	return &testServer{e: e, calls: calls, meetings: meetings, teams: teams, tokens: tokens, logs: logs}
}

func (s *testServer) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		token, err := s.tokens.GenerateAccessToken(userID, userID+"@example.com")
		if err != nil {
			t.Fatalf("failed to sign token: %v", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%q)", err, rec.Body.String())
	}
	return body
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func seedMeeting(s *testServer) *entities.Meeting {
	m := &entities.Meeting{
		UserID:      "user-1",
		MeetingID:   "m-1",
		Title:       "Sprint Review",
		Status:      entities.MeetingStatusDone,
		Transcript:  strPtr("the secret words spoken in the meeting"),
		HealthScore: floatPtr(87.5),
		ROI:         map[string]interface{}{"cost": 120.25, "value": 300.0},
		ActionItems: []entities.ActionItem{
			{ID: "a1", Task: "Ship it", Owner: "Alice", Status: entities.ActionStatusTodo, Deadline: "2026-02-21"},
			{ID: "a2", Task: "Write notes", Status: entities.ActionStatusDone, Completed: true},
		},
		CreatedAt: time.Date(2026, 2, 18, 15, 0, 0, 0, time.UTC),
	}
	s.meetings.meetings["user-1/m-1"] = m
	return m
}

func TestGetMeetingStripsTranscript(t *testing.T) {
	s := newTestServer(t)
	seedMeeting(s)

	rec := s.do(t, http.MethodGet, "/v1/meetings/m-1", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	raw := rec.Body.String()
	if strings.Contains(raw, "transcript") || strings.Contains(raw, "secret words") {
		t.Fatalf("transcript leaked: %s", raw)
	}
	if !strings.Contains(raw, `"healthScore":87.5`) || !strings.Contains(raw, `"cost":120.25`) {
		t.Fatalf("expected numeric literals, got %s", raw)
	}

	body := decodeBody(t, rec)
	items := body["actionItems"].([]interface{})
	second := items[1].(map[string]interface{})
	if second["owner"] != entities.UnassignedOwner {
		t.Fatalf("expected owner fallback, got %v", second["owner"])
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != testOrigin {
		t.Fatalf("expected CORS origin on response, got %q", got)
	}
}

func TestGetMeetingNotFound(t *testing.T) {
	s := newTestServer(t)
	seedMeeting(s)

	// another user's meeting is as absent as a missing one
	rec := s.do(t, http.MethodGet, "/v1/meetings/m-1", "user-2", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Meeting not found" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/teams", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if s.calls.count() != 0 {
		t.Fatalf("expected no store access, got %d calls", s.calls.count())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/teams", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid authentication token" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestPreflightAnswersWithoutAuthOrStore(t *testing.T) {
	s := newTestServer(t)

	cases := map[string]string{
		"/v1/teams":                   "GET,POST,OPTIONS",
		"/v1/teams/t-1":               "GET,OPTIONS",
		"/v1/meetings/m-1/actions/a1": "PUT,OPTIONS",
		"/v1/upload-url":              "POST,OPTIONS",
	}
	for path, methods := range cases {
		rec := s.do(t, http.MethodOptions, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("%s: expected empty body, got %q", path, rec.Body.String())
		}
		h := rec.Header()
		if h.Get(echo.HeaderAccessControlAllowOrigin) != testOrigin ||
			h.Get(echo.HeaderAccessControlAllowHeaders) != "Content-Type,Authorization" ||
			h.Get(echo.HeaderAccessControlAllowMethods) != methods ||
			h.Get(echo.HeaderContentType) != echo.MIMEApplicationJSON {
			t.Fatalf("%s: unexpected headers %v", path, h)
		}
	}
	if s.calls.count() != 0 {
		t.Fatalf("expected no store access, got %d calls", s.calls.count())
	}
}

func TestGetTeamMembershipGate(t *testing.T) {
	s := newTestServer(t)
	s.teams.teams["t-1"] = &entities.Team{
		TeamID:     "t-1",
		TeamName:   "Platform",
		InviteCode: "ABC123",
		Members:    []entities.Member{{UserID: "user-1", Role: entities.TeamRoleAdmin}},
		CreatedAt:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	rec := s.do(t, http.MethodGet, "/v1/teams/t-1", "user-2", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "You are not a member of this team" {
		t.Fatalf("unexpected body %v", body)
	}

	rec = s.do(t, http.MethodGet, "/v1/teams/t-404", "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Team not found" {
		t.Fatalf("unexpected body %v", body)
	}

	rec = s.do(t, http.MethodGet, "/v1/teams/t-1", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["teamName"] != "Platform" || body["inviteCode"] != "ABC123" {
		t.Fatalf("unexpected body %v", body)
	}
	if members := body["members"].([]interface{}); len(members) != 1 {
		t.Fatalf("expected one member, got %v", members)
	}
}

func TestListTeams(t *testing.T) {
	s := newTestServer(t)
	s.teams.teams["t-1"] = &entities.Team{
		TeamID:   "t-1",
		TeamName: "Platform",
		Members: []entities.Member{
			{UserID: "user-1"},
			{UserID: "user-2", Role: entities.TeamRoleAdmin},
		},
	}
	s.teams.teams["t-2"] = &entities.Team{TeamID: "t-2", TeamName: "Other", Members: []entities.Member{{UserID: "user-3"}}}

	rec := s.do(t, http.MethodGet, "/v1/teams", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Teams []struct {
			TeamID      string `json:"teamId"`
			MemberCount int    `json:"memberCount"`
			Role        string `json:"role"`
		} `json:"teams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Teams) != 1 || body.Teams[0].TeamID != "t-1" || body.Teams[0].MemberCount != 2 || body.Teams[0].Role != "member" {
		t.Fatalf("unexpected listing %+v", body.Teams)
	}
}

func TestUpdateAction(t *testing.T) {
	s := newTestServer(t)
	m := seedMeeting(s)

	rec := s.do(t, http.MethodPut, "/v1/meetings/m-1/actions/a1", "user-1", `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["actionId"] != "a1" || body["completed"] != true {
		t.Fatalf("unexpected body %v", body)
	}
	if item := m.ActionItems[0]; !item.Completed || item.Status != entities.ActionStatusDone || item.CompletedAt == nil {
		t.Fatalf("action not stored as done: %+v", item)
	}

	rec = s.do(t, http.MethodPut, "/v1/meetings/m-1/actions/a1", "user-1", `{"completed":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on reopen, got %d", rec.Code)
	}
	if item := m.ActionItems[0]; item.Completed || item.Status != entities.ActionStatusTodo || item.CompletedAt != nil {
		t.Fatalf("action not reopened: %+v", item)
	}
}

func TestUpdateActionErrors(t *testing.T) {
	s := newTestServer(t)
	seedMeeting(s)

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		msg    string
	}{
		{"missing meeting", "/v1/meetings/m-404/actions/a1", `{"completed":true}`, http.StatusNotFound, "Meeting not found"},
		{"missing action", "/v1/meetings/m-1/actions/zz", `{"completed":true}`, http.StatusNotFound, "Action item zz not found"},
		{"missing flag", "/v1/meetings/m-1/actions/a1", `{}`, http.StatusBadRequest, "completed is required"},
		{"malformed body", "/v1/meetings/m-1/actions/a1", `{"completed":`, http.StatusBadRequest, "Invalid payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPut, tc.path, "user-1", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if body := decodeBody(t, rec); body["error"] != tc.msg {
				t.Fatalf("unexpected body %v", body)
			}
		})
	}
}

func TestStoreFailureHidesInternals(t *testing.T) {
	s := newTestServer(t)
	s.meetings.err = errors.New("dial tcp 10.0.0.3:5432: connection refused")

	rec := s.do(t, http.MethodGet, "/v1/meetings/m-1", "user-1", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
	if body := decodeBody(t, rec); body["error"] != "Internal server error" {
		t.Fatalf("unexpected body %v", body)
	}

	entries := s.logs.FilterMessage("http.response.error").All()
	if len(entries) != 1 || !strings.Contains(entries[0].ContextMap()["error"].(string), "10.0.0.3") {
		t.Fatalf("expected the cause to be logged, got %+v", entries)
	}
}

func TestListActionsRejectsUnknownStatus(t *testing.T) {
	s := newTestServer(t)
	seedMeeting(s)

	rec := s.do(t, http.MethodGet, "/v1/actions?status=later", "user-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/v1/actions?status=incomplete", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	actions := body["actions"].([]interface{})
	if len(actions) != 1 || actions[0].(map[string]interface{})["meetingTitle"] != "Sprint Review" {
		t.Fatalf("unexpected actions %v", actions)
	}
}

func TestCreateUploadURL(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/upload-url", "user-1", `{"title":"Weekly Sync","contentType":"audio/wav","fileSize":1024}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	key, _ := body["s3Key"].(string)
	if !strings.HasPrefix(key, "audio/user-1__") || !strings.HasSuffix(key, "__Weekly-Sync.wav") {
		t.Fatalf("unexpected key %q", key)
	}
	if !strings.Contains(body["uploadUrl"].(string), key) {
		t.Fatalf("upload URL does not target the key: %v", body["uploadUrl"])
	}
	created := s.meetings.meetings["user-1/"+body["meetingId"].(string)]
	if created == nil || created.Status != entities.MeetingStatusPending || created.Email != "user-1@example.com" {
		t.Fatalf("pending meeting not stored: %+v", created)
	}

	rec = s.do(t, http.MethodPost, "/v1/upload-url", "user-1", `{"title":"x","contentType":"text/plain","fileSize":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Unsupported file type: text/plain" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/nope", "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] == nil {
		t.Fatalf("expected an error field, got %v", body)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" || body["store"] != config.StoreBackendPostgres {
		t.Fatalf("unexpected body %v", body)
	}
	if s.calls.count() != 0 {
		t.Fatalf("health must not touch the store, got %d calls", s.calls.count())
	}
}

// seedPipelineMeeting stores a record shaped the way the analysis pipeline
// writes it, including attributes the API does not model.
func seedPipelineMeeting(t *testing.T, s *testServer) *entities.Meeting {
	t.Helper()
	raw := `{"userId":"user-1","meetingId":"m-2","title":"Retro","status":"FAILED",` +
		`"createdAt":"2026-02-18T09:00:00.123456+00:00","transcript":"the secret words",` +
		`"errorMessage":"Transcription failed","decisions":["Ship on Friday"],"followUps":["Check the budget"],` +
		`"actionItems":[{"id":"a1","task":"Ship API","owner":"Alice","completed":false,"deadline":"2026-2-21",` +
		`"embedding":[0.125,-0.5],"epitaph":"Here lies Ship API","epitaphGeneratedAt":"2026-03-01T00:00:00+00:00"}]}`
	var m entities.Meeting
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	s.meetings.meetings["user-1/m-2"] = &m
	return &m
}

func TestGetMeetingPassesThroughStoredAttributes(t *testing.T) {
	s := newTestServer(t)
	seedPipelineMeeting(t, s)

	rec := s.do(t, http.MethodGet, "/v1/meetings/m-2", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	raw := rec.Body.String()
	if strings.Contains(raw, "transcript") || strings.Contains(raw, "secret words") {
		t.Fatalf("transcript leaked: %s", raw)
	}

	body := decodeBody(t, rec)
	if body["errorMessage"] != "Transcription failed" {
		t.Fatalf("errorMessage not passed through: %v", body)
	}
	if d := body["decisions"].([]interface{}); len(d) != 1 || d[0] != "Ship on Friday" {
		t.Fatalf("unexpected decisions %v", d)
	}
	if f := body["followUps"].([]interface{}); len(f) != 1 || f[0] != "Check the budget" {
		t.Fatalf("unexpected follow-ups %v", f)
	}
	item := body["actionItems"].([]interface{})[0].(map[string]interface{})
	if item["epitaph"] != "Here lies Ship API" || item["embedding"] == nil {
		t.Fatalf("action item attributes lost: %v", item)
	}
}

func TestUpdateActionKeepsStoredAttributes(t *testing.T) {
	s := newTestServer(t)
	m := seedPipelineMeeting(t, s)

	rec := s.do(t, http.MethodPut, "/v1/meetings/m-2/actions/a1", "user-1", `{"completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	item := m.ActionItems[0]
	if !item.Completed || item.Extra["epitaph"] != "Here lies Ship API" || item.Extra["embedding"] == nil {
		t.Fatalf("stored item lost attributes: %+v", item)
	}

	rec = s.do(t, http.MethodGet, "/v1/actions?status=complete", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	actions := decodeBody(t, rec)["actions"].([]interface{})
	if len(actions) != 1 {
		t.Fatalf("unexpected actions %v", actions)
	}
	action := actions[0].(map[string]interface{})
	if action["meetingId"] != "m-2" || action["meetingTitle"] != "Retro" || action["epitaph"] != "Here lies Ship API" {
		t.Fatalf("unexpected action %v", action)
	}
}

func TestDebtAnalytics(t *testing.T) {
	s := newTestServer(t)
	seedMeeting(s)

	rec := s.do(t, http.MethodGet, "/v1/actions/analytics", "user-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["totalActions"] != 2.0 || body["completedActions"] != 1.0 || body["incompleteActions"] != 1.0 {
		t.Fatalf("unexpected counts %v", body)
	}
	if body["completionRate"] != 0.5 || body["industryBenchmark"] != 0.67 || body["blockedHours"] != 3.2 || body["totalDebt"] != 240.0 {
		t.Fatalf("unexpected figures %v", body)
	}
	if trend := body["trend"].([]interface{}); len(trend) != 8 {
		t.Fatalf("expected 8 trend points, got %v", trend)
	}
	if _, ok := body["breakdown"].(map[string]interface{})["atRisk"]; !ok {
		t.Fatalf("missing breakdown in %v", body)
	}

	rec = s.do(t, http.MethodGet, "/v1/actions/analytics?teamId=team-404", "user-1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown team, got %d", rec.Code)
	}
}
