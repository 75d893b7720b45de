package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/unilorin-sug/election/internal/config"
	"github.com/unilorin-sug/election/internal/constants"
	"github.com/unilorin-sug/election/internal/models"
	"github.com/unilorin-sug/election/internal/provider"
	"github.com/unilorin-sug/election/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type outboxMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *outboxMailer) Send(toEmail, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail)
	return nil
}

func setupRouterTest(t *testing.T) (*gin.Engine, *provider.Container, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	cfg := &config.Config{
		Server:       config.ServerConfig{Mode: "debug"},
		JWT:          config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 1},
		StudentJWT:   config.JWTConfig{SecretKey: "student-secret", ExpireHours: 1},
		Verification: config.VerificationConfig{Store: constants.VerificationStoreDatabase, ExpireMinutes: 5},
		Captcha:      config.CaptchaConfig{Provider: constants.CaptchaProviderNone},
		Metrics:      config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	container := provider.NewContainerWithDB(cfg, db)
	container.VerificationService = service.NewVerificationService(
		service.NewDatabaseVerificationCodeStore(container.VerificationCodeRepo),
		&outboxMailer{},
		cfg.Verification,
		container.Metrics,
	)
	container.StudentService = service.NewStudentService(container.StudentRepo, container.VerificationService, container.Metrics)

	return SetupRouter(cfg, container), container, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s unmarshal failed: %v body=%s", method, path, err, w.Body.String())
	}
	return resp
}

func seedElection(t *testing.T, c *provider.Container) (*models.Election, *models.Candidate) {
	t.Helper()
	now := time.Now().UTC()
	election, err := c.ElectionService.CreateElection(service.CreateElectionInput{
		Title:     "SUG General Elections",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Positions: []string{"President", "Treasurer"},
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	runner, err := c.StudentService.RegisterStudent(service.RegisterStudentInput{
		MatricNumber: "18/52HA001",
		Email:        "runner@students.unilorin.edu.ng",
		FullName:     "Aisha Bello",
		Faculty:      "Engineering",
		Department:   "Computer",
		Level:        "400",
	})
	if err != nil {
		t.Fatalf("register runner failed: %v", err)
	}
	candidate, err := c.CandidateService.AddCandidate(service.AddCandidateInput{
		StudentID:  runner.ID,
		ElectionID: election.ID,
		Position:   "President",
	})
	if err != nil {
		t.Fatalf("add candidate failed: %v", err)
	}
	return election, candidate
}

func TestStudentVotingFlow(t *testing.T) {
	r, container, db := setupRouterTest(t)
	election, candidate := seedElection(t, container)

	email := "voter@students.unilorin.edu.ng"
	resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"matric_number": "19/52HA010",
		"email":         "Voter@Students.Unilorin.edu.ng",
		"full_name":     "Tunde Ade",
		"faculty":       "Science",
		"department":    "Physics",
		"level":         "300",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("register status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/votes", "", gin.H{"election_id": election.ID, "candidate_id": candidate.ID})
	if resp.StatusCode != 401 {
		t.Fatalf("vote without token want 401 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/auth/send-code", "", gin.H{"email": email})
	if resp.StatusCode != 0 {
		t.Fatalf("send-code status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var stored models.VerificationCode
	if err := db.Where("email = ?", email).First(&stored).Error; err != nil {
		t.Fatalf("load stored code failed: %v", err)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/auth/verify-code", "", gin.H{"email": email, "code": "000000x"})
	if resp.StatusCode != 400 {
		t.Fatalf("wrong code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/auth/verify-code", "", gin.H{"email": email, "code": stored.Code})
	if resp.StatusCode != 0 {
		t.Fatalf("verify-code status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var verified struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &verified); err != nil {
		t.Fatalf("unmarshal verify data failed: %v", err)
	}
	if verified.Token == "" {
		t.Fatalf("verify-code should issue a student token for a registered email")
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/auth/verify-code", "", gin.H{"email": email, "code": stored.Code})
	if resp.StatusCode != 400 {
		t.Fatalf("reused code want 400 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/v1/me", verified.Token, nil)
	if resp.StatusCode != 0 || !strings.Contains(string(resp.Data), email) {
		t.Fatalf("me want current student, got %d %s", resp.StatusCode, string(resp.Data))
	}

	votePath := "/api/v1/votes"
	resp = doJSON(t, r, http.MethodPost, votePath, verified.Token, gin.H{
		"election_id":      election.ID,
		"candidate_id":     candidate.ID,
		"transaction_hash": "0xabc",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("cast vote want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	resp = doJSON(t, r, http.MethodPost, votePath, verified.Token, gin.H{"election_id": election.ID, "candidate_id": candidate.ID})
	if resp.StatusCode != 409 {
		t.Fatalf("second vote want 409 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/elections/%d/voted", election.ID), verified.Token, nil)
	if !strings.Contains(string(resp.Data), `"has_voted":true`) {
		t.Fatalf("voted status want true, got %s", string(resp.Data))
	}

	resp = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/elections/%d/results", election.ID), "", nil)
	var result service.ElectionResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("unmarshal results failed: %v", err)
	}
	if result.TotalVotes != 1 || len(result.Positions) != 2 {
		t.Fatalf("unexpected results: %+v", result)
	}
	if got := result.Positions[0].Candidates[0]; got.VoteCount != 1 || got.Percentage.String() != "100" {
		t.Fatalf("leading candidate want 1 vote at 100%%, got %+v", got)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/v1/elections/9999/results", "", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("unknown election results want 404 got %d", resp.StatusCode)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "sug_votes_cast_total 1") {
		t.Fatalf("metrics should expose the accepted vote")
	}
}

func TestStudentTokenRequiresVerifiedStudent(t *testing.T) {
	r, container, _ := setupRouterTest(t)
	student, err := container.StudentService.RegisterStudent(service.RegisterStudentInput{
		MatricNumber: "20/52HA099",
		Email:        "pending@students.unilorin.edu.ng",
		FullName:     "Pending Student",
	})
	if err != nil {
		t.Fatalf("register student failed: %v", err)
	}
	if _, _, err := container.StudentSessionService.Issue(student); !errors.Is(err, service.ErrStudentNotVerified) {
		t.Fatalf("unverified student should not receive a token, got %v", err)
	}

	resp := doJSON(t, r, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("garbage token want 401 got %d", resp.StatusCode)
	}
}

func TestAdminRoutesEnforceRoles(t *testing.T) {
	r, container, _ := setupRouterTest(t)

	hash, err := container.AuthService.HashPassword("Committee#2024")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	super := &models.Admin{Username: "chairman", PasswordHash: hash, IsSuper: true}
	auditor := &models.Admin{Username: "observer", PasswordHash: hash}
	if err := container.AdminRepo.Create(super); err != nil {
		t.Fatalf("create super admin failed: %v", err)
	}
	if err := container.AdminRepo.Create(auditor); err != nil {
		t.Fatalf("create auditor failed: %v", err)
	}
	if err := container.AuthzService.SetAdminRoles(auditor.ID, []string{constants.RoleAuditor}); err != nil {
		t.Fatalf("grant auditor role failed: %v", err)
	}

	login := func(username, password string) envelope {
		return doJSON(t, r, http.MethodPost, "/api/v1/admin/login", "", gin.H{"username": username, "password": password})
	}
	if resp := login("chairman", "wrong"); resp.StatusCode != 401 {
		t.Fatalf("bad password want 401 got %d", resp.StatusCode)
	}
	tokenOf := func(resp envelope) string {
		var data struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil || data.Token == "" {
			t.Fatalf("login should return token, got %d %s", resp.StatusCode, string(resp.Data))
		}
		return data.Token
	}
	superToken := tokenOf(login("chairman", "Committee#2024"))
	auditorToken := tokenOf(login("observer", "Committee#2024"))

	now := time.Now().UTC()
	electionBody := gin.H{
		"title":      "Faculty Reps",
		"start_time": now.Format(time.RFC3339),
		"end_time":   now.Add(2 * time.Hour).Format(time.RFC3339),
		"positions":  []string{"Representative"},
	}
	if resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/elections", auditorToken, electionBody); resp.StatusCode != 403 {
		t.Fatalf("auditor create election want 403 got %d", resp.StatusCode)
	}
	if resp := doJSON(t, r, http.MethodGet, "/api/v1/admin/students", auditorToken, nil); resp.StatusCode != 0 {
		t.Fatalf("auditor list students want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/elections", superToken, electionBody); resp.StatusCode != 0 {
		t.Fatalf("super admin create election want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	badElection := gin.H{
		"title":      "Broken",
		"start_time": now.Format(time.RFC3339),
		"end_time":   now.Add(time.Hour).Format(time.RFC3339),
		"positions":  []string{"Rep", "Rep"},
	}
	if resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/elections", superToken, badElection); resp.StatusCode != 400 {
		t.Fatalf("duplicate positions want 400 got %d", resp.StatusCode)
	}

	rolesPath := fmt.Sprintf("/api/v1/admin/authz/admins/%d/roles", auditor.ID)
	if resp := doJSON(t, r, http.MethodPut, rolesPath, auditorToken, gin.H{"roles": []string{constants.RoleReturningOfficer}}); resp.StatusCode != 403 {
		t.Fatalf("non-super role assignment want 403 got %d", resp.StatusCode)
	}
	if resp := doJSON(t, r, http.MethodPut, rolesPath, superToken, gin.H{"roles": []string{constants.RoleReturningOfficer}}); resp.StatusCode != 0 {
		t.Fatalf("super role assignment want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if resp := doJSON(t, r, http.MethodPost, "/api/v1/admin/elections", auditorToken, electionBody); resp.StatusCode != 0 {
		t.Fatalf("returning officer create election want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	resp := doJSON(t, r, http.MethodGet, "/api/v1/admin/audit-logs?action=election.create", auditorToken, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("list audit logs want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var logs []models.AuditLog
	if err := json.Unmarshal(resp.Data, &logs); err != nil {
		t.Fatalf("decode audit logs failed: %v", err)
	}
	if len(logs) != 2 || logs[0].OperatorAdminID != auditor.ID || logs[1].OperatorUsername != "chairman" {
		t.Fatalf("unexpected audit logs: %+v", logs)
	}
}

func TestSuperAdminCreatesCommitteeAccount(t *testing.T) {
	r, container, _ := setupRouterTest(t)
	container.Config.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 10, RequireNumber: true}

	hash, err := container.AuthService.HashPassword("Committee#2024")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if err := container.AdminRepo.Create(&models.Admin{Username: "chairman", PasswordHash: hash, IsSuper: true}); err != nil {
		t.Fatalf("create super admin failed: %v", err)
	}
	login := doJSON(t, r, http.MethodPost, "/api/v1/admin/login", "", gin.H{"username": "chairman", "password": "Committee#2024"})
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(login.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login should return token, got %d", login.StatusCode)
	}

	weak := doJSON(t, r, http.MethodPost, "/api/v1/admin/admins", data.Token, gin.H{"username": "officer", "password": "short"})
	if weak.StatusCode != 400 || !strings.Contains(weak.Msg, "10") {
		t.Fatalf("weak password want 400 with length hint, got %d (%s)", weak.StatusCode, weak.Msg)
	}
	created := doJSON(t, r, http.MethodPost, "/api/v1/admin/admins", data.Token, gin.H{"username": "officer", "password": "returning2026"})
	if created.StatusCode != 0 {
		t.Fatalf("create admin want 0 got %d (%s)", created.StatusCode, created.Msg)
	}
	dup := doJSON(t, r, http.MethodPost, "/api/v1/admin/admins", data.Token, gin.H{"username": "officer", "password": "returning2026"})
	if dup.StatusCode != 409 {
		t.Fatalf("duplicate admin want 409 got %d", dup.StatusCode)
	}
	if officer, _, _, err := container.AuthService.Login("officer", "returning2026"); err != nil || officer.IsSuper {
		t.Fatalf("new admin should log in as non-super, err=%v", err)
	}
}

func TestHealthz(t *testing.T) {
	r, _, _ := setupRouterTest(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("healthz unexpected response %d %s", w.Code, w.Body.String())
	}
}
