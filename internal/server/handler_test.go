package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atspro/internal/ai"
	"atspro/internal/config"
	"atspro/internal/engine"
	"atspro/internal/errors"
	"atspro/internal/extract"
	"atspro/internal/observability"
	"atspro/internal/types"
)

func newTestServer(t *testing.T, apiKeys []string) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}

	eng := engine.New(nil, engine.Config{})
	appCfg := &config.Config{}
	srv := NewServer(appCfg, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		APIKeys:        apiKeys,
		MaxRequestSize: 1 << 20,
		CORS:           config.CORSConfig{Enabled: true, AllowedOrigins: []string{"*"}},
		Engine:         eng,
		Rewriter:       ai.NewRuleRewriter(eng),
		Extractor:      extract.New(logger),
	}, logger)

	return srv, om
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	resume := "SUMMARY\nI am a dev.\nSKILLS\nPython, SQL, Python\nEXPERIENCE\nworked on stuff"
	rec := postJSON(t, mux, "/analyze", AnalyzeRequest{
		ResumeText:     resume,
		JobDescription: "Python SQL developer",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var report types.AnalysisReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.ATSScore <= 0 || report.ATSScore > 100 {
		t.Errorf("ATSScore = %d, want within (0,100]", report.ATSScore)
	}
	matched := strings.Join(report.MatchedKeywords, " ")
	if !strings.Contains(matched, "python") || !strings.Contains(matched, "sql") {
		t.Errorf("MatchedKeywords = %v, want python and sql", report.MatchedKeywords)
	}
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	tests := []struct {
		name       string
		body       AnalyzeRequest
		wantStatus int
	}{
		{"missing resume text", AnalyzeRequest{JobDescription: "any"}, http.StatusBadRequest},
		{"whitespace resume text", AnalyzeRequest{ResumeText: "   "}, http.StatusBadRequest},
		{"valid without job", AnalyzeRequest{ResumeText: "SKILLS\nGo"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, mux, "/analyze", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestAnalyzeEndpointRequiresJSONContentType(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"resumeText":"x"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFullRewriteEndpoint(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	rec := postJSON(t, mux, "/ai/full-ats-improve", RewriteRequest{
		ResumeText: "SKILLS\nGo, Go, SQL\nEXPERIENCE\nworked on stuff",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result types.RewriteResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.SkillsBlock != "• Go\n• SQL" {
		t.Errorf("SkillsBlock = %q", result.SkillsBlock)
	}
	if !strings.Contains(result.FinalResume, "SKILLS") {
		t.Errorf("FinalResume missing SKILLS header:\n%s", result.FinalResume)
	}
}

func TestTextRewriteEndpoints(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	tests := []struct {
		name string
		path string
		body any
		want string
	}{
		{"bullet", "/ai/rewrite-bullet", BulletRewriteRequest{Bullet: "worked on stuff"}, "• Led stuff"},
		{"summary", "/ai/rewrite-summary", SummaryRewriteRequest{Summary: "I did things"}, "Results-driven professional"},
		{"section", "/ai/improve-section", SectionImproveRequest{SectionText: "short line"}, "short line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, mux, tt.path, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var result types.TextResult
			if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !strings.Contains(result.Text, tt.want) {
				t.Errorf("Text = %q, want substring %q", result.Text, tt.want)
			}
		})
	}
}

func TestTextRewriteEmptyInputIsValid(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	rec := postJSON(t, mux, "/ai/rewrite-bullet", BulletRewriteRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var result types.TextResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Text != "" {
		t.Errorf("empty bullet must produce empty output, got %q", result.Text)
	}
}

func uploadRequest(t *testing.T, filename, content, jobDescription string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if jobDescription != "" {
		if err := writer.WriteField("job_description", jobDescription); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadEndpoint(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	resume := "SUMMARY\nI am a dev.\nSKILLS\nPython, SQL\nEXPERIENCE\nworked on stuff"
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, uploadRequest(t, "resume.txt", resume, "Python SQL developer"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result types.UploadResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Filename != "resume.txt" {
		t.Errorf("Filename = %q", result.Filename)
	}
	if result.Preview == "" || len(result.Preview) > engine.PreviewLength() {
		t.Errorf("Preview length = %d, want 1..%d", len(result.Preview), engine.PreviewLength())
	}
	if result.Analysis.ATSScore <= 0 {
		t.Errorf("ATSScore = %d, want > 0", result.Analysis.ATSScore)
	}
	if !strings.Contains(result.ImprovedResume, "SKILLS") {
		t.Errorf("ImprovedResume missing SKILLS header:\n%s", result.ImprovedResume)
	}
}

func TestUploadEndpointRejections(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	tests := []struct {
		name       string
		filename   string
		content    string
		wantStatus int
	}{
		{"unsupported extension", "resume.exe", "text", http.StatusUnsupportedMediaType},
		{"empty extracted text", "resume.txt", "   \n  ", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, uploadRequest(t, tt.filename, tt.content, ""))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestUploadEndpointMissingFile(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("job_description", "any"); err != nil {
		t.Fatalf("failed to write form field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, om := newTestServer(t, []string{"secret-key-12345"})
	mux := srv.setupRoutes(om)

	tests := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{"missing key", "", "", http.StatusUnauthorized},
		{"invalid key", "X-API-Key", "wrong", http.StatusUnauthorized},
		{"valid key", "X-API-Key", "secret-key-12345", http.StatusOK},
		{"valid bearer token", "Authorization", "Bearer secret-key-12345", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"resumeText":"SKILLS\nGo"}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRootHandler(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var banner map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &banner); err != nil {
		t.Fatalf("failed to decode banner: %v", err)
	}
	if banner["service"] != "atspro" {
		t.Errorf("service = %v", banner["service"])
	}

	// Unknown paths under the catch-all route must 404
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var health map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v", health["status"])
	}
	rewrite, ok := health["rewrite"].(map[string]any)
	if !ok {
		t.Fatalf("rewrite section missing: %v", health)
	}
	if rewrite["strategy"] != "rule" || rewrite["available"] != true {
		t.Errorf("rewrite = %v", rewrite)
	}
}

func TestStatsHandler(t *testing.T) {
	srv, om := newTestServer(t, nil)
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	pipeline, ok := stats["pipeline"].(map[string]any)
	if !ok {
		t.Fatalf("pipeline section missing: %v", stats)
	}
	if pipeline["rewrite_strategy"] != "rule" || pipeline["keyword_policy"] != "plain" {
		t.Errorf("pipeline = %v", pipeline)
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetRateLimitKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("X-API-Key", "abc")
	req.RemoteAddr = "10.1.2.3:4444"

	if got := getRateLimitKey(req, true, true); got != "api:abc" {
		t.Errorf("by api key = %q", got)
	}
	if got := getRateLimitKey(req, false, true); got != "ip:10.1.2.3" {
		t.Errorf("by ip = %q", got)
	}
	if got := getRateLimitKey(req, false, false); got != "" {
		t.Errorf("disabled = %q", got)
	}
}

func TestPreviewOf(t *testing.T) {
	short := "short text"
	if got := previewOf(short); got != short {
		t.Errorf("previewOf(short) = %q", got)
	}

	long := strings.Repeat("é", engine.PreviewLength()+100)
	got := previewOf(long)
	if len([]rune(got)) != engine.PreviewLength() {
		t.Errorf("preview rune length = %d, want %d", len([]rune(got)), engine.PreviewLength())
	}
}
