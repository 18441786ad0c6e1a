package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"careerhub/internal/recruiting/service"
	applicantStore "careerhub/internal/recruiting/store/applicant"
	feedStore "careerhub/internal/recruiting/store/feed"
	jobStore "careerhub/internal/recruiting/store/job"
	jobappStore "careerhub/internal/recruiting/store/jobapp"
	id "careerhub/pkg/domain"
	"careerhub/pkg/platform/sentinel"
)

type stubDirectory struct {
	students []service.StudentRef
}

func (d *stubDirectory) ListStudents(context.Context) ([]service.StudentRef, error) {
	return d.students, nil
}

func (d *stubDirectory) FindStudent(_ context.Context, studentID id.StudentID) (*service.StudentRef, error) {
	for _, s := range d.students {
		if s.ID == studentID {
			cp := s
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func newRouter(t *testing.T, directory *stubDirectory) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc, err := service.New(jobStore.NewInMemory(), applicantStore.NewInMemory(),
		jobappStore.NewInMemory(), feedStore.NewInMemory(), directory,
		service.WithLogger(logger))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func post(t *testing.T, router http.Handler, path string, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSubmitApplicationEndpoint(t *testing.T) {
	router := newRouter(t, &stubDirectory{})

	rec := post(t, router, "/companies/student/apply", `{
		"studentId": "s1",
		"companyId": "acme",
		"jobId": "j1",
		"academicScore": 50,
		"certificates": ["a", "b"],
		"workExperience": 3,
		"relevanceScore": 4
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success    bool    `json:"success"`
		Qualified  string  `json:"qualified"`
		FinalScore float64 `json:"finalScore"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success true")
	}
	if body.Qualified != "qualified" {
		t.Fatalf("expected qualified verdict, got %q", body.Qualified)
	}
	if body.FinalScore != 70 {
		t.Fatalf("expected final score 70, got %v", body.FinalScore)
	}
}

func TestSubmitApplicationCoercion(t *testing.T) {
	router := newRouter(t, &stubDirectory{})

	// Numeric strings parse, non-array certificates and malformed numbers
	// coerce to zero instead of failing the request.
	rec := post(t, router, "/companies/student/apply", `{
		"studentId": "s1",
		"companyId": "acme",
		"jobId": "j1",
		"academicScore": "62",
		"certificates": "not-a-list",
		"workExperience": null,
		"relevanceScore": {"weird": true}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Qualified  string  `json:"qualified"`
		FinalScore float64 `json:"finalScore"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.FinalScore != 62 {
		t.Fatalf("expected final score 62, got %v", body.FinalScore)
	}
	if body.Qualified != "qualified" {
		t.Fatalf("expected qualified verdict, got %q", body.Qualified)
	}
}

func TestSubmitApplicationValidation(t *testing.T) {
	router := newRouter(t, &stubDirectory{})

	rec := post(t, router, "/companies/student/apply", `{"studentId": "s1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPostJobAndFeedEndpoints(t *testing.T) {
	directory := &stubDirectory{students: []service.StudentRef{{ID: "s1"}}}
	router := newRouter(t, directory)

	rec := post(t, router, "/companies/postJob", `{
		"companyId": "acme",
		"title": "Backend Engineer",
		"role": "Engineer",
		"location": "Remote",
		"requirements": ["Go"]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("post job: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var posted struct {
		Success bool `json:"success"`
		Job     struct {
			ID string `json:"id"`
		} `json:"job"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&posted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !posted.Success || posted.Job.ID == "" {
		t.Fatalf("unexpected post job response: %+v", posted)
	}

	listRec := get(t, router, "/companies/jobs/acme")
	if listRec.Code != http.StatusOK {
		t.Fatalf("list jobs: expected 200, got %d", listRec.Code)
	}

	feedRec := get(t, router, "/students/jobFeed/s1")
	if feedRec.Code != http.StatusOK {
		t.Fatalf("feed: expected 200, got %d", feedRec.Code)
	}
	var feed []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(feedRec.Body).Decode(&feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != posted.Job.ID {
		t.Fatalf("expected the posted job in the feed, got %+v", feed)
	}
}

func TestMatchedJobsEndpoint(t *testing.T) {
	directory := &stubDirectory{students: []service.StudentRef{
		{ID: "s1", Qualifications: []string{"Go"}},
	}}
	router := newRouter(t, directory)

	rec := get(t, router, "/students/jobs/ghost")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown student, got %d", rec.Code)
	}

	rec = get(t, router, "/students/jobs/s1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); string(body) != "[]" {
		t.Fatalf("expected empty array with no jobs posted, got %s", body)
	}
}

func TestApplyJobEndpoint(t *testing.T) {
	router := newRouter(t, &stubDirectory{})

	payload := `{"studentId": "s1", "jobId": "j1"}`
	if rec := post(t, router, "/students/applyJob", payload); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec := post(t, router, "/students/applyJob", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate apply: expected 400, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Already applied for this job." {
		t.Fatalf("unexpected message %q", body.Message)
	}
}
