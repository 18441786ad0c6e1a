package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"careerhub/internal/directory/service"
	"careerhub/internal/directory/store"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc, err := service.New(store.NewInMemory(), service.WithLogger(logger))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	h := New(svc, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func send(t *testing.T, router http.Handler, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Message
}

func TestRegisterStudentEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := send(t, router, http.MethodPost, "/students/register",
		`{"studentId": "s1", "name": "Ada", "email": "ada@example.com", "qualifications": ["Go"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := message(t, rec); got != "Student registered/updated successfully." {
		t.Fatalf("unexpected message %q", got)
	}

	rec = send(t, router, http.MethodPost, "/students/register", `{"studentId": "s1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := message(t, rec); got != "Missing required fields." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUploadDocsEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := send(t, router, http.MethodPost, "/students/uploadDocs",
		`{"studentId": "ghost", "fileURL": "https://files.example/t.pdf", "fileType": "transcript"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown student, got %d", rec.Code)
	}
	if got := message(t, rec); got != "Student not found." {
		t.Fatalf("unexpected message %q", got)
	}

	if rec := send(t, router, http.MethodPost, "/students/register",
		`{"studentId": "s1", "name": "Ada", "email": "ada@example.com"}`); rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}

	rec = send(t, router, http.MethodPost, "/students/uploadDocs",
		`{"studentId": "s1", "fileName": "t.pdf", "fileURL": "https://files.example/t.pdf", "fileType": "transcript"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := message(t, rec); got != "Document metadata uploaded successfully." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestFacultyEndpoints(t *testing.T) {
	router := newRouter(t)

	rec := send(t, router, http.MethodPost, "/institutions/addFaculty",
		`{"institutionId": "inst1", "facultyName": "Engineering"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add faculty: expected 200, got %d", rec.Code)
	}

	rec = send(t, router, http.MethodPost, "/institutions/addFaculty", `{"institutionId": "inst1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without facultyName, got %d", rec.Code)
	}

	rec = send(t, router, http.MethodPut, "/institutions/updateFaculty/missing",
		`{"facultyName": "CS"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing faculty, got %d", rec.Code)
	}

	rec = send(t, router, http.MethodDelete, "/institutions/deleteFaculty/missing", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete is idempotent: expected 200, got %d", rec.Code)
	}
}

func TestUpdateCompanyEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := send(t, router, http.MethodPost, "/companies/updateProfile",
		`{"companyId": "acme", "name": "Acme", "email": "jobs@acme.example"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Message != "Profile updated" {
		t.Fatalf("unexpected response: %+v", body)
	}
}
