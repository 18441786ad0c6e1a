package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	admissionStore "careerhub/internal/admissions/store/admission"
	applicationStore "careerhub/internal/admissions/store/application"
	"careerhub/internal/admissions/service"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, err := service.New(applicationStore.NewInMemory(), admissionStore.NewInMemory(),
		service.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	h := New(svc, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func post(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
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

func TestApplyCourseEndpoint(t *testing.T) {
	router := newRouter(t)

	apply := func(course string) *httptest.ResponseRecorder {
		return post(t, router, "/students/applyCourse", map[string]string{
			"studentId":     "s1",
			"institutionId": "inst1",
			"courseId":      course,
			"courseName":    "Course " + course,
		})
	}

	if rec := apply("c1"); rec.Code != http.StatusOK {
		t.Fatalf("first apply: expected 200, got %d", rec.Code)
	}
	if rec := apply("c2"); rec.Code != http.StatusOK {
		t.Fatalf("second apply: expected 200, got %d", rec.Code)
	}

	rec := apply("c3")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("third apply: expected 400, got %d", rec.Code)
	}
	if got := message(t, rec); got != "You can only apply for up to two courses per institution." {
		t.Fatalf("unexpected limit message %q", got)
	}

	// Duplicate while under the limit, different student.
	dupe := func() *httptest.ResponseRecorder {
		return post(t, router, "/students/applyCourse", map[string]string{
			"studentId":     "s2",
			"institutionId": "inst1",
			"courseId":      "c1",
		})
	}
	if rec := dupe(); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = dupe()
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate apply: expected 400, got %d", rec.Code)
	}
	if got := message(t, rec); got != "You already applied for this course." {
		t.Fatalf("unexpected duplicate message %q", got)
	}
}

func TestApplyCourseValidation(t *testing.T) {
	router := newRouter(t)

	rec := post(t, router, "/students/applyCourse", map[string]string{
		"studentId": "s1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := message(t, rec); got != "Missing required fields." {
		t.Fatalf("unexpected validation message %q", got)
	}
}

func TestPublishAdmissionEndpoint(t *testing.T) {
	router := newRouter(t)

	publish := func(student, inst string) *httptest.ResponseRecorder {
		return post(t, router, "/institutions/publishAdmission", map[string]string{
			"studentId":       student,
			"institutionId":   inst,
			"courseName":      "CS",
			"admissionStatus": "admitted",
		})
	}

	if rec := publish("s1", "inst1"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := publish("s1", "inst2")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := message(t, rec); got != "Student is already admitted to another institution." {
		t.Fatalf("unexpected exclusivity message %q", got)
	}
}

func TestApproveStudentEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := post(t, router, "/institutions/approveStudent", map[string]string{
		"applicationId": "does-not-exist",
		"status":        "Approved",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := message(t, rec); got != "Application not found." {
		t.Fatalf("unexpected message %q", got)
	}

	// Create an application, then approve it through the API.
	apply := post(t, router, "/students/applyCourse", map[string]string{
		"studentId":     "s1",
		"institutionId": "inst1",
		"courseId":      "c1",
		"courseName":    "CS",
	})
	if apply.Code != http.StatusOK {
		t.Fatalf("apply: expected 200, got %d", apply.Code)
	}

	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/institutions/applications/inst1", nil))
	if listRec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", listRec.Code)
	}
	var apps []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(listRec.Body).Decode(&apps); err != nil {
		t.Fatalf("decode applications: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}

	rec = post(t, router, "/institutions/approveStudent", map[string]string{
		"applicationId": apps[0].ID,
		"status":        "Approved",
		"studentEmail":  "s1@example.com",
		"studentName":   "Sam",
		"courseName":    "CS",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := message(t, rec); got != "Student application Approved successfully." {
		t.Fatalf("unexpected approve message %q", got)
	}
}

func TestNotifyAdmissionEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := post(t, router, "/students/notifyAdmission", map[string]string{
		"email":       "s1@example.com",
		"studentName": "Sam",
		"institution": "State U",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := message(t, rec); got != "Admission notification email sent." {
		t.Fatalf("unexpected message %q", got)
	}

	rec = post(t, router, "/students/notifyAdmission", map[string]string{
		"email": "s1@example.com",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := message(t, rec); got != "Missing required fields." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestStudentAdmissionsEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/admissions/s1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); string(body) != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}
