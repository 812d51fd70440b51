package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"anoa.com/sccams/internal/entity"
	personnel "anoa.com/sccams/internal/modules/personnel/service"
	"anoa.com/sccams/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) (body, map[string]json.RawMessage) {
	t.Helper()
	var b body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	return b, fields
}

func studentRouter() (*gin.Engine, *testutil.MemRepository[entity.Student], *testutil.FakeStorage) {
	repo := testutil.NewMemRepository[entity.Student]()
	storage := &testutil.FakeStorage{}
	svc := personnel.NewService[entity.Student](repo, &testutil.CountingHasher{}, storage, nil, zap.NewNop())
	h := NewPersonnelHandler(svc, zap.NewNop())

	r := gin.New()
	h.Register(r.Group("/api/admin"))
	r.GET("/api/admin/rfid-scan/:code", h.FindByCode)
	return r, repo, storage
}

func multipartAdd(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if withImage {
		part, err := w.CreateFormFile("image", "face.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("png"))
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/add-student", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func studentFields() map[string]string {
	return map[string]string{
		"code":     "S-1",
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct-horse",
		"number":   "0812",
		"address":  `{"line1":"Main","line2":"City"}`,
		"level":    "10",
	}
}

func TestAddStudent(t *testing.T) {
	r, repo, storage := studentRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartAdd(t, studentFields(), true))

	b, _ := decode(t, rec)
	if rec.Code != http.StatusOK || !b.Success || b.Message != "Student Added" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if repo.Len() != 1 || storage.Uploads() != 1 {
		t.Fatalf("expected one record and one upload")
	}
}

func TestAddStudentLegacyFailureShape(t *testing.T) {
	r, repo, _ := studentRouter()
	fields := studentFields()
	fields["password"] = "short"

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartAdd(t, fields, true))

	b, _ := decode(t, rec)
	if rec.Code != http.StatusOK || b.Success || b.Message != "Please enter a strong password" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if repo.Len() != 0 {
		t.Fatalf("record written despite validation failure")
	}
}

func TestAddStudentWithoutImage(t *testing.T) {
	r, _, _ := studentRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, multipartAdd(t, studentFields(), false))

	b, _ := decode(t, rec)
	if b.Success || b.Message != "Missing Details" {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
}

func TestListStudentsOmitsPassword(t *testing.T) {
	r, repo, _ := studentRouter()
	repo.Seed(&entity.Student{Person: entity.Person{Code: "S-1", Password: "hash"}, Level: "10"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/all-students", nil))

	b, fields := decode(t, rec)
	if !b.Success {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
	var students []map[string]any
	if err := json.Unmarshal(fields["students"], &students); err != nil {
		t.Fatalf("decode students: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}
	if _, ok := students[0]["password"]; ok {
		t.Fatalf("password field exposed")
	}
}

func TestRFIDScan(t *testing.T) {
	r, repo, _ := studentRouter()
	repo.Seed(&entity.Student{Person: entity.Person{Code: "RF-9", Name: "Ada"}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/rfid-scan/RF-9", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"student"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/rfid-scan/unknown", nil))
	b, _ := decode(t, rec)
	if rec.Code != http.StatusNotFound || b.Message != "Student not found" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateStudentPartial(t *testing.T) {
	r, repo, _ := studentRouter()
	seeded := repo.Seed(&entity.Student{Person: entity.Person{Code: "S-1", Name: "Ada", Email: "ada@example.com"}, Level: "10"})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/students/"+seeded.ID.String(), strings.NewReader(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	b, fields := decode(t, rec)
	if rec.Code != http.StatusOK || !b.Success {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	var student entity.Student
	if err := json.Unmarshal(fields["student"], &student); err != nil {
		t.Fatalf("decode student: %v", err)
	}
	if student.Name != "X" || student.Email != "ada@example.com" || student.Level != "10" {
		t.Fatalf("unexpected merge result %+v", student)
	}
}

func TestUpdateUnknownStudent(t *testing.T) {
	r, _, _ := studentRouter()

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodPut, "/api/admin/students/"+id, strings.NewReader(`{"name":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("id %q: expected 404, got %d", id, rec.Code)
		}
	}
}

func TestDeleteStudent(t *testing.T) {
	r, repo, _ := studentRouter()
	seeded := repo.Seed(&entity.Student{Person: entity.Person{Code: "S-1", Image: "https://res.cloudinary.com/test/image/upload/students/a.png"}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/students/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound || repo.Len() != 1 {
		t.Fatalf("expected 404 and untouched collection, got %d len=%d", rec.Code, repo.Len())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/students/"+seeded.ID.String(), nil))
	b, _ := decode(t, rec)
	if rec.Code != http.StatusOK || b.Message != "Student deleted successfully" || repo.Len() != 0 {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestFindUserByCode(t *testing.T) {
	students := testutil.NewMemRepository[entity.Student]()
	teachers := testutil.NewMemRepository[entity.Teacher]()
	teachers.Seed(&entity.Teacher{Person: entity.Person{Code: "T-1", Name: "Grace"}, Position: "Math"})
	lookup := personnel.NewLookupService(students, teachers,
		testutil.NewMemRepository[entity.Administrator](), testutil.NewMemRepository[entity.Utility]())

	r := gin.New()
	r.GET("/user/code/:code", NewLookupHandler(lookup, zap.NewNop()).FindUserByCode)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/code/T-1", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"position":"Math"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/code/none", nil))
	b, _ := decode(t, rec)
	if rec.Code != http.StatusNotFound || b.Message != "User not found" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateStudentRejectsInvalidFields(t *testing.T) {
	r, repo, _ := studentRouter()
	seeded := repo.Seed(&entity.Student{Person: entity.Person{Code: "S-1", Name: "Ada", Email: "ada@example.com"}, Level: "10"})

	longCode := strings.Repeat("c", 51)
	cases := []struct{ payload, message string }{
		{`{"email":"not-an-email"}`, "email must be a valid email"},
		{`{"code":"` + longCode + `"}`, "code must be at most 50 characters"},
		{`{"name":`, "Invalid update payload"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPut, "/api/admin/students/"+seeded.ID.String(), strings.NewReader(tc.payload))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		b, _ := decode(t, rec)
		if rec.Code != http.StatusBadRequest || b.Success || b.Message != tc.message {
			t.Fatalf("payload %s: unexpected response %d %s", tc.payload, rec.Code, rec.Body.String())
		}
	}

	unchanged, _ := repo.FindByID(context.Background(), seeded.ID)
	if unchanged.Email != "ada@example.com" || unchanged.Code != "S-1" {
		t.Fatalf("record changed by rejected update: %+v", unchanged)
	}
}
