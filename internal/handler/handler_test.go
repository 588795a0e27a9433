package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agrigo/equipment-rental/internal/model"
)

// doJSON runs one handler invocation and decodes the JSON response.
func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, setup func(echo.Context)) (int, map[string]json.RawMessage) {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var decoded map[string]json.RawMessage
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			// Listing endpoints return arrays; callers use doJSONList.
			decoded = nil
		}
	}
	return rec.Code, decoded
}

// doJSONList is doJSON for endpoints returning arrays.
func doJSONList(t *testing.T, h echo.HandlerFunc, method, target string) (int, []json.RawMessage) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("response is not a JSON array: %s", rec.Body.String())
	}
	return rec.Code, list
}

func errCode(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()
	var code string
	if raw, ok := body["code"]; ok {
		_ = json.Unmarshal(raw, &code)
	}
	return code
}

func seedUser(t *testing.T, users *memUsers, role, email, uid string) model.User {
	t.Helper()
	u := model.User{Email: email, Name: "Test " + role, Role: role, FirebaseUID: uid}
	if err := users.Create(context.Background(), &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedVerifiedResource(t *testing.T, resources *memResources, ownerID, adminID uint64) model.Resource {
	t.Helper()
	r := model.Resource{OwnerID: ownerID, Name: "Tractor", Type: "tractor", PricePerDay: 100, Location: "Village"}
	if err := resources.Create(context.Background(), &r); err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	fields := map[string]any{"status": model.ResourceVerified, "verified_by": adminID}
	if err := resources.Update(context.Background(), r.ID, fields); err != nil {
		t.Fatalf("verify resource: %v", err)
	}
	out, err := resources.GetByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("reload resource: %v", err)
	}
	return out
}

func TestParseLimitClamp(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"", 10, 10},
		{"abc", 10, 10},
		{"-5", 10, 10},
		{"0", 50, 50},
		{"25", 10, 25},
		{"100", 10, 100},
		{"500", 10, 100},
	}
	for _, tt := range tests {
		if got := parseLimit(tt.in, tt.def); got != tt.want {
			t.Errorf("parseLimit(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if _, ok := parseID("0"); ok {
		t.Error("zero ID must be invalid")
	}
	if _, ok := parseID("-3"); ok {
		t.Error("negative ID must be invalid")
	}
	if id, ok := parseID(" 42 "); !ok || id != 42 {
		t.Errorf("parseID(42) = (%d, %v)", id, ok)
	}
}

func TestHealth(t *testing.T) {
	status, body := doJSON(t, Health, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	var svc string
	_ = json.Unmarshal(body["service"], &svc)
	if svc != "equipment-rental-api" {
		t.Errorf("service = %q", svc)
	}
}
