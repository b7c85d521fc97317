package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCategoryForStatus(t *testing.T) {
	testCases := map[string]struct {
		status int
		exp    StatusCategory
	}{
		"ok":       {status: 200, exp: CategoryAcknowledged},
		"created":  {status: 201, exp: CategoryAcknowledged},
		"noBody":   {status: 204, exp: CategoryAcknowledged},
		"denied":   {status: 403, exp: CategoryAccessDenied},
		"bad":      {status: 400, exp: CategoryBadRequest},
		"notFound": {status: 404, exp: CategoryUnknown},
		"teapot":   {status: 418, exp: CategoryUnknown},
		// 5xx deliberately has no dedicated category on the async path.
		"server":  {status: 500, exp: CategoryUnknown},
		"gateway": {status: 502, exp: CategoryUnknown},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := categoryForStatus(tc.status); got != tc.exp {
				t.Errorf("status %d: expected %v, got %v", tc.status, tc.exp, got)
			}
		})
	}
}

func TestCategoryForError(t *testing.T) {
	testCases := map[string]struct {
		kind Kind
		exp  StatusCategory
	}{
		"connection": {kind: KindConnectionError, exp: CategoryUnexpectedDisconnect},
		"timeout":    {kind: KindClientTimeout, exp: CategoryTimeout},
		"http":       {kind: KindHTTPError, exp: CategoryBadRequest},
		"redirects":  {kind: KindTooManyRedirects, exp: CategoryBadRequest},
		"unknown":    {kind: KindUnknown, exp: CategoryBadRequest},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := categoryForError(&Error{Kind: tc.kind}); got != tc.exp {
				t.Errorf("kind %v: expected %v, got %v", tc.kind, tc.exp, got)
			}
		})
	}
}

func TestNewResponseInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://ps.example.net/publish/x?uuid=abc&auth_key=k1&seq=2", nil)
	res := &http.Response{StatusCode: http.StatusOK, Request: req}

	info := newResponseInfo(res)

	if info.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", info.StatusCode)
	}
	if !info.TLSEnabled {
		t.Error("expected TLSEnabled for https scheme")
	}
	if info.Origin != "ps.example.net" {
		t.Errorf("expected origin ps.example.net, got %q", info.Origin)
	}
	if info.UUID != "abc" {
		t.Errorf("expected uuid abc, got %q", info.UUID)
	}
	if info.AuthKey != "k1" {
		t.Errorf("expected auth_key k1, got %q", info.AuthKey)
	}
	if info.ClientRequest != req {
		t.Error("expected the outgoing request to be referenced")
	}
}

func TestNewResponseInfo_AbsentQueryValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://ps.example.net/time/0", nil)
	res := &http.Response{StatusCode: http.StatusOK, Request: req}

	info := newResponseInfo(res)

	if info.TLSEnabled {
		t.Error("expected TLSEnabled false for http scheme")
	}
	if info.UUID != "" || info.AuthKey != "" {
		t.Errorf("expected empty identity values, got uuid=%q auth_key=%q", info.UUID, info.AuthKey)
	}
}

func TestStatusCategory_String(t *testing.T) {
	categories := map[StatusCategory]string{
		CategoryUnknown:              "Unknown",
		CategoryAcknowledged:         "Acknowledged",
		CategoryAccessDenied:         "AccessDenied",
		CategoryBadRequest:           "BadRequest",
		CategoryTimeout:              "Timeout",
		CategoryUnexpectedDisconnect: "UnexpectedDisconnect",
	}

	for category, exp := range categories {
		if got := category.String(); got != exp {
			t.Errorf("StatusCategory(%d): expected %q, got %q", category, exp, got)
		}
	}
}
