package portalclient

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/wildcat-one/portalclient/secure"
	"github.com/wildcat-one/portalclient/session"
)

const (
	fixtureBaseURL  = "https://portal-base.example"
	fixtureLoginURL = "https://portal-login.example"

	fixtureUserID    = "20-1234-567"
	fixturePassword  = "hunter22"
	fixtureStudentID = "S-2024-0042"
	fixtureToken     = "fixture-bearer-token"
)

// portalFixture is an in-process stand-in for the relay plus both portal
// hosts. The relay front door unwraps the url query parameter and dispatches
// the rewritten request into a router covering the portal's endpoints.
type portalFixture struct {
	t      *testing.T
	codec  *secure.Codec
	router *mux.Router
	server *httptest.Server

	// behavior knobs, set before the call under test
	encryptResponses bool
	omitToken        bool
	failYears        bool
	unauthorized     bool
	resetStatus      int

	info  session.StudentInfo
	years []session.AcademicYear
	terms []session.Term

	loginCalls atomic.Int64
	infoCalls  atomic.Int64
}

func newPortalFixture(t *testing.T) *portalFixture {
	t.Helper()

	codec, err := secure.NewCodec(
		"anotherUniqueSuperSecretKeyEnrollmentAdmin123",
		"ourSuperSecretKeyEnrollmentAdmin123",
		"aP9!vB7@kL3#xY5$zQ2^mN8&dR1*oW6%uJ4(eT0)",
	)
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	f := &portalFixture{
		t:           t,
		codec:       codec,
		resetStatus: http.StatusOK,
		info: session.StudentInfo{
			DepartmentID: 11,
			BranchID:     2,
			AcademicYear: "2024-2025",
			Term:         "1st Sem",
		},
		years: []session.AcademicYear{
			{ID: 5, Name: "2023-2024"},
			{ID: 7, Name: "2024-2025"},
		},
		terms: []session.Term{
			{ID: 3, Name: "1st Sem"},
			{ID: 4, Name: "2nd Sem"},
		},
	}

	f.router = mux.NewRouter()
	f.router.HandleFunc("/api/User/student/login", f.handleLogin).Methods(http.MethodPost)
	f.router.HandleFunc("/api/user/student/{userId}/info", f.handleInfo).Methods(http.MethodGet)
	f.router.HandleFunc("/api/user/student/forgotpassword", f.handleForgotPassword).Methods(http.MethodPost)
	f.router.HandleFunc("/api/student/{studentId}/academicyears", f.handleYears).Methods(http.MethodGet)
	f.router.HandleFunc("/api/student/{studentId}/{yearId}/terms", f.handleTerms).Methods(http.MethodGet)

	f.server = httptest.NewServer(http.HandlerFunc(f.relay))
	t.Cleanup(f.server.Close)

	return f
}

// relay unwraps the percent-encoded target and replays the request against
// the portal router, the way the CORS worker does.
func (f *portalFixture) relay(w http.ResponseWriter, r *http.Request) {
	target, err := url.Parse(r.URL.Query().Get("url"))
	if err != nil {
		http.Error(w, "bad relay target", http.StatusBadRequest)
		return
	}
	inner := r.Clone(r.Context())
	inner.URL = target
	inner.RequestURI = ""
	f.router.ServeHTTP(w, inner)
}

// config returns a client config pointed at the fixture.
func (f *portalFixture) config() Config {
	cfg := DefaultConfig()
	cfg.Endpoints.BaseURL = fixtureBaseURL
	cfg.Endpoints.LoginURL = fixtureLoginURL
	cfg.Endpoints.RelayURL = f.server.URL + "/?url="
	return cfg
}

// newClient builds a memory-backed client against the fixture.
func (f *portalFixture) newClient(onInvalidated func()) *Client {
	f.t.Helper()

	b := New().WithConfig(f.config())
	if onInvalidated != nil {
		b = b.WithOnSessionInvalidated(onInvalidated)
	}
	client, err := b.Build()
	if err != nil {
		f.t.Fatalf("Build failed: %v", err)
	}
	f.t.Cleanup(client.Close)
	return client
}

func (f *portalFixture) decryptRequest(r *http.Request, v any) {
	f.t.Helper()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		f.t.Errorf("fixture: reading request body: %v", err)
		return
	}
	var wrapped struct {
		Encrypted string `json:"encrypted"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		f.t.Errorf("fixture: request body is not the encrypted envelope: %v", err)
		return
	}
	if err := f.codec.DecryptInto(wrapped.Encrypted, v); err != nil {
		f.t.Errorf("fixture: request payload did not decrypt: %v", err)
	}
}

// reply writes v as JSON, or as an encrypted text/plain payload when the
// fixture is in encrypting mode.
func (f *portalFixture) reply(w http.ResponseWriter, status int, v any) {
	f.t.Helper()

	if f.encryptResponses {
		cipherText, err := f.codec.Encrypt(v)
		if err != nil {
			f.t.Errorf("fixture: encrypting response: %v", err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(cipherText))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *portalFixture) handleLogin(w http.ResponseWriter, r *http.Request) {
	f.loginCalls.Add(1)

	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
		ClientID string `json:"clientId"`
	}
	f.decryptRequest(r, &req)

	if req.UserID != fixtureUserID || req.Password != fixturePassword {
		f.reply(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}
	if req.ClientID != "001" {
		f.t.Errorf("fixture: login clientId = %q", req.ClientID)
	}

	if f.omitToken {
		f.reply(w, http.StatusOK, map[string]any{})
		return
	}
	f.reply(w, http.StatusOK, map[string]any{
		"token": fixtureToken,
		"userInfo": session.UserData{
			UserID:    fixtureUserID,
			StudentID: fixtureStudentID,
			Name:      "Test Student",
		},
	})
}

func (f *portalFixture) handleInfo(w http.ResponseWriter, r *http.Request) {
	f.infoCalls.Add(1)

	if f.unauthorized {
		f.reply(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
		return
	}
	if mux.Vars(r)["userId"] != fixtureUserID {
		f.reply(w, http.StatusNotFound, map[string]string{"message": "unknown student"})
		return
	}
	f.reply(w, http.StatusOK, map[string]any{"items": f.info})
}

func (f *portalFixture) handleYears(w http.ResponseWriter, r *http.Request) {
	if f.failYears {
		f.reply(w, http.StatusInternalServerError, map[string]string{"message": "upstream error"})
		return
	}
	if mux.Vars(r)["studentId"] != fixtureStudentID {
		f.reply(w, http.StatusNotFound, map[string]string{"message": "unknown student"})
		return
	}
	f.reply(w, http.StatusOK, map[string]any{"items": f.years})
}

func (f *portalFixture) handleTerms(w http.ResponseWriter, r *http.Request) {
	f.reply(w, http.StatusOK, map[string]any{"items": f.terms})
}

func (f *portalFixture) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID        string `json:"studentID"`
		StudentBirthDate string `json:"studentBirthDate"`
	}
	f.decryptRequest(r, &req)

	if f.resetStatus != http.StatusOK {
		f.reply(w, f.resetStatus, map[string]string{"message": "no"})
		return
	}
	if req.StudentID != fixtureUserID {
		f.reply(w, http.StatusNotFound, map[string]string{"message": "record not found"})
		return
	}
	f.reply(w, http.StatusOK, map[string]string{
		"message": "Reset link sent for " + req.StudentBirthDate,
	})
}
