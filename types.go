package portalclient

import "github.com/wildcat-one/portalclient/session"

// LoginResult defines a public type used by portalclient APIs.
//
// LoginResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginResult struct {
	Success  bool
	UserData *session.UserData
}

// RestoreResult defines a public type used by portalclient APIs.
//
// RestoreResult reports whether a persisted session could be rebuilt; a false
// Success is the quiet "no session" outcome, not an error.
type RestoreResult struct {
	Success  bool
	UserData *session.UserData
}

// ForgotPasswordResult defines a public type used by portalclient APIs.
//
// ForgotPasswordResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ForgotPasswordResult struct {
	Success bool
	Message string
}

// AcademicContext is the bootstrapped academic selection for the session.
type AcademicContext struct {
	StudentInfo     *session.StudentInfo
	AcademicYears   []session.AcademicYear
	CurrentYearID   int64
	CurrentYearName string
	AvailableTerms  []session.Term
	CurrentTermID   int64
	CurrentTermName string
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	ClientID string `json:"clientId"`
}

type loginResponse struct {
	Token    string            `json:"token"`
	UserInfo *session.UserData `json:"userInfo"`
}

type studentInfoResponse struct {
	Items *session.StudentInfo `json:"items"`
}

type academicYearsResponse struct {
	Items []session.AcademicYear `json:"items"`
}

type termsResponse struct {
	Items []session.Term `json:"items"`
}

type forgotPasswordRequest struct {
	StudentID        string `json:"studentID"`
	StudentBirthDate string `json:"studentBirthDate"`
}

type forgotPasswordResponse struct {
	Message string `json:"message"`
}
