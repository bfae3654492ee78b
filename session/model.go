package session

// UserData is the identity record returned by the login endpoint.
type UserData struct {
	UserID    string `json:"userId"`
	StudentID string `json:"studentId"`
	Name      string `json:"name,omitempty"`
}

// StudentInfo is the extended profile fetched during the academic bootstrap.
// AcademicYear and Term carry the student's declared names, which the
// bootstrap matches against the fetched year/term lists.
type StudentInfo struct {
	DepartmentID int64  `json:"departmentId,omitempty"`
	BranchID     int64  `json:"branchId,omitempty"`
	AcademicYear string `json:"academicYear,omitempty"`
	Term         string `json:"term,omitempty"`
}

// AcademicYear is one entry of the student's academic-year list.
type AcademicYear struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Term is one entry of the term list for a selected academic year.
type Term struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// State is a point-in-time copy of the full session record.
type State struct {
	Token                   string
	UserData                *UserData
	StudentInfo             *StudentInfo
	AcademicYears           []AcademicYear
	CurrentAcademicYearID   int64
	CurrentAcademicYearName string
	CurrentTermID           int64
	CurrentTermName         string
	AvailableTerms          []Term
}
