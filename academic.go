package portalclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/wildcat-one/portalclient/session"
)

// BootstrapAcademicContext describes the bootstrapacademiccontext operation and its observable behavior.
//
// BootstrapAcademicContext fetches the student profile, the academic-year
// list, and the term list for the selected year, persisting each step into
// the session store. The current year and term prefer the names declared on
// the profile and fall back to the last list element. Any failed step returns
// an error wrapping [ErrBootstrap] with the store holding whatever steps
// completed; re-running the bootstrap overwrites them, so it is idempotent.
func (c *Client) BootstrapAcademicContext(ctx context.Context, ud *session.UserData) (*AcademicContext, error) {
	if ud == nil {
		return nil, fmt.Errorf("%w: no user data", ErrBootstrap)
	}

	infoRes, err := c.api.Get(ctx, "/api/user/student/"+ud.UserID+"/info", c.config.Endpoints.LoginURL)
	if err != nil {
		return nil, fmt.Errorf("%w: student info: %w", ErrBootstrap, err)
	}
	var info studentInfoResponse
	if infoRes.Status != http.StatusOK || infoRes.Decode(&info) != nil || info.Items == nil {
		return nil, fmt.Errorf("%w: failed to fetch student information (status %d)", ErrBootstrap, infoRes.Status)
	}
	c.store.SetStudentInfo(info.Items)

	yearsRes, err := c.api.Get(ctx, "/api/student/"+ud.StudentID+"/academicyears", c.config.Endpoints.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: academic years: %w", ErrBootstrap, err)
	}
	var years academicYearsResponse
	if yearsRes.Status != http.StatusOK || yearsRes.Decode(&years) != nil || years.Items == nil {
		return nil, fmt.Errorf("%w: failed to fetch academic years (status %d)", ErrBootstrap, yearsRes.Status)
	}
	c.store.SetAcademicYears(years.Items)

	year, ok := pickYear(years.Items, info.Items.AcademicYear)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrBootstrap, ErrNoAcademicYears)
	}
	c.store.SetCurrentAcademicYearName(year.Name)
	c.store.SetCurrentAcademicYearID(year.ID)

	termsRes, err := c.api.Get(ctx,
		"/api/student/"+ud.StudentID+"/"+strconv.FormatInt(year.ID, 10)+"/terms",
		c.config.Endpoints.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: terms: %w", ErrBootstrap, err)
	}
	var terms termsResponse
	if termsRes.Status != http.StatusOK || termsRes.Decode(&terms) != nil || terms.Items == nil {
		return nil, fmt.Errorf("%w: failed to fetch terms (status %d)", ErrBootstrap, termsRes.Status)
	}
	c.store.SetAvailableTerms(terms.Items)

	term, ok := pickTerm(terms.Items, info.Items.Term)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrBootstrap, ErrNoTerms)
	}
	c.store.SetCurrentTermName(term.Name)
	c.store.SetCurrentTermID(term.ID)

	return &AcademicContext{
		StudentInfo:     info.Items,
		AcademicYears:   years.Items,
		CurrentYearID:   year.ID,
		CurrentYearName: year.Name,
		AvailableTerms:  terms.Items,
		CurrentTermID:   term.ID,
		CurrentTermName: term.Name,
	}, nil
}

// pickYear selects the entry whose name matches the profile's declared year.
// The backend exposes no orderable field, so the last element is assumed to
// be the latest when nothing matches.
func pickYear(years []session.AcademicYear, name string) (session.AcademicYear, bool) {
	if name != "" {
		for _, y := range years {
			if y.Name == name {
				return y, true
			}
		}
	}
	if len(years) == 0 {
		return session.AcademicYear{}, false
	}
	return years[len(years)-1], true
}

// pickTerm mirrors pickYear for the term list.
func pickTerm(terms []session.Term, name string) (session.Term, bool) {
	if name != "" {
		for _, t := range terms {
			if t.Name == name {
				return t, true
			}
		}
	}
	if len(terms) == 0 {
		return session.Term{}, false
	}
	return terms[len(terms)-1], true
}
