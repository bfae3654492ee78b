package portalclient

import (
	"context"
	"net/http"
	"time"

	"github.com/wildcat-one/portalclient/transport"
)

// birthdateLayouts are the accepted input formats, tried in order.
var birthdateLayouts = []string{"2006-01-02", time.RFC3339}

// ForgotPassword describes the forgotpassword operation and its observable behavior.
//
// ForgotPassword requests a password reset for the given student identity.
// The birthdate is accepted as YYYY-MM-DD or RFC 3339 and forwarded in
// millisecond-precision UTC ISO form. A 404 maps to [ErrResetRecordNotFound]
// (unknown id/birthdate pair); any other non-200 maps to
// [ErrPasswordResetFailed].
func (c *Client) ForgotPassword(ctx context.Context, studentID, birthdate string) (*ForgotPasswordResult, error) {
	if err := validateInput(forgotPasswordInput{StudentID: studentID, Birthdate: birthdate}); err != nil {
		return nil, err
	}

	formatted, err := formatBirthdate(birthdate)
	if err != nil {
		return nil, err
	}

	// The reset flow runs unauthenticated; a 401 here must not tear down an
	// unrelated live session.
	res, err := c.api.Post(ctx, "/api/user/student/forgotpassword",
		forgotPasswordRequest{StudentID: studentID, StudentBirthDate: formatted},
		c.config.Endpoints.LoginURL,
		transport.CallOptions{IsLoginRequest: true},
	)
	if err != nil {
		return nil, err
	}

	if res.Status == http.StatusNotFound {
		return nil, ErrResetRecordNotFound
	}
	if res.Status != http.StatusOK {
		return nil, ErrPasswordResetFailed
	}

	var fr forgotPasswordResponse
	if err := res.Decode(&fr); err != nil || fr.Message == "" {
		fr.Message = "Password reset is successful. Please check your email."
	}

	return &ForgotPasswordResult{Success: true, Message: fr.Message}, nil
}

func formatBirthdate(birthdate string) (string, error) {
	for _, layout := range birthdateLayouts {
		if t, err := time.Parse(layout, birthdate); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05.000Z"), nil
		}
	}
	return "", ErrInvalidBirthdate
}
