package accounts

// Response messages for successful operations.
const (
	MsgUserRegistered    = "User registered successfully"
	MsgUserLogin         = "User login successfully"
	MsgUserVerified      = "User verified successfully!"
	MsgOTPResent         = "OTP resent successfully. Please check your inbox."
	MsgPasswordResetSent = "Password reset email sent."
	MsgPasswordUpdated   = "Password updated successfully"
)

// Response is the uniform envelope every orchestrator operation returns.
// StatusCode doubles as the HTTP status at the transport edge.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Payload    any    `json:"payload"`
}

// UserPayload is the public projection of an account. Password hash and
// OTP state are never echoed.
type UserPayload struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
}

// LoginPayload pairs the public user projection with a freshly issued
// bearer token.
type LoginPayload struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

// PublicUser projects an account onto its public payload shape.
func PublicUser(user *User) UserPayload {
	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	return UserPayload{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		Roles:          roles,
		ProfilePicture: user.ProfilePicture,
	}
}

// ErrorResponse shapes a failure into the envelope. Unknown errors
// collapse to a generic 500 so internal detail never leaks.
func ErrorResponse(err error) Response {
	if richErr, ok := AsAuthError(err); ok && richErr.Code != 0 {
		return Response{
			StatusCode: richErr.Code,
			Message:    richErr.Message,
			Payload:    nil,
		}
	}

	return Response{
		StatusCode: 500,
		Message:    "Internal server error",
		Payload:    nil,
	}
}
