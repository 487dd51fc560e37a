package accounts

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// AuthControllerRoutes are the paths the controller mounts under /auth.
type AuthControllerRoutes struct {
	Register       string
	Login          string
	ResendOTP      string
	VerifyEmail    string
	ForgotPassword string
	ResetPassword  string
	Me             string
}

// AuthController is the thin HTTP surface over the orchestrator: parse,
// validate shape, delegate, serialize the envelope.
type AuthController struct {
	Service *AccountService
	Logger  Logger
	Routes  *AuthControllerRoutes
}

// NewAuthController builds a controller with the default route table.
func NewAuthController(service *AccountService) *AuthController {
	return &AuthController{
		Service: service,
		Logger:  defLogger{},
		Routes: &AuthControllerRoutes{
			Register:       "/register",
			Login:          "/login",
			ResendOTP:      "/resend-otp",
			VerifyEmail:    "/verify-email",
			ForgotPassword: "/forgot-password",
			ResetPassword:  "/reset-password",
			Me:             "/me",
		},
	}
}

// RegisterRoutes mounts the auth endpoints on the app. The guard only
// protects the identity echo route; the six operations are public.
func (a *AuthController) RegisterRoutes(app *fiber.App, guard *AccessGuard) {
	grp := app.Group("/auth")

	grp.Post(a.Routes.Register, a.RegisterPost)
	grp.Post(a.Routes.Login, a.LoginPost)
	grp.Post(a.Routes.ResendOTP, a.ResendOTPPost)
	grp.Post(a.Routes.VerifyEmail, a.VerifyEmailPost)
	grp.Post(a.Routes.ForgotPassword, a.ForgotPasswordPost)
	grp.Post(a.Routes.ResetPassword, a.ResetPasswordPost)

	if guard != nil {
		grp.Get(a.Routes.Me, guard.RequireAuth(), a.MeGet)
	}
}

// RegisterPayload is the registration request body.
type RegisterPayload struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

// Validate will validate the payload
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Roles, validation.By(validRoleTags)),
	)
}

// LoginPayloadBody is the login request body.
type LoginPayloadBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (r LoginPayloadBody) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// EmailPayload is the body for the email-only operations.
type EmailPayload struct {
	Email string `json:"email"`
}

// Validate will validate the payload
func (r EmailPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// VerifyEmailPayload is the email verification request body.
type VerifyEmailPayload struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Validate will validate the payload
func (r VerifyEmailPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.OTP, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

// ResetPasswordPayload is the password reset request body.
type ResetPasswordPayload struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
	OTP         string `json:"otp"`
}

// Validate will validate the payload
func (r ResetPasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.OTP, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterPayload)
	if err := a.bind(c, payload); err != nil {
		return a.badRequest(c, err)
	}

	roles := make([]UserRole, 0, len(payload.Roles))
	for _, r := range payload.Roles {
		roles = append(roles, UserRole(r))
	}

	resp, err := a.Service.Register(c.Context(), RegisterMessage{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Roles:    roles,
	})

	return a.respond(c, resp, err)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginPayloadBody)
	if err := a.bind(c, payload); err != nil {
		return a.badRequest(c, err)
	}

	resp, err := a.Service.Login(c.Context(), LoginMessage{
		Email:    payload.Email,
		Password: payload.Password,
	})

	return a.respond(c, resp, err)
}

func (a *AuthController) ResendOTPPost(c *fiber.Ctx) error {
	payload := new(EmailPayload)
	if err := a.bind(c, payload); err != nil {
		return a.badRequest(c, err)
	}

	resp, err := a.Service.ResendOTP(c.Context(), ResendOTPMessage{Email: payload.Email})

	return a.respond(c, resp, err)
}

func (a *AuthController) VerifyEmailPost(c *fiber.Ctx) error {
	payload := new(VerifyEmailPayload)
	if err := a.bind(c, payload); err != nil {
		return a.badRequest(c, err)
	}

	resp, err := a.Service.VerifyEmail(c.Context(), VerifyEmailMessage{
		Email: payload.Email,
		OTP:   payload.OTP,
	})

	return a.respond(c, resp, err)
}

func (a *AuthController) ForgotPasswordPost(c *fiber.Ctx) error {
	payload := new(EmailPayload)
	if err := a.bind(c, payload); err != nil {
		return a.badRequest(c, err)
	}

	resp, err := a.Service.ForgotPassword(c.Context(), ForgotPasswordMessage{Email: payload.Email})

	return a.respond(c, resp, err)
}

func (a *AuthController) ResetPasswordPost(c *fiber.Ctx) error {
	payload := new(ResetPasswordPayload)
	if err := a.bind(c, payload); err != nil {
		return a.badRequest(c, err)
	}

	resp, err := a.Service.ResetPassword(c.Context(), ResetPasswordMessage{
		Email:       payload.Email,
		NewPassword: payload.NewPassword,
		OTP:         payload.OTP,
	})

	return a.respond(c, resp, err)
}

// MeGet echoes the identity the guard attached.
func (a *AuthController) MeGet(c *fiber.Ctx) error {
	user, ok := UserFromContext(c)
	if !ok {
		return reject(c, ErrInvalidToken)
	}

	return c.Status(http.StatusOK).JSON(Response{
		StatusCode: http.StatusOK,
		Message:    "OK",
		Payload:    PublicUser(user),
	})
}

type validatable interface {
	Validate() error
}

func (a *AuthController) bind(c *fiber.Ctx, payload validatable) error {
	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("failed to parse request body: %v", err)
		return err
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Debug("payload validation failed: %v", err)
		return err
	}

	return nil
}

func (a *AuthController) badRequest(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(Response{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		Payload:    nil,
	})
}

func (a *AuthController) respond(c *fiber.Ctx, resp *Response, err error) error {
	if err != nil {
		out := ErrorResponse(err)
		if out.StatusCode >= 500 {
			a.Logger.Error("operation failed: %v", err)
		}
		return c.Status(out.StatusCode).JSON(out)
	}

	return c.Status(resp.StatusCode).JSON(resp)
}

func validRoleTags(value any) error {
	roles, ok := value.([]string)
	if !ok {
		return nil
	}
	for _, r := range roles {
		if _, valid := ParseRole(r); !valid {
			return fmt.Errorf("invalid role: %s", r)
		}
	}
	return nil
}
