package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// requestOTPRequest is the first login phase: candidate username and email.
type requestOTPRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
}

type requestOTPResponse struct {
	OTPSent   bool   `json:"otp_sent"`
	Message   string `json:"message"`
	MailError string `json:"mail_error,omitempty"`
}

// loginRequest is the second login phase: the code plus the password.
type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	OTP      string `json:"otp"      form:"otp"      validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type signupRequest struct {
	FullName     string `json:"full_name"     form:"full_name"     validate:"required"`
	Email        string `json:"email"         form:"email"         validate:"required,email"`
	Password     string `json:"password"      form:"password"      validate:"required"`
	MobileNumber string `json:"mobile_number" form:"mobile_number" validate:"required"`
	Stream       int64  `json:"stream"        form:"stream"        validate:"required"`
	JoiningYear  int    `json:"joining_year"  form:"joining_year"  validate:"required"`
	PassingYear  int    `json:"passing_year"  form:"passing_year"  validate:"required"`
}

type signupResponse struct {
	UID       string `json:"uid"`
	StudentID string `json:"student_id"`
	Message   string `json:"message"`
}

type streamOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
