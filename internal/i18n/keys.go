// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthPasswordMismatch   = "auth.password_mismatch"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Reservations
	KeyReservationCreated           = "reservation.created"
	KeyReservationUpdated           = "reservation.updated"
	KeyReservationDeleted           = "reservation.deleted"
	KeyReservationNotFound          = "reservation.not_found"
	KeyReservationUnavailable       = "reservation.unavailable"
	KeyReservationInvalidDates      = "reservation.invalid_dates"
	KeyReservationPastDate          = "reservation.past_date"
	KeyReservationInvalidStatus     = "reservation.invalid_status"
	KeyReservationInvalidTransition = "reservation.invalid_transition"

	// Payments
	KeyPaymentSuccess       = "payment.success"
	KeyPaymentFailed        = "payment.failed"
	KeyPaymentPending       = "payment.pending"
	KeyPaymentCancelled     = "payment.cancelled"
	KeyPaymentInvalidAmount = "payment.invalid_amount"
	KeyPaymentNotFound      = "payment.not_found"
	KeyPaymentGatewayError  = "payment.gateway_error"

	// Clients
	KeyClientNotFound = "client.not_found"
	KeyClientExists   = "client.exists"

	// Contact
	KeyContactReceived   = "contact.received"
	KeyContactNotFound   = "contact.not_found"
	KeyContactSendFailed = "contact.send_failed"

	// Team
	KeyTeamMemberCreated  = "team_member.created"
	KeyTeamMemberUpdated  = "team_member.updated"
	KeyTeamMemberDeleted  = "team_member.deleted"
	KeyTeamMemberNotFound = "team_member.not_found"
	KeyTeamMemberExists   = "team_member.exists"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
