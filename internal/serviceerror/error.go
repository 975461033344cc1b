package serviceerror

// ServiceErrorType distinguishes caller mistakes from server-side failures
type ServiceErrorType string

const (
	ClientErrorType ServiceErrorType = "client_error"
	ServerErrorType ServiceErrorType = "server_error"
)

// ServiceError is the structured error returned by the service layer.
// Handlers translate the Error field into an HTTP status code.
type ServiceError struct {
	Code             string           `json:"code"`
	Type             ServiceErrorType `json:"type"`
	Error            string           `json:"error"`
	ErrorDescription string           `json:"error_description,omitempty"`
}

var (
	InternalServerError = ServiceError{
		Type:             ServerErrorType,
		Code:             "RSE-5000",
		Error:            "internal_server_error",
		ErrorDescription: "An unexpected error occurred",
	}

	DatabaseError = ServiceError{
		Type:             ServerErrorType,
		Code:             "RSE-5001",
		Error:            "database_error",
		ErrorDescription: "A database error occurred",
	}

	UpstreamError = ServiceError{
		Type:             ServerErrorType,
		Code:             "RSE-5002",
		Error:            "upstream_error",
		ErrorDescription: "An external service call failed",
	}

	InvalidRequestError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4000",
		Error:            "invalid_request",
		ErrorDescription: "The request is invalid",
	}

	ValidationError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4001",
		Error:            "validation_error",
		ErrorDescription: "Validation failed",
	}

	UnauthenticatedError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4010",
		Error:            "unauthenticated",
		ErrorDescription: "Missing or invalid credentials",
	}

	ResourceNotFoundError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4040",
		Error:            "resource_not_found",
		ErrorDescription: "Resource not found",
	}

	AlreadyProcessedError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4090",
		Error:            "already_processed",
		ErrorDescription: "The record was already decided",
	}

	InvalidStateError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4091",
		Error:            "invalid_state",
		ErrorDescription: "The record is not in a state that allows this transition",
	}

	ConflictError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4092",
		Error:            "conflict",
		ErrorDescription: "Request conflicts with current state",
	}

	TokenUsedError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4100",
		Error:            "token_usado",
		ErrorDescription: "Este enlace de registro ya fue utilizado",
	}

	TokenExpiredError = ServiceError{
		Type:             ClientErrorType,
		Code:             "RCE-4101",
		Error:            "token_expirado",
		ErrorDescription: "Este enlace de registro ha expirado",
	}
)

// CustomServiceError returns a copy of a base error with a specific description
func CustomServiceError(baseError ServiceError, description string) *ServiceError {
	return &ServiceError{
		Type:             baseError.Type,
		Code:             baseError.Code,
		Error:            baseError.Error,
		ErrorDescription: description,
	}
}
