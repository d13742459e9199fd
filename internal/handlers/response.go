package handlers

import "orgauth/internal/response"

// Re-export response functions for convenience
var (
	SendSuccess          = response.SendSuccess
	SendError            = response.SendError
	SendSuccessNoData    = response.SendSuccessNoData
	SendValidationErrors = response.SendValidationErrors
)
