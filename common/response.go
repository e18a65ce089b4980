// file: common/response.go

package common

// ResponseCode classifies the outcome of every operation in the core.
// Expected failures travel as codes, never as errors thrown across layers.
type ResponseCode string

const (
	CodeSuccess             ResponseCode = "SUCCESS"
	CodeTokenExpired        ResponseCode = "TOKEN_EXPIRED"
	CodeTokenInvalid        ResponseCode = "TOKEN_INVALID"
	CodeAlreadyVerified     ResponseCode = "ALREADY_VERIFIED"
	CodeUpdatedFailed       ResponseCode = "UPDATED_FAILED"
	CodeNotFound            ResponseCode = "NOT_FOUND"
	CodeAlreadyExists       ResponseCode = "ALREADY_EXISTS"
	CodeInvalidCredentials  ResponseCode = "INVALID_CREDENTIALS"
	CodeError               ResponseCode = "ERROR"
	CodeValidationError     ResponseCode = "VALIDATION_ERROR"
	CodeInternalServerError ResponseCode = "INTERNAL_SERVER_ERROR"
)

// Response is the uniform envelope returned by every service operation.
type Response struct {
	Code    ResponseCode `json:"code"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
}

func NewResponse(data interface{}, message string, code ResponseCode) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// IsSuccess reports whether the envelope carries a successful outcome.
func (r *Response) IsSuccess() bool {
	return r.Code == CodeSuccess
}
