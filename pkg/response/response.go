package response

import (
	"fmt"

	"github.com/LarsBremen/leshan/pkg/node"
)

// ReadResponse is the result of a read.
type ReadResponse struct {
	Code         Code
	Content      node.Resource
	ErrorMessage string
}

// ReadSuccess returns a CONTENT response carrying content.
func ReadSuccess(content node.Resource) *ReadResponse {
	return &ReadResponse{Code: CodeContent, Content: content}
}

// ReadNotFound returns a NOT_FOUND response.
func ReadNotFound() *ReadResponse {
	return &ReadResponse{Code: CodeNotFound}
}

// ReadMethodNotAllowed returns a METHOD_NOT_ALLOWED response.
func ReadMethodNotAllowed() *ReadResponse {
	return &ReadResponse{Code: CodeMethodNotAllowed}
}

// ReadBadRequest returns a BAD_REQUEST response with a message.
func ReadBadRequest(msg string) *ReadResponse {
	return &ReadResponse{Code: CodeBadRequest, ErrorMessage: msg}
}

// ReadInternalServerError returns a failure response with a message.
func ReadInternalServerError(msg string) *ReadResponse {
	return &ReadResponse{Code: CodeInternalServerError, ErrorMessage: msg}
}

// IsSuccess returns true if the read succeeded.
func (r *ReadResponse) IsSuccess() bool {
	return r.Code.IsSuccess()
}

func (r *ReadResponse) String() string {
	if r.Code.IsError() {
		return fmt.Sprintf("ReadResponse [code=%s, errormessage=%s]", r.Code, r.ErrorMessage)
	}
	return fmt.Sprintf("ReadResponse [code=%s, content=%v]", r.Code, r.Content)
}

// ExecuteResponse is the result of an execute.
type ExecuteResponse struct {
	Code         Code
	ErrorMessage string
}

// ExecuteSuccess returns a CHANGED response.
func ExecuteSuccess() *ExecuteResponse {
	return &ExecuteResponse{Code: CodeChanged}
}

// ExecuteNotFound returns a NOT_FOUND response.
func ExecuteNotFound() *ExecuteResponse {
	return &ExecuteResponse{Code: CodeNotFound}
}

// ExecuteMethodNotAllowed returns a METHOD_NOT_ALLOWED response.
func ExecuteMethodNotAllowed() *ExecuteResponse {
	return &ExecuteResponse{Code: CodeMethodNotAllowed}
}

// ExecuteBadRequest returns a BAD_REQUEST response with a message.
func ExecuteBadRequest(msg string) *ExecuteResponse {
	return &ExecuteResponse{Code: CodeBadRequest, ErrorMessage: msg}
}

// ExecuteInternalServerError returns a failure response with a message.
func ExecuteInternalServerError(msg string) *ExecuteResponse {
	return &ExecuteResponse{Code: CodeInternalServerError, ErrorMessage: msg}
}

// IsSuccess returns true if the execute succeeded.
func (r *ExecuteResponse) IsSuccess() bool {
	return r.Code.IsSuccess()
}

func (r *ExecuteResponse) String() string {
	if r.Code.IsError() {
		return fmt.Sprintf("ExecuteResponse [code=%s, errormessage=%s]", r.Code, r.ErrorMessage)
	}
	return fmt.Sprintf("ExecuteResponse [code=%s]", r.Code)
}
