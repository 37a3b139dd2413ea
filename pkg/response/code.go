package response

// Code is a response code.
type Code uint8

const (
	// CodeContent indicates a successful read.
	CodeContent Code = iota

	// CodeChanged indicates a successful execute or write.
	CodeChanged

	// CodeBadRequest indicates malformed parameters.
	CodeBadRequest

	// CodeUnauthorized indicates the caller may not access the resource.
	CodeUnauthorized

	// CodeNotFound indicates the resource does not exist on the instance.
	CodeNotFound

	// CodeMethodNotAllowed indicates the resource exists but does not
	// support the operation.
	CodeMethodNotAllowed

	// CodeInternalServerError indicates the operation failed on the device.
	CodeInternalServerError
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeContent:
		return "CONTENT"
	case CodeChanged:
		return "CHANGED"
	case CodeBadRequest:
		return "BAD_REQUEST"
	case CodeUnauthorized:
		return "UNAUTHORIZED"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case CodeInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the code indicates success.
func (c Code) IsSuccess() bool {
	return c == CodeContent || c == CodeChanged
}

// IsError returns true if the code indicates an error.
func (c Code) IsError() bool {
	return !c.IsSuccess()
}
