// Package response defines the results returned by instance read and
// execute operations.
//
// Results are values, not errors: an unknown resource id produces a
// NOT_FOUND response, a failing command produces an INTERNAL_SERVER_ERROR
// response, and neither is ever raised as a panic or error through the
// dispatch boundary.
package response
