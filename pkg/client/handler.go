package client

import (
	"fmt"
	"slices"

	"github.com/LarsBremen/leshan/pkg/node"
	"github.com/LarsBremen/leshan/pkg/response"
)

// Handler serves one resource. Read is set for readable resources, Execute
// for executable ones.
type Handler struct {
	Read    func() (node.Resource, error)
	Execute func(params string) error
}

// Table maps resource ids to their handlers. Ids absent from the table fall
// through to the base defaults.
type Table map[uint16]Handler

// Read dispatches a read. Handler errors and panics become
// INTERNAL_SERVER_ERROR responses.
func (t Table) Read(base *BaseInstance, resourceID uint16) (resp *response.ReadResponse) {
	h, ok := t[resourceID]
	if !ok {
		return base.Read(resourceID)
	}
	if h.Read == nil {
		return response.ReadMethodNotAllowed()
	}

	defer func() {
		if r := recover(); r != nil {
			resp = response.ReadInternalServerError(fmt.Sprintf("read %d panicked: %v", resourceID, r))
		}
	}()

	res, err := h.Read()
	if err != nil {
		return response.ReadInternalServerError(err.Error())
	}
	if res == nil {
		return response.ReadInternalServerError(fmt.Sprintf("read %d returned no content", resourceID))
	}
	return response.ReadSuccess(res)
}

// Execute dispatches an execute. Handler errors and panics become
// INTERNAL_SERVER_ERROR responses.
func (t Table) Execute(base *BaseInstance, resourceID uint16, params string) (resp *response.ExecuteResponse) {
	h, ok := t[resourceID]
	if !ok {
		return base.Execute(resourceID, params)
	}
	if h.Execute == nil {
		return response.ExecuteMethodNotAllowed()
	}

	defer func() {
		if r := recover(); r != nil {
			resp = response.ExecuteInternalServerError(fmt.Sprintf("execute %d panicked: %v", resourceID, r))
		}
	}()

	if err := h.Execute(params); err != nil {
		return response.ExecuteInternalServerError(err.Error())
	}
	return response.ExecuteSuccess()
}

// IDs returns the owned resource ids in ascending order.
func (t Table) IDs() []uint16 {
	ids := make([]uint16, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ReadableIDs returns the ids that have a read handler, ascending.
func (t Table) ReadableIDs() []uint16 {
	ids := make([]uint16, 0, len(t))
	for id, h := range t {
		if h.Read != nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
