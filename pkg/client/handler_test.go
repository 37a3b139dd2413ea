package client_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LarsBremen/leshan/pkg/client"
	"github.com/LarsBremen/leshan/pkg/node"
	"github.com/LarsBremen/leshan/pkg/response"
)

func TestTableDispatch(t *testing.T) {
	base := client.NewBaseInstance(3304, 0, nil, nil)
	executed := ""
	table := client.Table{
		5700: {Read: func() (node.Resource, error) { return node.NewFloatResource(5700, 42), nil }},
		5605: {Execute: func(params string) error { executed = params; return nil }},
		1: {
			Read:    func() (node.Resource, error) { return nil, errors.New("sensor offline") },
			Execute: func(string) error { return errors.New("busy") },
		},
		2: {
			Read:    func() (node.Resource, error) { panic("read exploded") },
			Execute: func(string) error { panic("execute exploded") },
		},
		3: {Read: func() (node.Resource, error) { return nil, nil }},
	}

	t.Run("read ok", func(t *testing.T) {
		resp := table.Read(base, 5700)
		assert.Equal(t, response.CodeContent, resp.Code)
		assert.Equal(t, float64(42), resp.Content.Value())
	})
	t.Run("execute ok", func(t *testing.T) {
		assert.Equal(t, response.CodeChanged, table.Execute(base, 5605, "now").Code)
		assert.Equal(t, "now", executed)
	})
	t.Run("wrong operation", func(t *testing.T) {
		assert.Equal(t, response.CodeMethodNotAllowed, table.Read(base, 5605).Code)
		assert.Equal(t, response.CodeMethodNotAllowed, table.Execute(base, 5700, "").Code)
	})
	t.Run("handler error", func(t *testing.T) {
		r := table.Read(base, 1)
		assert.Equal(t, response.CodeInternalServerError, r.Code)
		assert.Equal(t, "sensor offline", r.ErrorMessage)
		assert.Equal(t, response.CodeInternalServerError, table.Execute(base, 1, "").Code)
	})
	t.Run("handler panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			r := table.Read(base, 2)
			assert.Equal(t, response.CodeInternalServerError, r.Code)
			assert.Contains(t, r.ErrorMessage, "read exploded")
			e := table.Execute(base, 2, "")
			assert.Equal(t, response.CodeInternalServerError, e.Code)
			assert.Contains(t, e.ErrorMessage, "execute exploded")
		})
	})
	t.Run("nil content", func(t *testing.T) {
		assert.Equal(t, response.CodeInternalServerError, table.Read(base, 3).Code)
	})
	t.Run("unknown", func(t *testing.T) {
		assert.Equal(t, response.CodeNotFound, table.Read(base, 999).Code)
		assert.Equal(t, response.CodeNotFound, table.Execute(base, 999, "").Code)
	})
	t.Run("ids", func(t *testing.T) {
		assert.Equal(t, []uint16{1, 2, 3, 5605, 5700}, table.IDs())
		assert.Equal(t, []uint16{1, 2, 3, 5700}, table.ReadableIDs())
	})
}
