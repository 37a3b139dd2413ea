package client_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarsBremen/leshan/pkg/client"
	"github.com/LarsBremen/leshan/pkg/log"
	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/node"
	"github.com/LarsBremen/leshan/pkg/response"
)

type recordingLogger struct {
	events []log.Event
}

func (r *recordingLogger) Log(e log.Event) { r.events = append(r.events, e) }

type closingInstance struct {
	*client.BaseInstance
	closed int
	err    error
}

func (c *closingInstance) Close() error {
	c.closed++
	return c.err
}

func newTestClient(t *testing.T, events log.Logger) *client.Client {
	t.Helper()
	return client.New(client.Config{
		Endpoint: "test-ep",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Events:   events,
	})
}

func TestClientRegistry(t *testing.T) {
	c := newTestClient(t, nil)
	stub := waterFlowStub(t)

	require.NoError(t, c.AddInstance(stub))
	err := c.AddInstance(stub)
	assert.ErrorIs(t, err, client.ErrDuplicateInstance)

	second := waterFlowStub(t, client.WithStubInstanceID(1))
	require.NoError(t, c.AddInstance(second))

	assert.Equal(t, []uint16{model.ObjectWaterFlowReadings}, c.ObjectIDs())

	e, err := c.Object(model.ObjectWaterFlowReadings)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0, 1}, e.InstanceIDs())
	assert.NotNil(t, e.Object())

	_, err = c.Object(1)
	assert.ErrorIs(t, err, client.ErrObjectNotFound)

	_, err = c.Instance(model.ObjectWaterFlowReadings, 5)
	assert.ErrorIs(t, err, client.ErrInstanceNotFound)

	removed, err := e.RemoveInstance(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), removed.InstanceID())
	_, err = e.RemoveInstance(1)
	assert.ErrorIs(t, err, client.ErrInstanceNotFound)
}

func TestObjectEnablerRejectsForeignInstance(t *testing.T) {
	e := client.NewObjectEnabler(3303, nil)
	err := e.AddInstance(client.NewBaseInstance(3304, 0, nil, nil))
	assert.ErrorIs(t, err, client.ErrObjectMismatch)
}

func TestClientReadExecuteAndEvents(t *testing.T) {
	events := &recordingLogger{}
	c := newTestClient(t, events)
	require.NoError(t, c.AddInstance(waterFlowStub(t)))

	read := c.Read(model.ObjectWaterFlowReadings, 0, 6000)
	require.Equal(t, response.CodeContent, read.Code)

	assert.Equal(t, response.CodeNotFound, c.Read(model.ObjectWaterFlowReadings, 9, 6000).Code)
	assert.Equal(t, response.CodeNotFound, c.Read(1, 0, 1).Code)
	assert.Equal(t, response.CodeChanged, c.Execute(model.ObjectWaterFlowReadings, 0, 6026, "x").Code)
	assert.Equal(t, response.CodeNotFound, c.Execute(1, 0, 1, "").Code)

	require.Len(t, events.events, 5)
	first := events.events[0]
	assert.Equal(t, log.CategoryRead, first.Category)
	assert.Equal(t, "test-ep", first.Endpoint)
	require.NotNil(t, first.Read)
	assert.Equal(t, "CONTENT", first.Read.Code)

	decoded, err := node.DecodeResource(first.Read.Content)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(read.Content))

	exec := events.events[3]
	assert.Equal(t, log.CategoryExecute, exec.Category)
	require.NotNil(t, exec.Execute)
	assert.Equal(t, uint16(6026), exec.Execute.ResourceID)
	assert.Equal(t, "x", exec.Execute.Params)
	assert.Equal(t, "CHANGED", exec.Execute.Code)
}

func TestClientPaths(t *testing.T) {
	c := newTestClient(t, nil)
	require.NoError(t, c.AddInstance(waterFlowStub(t)))

	assert.Equal(t, response.CodeContent, c.ReadPath("/10266/0/6028").Code)
	assert.Equal(t, response.CodeChanged, c.ExecutePath("/10266/0/6027", "").Code)

	for _, bad := range []string{"", "/10266", "/10266/0", "/a/b/c", "/1/2/3/4"} {
		assert.Equal(t, response.CodeBadRequest, c.ReadPath(bad).Code, "path %q", bad)
		assert.Equal(t, response.CodeBadRequest, c.ExecutePath(bad, "").Code, "path %q", bad)
	}
}

func TestClientClose(t *testing.T) {
	c := newTestClient(t, nil)
	ok := &closingInstance{BaseInstance: client.NewBaseInstance(3303, 0, nil, nil)}
	failing := &closingInstance{BaseInstance: client.NewBaseInstance(3303, 1, nil, nil), err: errors.New("stuck")}
	require.NoError(t, c.AddInstance(ok))
	require.NoError(t, c.AddInstance(failing))

	err := c.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stuck")
	assert.Equal(t, 1, ok.closed)

	assert.NoError(t, c.Close())
	assert.Equal(t, 1, ok.closed)
}

func TestClientAddInstanceAfterClose(t *testing.T) {
	c := newTestClient(t, nil)
	require.NoError(t, c.Close())

	late := &closingInstance{BaseInstance: client.NewBaseInstance(3303, 0, nil, nil)}
	err := c.AddInstance(late)
	assert.ErrorIs(t, err, client.ErrClientClosed)
	assert.Empty(t, c.ObjectIDs())
	assert.Equal(t, 0, late.closed, "a rejected instance stays with the caller")
}
