package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, func() int) {
	t.Helper()
	a, sched := newTestApp(t, nil)
	var buf bytes.Buffer
	return &shell{app: a, out: &buf}, &buf, sched.Tick
}

func TestShellRead(t *testing.T) {
	sh, out, tick := newTestShell(t)
	tick()

	assert.True(t, sh.exec("read /3304/0/5700"))
	assert.Equal(t, "/3304/0/5700 = 10.00\n", out.String())
}

func TestShellReadErrors(t *testing.T) {
	sh, out, _ := newTestShell(t)

	sh.exec("read /3304/0/9999")
	assert.Contains(t, out.String(), "NOT_FOUND")

	out.Reset()
	sh.exec("read /3304/0/5605")
	assert.Contains(t, out.String(), "METHOD_NOT_ALLOWED")

	out.Reset()
	sh.exec("read /3304")
	assert.Contains(t, out.String(), "BAD_REQUEST")

	out.Reset()
	sh.exec("read")
	assert.Contains(t, out.String(), "Usage: read")
}

func TestShellExecReset(t *testing.T) {
	sh, out, tick := newTestShell(t)
	tick()

	sh.exec("exec /3304/0/5605")
	assert.Equal(t, "/3304/0/5605 executed (CHANGED)\n", out.String())

	out.Reset()
	sh.exec("read /3304/0/5601")
	assert.Equal(t, "/3304/0/5601 = 10.00\n", out.String())
}

func TestShellObserveAndCancel(t *testing.T) {
	sh, out, tick := newTestShell(t)

	sh.exec("observe /3304/0/5700")
	line := out.String()
	require.True(t, strings.HasPrefix(line, "Observing /3304/0/5700 (token "), line)
	token := strings.TrimSuffix(strings.TrimPrefix(line, "Observing /3304/0/5700 (token "), ")\n")

	out.Reset()
	tick()
	assert.Equal(t, "[NOTIFY] /3304/0 [5700]\n", out.String())

	out.Reset()
	sh.exec("cancel " + token)
	assert.Equal(t, "Observation cancelled\n", out.String())

	out.Reset()
	sh.exec("cancel " + token)
	assert.Contains(t, out.String(), "Error:")
}

func TestShellList(t *testing.T) {
	sh, out, _ := newTestShell(t)

	sh.exec("list")
	s := out.String()
	assert.Contains(t, s, "/3303 ")
	assert.Contains(t, s, "/3304 ")
	assert.Contains(t, s, "/10266 ")
	assert.Contains(t, s, "  /3304/0\n")
}

func TestShellStatus(t *testing.T) {
	sh, out, tick := newTestShell(t)

	sh.exec("status")
	assert.Contains(t, out.String(), "Endpoint:     test-endpoint")
	assert.Contains(t, out.String(), "min=- max=-")

	out.Reset()
	tick()
	sh.exec("status")
	assert.Contains(t, out.String(), "current=10.00 min=10.00 max=10.00 %")
}

func TestShellQuitAndUnknown(t *testing.T) {
	sh, out, _ := newTestShell(t)

	assert.True(t, sh.exec(""))
	assert.True(t, sh.exec("bogus"))
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.False(t, sh.exec("quit"))
	assert.False(t, sh.exec("EXIT"))
}
