package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/LarsBremen/leshan/pkg/node"
	"github.com/LarsBremen/leshan/pkg/observe"
	"github.com/LarsBremen/leshan/pkg/response"
	"github.com/LarsBremen/leshan/pkg/sensor"
)

// shell is the interactive command interface.
type shell struct {
	app *app
	out io.Writer
	rl  *readline.Instance
}

func newShell(a *app) (*shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "client> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &shell{app: a, out: rl.Stdout(), rl: rl}, nil
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// run reads commands until quit, EOF or ctx is done.
func (s *shell) run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.exec(line) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// exec runs one command line. It returns false when the shell should exit.
func (s *shell) exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "list", "ls":
		s.cmdList()

	case "read", "r":
		s.cmdRead(args)

	case "exec", "x":
		s.cmdExec(args)

	case "observe", "o":
		s.cmdObserve(args)

	case "cancel":
		s.cmdCancel(args)

	case "status":
		s.cmdStatus()

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, `
Client Commands:
  Resources:
    list                    - List objects, instances and resources
    read <path>             - Read a resource, e.g. read /3304/0/5700
    exec <path> [params]    - Execute a resource, e.g. exec /3304/0/5605

  Observation:
    observe <path>          - Print changes of an instance or resource
    cancel <token>          - Stop an observation

  General:
    status                  - Show sensor state
    help                    - Show this help
    quit                    - Exit`)
}

func (s *shell) cmdList() {
	c := s.app.client
	for _, objID := range c.ObjectIDs() {
		e, err := c.Object(objID)
		if err != nil {
			continue
		}
		name := "?"
		if obj := e.Object(); obj != nil {
			name = obj.Name
		}
		fmt.Fprintf(s.out, "/%d %s\n", objID, name)
		for _, instID := range e.InstanceIDs() {
			fmt.Fprintf(s.out, "  /%d/%d\n", objID, instID)
			obj := e.Object()
			if obj == nil {
				continue
			}
			for _, resID := range obj.ResourceIDs() {
				rm, _ := obj.Resource(resID)
				fmt.Fprintf(s.out, "    %-5d %-3s %-8s %s\n", resID, rm.Operations, rm.Type, rm.Name)
			}
		}
	}
}

func (s *shell) cmdRead(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: read <path>")
		return
	}
	resp := s.app.client.ReadPath(args[0])
	if !resp.IsSuccess() {
		printFailure(s.out, resp.Code, resp.ErrorMessage)
		return
	}
	fmt.Fprintf(s.out, "%s = %s\n", args[0], formatValue(resp.Content))
}

func (s *shell) cmdExec(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: exec <path> [params]")
		return
	}
	resp := s.app.client.ExecutePath(args[0], strings.Join(args[1:], " "))
	if !resp.IsSuccess() {
		printFailure(s.out, resp.Code, resp.ErrorMessage)
		return
	}
	fmt.Fprintf(s.out, "%s executed (%s)\n", args[0], resp.Code)
}

func (s *shell) cmdObserve(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: observe <path>")
		return
	}
	out := s.out
	token, err := s.app.registry.ObservePath(args[0], func(n observe.Notification) {
		fmt.Fprintf(out, "[NOTIFY] /%d/%d %v\n", n.ObjectID, n.InstanceID, n.ResourceIDs)
	})
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Observing %s (token %s)\n", args[0], token)
}

func (s *shell) cmdCancel(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: cancel <token>")
		return
	}
	if err := s.app.registry.Cancel(args[0]); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Observation cancelled")
}

func (s *shell) cmdStatus() {
	fmt.Fprintf(s.out, "Endpoint:     %s\n", s.app.client.Endpoint())
	fmt.Fprintf(s.out, "Observations: %d\n", s.app.registry.Count())
	for _, sn := range s.app.sensors {
		snap := sn.Snapshot()
		fmt.Fprintf(s.out, "  /%d/%d %-10s current=%.2f min=%s max=%s %s\n",
			sn.ObjectID(), sn.InstanceID(), sn.State(),
			sensor.RoundHalfUp(snap.Current, 2), formatBound(snap.Min), formatBound(snap.Max), sn.Units())
	}
}

func printFailure(w io.Writer, code response.Code, msg string) {
	if msg != "" {
		fmt.Fprintf(w, "Error: %s: %s\n", code, msg)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", code)
}

func formatValue(r node.Resource) string {
	if r.IsMultiInstances() {
		values, _ := r.Values()
		return fmt.Sprint(values)
	}
	switch v := r.Value().(type) {
	case []byte:
		return fmt.Sprintf("%x (%d bytes)", v, len(v))
	case float64:
		return formatBound(v)
	default:
		return fmt.Sprint(v)
	}
}

// formatBound prints unseeded sentinels as "-".
func formatBound(v float64) string {
	if v >= 1e300 || v <= -1e300 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
