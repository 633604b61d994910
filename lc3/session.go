package lc3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// SimConfig describes how to reach and talk to the external simulator.
// The prompt and halt-marker grammars are simulator-specific, so they
// are configurable patterns; the defaults match the stock lc3sim.
type SimConfig struct {
	// Binary is the simulator executable, resolved via PATH.
	Binary string
	// Args are extra arguments passed at spawn time.
	Args []string

	// Prompt matches the simulator's ready prompt.
	Prompt *regexp.Regexp
	// HaltMarker matches the line signaling execution has stopped.
	HaltMarker *regexp.Regexp

	// StartTimeout bounds the wait for the initial prompt.
	StartTimeout time.Duration
	// CommandTimeout bounds the wait for a prompt after any command.
	CommandTimeout time.Duration
	// RunTimeout bounds the wait for the halt marker after continue.
	RunTimeout time.Duration

	Log log.Logger
}

// DefaultSimConfig returns a config for the stock lc3sim binary.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Binary:         "lc3sim",
		Prompt:         regexp.MustCompile(`\(lc3sim\)`),
		HaltMarker:     regexp.MustCompile(`--- halting the LC-3 ---`),
		StartTimeout:   10 * time.Second,
		CommandTimeout: 5 * time.Second,
		RunTimeout:     30 * time.Second,
		Log:            log.NewLogger(log.DiscardHandler()),
	}
}

type sessionState int

const (
	stateUnstarted sessionState = iota
	stateReady
	stateRunning
	stateHalted
	stateTimedOut
	stateDead
)

// Session drives one simulator process over its interactive text
// interface. A Session belongs to exactly one goroutine; concurrent
// testing takes one Session per worker. Close terminates the process
// and must be called on every path once NewSession succeeds.
type Session struct {
	cfg   SimConfig
	cmd   *exec.Cmd
	stdin io.WriteCloser

	chunks  chan []byte
	waitErr chan error
	buf     bytes.Buffer

	state sessionState
	log   log.Logger
}

// NewSession spawns the simulator and waits for its ready prompt.
// A missing binary or an unobserved prompt is a *SessionStartupError.
func NewSession(cfg SimConfig) (*Session, error) {
	path, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, &SessionStartupError{Err: fmt.Errorf("simulator %q not found: %w", cfg.Binary, err)}
	}

	cmd := exec.Command(path, cfg.Args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &SessionStartupError{Err: err}
	}
	// Stdout and stderr share one pipe so the expect loop sees the
	// stream in arrival order, the way a terminal would.
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	s := &Session{
		cfg:     cfg,
		cmd:     cmd,
		stdin:   stdin,
		chunks:  make(chan []byte, 16),
		waitErr: make(chan error, 1),
		state:   stateUnstarted,
		log:     cfg.Log,
	}
	if s.log == nil {
		s.log = log.NewLogger(log.DiscardHandler())
	}

	if err := cmd.Start(); err != nil {
		return nil, &SessionStartupError{Err: err}
	}
	go func() {
		err := cmd.Wait()
		_ = pw.Close()
		s.waitErr <- err
		close(s.waitErr)
	}()
	go s.readLoop(pr)

	if _, err := s.expect(cfg.Prompt, cfg.StartTimeout); err != nil {
		_ = s.Close()
		return nil, &SessionStartupError{Err: err}
	}
	s.state = stateReady
	s.log.Debug("simulator session ready", "binary", cfg.Binary)
	return s, nil
}

func (s *Session) readLoop(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.chunks <- chunk
		}
		if err != nil {
			close(s.chunks)
			return
		}
	}
}

// expect consumes the output stream until pattern matches, returning
// everything read before the match. The stream position advances past
// the match; unconsumed bytes stay buffered for the next expect.
func (s *Session) expect(pattern *regexp.Regexp, timeout time.Duration) (string, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		if loc := pattern.FindIndex(s.buf.Bytes()); loc != nil {
			data := s.buf.Bytes()
			before := string(data[:loc[0]])
			rest := append([]byte(nil), data[loc[1]:]...)
			s.buf.Reset()
			s.buf.Write(rest)
			return before, nil
		}
		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				s.state = stateDead
				return "", &SessionProtocolError{
					Detail: fmt.Sprintf("simulator exited while waiting for %q", pattern.String()),
					Err:    s.exitError(),
				}
			}
			s.buf.Write(chunk)
		case <-deadline.C:
			return "", &SimulationTimeout{Pattern: pattern.String(), Waited: timeout}
		}
	}
}

func (s *Session) exitError() error {
	select {
	case err := <-s.waitErr:
		return err
	case <-time.After(time.Second):
		return nil
	}
}

func (s *Session) sendLine(line string) error {
	if _, err := io.WriteString(s.stdin, line+"\n"); err != nil {
		s.state = stateDead
		return &SessionProtocolError{Detail: "cannot write to simulator", Err: err}
	}
	return nil
}

// SendCommand sends one raw command line and returns the simulator's
// reply up to the next prompt, with the echoed command stripped. The
// line is passed through untouched; callers own its syntax.
func (s *Session) SendCommand(line string) (string, error) {
	s.log.Debug("send command", "cmd", line)
	if err := s.sendLine(line); err != nil {
		return "", err
	}
	reply, err := s.expect(s.cfg.Prompt, s.cfg.CommandTimeout)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stripEcho(reply, line)), nil
}

// stripEcho removes a leading echo of the sent command, present when
// the simulator runs under a terminal that echoes input. Only a whole
// echoed line is stripped: over plain pipes there is no echo, and
// reply text that merely contains the command word stays untouched.
func stripEcho(reply, line string) string {
	trimmed := strings.TrimLeft(reply, "\r\n")
	rest, ok := strings.CutPrefix(trimmed, line)
	if !ok {
		return reply
	}
	if rest == "" || rest[0] == '\n' || rest[0] == '\r' {
		return rest
	}
	return reply
}

// LoadFile loads an object image file into the simulator.
func (s *Session) LoadFile(path string) error {
	_, err := s.SendCommand("file " + path)
	return err
}

// SetPC sets the program counter.
func (s *Session) SetPC(pc Value) error {
	return s.SetReg("pc", pc)
}

// SetReg sets a register (r0-r7, pc, psr) to a value.
func (s *Session) SetReg(name string, v Value) error {
	_, err := s.SendCommand(fmt.Sprintf("r %s %s", name, v))
	return err
}

// RandomizeRegs sets all eight general-purpose registers to fixed
// non-zero values, so programs relying on uninitialized registers fail
// loudly instead of passing by accident.
func (s *Session) RandomizeRegs() error {
	seeds := []string{"x1234", "x5678", "x9ABC", "xDEF0", "x1111", "x2222", "x3333", "x4444"}
	for i, seed := range seeds {
		if err := s.SetReg(fmt.Sprintf("r%d", i), MustValue(seed)); err != nil {
			return err
		}
	}
	return nil
}

// WriteMem stores a word at a memory address.
func (s *Session) WriteMem(addr, data Value) error {
	_, err := s.SendCommand(fmt.Sprintf("memory %s %s", addr, data))
	return err
}

var translatePattern = regexp.MustCompile(`Address\s+x[0-9a-fA-F]+\s+has\s+value\s+(x[0-9a-fA-F]+)`)

// ReadMem reads the word at a memory address via the translate command.
func (s *Session) ReadMem(addr Value) (Value, error) {
	raw, err := s.SendCommand("translate " + addr.String())
	if err != nil {
		return 0, err
	}
	m := translatePattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, &ResponseParseError{Detail: "unexpected translate reply", Raw: raw}
	}
	return ParseValue(m[1])
}

// ReadRegs queries the register bank via printregs.
func (s *Session) ReadRegs() (Regs, error) {
	raw, err := s.SendCommand("printregs")
	if err != nil {
		return Regs{}, err
	}
	return ParseRegs(raw)
}

// Continue randomizes the registers, resumes execution, and blocks
// until the halt marker appears. Program output captured before the
// marker and the post-halt register bank form the Response. If no halt
// marker appears within the run timeout the case fails with
// *SimulationTimeout and the session must not be reused.
func (s *Session) Continue() (*Response, error) {
	if err := s.RandomizeRegs(); err != nil {
		return nil, err
	}
	s.log.Debug("resuming execution")
	if err := s.sendLine("continue"); err != nil {
		return nil, err
	}
	s.state = stateRunning

	output, err := s.expect(s.cfg.HaltMarker, s.cfg.RunTimeout)
	if err != nil {
		var timeout *SimulationTimeout
		if errors.As(err, &timeout) {
			s.state = stateTimedOut
		}
		return nil, err
	}
	s.state = stateHalted
	output = stripEcho(output, "continue")

	// The simulator prints a status block after the marker, then the
	// prompt. Collect it before issuing the register dump.
	status, err := s.expect(s.cfg.Prompt, s.cfg.CommandTimeout)
	if err != nil {
		return nil, err
	}
	s.state = stateReady

	regs, err := s.ReadRegs()
	if err != nil {
		return nil, err
	}
	return &Response{Output: output, Status: strings.TrimSpace(status), Regs: regs}, nil
}

// Close terminates the simulator process and reaps it. Safe to call in
// any state and more than once.
func (s *Session) Close() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	defer func() { s.state = stateDead }()
	_ = s.stdin.Close()
	// Nothing consumes the output stream anymore. Keep draining it so a
	// program still printing (a timed-out runaway) cannot fill the
	// channel, back up the pipe and stall the process reap below.
	go func() {
		for range s.chunks {
		}
	}()
	if s.state == stateDead {
		// Process already exited; just make sure it is reaped.
		<-s.waitErr
		return nil
	}
	// Give it a moment to exit from the closed stdin, then kill.
	select {
	case <-s.waitErr:
		return nil
	case <-time.After(500 * time.Millisecond):
	}
	_ = s.cmd.Process.Kill()
	<-s.waitErr
	return nil
}
