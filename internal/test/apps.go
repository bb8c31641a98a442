// Copyright 2015 Aleksandr Demakin. All rights reserved.

// Package ipc_testing launches chat processes for multi-process tests.
package ipc_testing

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// TestAppResult is a result of a test program launch.
type TestAppResult struct {
	Output string
	Err    error
	// ExitCode is -1 if the process did not exit normally.
	ExitCode int
}

// BuildTestApp compiles the main package pkg into dir and returns the binary path.
func BuildTestApp(pkg, dir string) (string, error) {
	name := filepath.Base(pkg)
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(dir, name)
	cmd := exec.Command("go", "build", "-o", out, pkg)
	buff := &syncBuffer{}
	cmd.Stdout = buff
	cmd.Stderr = buff
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "go build %s: %s", pkg, buff.String())
	}
	return out, nil
}

// TestApp is a running test program with a writable stdin.
type TestApp struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	output *syncBuffer
	done   chan TestAppResult
}

// StartTestApp starts binary with args. Stdout and stderr are captured together.
func StartTestApp(binary string, args ...string) (*TestApp, error) {
	cmd := exec.Command(binary, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	app := &TestApp{
		cmd:    cmd,
		stdin:  stdin,
		output: &syncBuffer{},
		done:   make(chan TestAppResult, 1),
	}
	cmd.Stdout = app.output
	cmd.Stderr = app.output
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	go func() {
		app.done <- app.wait()
	}()
	return app, nil
}

// Pid returns the process id.
func (a *TestApp) Pid() int {
	return a.cmd.Process.Pid
}

// WriteLine sends a line to the program's stdin.
func (a *TestApp) WriteLine(line string) error {
	_, err := io.WriteString(a.stdin, line+"\n")
	return err
}

// CloseInput closes the program's stdin.
func (a *TestApp) CloseInput() error {
	return a.stdin.Close()
}

// Signal delivers sig to the program.
func (a *TestApp) Signal(sig os.Signal) error {
	return a.cmd.Process.Signal(sig)
}

// Output returns what the program has printed so far.
func (a *TestApp) Output() string {
	return a.output.String()
}

// WaitForOutput waits until the output contains s.
func (a *TestApp) WaitForOutput(s string, d time.Duration) bool {
	return WaitForCondition(func() bool {
		return bytes.Contains(a.output.Bytes(), []byte(s))
	}, d)
}

// Wait waits for the program to exit. If it does not exit within d,
// it is killed and the result has a non-nil error.
func (a *TestApp) Wait(d time.Duration) TestAppResult {
	select {
	case result := <-a.done:
		return result
	case <-time.After(d):
		a.cmd.Process.Kill()
		result := <-a.done
		result.Err = fmt.Errorf("process [%d] did not exit in %v", a.Pid(), d)
		return result
	}
}

func (a *TestApp) wait() (result TestAppResult) {
	result.ExitCode = -1
	if result.Err = a.cmd.Wait(); result.Err != nil {
		if exiterr, ok := result.Err.(*exec.ExitError); ok {
			if status, ok := exiterr.Sys().(syscall.WaitStatus); ok && status.Exited() {
				result.ExitCode = status.ExitStatus()
			}
		}
	} else {
		result.ExitCode = 0
	}
	result.Output = a.output.String()
	return
}

// WaitForFunc calls f asynchronously leaving it some time to finish.
// It returns true, if f completed.
func WaitForFunc(f func(), d time.Duration) bool {
	ch := make(chan bool, 1)
	go func() {
		f()
		ch <- true
	}()
	select {
	case <-ch:
		return true
	case <-time.After(d):
		return false
	}
}

// WaitForCondition polls cond until it returns true or d elapses.
func WaitForCondition(cond func() bool, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type syncBuffer struct {
	mut sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mut.Lock()
	defer b.mut.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mut.Lock()
	defer b.mut.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func (b *syncBuffer) String() string {
	return string(b.Bytes())
}
