// Copyright 2016 Aleksandr Demakin. All rights reserved.

//go:build linux && (amd64 || arm64)

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/nxgtw/duplexchat/internal/common"
	ipc_testing "github.com/nxgtw/duplexchat/internal/test"
	"github.com/nxgtw/duplexchat/mq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	appTimeout = 20 * time.Second
	appPackage = "github.com/nxgtw/duplexchat/cmd/duplexchat"
)

type processPair struct {
	binary string
	args   []string
	aToB   common.Key
	bToA   common.Key
}

func newProcessPair(t *testing.T, name string) *processPair {
	if testing.Short() {
		t.Skip("multi-process test")
	}
	binary, err := ipc_testing.BuildTestApp(appPackage, t.TempDir())
	require.NoError(t, err)
	aToB, err := common.KeyForName("duplexchat.cmd." + name + ".a2b")
	require.NoError(t, err)
	bToA, err := common.KeyForName("duplexchat.cmd." + name + ".b2a")
	require.NoError(t, err)
	mq.DestroySystemVMessageQueue(aToB)
	mq.DestroySystemVMessageQueue(bToA)
	cfgDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgDir)
	p := &processPair{
		binary: binary,
		aToB:   aToB,
		bToA:   bToA,
		args: []string{
			"--a-to-b-key", aToB.String(),
			"--b-to-a-key", bToA.String(),
			"--no-lock",
		},
	}
	t.Cleanup(func() {
		mq.DestroySystemVMessageQueue(aToB)
		mq.DestroySystemVMessageQueue(bToA)
	})
	return p
}

func (p *processPair) start(t *testing.T, role string, extra ...string) *ipc_testing.TestApp {
	args := append([]string{role}, p.args...)
	args = append(args, extra...)
	app, err := ipc_testing.StartTestApp(p.binary, args...)
	require.NoError(t, err)
	return app
}

func queueExists(k common.Key) bool {
	q, err := mq.OpenSystemVMessageQueue(k, 0)
	if err != nil {
		return false
	}
	q.Close()
	return true
}

func TestProcessInitiatorQuits(t *testing.T) {
	p := newProcessPair(t, "quit")
	initiator := p.start(t, "initiator")
	require.True(t, initiator.WaitForOutput("Ready to send messages", appTimeout), initiator.Output())
	joiner := p.start(t, "joiner")
	require.True(t, joiner.WaitForOutput("Connected!", appTimeout), joiner.Output())

	require.NoError(t, joiner.WriteLine("hi"))
	require.True(t, initiator.WaitForOutput("[Process B]: hi", appTimeout), initiator.Output())
	require.NoError(t, initiator.WriteLine("hello"))
	require.True(t, joiner.WaitForOutput("[Process A]: hello", appTimeout), joiner.Output())

	require.NoError(t, initiator.WriteLine("quit"))
	ir := initiator.Wait(appTimeout)
	jr := joiner.Wait(appTimeout)
	assert.Equal(t, 0, ir.ExitCode, ir.Output)
	assert.Equal(t, 0, jr.ExitCode, jr.Output)
	assert.Contains(t, jr.Output, "[Process A sent 'quit'. Connection closed.]")
	assert.Contains(t, ir.Output, "=== Process A: Terminated ===")
	assert.Contains(t, jr.Output, "=== Process B: Terminated ===")
	assert.False(t, queueExists(p.aToB))
	assert.False(t, queueExists(p.bToA))
}

func TestProcessJoinerInterrupted(t *testing.T) {
	p := newProcessPair(t, "sigint")
	initiator := p.start(t, "initiator")
	require.True(t, initiator.WaitForOutput("Ready to send messages", appTimeout), initiator.Output())
	joiner := p.start(t, "joiner")
	require.True(t, joiner.WaitForOutput("Connected!", appTimeout), joiner.Output())
	require.True(t, joiner.WaitForOutput("Type your messages", appTimeout), joiner.Output())

	require.NoError(t, joiner.Signal(syscall.SIGINT))
	jr := joiner.Wait(appTimeout)
	assert.Equal(t, 0, jr.ExitCode, jr.Output)
	assert.Contains(t, jr.Output, "Received signal. Cleaning up...")
	assert.False(t, queueExists(p.bToA))

	ir := initiator.Wait(appTimeout)
	assert.Equal(t, 0, ir.ExitCode, ir.Output)
	assert.Contains(t, ir.Output, "[Message queue removed. Process B terminated.]")
	assert.False(t, queueExists(p.aToB))
}

func TestProcessJoinerTimesOut(t *testing.T) {
	p := newProcessPair(t, "timeout")
	started := time.Now()
	joiner := p.start(t, "joiner", "--max-wait", "2")
	jr := joiner.Wait(appTimeout)
	assert.Equal(t, 1, jr.ExitCode, jr.Output)
	assert.Contains(t, jr.Output, "Timeout: Process A not found. Please start Process A first.")
	assert.True(t, time.Since(started) >= 2*time.Second)
	assert.False(t, queueExists(p.aToB))
	assert.False(t, queueExists(p.bToA))
}

func TestProcessCleanup(t *testing.T) {
	p := newProcessPair(t, "cleanup")
	q, err := mq.CreateSystemVMessageQueue(p.aToB, 0o644)
	require.NoError(t, err)
	q.Close()

	app, err := ipc_testing.StartTestApp(p.binary, "cleanup",
		"--a-to-b-key", p.aToB.String(), "--b-to-a-key", p.bToA.String())
	require.NoError(t, err)
	res := app.Wait(appTimeout)
	require.Equal(t, 0, res.ExitCode, res.Output)
	assert.Contains(t, res.Output, fmt.Sprintf("removed queue %v", p.aToB))
	assert.Contains(t, res.Output, fmt.Sprintf("queue %v does not exist", p.bToA))
	assert.False(t, queueExists(p.aToB))
}

func TestBuildTestAppWritesBinary(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the command")
	}
	bin, err := ipc_testing.BuildTestApp(appPackage, t.TempDir())
	require.NoError(t, err)
	info, err := os.Stat(bin)
	require.NoError(t, err)
	assert.Equal(t, "duplexchat", filepath.Base(bin))
	assert.False(t, info.IsDir())
}
