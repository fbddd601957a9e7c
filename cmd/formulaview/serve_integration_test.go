//go:build integration

package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getProjectRoot returns the path to the module root
func getProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	// cmd/formulaview/serve_integration_test.go -> module root
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

// startServe builds the binary and starts "formulaview serve".
func startServe(t *testing.T) (*exec.Cmd, io.WriteCloser, *bufio.Scanner) {
	t.Helper()
	projectRoot := getProjectRoot()
	binary := filepath.Join(t.TempDir(), "formulaview")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/formulaview")
	buildCmd.Dir = projectRoot
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(output))

	cmd := exec.Command(binary, "serve")
	cmd.Dir = projectRoot

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)

	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)

	require.NoError(t, cmd.Start())
	t.Cleanup(func() {
		stdin.Close()
		cmd.Process.Kill()
	})

	scanner := bufio.NewScanner(stdout)
	require.True(t, waitForLine(scanner, 60*time.Second), "should receive ready signal")
	return cmd, stdin, scanner
}

func roundTrip(t *testing.T, stdin io.Writer, scanner *bufio.Scanner, request string) map[string]interface{} {
	t.Helper()
	_, err := stdin.Write([]byte(request + "\n"))
	require.NoError(t, err)

	require.True(t, waitForLine(scanner, 30*time.Second), "should receive response")
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &response))
	return response
}

func waitForLine(scanner *bufio.Scanner, timeout time.Duration) bool {
	done := make(chan bool, 1)
	go func() {
		done <- scanner.Scan()
	}()

	select {
	case result := <-done:
		return result
	case <-time.After(timeout):
		return false
	}
}

func TestServeIntegration_ReadySignal(t *testing.T) {
	_, _, scanner := startServe(t)

	var ready map[string]interface{}
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &ready))
	assert.True(t, ready["success"].(bool))
	assert.Equal(t, "ready", ready["type"])
}

func TestServeIntegration_OpenAndHover(t *testing.T) {
	_, stdin, scanner := startServe(t)

	open := roundTrip(t, stdin, scanner,
		`{"type":"open","payload":{"uri":"file:///calc.py","version":1,"text":"# n = range(0, 3)\nvalue = formula(n * 2)\n"}}`)
	assert.True(t, open["success"].(bool), "open should succeed")
	spans := open["data"].(map[string]interface{})["spans"].([]interface{})
	assert.Len(t, spans, 1)

	hover := roundTrip(t, stdin, scanner, `{"type":"hover","payload":{"uri":"file:///calc.py","line":2,"column":18}}`)
	assert.True(t, hover["success"].(bool), "hover should succeed")
	data := hover["data"].(map[string]interface{})
	assert.True(t, data["found"].(bool))
	text := data["preview"].(map[string]interface{})["preview"].(map[string]interface{})["text"].(string)
	assert.Contains(t, text, "| 2 | 4 |")
}

func TestServeIntegration_Shutdown(t *testing.T) {
	cmd, stdin, scanner := startServe(t)

	response := roundTrip(t, stdin, scanner, `{"type":"shutdown","payload":{}}`)
	assert.Equal(t, "shutdown", response["type"])

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		assert.NoError(t, err, "process should exit cleanly")
	case <-time.After(10 * time.Second):
		t.Fatal("process did not exit in time after shutdown")
	}
}
