package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highwayhustle/backend/internal/api"
	"github.com/highwayhustle/backend/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "hhctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/hhctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application with in-memory storage and no mirror contracts
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		Clock:            app.Clock,
		PlayerController: app.PlayerController,
		LedgerStatus:     app.Dispatcher,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			app.Dispatcher.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type playerResponse struct {
	ID           string `json:"id"`
	UserGameData struct {
		PlayerName string `json:"playerName"`
		Currency   int64  `json:"currency"`
	} `json:"userGameData"`
	PlayerVehicleData struct {
		JeepOwned int `json:"JeepOwned"`
	} `json:"playerVehicleData"`
}

type achievementResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Data    struct {
		Achieved1000M bool `json:"Achieved1000M"`
	} `json:"data"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Record a login, which creates the record
	output, err := cli.run("player", "login",
		"--identifier", "alice@example.com",
		"--email", "alice@example.com")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "login recorded", msg.Message)

	// Fetch the full profile
	output, err = cli.run("player", "get", "--user", "alice@example.com")
	require.NoError(t, err, "output: %s", output)

	var resp playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "Unnamed", resp.UserGameData.PlayerName)
	assert.Equal(t, int64(20000), resp.UserGameData.Currency)
	assert.Equal(t, 1, resp.PlayerVehicleData.JeepOwned)

	// Unknown players 404 on section reads
	output, err = cli.run("player", "get", "--user", "ghost@example.com", "--section", "game")
	require.Error(t, err, "output: %s", output)
}

func TestCLI_AchievementCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("achievement", "check", "--user", "nobody@example.com")
	require.NoError(t, err, "output: %s", output)

	var resp achievementResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "failed, user doesn't qualified", resp.Message)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, resp.Data.Achieved1000M)
}

func TestCLI_LedgerStatus(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("ledger", "status")
	require.NoError(t, err, "output: %s", output)

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}
