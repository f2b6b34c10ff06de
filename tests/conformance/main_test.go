package conformance_test

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

const adminToken = "test-token"

var (
	serverURL string
	imagesURL string
)

func TestMain(m *testing.M) {
	os.Exit(runTests(m))
}

func runTests(m *testing.M) int {
	tmpDir, err := os.MkdirTemp("", "foodorder-conformance-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create tmpdir: %v\n", err)
		return 1
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png:" + r.URL.Path))
	}))
	defer images.Close()
	imagesURL = images.URL

	datasetPath := filepath.Join(tmpDir, "dataset.json")
	if err := writeDataset(datasetPath); err != nil {
		fmt.Fprintf(os.Stderr, "write dataset: %v\n", err)
		return 1
	}

	binPath := filepath.Join(tmpDir, "foodorder")

	// Build the binary from source.
	build := exec.Command("go", "build", "-o", binPath, "./cmd/foodorder")
	build.Dir = findModuleRoot()
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "build binary: %v\n", err)
		return 1
	}

	port, err := freePort()
	if err != nil {
		fmt.Fprintf(os.Stderr, "find free port: %v\n", err)
		return 1
	}

	addr := fmt.Sprintf(":%d", port)
	serverURL = fmt.Sprintf("http://localhost:%d", port)

	// In-memory SQLite, seeded from the local dataset before listening.
	cmd := exec.Command(binPath, "serve")
	cmd.Env = append(os.Environ(),
		"FOODORDER_ADDR="+addr,
		"FOODORDER_DB=:memory:",
		"FOODORDER_AUTH_TOKEN="+adminToken,
		"FOODORDER_PUBLIC_URL="+serverURL,
		"FOODORDER_DATASET="+datasetPath,
		"FOODORDER_SEED_ON_START=true",
		"FOODORDER_STORAGE=sqlite",
		"FOODORDER_LOG_LEVEL=warn",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "start server: %v\n", err)
		return 1
	}

	if err := waitForServer(serverURL, 5*time.Second); err != nil {
		_ = cmd.Process.Kill()
		fmt.Fprintf(os.Stderr, "server not ready: %v\n", err)
		return 1
	}

	code := m.Run()

	_ = cmd.Process.Kill()
	_ = cmd.Wait()

	return code
}

// writeDataset writes a small dataset whose images are served by imagesURL.
func writeDataset(path string) error {
	ds := map[string]any{
		"categories": []map[string]any{
			{"name": "Pizza", "description": "Stone baked"},
			{"name": "Burgers", "description": "Flame grilled"},
		},
		"customizations": []map[string]any{
			{"name": "Extra Cheese", "price": "1.5", "type": "topping"},
			{"name": "Fries", "price": "2.99", "type": "side"},
			{"name": "Thin Crust", "price": "0", "type": "crust"},
		},
		"menu": []map[string]any{
			{
				"name": "Margherita", "description": "Tomato and mozzarella",
				"image_url": imagesURL + "/img/margherita.png", "price": "9.99",
				"rating": 4.5, "calories": 800, "protein": 30,
				"category_name": "Pizza", "customizations": []string{"Extra Cheese", "Thin Crust"},
			},
			{
				"name": "Cheeseburger", "description": "Beef and cheddar",
				"image_url": imagesURL + "/img/cheeseburger.png", "price": "8.25",
				"rating": 4.2, "calories": 900, "protein": 40,
				"category_name": "Burgers", "customizations": []string{"Extra Cheese", "Fries"},
			},
		},
	}

	b, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// freePort returns a random available TCP port.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	tcpAddr, ok := l.Addr().(*net.TCPAddr)
	_ = l.Close()
	if !ok {
		return 0, fmt.Errorf("expected *net.TCPAddr, got %T", l.Addr())
	}
	return tcpAddr.Port, nil
}

// waitForServer polls the server until it responds or the timeout is reached.
func waitForServer(baseURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 500 * time.Millisecond}
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/api/categories")
		if err == nil {
			_ = resp.Body.Close()
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become ready within %s", baseURL, timeout)
}

// findModuleRoot walks up from the current directory to find go.mod.
func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
