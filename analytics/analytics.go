// Package analytics fires opt-out, anonymous usage events for the CLI
// commands (callgraph/chains/slice/argtrace).
package analytics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
)

const (
	CallGraphBuilt = "callgraph_built"
	SliceComputed  = "slice_computed"
	ChainsListed   = "call_chains_listed"
	ArgTraceRun    = "argtrace_run"
	ErrorOccurred  = "error_processing_analysis"
)

var (
	PublicKey     string
	enableMetrics bool
)

// Init records whether metrics are enabled for the rest of the process.
func Init(disableMetrics bool) {
	enableMetrics = !disableMetrics
}

func createEnvFile() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Println("Error getting user home directory:", err)
		return
	}
	envFile := filepath.Join(homeDir, ".yappy", ".env")
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(envFile), os.ModePerm); err != nil {
			fmt.Println("Error creating directory:", err)
			return
		}
		env := map[string]string{"uuid": uuid.New().String()}
		if err := godotenv.Write(env, envFile); err != nil {
			fmt.Println("Error writing to .env file:", err)
		}
	}
}

// LoadEnvFile ensures a per-user anonymous id exists and loads it into
// the process environment.
func LoadEnvFile() {
	createEnvFile()
	envFile := filepath.Join(os.Getenv("HOME"), ".yappy", ".env")
	if err := godotenv.Load(envFile); err != nil {
		return
	}
}

// ReportEvent fires event if metrics are enabled and a PublicKey has been
// compiled in; otherwise it is a silent no-op.
func ReportEvent(event string) {
	if !enableMetrics || PublicKey == "" {
		return
	}
	client, err := posthog.NewWithConfig(PublicKey, posthog.Config{Endpoint: "https://us.i.posthog.com"})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close()
	if err := client.Enqueue(posthog.Capture{DistinctId: os.Getenv("uuid"), Event: event}); err != nil {
		fmt.Println(err)
	}
}
