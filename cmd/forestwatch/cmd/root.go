package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/forestwatch/forestwatch/client"
	"github.com/forestwatch/forestwatch/session"
)

var (
	apiURL  string
	dataDir string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "forestwatch",
	Short: "Forestwatch is the operator CLI for the forest-sensor dashboard",
	Long: `Operator console for the forest-sensor monitoring product: log in,
inspect sensor status, list alerts and resolve them with a classification,
notes and a supporting image.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultAPIURL(), "Dashboard API base address (env FORESTWATCH_API_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "Directory for persistent data")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each API request")
}

func defaultAPIURL() string {
	if v := os.Getenv("FORESTWATCH_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8000"
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forestwatch"
	}
	return filepath.Join(home, ".forestwatch")
}

// newAPIClient builds the shared client from the persistent flags.
func newAPIClient() *client.Client {
	var opts []client.Option
	if verbose {
		opts = append(opts, client.WithLogger(func(method, path string, status int, elapsed time.Duration) {
			log.Printf("%s %s -> %d (%s)", method, path, status, elapsed.Round(time.Millisecond))
		}))
	}
	return client.New(apiURL, opts...)
}

// openSession opens the credential store under the data dir and wires it
// to a fresh client. The caller must Close the returned store.
func openSession() (*session.Manager, *session.BoltStore, *client.Client, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := session.NewBoltStoreFromFile(filepath.Join(dataDir, "session.db"), nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}
	c := newAPIClient()
	return session.NewManager(c, store), store, c, nil
}

// requireAuth restores the session and applies the protected-view gate:
// render only with a settled, authenticated session.
func requireAuth(ctx context.Context, m *session.Manager) (client.User, error) {
	m.Restore(ctx)
	st := m.State()
	switch session.Decide(st) {
	case session.DecisionRender:
		return *st.Identity, nil
	case session.DecisionLogin:
		return client.User{}, errors.New("not logged in: run `forestwatch login` first")
	default:
		return client.User{}, errors.New("session is still loading")
	}
}
