// Package cli implements the assistant-memory CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/assistant-memory/internal/persist"
	"github.com/rcliao/assistant-memory/internal/store"
)

var (
	dbPath      string
	maxContexts int
	maxSessions int
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "assistant-memory",
	Short: "Persistent memory and session store for the desktop assistant",
	Long:  "Capacity-bounded store of memory contexts and chat sessions with scored eviction, relevance search, and durable snapshots.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Storage target: file path (.db for SQLite, .json for a plain snapshot) or postgres:// URL (default: $ASSISTANT_MEMORY_DB or ~/.assistant-memory/memory.db)")
	RootCmd.PersistentFlags().IntVar(&maxContexts, "max-contexts", 0, "Context capacity (0: persisted value or 1000)")
	RootCmd.PersistentFlags().IntVar(&maxSessions, "max-sessions", 0, "Session capacity (0: persisted value or 50)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("ASSISTANT_MEMORY_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".assistant-memory", "memory.db")
}

// openPort picks a backend from $ASSISTANT_MEMORY_BACKEND when set
// (sqlite, json, postgres), otherwise from the storage target itself.
func openPort() (persist.Port, error) {
	target := getDBPath()
	switch backend := os.Getenv("ASSISTANT_MEMORY_BACKEND"); backend {
	case "sqlite":
		return persist.NewSQLite(target)
	case "json":
		return persist.NewFile(target)
	case "postgres":
		return persist.NewPostgres(context.Background(), target)
	case "":
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
	switch {
	case strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://"):
		return persist.NewPostgres(context.Background(), target)
	case strings.HasSuffix(target, ".json"):
		return persist.NewFile(target)
	default:
		return persist.NewSQLite(target)
	}
}

// openStore opens the durable port and the store over it. The returned
// port must be closed when the command is done.
func openStore() (*store.Store, persist.Port) {
	port, err := openPort()
	if err != nil {
		exitErr("open storage", err)
	}
	s, err := store.New(port, store.Options{MaxContexts: maxContexts, MaxSessions: maxSessions})
	if err != nil {
		port.Close()
		exitErr("open store", err)
	}
	return s, port
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
