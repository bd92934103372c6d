package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/assistant-memory/internal/cluster"
	"github.com/rcliao/assistant-memory/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Group related contexts for display",
		Long:  "Greedy single-pass grouping by shared tag, kind, or title overlap. Read-only; grouping depends on insertion order.",
		Run:   runClusters,
	}

	RootCmd.AddCommand(cmd)
}

func runClusters(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	clusters := cluster.Group(s.ListContexts(store.ListParams{}))
	if len(clusters) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(clusters, "", "  ")
	fmt.Println(string(b))
}
