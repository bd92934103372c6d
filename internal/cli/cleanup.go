package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Truncate contexts and sessions to their capacities",
		Long:  "Drop the lowest-scored contexts beyond the context capacity and the least recently active sessions beyond the session capacity.",
		Run:   runCleanup,
	}

	RootCmd.AddCommand(cmd)
}

func runCleanup(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	s.Cleanup()

	b, _ := json.Marshal(s.Stats())
	fmt.Println(string(b))
}
