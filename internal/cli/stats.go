package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	b, _ := json.MarshalIndent(s.Stats(), "", "  ")
	fmt.Println(string(b))
}
