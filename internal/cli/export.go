package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Export a session and its linked contexts as JSON",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	exp, ok := s.ExportSession(args[0])
	if !ok {
		exitErr("export", fmt.Errorf("session not found: %s", args[0]))
	}

	b, _ := json.MarshalIndent(exp, "", "  ")
	fmt.Println(string(b))
}
