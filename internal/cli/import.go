package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/assistant-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a session snapshot from JSON",
		Long:  "Import a session snapshot from stdin. The session and its contexts are restored under fresh ids; malformed input imports nothing.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var exp model.SessionExport
	if err := json.Unmarshal(data, &exp); err != nil {
		fmt.Println(`{"ok":false}`)
		return
	}

	s, port := openStore()
	defer port.Close()

	ok := s.ImportSession(exp)
	if !ok {
		fmt.Println(`{"ok":false}`)
		return
	}
	fmt.Printf(`{"ok":true,"active_session_id":%q}`+"\n", s.ActiveSessionID())
}
