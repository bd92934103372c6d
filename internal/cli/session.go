package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/assistant-memory/internal/model"
)

func init() {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage chat sessions",
	}

	newCmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a session and make it active",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionNew,
	}
	newCmd.Flags().StringP("type", "T", "global", "Session type: project, global, file, workflow")
	newCmd.Flags().StringP("tags", "t", "", "Comma-separated tags")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Retrieve a session by id",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionGet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Run:   runSessionList,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionRm,
	}

	sessionCmd.AddCommand(newCmd, getCmd, listCmd, rmCmd)
	sessionCmd.AddCommand(newSessionMsgCmd(), newSessionHistoryCmd(), newSessionActiveCmd(), newSessionMergeCmd(), newSessionLinkCmd(), newSessionTagCmd())
	RootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, args []string) {
	typeStr, _ := cmd.Flags().GetString("type")
	tagsStr, _ := cmd.Flags().GetString("tags")

	sessionType := model.SessionType(typeStr)
	if !model.ValidSessionTypes[sessionType] {
		exitErr("session new", fmt.Errorf("invalid session type %q", typeStr))
	}

	s, port := openStore()
	defer port.Close()

	id := s.CreateSession(args[0], sessionType)
	if tags := splitTags(tagsStr); len(tags) > 0 {
		s.TagSession(id, tags)
	}

	sess, _ := s.GetSession(id)
	b, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(b))
}

func runSessionGet(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	sess, ok := s.GetSession(args[0])
	if !ok {
		exitErr("session get", fmt.Errorf("session not found: %s", args[0]))
	}
	b, _ := json.MarshalIndent(sess, "", "  ")
	fmt.Println(string(b))
}

func runSessionList(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	sessions := s.ListSessions()
	if len(sessions) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(sessions, "", "  ")
	fmt.Println(string(b))
}

func runSessionRm(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	found := s.DeleteSession(args[0])
	fmt.Printf(`{"ok":%t,"id":%q}`+"\n", found, args[0])
}
