package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active [session-id]",
		Short: "Show or set the active session",
		Long:  "With no argument, print the active session id. With an id, set it; the id is accepted without an existence check.",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s, port := openStore()
			defer port.Close()

			if len(args) == 0 {
				fmt.Printf(`{"active_session_id":%q}`+"\n", s.ActiveSessionID())
				return
			}
			s.SetActiveSession(args[0])
			fmt.Printf(`{"ok":true,"active_session_id":%q}`+"\n", args[0])
		},
	}
}

func newSessionMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge [source-id] [target-id]",
		Short: "Merge one session into another",
		Long:  "Fold the source session into the target: messages re-sorted by timestamp, tags and context links unioned. The source is removed and the target becomes active.",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			s, port := openStore()
			defer port.Close()

			ok := s.MergeSessions(args[0], args[1])
			fmt.Printf(`{"ok":%t,"source":%q,"target":%q}`+"\n", ok, args[0], args[1])
		},
	}
}

func newSessionLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [session-id] [context-id]",
		Short: "Link or unlink a context and a session",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			rm, _ := cmd.Flags().GetBool("rm")

			s, port := openStore()
			defer port.Close()

			var ok bool
			if rm {
				ok = s.UnlinkContext(args[0], args[1])
			} else {
				ok = s.LinkContext(args[0], args[1])
			}
			fmt.Printf(`{"ok":%t,"session":%q,"context":%q}`+"\n", ok, args[0], args[1])
		},
	}
	cmd.Flags().Bool("rm", false, "Remove the link")
	return cmd
}

func newSessionTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag [session-id] [tags]",
		Short: "Add comma-separated tags to a session",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			s, port := openStore()
			defer port.Close()

			ok := s.TagSession(args[0], splitTags(args[1]))
			fmt.Printf(`{"ok":%t,"session":%q}`+"\n", ok, args[0])
		},
	}
}
