package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/assistant-memory/internal/model"
	"github.com/rcliao/assistant-memory/internal/store"
)

func newSessionMsgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg [session-id] [content]",
		Short: "Append a message to a session",
		Long:  "Append a message. Content can be a positional arg or piped via stdin. A missing session id is a no-op.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSessionMsg,
	}
	cmd.Flags().StringP("role", "r", "user", "Role: user, assistant, system, agent")
	cmd.Flags().String("agent", "", "Agent id annotation")
	cmd.Flags().String("file", "", "File reference annotation")
	cmd.Flags().Int("line", 0, "Line reference annotation")
	cmd.Flags().StringSlice("link", nil, "Context ids referenced by this message")
	return cmd
}

func newSessionHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [session-id]",
		Short: "Print a session's messages in order",
		Args:  cobra.ExactArgs(1),
		Run:   runSessionHistory,
	}
}

func runSessionMsg(cmd *cobra.Command, args []string) {
	roleStr, _ := cmd.Flags().GetString("role")
	agent, _ := cmd.Flags().GetString("agent")
	file, _ := cmd.Flags().GetString("file")
	line, _ := cmd.Flags().GetInt("line")
	links, _ := cmd.Flags().GetStringSlice("link")

	role := model.Role(roleStr)
	if !model.ValidRoles[role] {
		exitErr("session msg", fmt.Errorf("invalid role %q", roleStr))
	}

	content := readContent(args[1:])
	if content == "" {
		exitErr("session msg", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	var meta *model.MessageMeta
	if agent != "" || file != "" || line > 0 || len(links) > 0 {
		meta = &model.MessageMeta{AgentID: agent, ContextIDs: links, File: file, Line: line}
	}

	s, port := openStore()
	defer port.Close()

	found := s.AddMessage(args[0], store.MessageParams{
		Role:    role,
		Content: content,
		Meta:    meta,
	})
	fmt.Printf(`{"ok":%t,"session":%q}`+"\n", found, args[0])
}

func runSessionHistory(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	messages := s.GetHistory(args[0])
	if len(messages) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(messages, "", "  ")
	fmt.Println(string(b))
}
