package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/assistant-memory/internal/model"
	"github.com/rcliao/assistant-memory/internal/store"
)

func init() {
	contextCmd := &cobra.Command{
		Use:   "context",
		Short: "Manage memory contexts",
	}

	addCmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Store a memory context",
		Long:  "Store a memory context. Content can be a positional arg or piped via stdin; it is wrapped in the payload matching --kind.",
		Run:   runContextAdd,
	}
	addCmd.Flags().StringP("kind", "k", "conversation", "Kind: conversation, code, workflow, system, user_preference")
	addCmd.Flags().String("title", "", "Display title (required)")
	addCmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	addCmd.Flags().IntP("priority", "p", 5, "Importance 1-10")
	addCmd.Flags().String("language", "", "Code payload: language")
	addCmd.Flags().String("file", "", "Code payload: source file")
	addCmd.Flags().String("setting", "", "System payload: setting name")
	addCmd.MarkFlagRequired("title")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Retrieve a context by id",
		Args:  cobra.ExactArgs(1),
		Run:   runContextGet,
	}

	updateCmd := &cobra.Command{
		Use:   "update [id] [content]",
		Short: "Update a context",
		Long:  "Update a context. Only the given flags change; the access count is bumped either way.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContextUpdate,
	}
	updateCmd.Flags().String("title", "", "New title")
	updateCmd.Flags().StringP("tags", "t", "", "Replacement tags, comma-separated")
	updateCmd.Flags().IntP("priority", "p", 0, "New priority")
	updateCmd.Flags().String("language", "", "Code payload: language")
	updateCmd.Flags().String("file", "", "Code payload: source file")
	updateCmd.Flags().String("setting", "", "System payload: setting name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List contexts",
		Run:   runContextList,
	}
	listCmd.Flags().StringP("kind", "k", "", "Filter by kind")
	listCmd.Flags().StringP("tags", "t", "", "Filter by tags (comma-separated, all must match)")
	listCmd.Flags().IntP("limit", "l", 0, "Max results (0: all)")

	activeCmd := &cobra.Command{
		Use:   "active",
		Short: "List active contexts",
		Long:  "List contexts linked to the active session, or every accessed context when no session is active.",
		Run:   runContextActive,
	}

	contextCmd.AddCommand(addCmd, getCmd, updateCmd, listCmd, activeCmd)
	RootCmd.AddCommand(contextCmd)
}

// readContent takes positional args first, then stdin.
func readContent(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, err := os.Stdin.Stat()
	if err != nil {
		return ""
	}
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return strings.TrimSpace(string(b))
	}
	return ""
}

// buildContent wraps raw text in the payload shape for the given kind.
func buildContent(kind model.Kind, text, language, file, setting string) model.Content {
	switch kind {
	case model.KindCode:
		return model.Content{Code: &model.CodeContent{Language: language, File: file, Snippet: text}}
	case model.KindWorkflow:
		var steps []string
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				steps = append(steps, line)
			}
		}
		return model.Content{Workflow: &model.WorkflowContent{Steps: steps}}
	case model.KindSystem:
		return model.Content{System: &model.SystemContent{Setting: setting, Value: text}}
	case model.KindUserPreference:
		return model.Content{UserPreference: &model.UserPreferenceContent{Preference: text}}
	default:
		return model.Content{Conversation: &model.ConversationContent{Summary: text}}
	}
}

func runContextAdd(cmd *cobra.Command, args []string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	title, _ := cmd.Flags().GetString("title")
	tagsStr, _ := cmd.Flags().GetString("tags")
	priority, _ := cmd.Flags().GetInt("priority")
	language, _ := cmd.Flags().GetString("language")
	file, _ := cmd.Flags().GetString("file")
	setting, _ := cmd.Flags().GetString("setting")

	kind := model.Kind(kindStr)
	if !model.ValidKinds[kind] {
		exitErr("add", fmt.Errorf("invalid kind %q", kindStr))
	}

	content := readContent(args)
	if content == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	s, port := openStore()
	defer port.Close()

	id := s.AddContext(store.AddParams{
		Kind:     kind,
		Title:    title,
		Content:  buildContent(kind, content, language, file, setting),
		Tags:     splitTags(tagsStr),
		Priority: priority,
	})

	ctx, _ := s.FindContext(id)
	b, _ := json.MarshalIndent(ctx, "", "  ")
	fmt.Println(string(b))
}

func runContextGet(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	ctx, ok := s.FindContext(args[0])
	if !ok {
		exitErr("get", fmt.Errorf("context not found: %s", args[0]))
	}
	b, _ := json.MarshalIndent(ctx, "", "  ")
	fmt.Println(string(b))
}

func runContextUpdate(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	id := args[0]
	var p store.UpdateParams

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		p.Title = &title
	}
	if cmd.Flags().Changed("tags") {
		tagsStr, _ := cmd.Flags().GetString("tags")
		p.Tags = splitTags(tagsStr)
	}
	if cmd.Flags().Changed("priority") {
		priority, _ := cmd.Flags().GetInt("priority")
		p.Priority = &priority
	}
	if text := readContent(args[1:]); text != "" {
		existing, ok := s.FindContext(id)
		if ok {
			language, _ := cmd.Flags().GetString("language")
			file, _ := cmd.Flags().GetString("file")
			setting, _ := cmd.Flags().GetString("setting")
			content := buildContent(existing.Kind, text, language, file, setting)
			p.Content = &content
		}
	}

	found := s.UpdateContext(id, p)
	fmt.Printf(`{"ok":%t,"id":%q}`+"\n", found, id)
}

func runContextList(cmd *cobra.Command, args []string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	tagsStr, _ := cmd.Flags().GetString("tags")
	limit, _ := cmd.Flags().GetInt("limit")

	s, port := openStore()
	defer port.Close()

	contexts := s.ListContexts(store.ListParams{
		Kind:  model.Kind(kindStr),
		Tags:  splitTags(tagsStr),
		Limit: limit,
	})
	if len(contexts) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(contexts, "", "  ")
	fmt.Println(string(b))
}

func runContextActive(cmd *cobra.Command, args []string) {
	s, port := openStore()
	defer port.Close()

	contexts := s.GetActiveContexts()
	if len(contexts) == 0 {
		fmt.Println("[]")
		return
	}
	b, _ := json.MarshalIndent(contexts, "", "  ")
	fmt.Println(string(b))
}
