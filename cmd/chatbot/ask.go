// cmd/chatbot/ask.go
package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gear9-chatbot/internal/chatbot/chat"
)

func newAskCommand(opts *rootOptions) *cobra.Command {
	var (
		lang           string
		conversationID string
		verbose        bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newOneShotApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if conversationID == "" {
				conversationID = uuid.NewString()
			}
			reply, err := a.Service.Reply(cmd.Context(), chat.Request{
				Message:        strings.Join(args, " "),
				ConversationID: conversationID,
				Language:       lang,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verbose {
				fmt.Fprintf(out, "[%s %s %s]\n", reply.Language, reply.Source, conversationID)
			}
			fmt.Fprintln(out, reply.Text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "language", "l", "", "force the reply language (en|fr)")
	cmd.Flags().StringVar(&conversationID, "conversation", "", "conversation id (default: a new uuid)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print language, source and conversation id")
	return cmd
}
