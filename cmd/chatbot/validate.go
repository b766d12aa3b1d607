// cmd/chatbot/validate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gear9-chatbot/internal/chatbot/knowledge"
	apperrors "gear9-chatbot/internal/common/errors"
)

func newValidateKBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-kb <path>",
		Short: "Check a knowledge base file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := knowledge.LoadFile(args[0])
			if err != nil {
				return apperrors.NewKnowledgeBaseUnavailableError(err.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d services, %d projects, %d awards, %d subjects)\n",
				kb.Source, len(kb.Services), len(kb.Projects), len(kb.Awards), len(kb.Subjects))
			return nil
		},
	}
}
