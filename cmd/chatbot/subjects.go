// cmd/chatbot/subjects.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gear9-chatbot/internal/chatbot/language"
)

func newSubjectsCommand(opts *rootOptions) *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List the knowledge base subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newOneShotApp()
			if err != nil {
				return err
			}
			defer a.Close()

			l, _ := language.Parse(lang)
			for _, s := range a.Service.Subjects(l.IsEnglish()) {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "language", "l", "fr", "label language (en|fr)")
	return cmd
}
