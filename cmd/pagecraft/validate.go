package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/weibaohui/pagecraft/internal/document"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <template.json>",
		Short: "Validate a template document against the component registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			result := document.Validate(doc, registry())
			if result.Violations == nil {
				result.Violations = []document.Violation{}
			}
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Valid() {
				return fmt.Errorf("%d violation(s) found", len(result.Violations))
			}
			return nil
		},
	}
}
