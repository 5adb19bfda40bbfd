package main

import (
	"github.com/spf13/cobra"
)

func newComponentsCmd() *cobra.Command {
	var (
		category   string
		categories bool
	)
	cmd := &cobra.Command{
		Use:   "components",
		Short: "List registered component schemas as JSON",
		Long: `List registered component schemas as JSON.

Examples:
  # All components in declaration order
  pagecraft components

  # Only the layout components
  pagecraft components --category layout

  # Distinct categories
  pagecraft components --categories`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry()
			switch {
			case categories:
				return writeJSON(cmd.OutOrStdout(), reg.ListCategories())
			case cmd.Flags().Changed("category"):
				return writeJSON(cmd.OutOrStdout(), reg.ListByCategory(category))
			}
			return writeJSON(cmd.OutOrStdout(), reg.List())
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category (e.g., layout)")
	cmd.Flags().BoolVar(&categories, "categories", false, "List distinct categories instead of schemas")
	return cmd
}
