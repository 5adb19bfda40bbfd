package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/weibaohui/pagecraft/internal/component"
	"github.com/weibaohui/pagecraft/internal/document"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pagecraft",
		Short:         "Compose and render component templates offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newComponentsCmd(), newValidateCmd(), newRenderCmd())
	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadDocument 读取模板文件，接受 arena 与 tree 两种形式
func loadDocument(path string) (*document.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return document.Parse(raw)
}

func registry() *component.Registry {
	return component.Default()
}
