package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/weibaohui/pagecraft/internal/resolver"
	"k8s.io/klog/v2"
)

func newRenderCmd() *cobra.Command {
	var (
		dataPath string
		outPath  string
	)
	cmd := &cobra.Command{
		Use:   "render <template.json>",
		Short: "Resolve a template against a data file and print the visual tree",
		Long: `Resolve a template against a data file and print the visual tree.

Examples:
  pagecraft render welcome.json --data data.json
  pagecraft render welcome.json -d data.json --out tree.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			var data any = map[string]any{}
			if dataPath != "" {
				raw, err := os.ReadFile(dataPath)
				if err != nil {
					return fmt.Errorf("read data: %w", err)
				}
				if err := json.Unmarshal(raw, &data); err != nil {
					return fmt.Errorf("decode data: %w", err)
				}
			}

			tree, err := resolver.New(registry()).Resolve(doc, data)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := writeJSON(&buf, tree); err != nil {
				return err
			}
			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			// 原子替换，避免读到写了一半的文件
			if err := atomic.WriteFile(outPath, &buf); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			klog.V(6).Infof("渲染结果已写入: path=%s, nodes=%d", outPath, tree.Count())
			return nil
		},
	}
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON data file used for bindings")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the visual tree to this file instead of stdout")
	return cmd
}
