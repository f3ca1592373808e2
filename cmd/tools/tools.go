package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"catalina-keeper/cmd/root"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "列出可调用的工具",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := listTools(cmd.Context())
		if err != nil {
			return err
		}
		renderTools(os.Stdout, tools)
		return nil
	},
}

func listTools(ctx context.Context) ([]models.ToolInfo, error) {
	if !root.Local {
		client := root.NewClient()
		defer client.Close()
		resp, err := client.Get(ctx, "/keeper/api/v1/tools", nil)
		if err == nil && resp.OK() {
			var tools []models.ToolInfo
			if err := json.Unmarshal(resp.Body, &tools); err != nil {
				return nil, fmt.Errorf("decode response failed: %w", err)
			}
			return tools, nil
		}
		logger.Debugf("keeper server unavailable, list tools locally: %v", err)
	}
	return root.Keeper().Tools().ListTools(), nil
}

func renderTools(w io.Writer, tools []models.ToolInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Tool", "Description", "Arguments"})
	for _, tool := range tools {
		t.AppendRow(table.Row{tool.Name, tool.Description, strings.Join(tool.Params, ", ")})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func init() {
	root.RootCmd.AddCommand(toolsCmd)
}
