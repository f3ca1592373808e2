package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"catalina-keeper/cmd/root"
	"catalina-keeper/internal/logger"
	"catalina-keeper/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "列出备份的WAR包，最新的在前",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backups, err := listBackups(cmd.Context())
		if err != nil {
			return err
		}
		renderBackups(os.Stdout, backups)
		return nil
	},
}

// listBackups 优先从keeper服务获取，服务不可达时读取本地备份目录
func listBackups(ctx context.Context) ([]models.BackupInfo, error) {
	if !root.Local {
		client := root.NewClient()
		defer client.Close()
		resp, err := client.Get(ctx, "/keeper/api/v1/backups", nil)
		if err == nil {
			if !resp.OK() {
				return nil, fmt.Errorf("%s: %s", resp.Code, resp.Error)
			}
			var backups []models.BackupInfo
			if err := json.Unmarshal(resp.Body, &backups); err != nil {
				return nil, fmt.Errorf("decode response failed: %w", err)
			}
			return backups, nil
		}
		logger.Debugf("keeper server unreachable, list backups locally: %v", err)
	}
	return root.Keeper().Deployments().ListBackups()
}

/**
 * Render backups as a table
 * @param {io.Writer} w - Output
 * @param {[]models.BackupInfo} backups - Backups, newest first
 */
func renderBackups(w io.Writer, backups []models.BackupInfo) {
	if len(backups) == 0 {
		fmt.Fprintln(w, "No backup WARs available")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Backup", "Artifact", "Created", "Size"})
	for i, b := range backups {
		t.AppendRow(table.Row{i + 1, b.Name, b.Artifact, b.CreatedAt.Format("2006-01-02 15:04:05.000"), b.Size})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

func init() {
	root.RootCmd.AddCommand(backupsCmd)
}
