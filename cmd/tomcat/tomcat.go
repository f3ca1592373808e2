package tomcat

import (
	"catalina-keeper/cmd/root"

	"github.com/spf13/cobra"
)

var tomcatCmd = &cobra.Command{
	Use:   "tomcat",
	Short: "Tomcat operations (start/stop/restart/status/diagnose)",
	Long:  `Tomcat operations (start/stop/restart/status/diagnose)`,
}

const tomcatExample = `  # start tomcat
  catalina-keeper tomcat start
  # explain why tomcat did not come up
  catalina-keeper tomcat diagnose`

func init() {
	root.RootCmd.AddCommand(tomcatCmd)

	tomcatCmd.Example = tomcatExample
}
