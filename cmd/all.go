package cmd

import (
	_ "catalina-keeper/cmd/deploy"
	_ "catalina-keeper/cmd/diag"
	_ "catalina-keeper/cmd/logs"
	_ "catalina-keeper/cmd/metrics"
	_ "catalina-keeper/cmd/misc"
	_ "catalina-keeper/cmd/root"
	_ "catalina-keeper/cmd/server"
	_ "catalina-keeper/cmd/tomcat"
	_ "catalina-keeper/cmd/tools"
)
