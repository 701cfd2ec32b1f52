package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/infohazards/indranet-explorer/internal/cli"
	"github.com/infohazards/indranet-explorer/model"
)

func main() {
	cmd := cli.InitCLI()
	if err := cmd.Execute(); err != nil {
		code, cause := model.ExitCodeFromError(err)
		entry := logrus.WithField("exit_code", int(code))
		if cause != nil {
			entry = entry.WithError(cause)
		}
		if code == model.StorageFault {
			entry.Error("storage failure, latest changes were not saved")
		} else {
			entry.Error("command failed")
		}
		os.Exit(int(code))
	}
}
