package main

import (
	"os"
	"time"

	"github.com/TestingSDK2/produco-backend/cmd"
	"github.com/TestingSDK2/produco-backend/util"
)

func main() {
	util.PrettyPrint(map[string]interface{}{
		"startTime":   time.Now().Format("January 02, 2006 - 03:04:05 PM MST"),
		"message":     "Starting produco backend server . . .",
		"codeVersion": cmd.Version,
	})
	if err := cmd.New().Execute(); err != nil {
		os.Exit(1)
	}
}
