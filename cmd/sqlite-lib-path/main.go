// cmd/sqlite-lib-path/main.go
package main

import (
	"fmt"
	"os"

	"github.com/effect-native/libsqlite/internal/cli"
)

func main() {
	if err := cli.NewLibPathCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
