// Command gatewayd runs the OAuth 2.0 Protected Resource gateway.
package main

import (
	"fmt"
	"os"

	"github.com/oauthgw/prgateway/cmd/gatewayd/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "there was an error: %v\n", err)
		os.Exit(1)
	}
}
