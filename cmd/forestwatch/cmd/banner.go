package cmd

import (
	"fmt"
)

// Version is the CLI version, overridable at build time with -ldflags.
var Version = "0.1.0"

const banner = `
  ______                  _                 _       _
 |  ____|                | |               | |     | |
 | |__ ___  _ __ ___  ___| |___      ____ _| |_ ___| |__
 |  _/ _ \| '__/ _ \/ __| __\ \ /\ / / _. | __/ __| '_ \
 | || (_) | | |  __/\__ \ |_ \ V  V / (_| | || (__| | | |
 |_| \___/|_|  \___||___/\__| \_/\_/ \__,_|\__\___|_| |_|

`

func printBanner() {
	fmt.Printf("\x1b[32m%s\x1b[0m", banner)
	fmt.Printf("\x1b[34m  Forest Protection Dashboard - Version %s\x1b[0m\n\n", Version)
}
