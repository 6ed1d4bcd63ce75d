// Command guidemo builds a small widget tree from a TOML scene, binds
// widget properties together and renders frames to a PNG file.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
