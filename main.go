package main

import "github.com/StinkyLord/ecu-sbom-spdx/cmd"

func main() {
	cmd.Execute()
}
