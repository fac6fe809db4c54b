package main

import "github.com/kava-labs/liquidation-queue/cmd"

func main() {
	cmd.Execute()
}
