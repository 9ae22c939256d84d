package main

import "ledger/cmd"

func main() {
	cmd.Execute()
}
