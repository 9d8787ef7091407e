package main

import "github.com/volunteerhub/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
