package main

import "github.com/grafana/splitstore/cmd/mt-splits/cmd"

func main() {
	cmd.Execute()
}
