package main

import "github.com/KaramelBytes/mdsummary/cmd"

func main() {
	cmd.Execute()
}
