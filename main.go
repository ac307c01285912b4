package main

import "github.com/user/osint-surface/cmd"

func main() {
	cmd.Execute()
}
