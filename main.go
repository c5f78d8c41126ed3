package main

import (
	"dir-compare/cmd"
	"dir-compare/cmd/global"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	global.Version = version
	global.Commit = commit
	global.Date = date
	cmd.Execute()
}
