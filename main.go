package main

import "github.com/naka-gawa/github-repo-cleaner/cmd"

func main() {
	cmd.Execute()
}
