package main

import "github.com/terryzhangxr/typace/cmd"

func main() {
	cmd.Execute()
}
