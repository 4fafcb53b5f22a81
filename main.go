package main

import "golang-ethmonitor/cmd"

func main() {
	cmd.Execute()
}
