package main

import "tabloide-mp/cmd"

func main() {
	cmd.Execute()
}
