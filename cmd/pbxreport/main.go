package main

import "pbx-insights-go/internal/cli"

func main() {
	cli.Execute()
}
