// Package main is the entry point for the shopctl CLI.
package main

import "github.com/Gra1gkolodziejczyk/shop-ta-board/internal/cli"

func main() {
	cli.Execute()
}
