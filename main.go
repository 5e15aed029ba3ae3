package main

import "github.com/mselser95/bybit-sniper/cmd"

func main() {
	cmd.Execute()
}
