package main

import (
	"fmt"
	"log"
	"os"
)

var version string
var build string
var debugging = "false"

func main() {
	fmt.Printf("\n%s v%s (build: %s).\n\n", RepresentativeName, version, build)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runGUI(openFile string) {
	log.Printf("Running GUI...\n")
	startEditor(openFile)
	os.Exit(0)
}

func init() {
	if debugging == "true" {
		DEBUG = true
	}
	initlog()
}
