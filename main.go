package main

import (
	"fmt"
	"os"
	"strings"

	"ghmm_go/benchmark"
	version_control "ghmm_go/config"

	"ghmm_go/cmd/ghmmreport"
	"ghmm_go/cmd/ghmmscan"
	"ghmm_go/cmd/ghmmsim"
)

// printCustomHelp formats a custom help menu
func printCustomHelp() {
	fmt.Println(`ghmm_go - Custom Help Menu
Usage:
  ghmm_go <tool> [options]

Tools:
  ghmmscan		Score FASTA sequences against a compiled model
  ghmmsim		Simulate sequences by forward sampling a model
  ghmmreport		Decode a FASTA batch and render diagnostic plots

Global Flags:
  -h, -help		Show this help message
  -v, -version		Show version information

Benchmarking:
  -benchmark		Must be used in association with a tool.
			Displays computational resource usage and
			pertinent operating system information
  `,
	)
	os.Exit(0)
}

func printVersion() {
	fmt.Println("ghmm_go - Version Information Menu")
	fmt.Println("Central Executable:")
	fmt.Printf("\tghmm_go:\t\t%s\n", version_control.Main_version)
	fmt.Printf("\nModular tools:\n")
	fmt.Printf("\tGHMM Scan:\t\t%s\n", version_control.GHMM_Scan)
	fmt.Printf("\tGHMM Sim:\t\t%s\n", version_control.GHMM_Sim)
	fmt.Printf("\tGHMM Report:\t\t%s\n", version_control.GHMM_Report)
	fmt.Printf("\tBenchmark:\t\t%s\n", version_control.Benchmark)

	fmt.Println("")

	os.Exit(0)
}

// Main controller
func main() {

	// If no arguments are given, show help
	if len(os.Args) < 2 {
		printCustomHelp()
	}

	// Scan for executible-specific help flags
	for _, arg := range os.Args[1:] {
		if len(os.Args) < 3 {
			if arg == "-h" || arg == "-help" {
				printCustomHelp()
			}
		}
	}

	// Version request
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "-version" {
			printVersion()
		}
	}

	toolName := os.Args[1]
	toolArgs := os.Args[2:]

	// Check for global -benchmark flag
	benchmarking := false
	var cleanedArgs []string
	for _, arg := range toolArgs {
		if arg == "-benchmark" {
			benchmarking = true
		} else {
			cleanedArgs = append(cleanedArgs, arg)
		}
	}

	// Tool execution wrapper
	run := func() {
		switch toolName {
		case "ghmmscan":
			ghmmscan.Run(cleanedArgs)
		case "ghmmsim":
			ghmmsim.Run(cleanedArgs)
		case "ghmmreport":
			ghmmreport.Run(cleanedArgs)
		default:
			fmt.Printf("Unknown tool: %s\n", toolName)
			os.Exit(1)
		}
	}

	if benchmarking {
		label := fmt.Sprintf("ghmm_go %s %s", toolName, strings.Join(cleanedArgs, " "))
		benchmark.Run(label, run)
	} else {
		run()
	}
}
