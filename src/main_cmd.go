package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// UI/Mode flags
	resetFlag bool
	debugFlag bool
	// Compile flags
	outputFlag     string
	programFlag    string
	compressFlag   int
	noCompressFlag bool
	thresholdFlag  int
	rootFlag       string
	formatFlag     string
	timeoutFlag    time.Duration
	// Check flags
	yamlFlag bool
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A Qt resource collection (.qrc) editor",
	Args:  cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Mandatory startup
		if debugFlag && !DEBUG {
			DEBUG = true
			initlog() // reopen with the stdout mirror
		}
		InitializeEnvironment()
		firstStart()

		if resetFlag {
			if err := resetSettings(); err != nil {
				log.Printf("Unable to reset settings: %s\n", err)
				os.Exit(1)
			}
			fmt.Println("Settings cleared.")
		}

		loadSettings()
		if err := configInit(); err != nil {
			log.Printf("Unable to open settings store: %s\n", err)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		openFile := ""
		if len(args) > 0 {
			openFile = ensureQrcExt(args[0])
		}
		runGUI(openFile)
	},
}

// compileCmd is the headless path through the invocation shim, useful in
// build scripts: qrceditor compile icons.qrc -o icons_rc.py
var compileCmd = &cobra.Command{
	Use:   "compile <file.qrc>",
	Short: "Run the external resource compiler on a manifest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manifest := args[0]
		opts := settings.CompileOptions()
		if cmd.Flags().Changed("compress") {
			opts.Compression = compressFlag
		}
		if noCompressFlag {
			opts.Compression = CompressionNone
		}
		if cmd.Flags().Changed("threshold") {
			opts.Threshold = thresholdFlag
		}
		if cmd.Flags().Changed("root") {
			opts.RootPrefix = rootFlag
		}
		if cmd.Flags().Changed("format") {
			opts.Format = formatFlag
		}
		program := settings.Compiler
		if programFlag != "" {
			program = programFlag
		}
		output := outputFlag
		if output == "" {
			output = defaultOutputName(manifest, opts.Format)
		}

		argv, err := BuildCommand(program, manifest, output, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		result, err := Invoke(context.Background(), argv, timeoutFlag)
		if result.Stdout != "" {
			fmt.Print(result.Stdout)
		}
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			if errors.Is(err, ErrCompilerExit) && result.ExitCode > 0 {
				os.Exit(result.ExitCode)
			}
			os.Exit(1)
		}
		fmt.Printf("%s successfully compiled\n", output)
	},
}

// checkCmd validates every entry of a manifest against the filesystem.
var checkCmd = &cobra.Command{
	Use:   "check <file.qrc>",
	Short: "Validate the file entries of a manifest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		collection, err := LoadCollection(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		report := BuildReport(collection, rootFlag)
		if yamlFlag {
			text, err := report.YAML()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Print(text)
		} else {
			fmt.Print(report.Text())
		}
		if report.HasErrors() {
			os.Exit(1)
		}
	},
}

// fmtCmd rewrites a manifest through the serializer, normalizing
// indentation and attribute layout.
var fmtCmd = &cobra.Command{
	Use:   "fmt <file.qrc>",
	Short: "Rewrite a manifest in canonical form",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		collection, err := LoadCollection(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		if err := collection.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls <file.qrc>",
	Short: "List the prefixes and file entries of a manifest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		collection, err := LoadCollection(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		for gi := range collection.Groups {
			group := &collection.Groups[gi]
			fmt.Printf("%s\n", group.Title())
			for ri := range group.Resources {
				res := &group.Resources[ri]
				if res.Alias != "" {
					fmt.Printf("  %s (alias %s)\n", res.Path, res.Alias)
				} else {
					fmt.Printf("  %s\n", res.Path)
				}
			}
		}
		fmt.Printf("%d resources in %d prefixes\n", collection.ResourceCount(), len(collection.Groups))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&resetFlag, "reset", false, "Clear saved settings before starting")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Also log to stdout")

	compileCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default derived from the manifest name)")
	compileCmd.Flags().StringVar(&programFlag, "program", "", "Compiler binary (default from settings)")
	compileCmd.Flags().IntVar(&compressFlag, "compress", 0, "Compression level 0-9")
	compileCmd.Flags().BoolVar(&noCompressFlag, "no-compress", false, "Disable compression entirely")
	compileCmd.Flags().IntVar(&thresholdFlag, "threshold", 0, "Compression threshold percent")
	compileCmd.Flags().StringVar(&rootFlag, "root", "", "Root prefix passed to the compiler")
	compileCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: python-module or binary")
	compileCmd.Flags().DurationVar(&timeoutFlag, "timeout", 2*time.Minute, "Kill the compiler after this long")

	checkCmd.Flags().BoolVar(&yamlFlag, "yaml", false, "Print the report as YAML")
	checkCmd.Flags().StringVar(&rootFlag, "root", "", "Directory entry paths are relative to (default: the manifest's)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lsCmd)
}
