package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zero-pass/internal/app"
	"zero-pass/internal/config"
	"zero-pass/internal/output"
	"zero-pass/internal/prompt"
	"zero-pass/internal/zeropass"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var lerr *app.LocalizedError
		if errors.As(err, &lerr) {
			fmt.Fprintln(os.Stderr, lerr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// newApp reads the defaults and opens a ZeroPassApp on the process streams.
// The caller must defer app.Close().
func newApp(cmd *cobra.Command) (*app.ZeroPassApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	streams := app.IO{
		Prompter: prompt.NewTerminal(os.Stdin, os.Stdout),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
	return app.Open(defaults, streams, verbose)
}

var rootCmd = &cobra.Command{
	Use:           "zero_pass",
	Short:         "Derive service passwords from a unique and a variable password",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		unique, _ := flags.GetString("unique")
		variable, _ := flags.GetString("variable")
		repeat, _ := flags.GetString("repeat")
		method, _ := flags.GetString("method")
		show, _ := flags.GetBool("show-result")
		encryptTo, _ := flags.GetString("encrypt-to")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Generate(cmd.Context(), app.Options{
			Unique:    unique,
			Variable:  variable,
			Repeat:    repeat,
			RepeatSet: flags.Changed("repeat"),
			Method:    method,
			Output: output.Options{
				Show:      show,
				EncryptTo: encryptTo,
			},
		})
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := app.NewConfig(defaults)
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Default method: %s\n", cfg.Props.DefaultMethod)
		fmt.Printf("Language:       %s\n", cfg.Props.Lang)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Default method: %s\n", cfg.Props.DefaultMethod)
		fmt.Printf("Language:       %s\n", cfg.Props.Lang)
		if cfg.History.Type != "" {
			fmt.Printf("History:        %s %s\n", cfg.History.Type, cfg.History.DataDir)
		}
		if cfg.Log.Dir != "" {
			fmt.Printf("Log Dir:        %s\n", cfg.Log.Dir)
		}
		return nil
	},
}

// methods command
var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List available methods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		def := zeropass.DefaultMethodName
		if defaults, err := app.GetDefaults(); err == nil {
			if cfg, err := config.ReadFromFile(defaults["config_path"]); err == nil && cfg.Props.DefaultMethod != "" {
				def = cfg.Props.DefaultMethod
			}
		}

		for _, line := range methodLines(def) {
			fmt.Println(line)
		}
		return nil
	},
}

// methodLines lists the registered methods, starring def. Names match
// exactly, as they do when a run resolves the default.
func methodLines(def string) []string {
	names := zeropass.Methods()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		marker := " "
		if name == def {
			marker = "*"
		}
		lines = append(lines, marker+" "+name)
	}
	return lines
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("getting defaults: %w", err)
		}
		rec, err := app.OpenHistory(defaults)
		if err != nil {
			return err
		}
		defer rec.Close()

		runs, err := rec.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%s  %-10s  x%-3d  %s\n",
				r.RanAt.Local().Format("2006-01-02 15:04:05"),
				r.Method,
				r.Repeat,
				r.Sink,
			)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("unique", "u", "", "The unique password used on all cases")
	flags.StringP("variable", "v", "", "The password that changes for each different service")
	flags.StringP("repeat", "r", "", "The number of times to repeat a method")
	flags.StringP("method", "m", "", "Method to use for encryption")
	flags.BoolP("show-result", "s", false, "Print the password instead of copying it to the clipboard")
	flags.String("encrypt-to", "", "Encrypt the password to this age recipient and print it armored")
	rootCmd.PersistentFlags().Bool("verbose", false, "Also write logs to stderr")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(versionCmd)
}
