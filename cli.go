package scaffold

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfg = LoadConfig()

var (
	completionShell string
	noColor         bool
)

var rootCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Create project skeletons from pasted tree text and fill them from code templates.",
	Long: `Parse a pasted directory tree (from stdin, the clipboard, or a file) into
directories and files, optionally match a pasted code-template blob against
the declared files, and create everything under the project root.

Examples:
  pbpaste | scaffold --root ./myproj
  scaffold --structure tree.txt --template code.txt --root ./myproj
  scaffold scan --root ./myproj`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			// lipgloss picks its color profile lazily; NO_COLOR must be set
			// before the first render.
			os.Setenv("NO_COLOR", "1")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if completionShell != "" {
			return handleCompletion(cmd)
		}
		if cfg.Undo && cfg.Redo {
			return fmt.Errorf("error: --undo and --redo are mutually exclusive")
		}

		app, err := NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer app.Close()

		switch {
		case cfg.Undo:
			return printSummary(app.Undo())
		case cfg.Redo:
			return printSummary(app.Redo())
		}

		plan, err := app.BuildPlan()
		if err != nil {
			return err
		}

		if cfg.Preview {
			fmt.Print(FormatPlan(plan))
			return nil
		}

		if !cfg.Yes {
			decisions, confirmed, err := ReviewPlan(plan.Decisions)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Cancelled")
				return nil
			}
			plan.Decisions = decisions
		}

		return printSummary(app.Apply(plan))
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Print an existing directory as tree text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			cfg.Root = args[0]
		}
		app, err := NewApp(cfg)
		if err != nil {
			return err
		}
		tree, err := app.Scan()
		if err != nil {
			return err
		}
		fmt.Print(tree)
		return nil
	},
}

func printSummary(s Summary, err error) error {
	if err != nil {
		if detailed, ok := err.(*DetailedError); ok {
			fmt.Fprintf(os.Stderr, "%s\n%s", detailed.Error(), detailed.Stack)
		}
		return err
	}
	fmt.Print(FormatSummary(s))
	if len(s.Failed) > 0 {
		fmt.Printf("%d succeeded, %d failed\n", s.Changed(), len(s.Failed))
	}
	return nil
}

func handleCompletion(cmd *cobra.Command) error {
	switch completionShell {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", completionShell)
	}
}

func init() {
	rootCmd.Flags().StringVar(&completionShell, "completion", "", "Generate completion script")
	rootCmd.PersistentFlags().StringVarP(&cfg.Root, "root", "d", cfg.Root, "Project root directory")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().StringVarP(&cfg.StructurePath, "structure", "s", "", "Read structure text from file")
	rootCmd.Flags().StringVarP(&cfg.TemplatePath, "template", "t", "", "Read code template text from file")
	rootCmd.Flags().BoolVarP(&cfg.Preview, "preview", "p", false, "Print the plan without applying it")
	rootCmd.Flags().BoolVarP(&cfg.Yes, "yes", "y", false, "Apply without interactive review")
	rootCmd.Flags().BoolVar(&cfg.UseNvim, "nvim", false, "Write fills through nvim buffers")
	rootCmd.Flags().BoolVarP(&cfg.Undo, "undo", "u", false, "Undo the last apply")
	rootCmd.Flags().BoolVarP(&cfg.Redo, "redo", "r", false, "Redo the last undone apply")

	rootCmd.AddCommand(scanCmd)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
