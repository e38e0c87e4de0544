package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kicadfp/pkg/kicadmod"
)

// verifyCommand creates the verify command for checking .kicad_mod files.
func (c *CLI) verifyCommand() *cobra.Command {
	var warningsAsErrors bool

	cmd := &cobra.Command{
		Use:   "verify <file.kicad_mod>...",
		Short: "Check .kicad_mod files for structural problems",
		Long: `Check .kicad_mod files for structural problems.

Each file is parsed and checked for a well-formed header, valid and
unique identifiers, and complete pad, zone and group entries. Warnings
point at entries KiCad tolerates but this library would not write.

The command exits non-zero when any file has errors.

Examples:
  kicadfp verify lib.pretty/R_0402_1005Metric.kicad_mod
  kicadfp verify lib.pretty/*.kicad_mod --strict`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd.Context(), args, warningsAsErrors)
		},
	}

	cmd.Flags().BoolVar(&warningsAsErrors, "strict", false, "treat warnings as errors")

	return cmd
}

// runVerify checks every file and prints a per-file report. It returns
// an error when any file fails, so the process exits non-zero.
func (c *CLI) runVerify(ctx context.Context, paths []string, strict bool) error {
	logger := loggerFromContext(ctx)

	var failed, warned int
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		issues, err := verifyFile(path)
		if err != nil {
			printError("%s", err)
			failed++
			continue
		}

		errs, warns := splitIssues(issues)
		logger.Debug("verified", "file", path, "errors", len(errs), "warnings", len(warns))

		switch {
		case len(errs) > 0 || (strict && len(warns) > 0):
			printError("%s", path)
			failed++
		case len(warns) > 0:
			printWarning("%s", path)
			warned++
		default:
			printSuccess("%s", path)
		}
		for _, issue := range errs {
			printDetail("%s: %s", issue.Path, issue.Message)
		}
		for _, issue := range warns {
			printDetail("%s: %s", issue.Path, issue.Message)
		}
	}

	printNewline()
	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d files failed verification", failed, len(paths))
	case warned > 0:
		printWarning("Verified %d files, %d with warnings", len(paths), warned)
	default:
		printSuccess("Verified %d files", len(paths))
	}
	return nil
}

// verifyFile reads and checks a single file.
func verifyFile(path string) ([]kicadmod.Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	issues, err := kicadmod.Verify(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return issues, nil
}

// splitIssues separates errors from warnings, keeping file order.
func splitIssues(issues []kicadmod.Issue) (errs, warns []kicadmod.Issue) {
	for _, issue := range issues {
		if issue.Severity == kicadmod.SeverityError {
			errs = append(errs, issue)
		} else {
			warns = append(warns, issue)
		}
	}
	return errs, warns
}
