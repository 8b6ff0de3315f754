package pyramid

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/internal/appcontext"
	"github.com/agentstation/dietdesk/internal/output"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/reconcile"
)

type mergeFlags struct {
	sourceFlags
	copyAll string
	copy    []string
	set     []string
	name    string
	yes     bool
	dryRun  bool
}

// NewMergeCommand creates the pyramid merge subcommand.
func NewMergeCommand(app appcontext.Interface) *cobra.Command {
	var flags mergeFlags
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge candidate values, edit them and create a new profile",
		Long: `Merge seeds a working record from the recommendation, then applies, in order:
--resolve, --copy-all, every --copy and every --set. The result is validated
and, once confirmed, written as a new profile in the output directory.`,
		Example: `  dietdesk pyramid merge --existing saved.yaml --algorithmic recommended.yaml \
    --copy kcal=existing --set protein=120 --name "Winter plan"
  dietdesk pyramid merge --algorithmic recommended.yaml --copy-all algorithmic --name "Baseline" --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd, app, &flags)
		},
	}
	addSourceFlags(cmd, &flags.sourceFlags)
	cmd.Flags().StringVar(&flags.copyAll, "copy-all", "", "copy every value from a source: existing or algorithmic")
	cmd.Flags().StringArrayVar(&flags.copy, "copy", nil, "copy one field from a source, e.g. kcal=existing (repeatable)")
	cmd.Flags().StringArrayVar(&flags.set, "set", nil, "set one field, e.g. protein=120; empty clears it (repeatable)")
	cmd.Flags().StringVar(&flags.name, "name", "", "name of the new profile")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "create without asking for confirmation")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "validate and show the profile without creating it")
	return cmd
}

func runMerge(cmd *cobra.Command, app appcontext.Interface, flags *mergeFlags) error {
	copies, err := parseAssignments("copy", flags.copy)
	if err != nil {
		return err
	}
	sets, err := parseAssignments("set", flags.set)
	if err != nil {
		return err
	}

	var createdPath string
	create := func(ctx context.Context, p reconcile.Payload) error {
		created, err := app.Store().CreateProfile(ctx, p)
		if err != nil {
			return err
		}
		createdPath = created.Path
		return nil
	}

	ws, err := openWorkspace(cmd, app, &flags.sourceFlags, dietdesk.WithCreateFunc(create))
	if err != nil {
		return err
	}
	if err := applyEdits(ws, flags.copyAll, copies, sets); err != nil {
		return err
	}

	format := app.OutputFormat()
	formatter := output.NewFormatter(format)
	w := cmd.OutOrStdout()

	pending, err := ws.RequestCommit(flags.name)
	if err != nil {
		if format == output.FormatTable {
			// Show the rows so the offending fields can be found.
			if writeErr := formatter.Format(w, output.RowsToTableData(ws.Rows())); writeErr != nil {
				return stderrors.Join(err, writeErr)
			}
		}
		return err
	}

	if format == output.FormatTable {
		if err := formatter.Format(w, output.PendingToTableData(pending)); err != nil {
			return err
		}
	} else if err := formatter.Format(w, pending.Payload()); err != nil {
		return err
	}

	if flags.dryRun {
		ws.CancelCommit()
		return nil
	}
	if !flags.yes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Create profile %q?", pending.Name()))
		if err != nil {
			return err
		}
		if !ok {
			ws.CancelCommit()
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
			return nil
		}
	}

	if err := ws.ConfirmCommit(cmd.Context(), pending); err != nil {
		return errors.WrapResource("create", "profile", pending.Name(), err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Created %s\n", createdPath)
	return nil
}

// applyEdits runs the bulk copy, single copies and manual edits in order.
func applyEdits(ws *dietdesk.Workspace, copyAll string, copies, sets []assignment) error {
	if copyAll != "" {
		from, err := parseSource("copy-all", copyAll)
		if err != nil {
			return err
		}
		ws.CopyAll(from)
	}
	for _, c := range copies {
		from, err := parseSource("copy", c.value)
		if err != nil {
			return err
		}
		ws.CopyField(c.field, from)
	}
	for _, s := range sets {
		if err := ws.SetField(s.field, s.value); err != nil {
			return err
		}
	}
	return nil
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", question); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.WrapIO("read", "stdin", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
