// Package pyramid implements the commands that build a nutrition profile
// ("food pyramid") by merging a saved profile with a recommendation.
package pyramid

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/internal/appcontext"
	"github.com/agentstation/dietdesk/pkg/authority"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
)

// NewCommand creates the pyramid command group.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pyramid",
		GroupID: "core",
		Short:   "Build nutrition profiles from a saved profile and a recommendation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(NewRowsCommand(app))
	cmd.AddCommand(NewMergeCommand(app))
	cmd.AddCommand(NewListCommand(app))
	return cmd
}

// sourceFlags selects the candidate sources of a merge.
type sourceFlags struct {
	client          string
	existing        string
	existingProfile string
	algorithmic     string
	authorities     string
	resolve         bool
}

func addSourceFlags(cmd *cobra.Command, f *sourceFlags) {
	cmd.Flags().StringVar(&f.client, "client", "", "client ID used in logs and hooks")
	cmd.Flags().StringVar(&f.existing, "existing", "", "saved profile as a plain field map (yaml or json)")
	cmd.Flags().StringVar(&f.existingProfile, "existing-profile", "", "saved profile written by a previous merge")
	cmd.Flags().StringVar(&f.algorithmic, "algorithmic", "", "computed recommendation (yaml or json)")
	cmd.Flags().StringVar(&f.authorities, "authorities", "", "field authority rules for --resolve (default built-in rules)")
	cmd.Flags().BoolVar(&f.resolve, "resolve", false, "fill every field from its authoritative source first")
	cmd.MarkFlagsMutuallyExclusive("existing", "existing-profile")
}

// openWorkspace loads the candidates and selects them as a client.
func openWorkspace(cmd *cobra.Command, app appcontext.Interface, f *sourceFlags, opts ...dietdesk.Option) (*dietdesk.Workspace, error) {
	st := app.Store()

	existing, err := st.LoadSource(f.existing)
	if err != nil {
		return nil, err
	}
	if f.existingProfile != "" {
		if existing, err = st.LoadProfile(f.existingProfile); err != nil {
			return nil, err
		}
	}
	algorithmic, err := st.LoadSource(f.algorithmic)
	if err != nil {
		return nil, err
	}

	var auth authority.Authority
	if f.resolve {
		if auth, err = st.LoadAuthorities(f.authorities); err != nil {
			return nil, err
		}
		opts = append(opts, dietdesk.WithAuthority(auth))
	}

	ws, err := app.Workspace(opts...)
	if err != nil {
		return nil, err
	}
	client := dietdesk.Client{ID: f.client, Existing: existing, Algorithmic: algorithmic}
	if err := ws.SelectClient(cmd.Context(), client); err != nil {
		return nil, err
	}
	if f.resolve {
		changed := ws.ResolveWith(nil)
		app.Logger().Debug().Int("changed", changed).Msg("Resolved fields by authority")
	}
	return ws, nil
}

// assignment is a parsed "field=value" flag.
type assignment struct {
	field fields.Name
	value string
}

func parseAssignments(flag string, raw []string) ([]assignment, error) {
	out := make([]assignment, 0, len(raw))
	for _, r := range raw {
		field, value, ok := strings.Cut(r, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, errors.NewValidationError(flag, r, "must look like field=value")
		}
		out = append(out, assignment{field: fields.Name(field), value: value})
	}
	return out, nil
}

func parseSource(flag, s string) (fields.Origin, error) {
	origin, ok := fields.ParseOrigin(strings.TrimSpace(s))
	if !ok || !origin.IsCandidate() {
		return "", errors.NewValidationError(flag, s, "source must be existing or algorithmic")
	}
	return origin, nil
}
