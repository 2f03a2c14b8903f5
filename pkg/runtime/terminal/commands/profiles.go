package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/ba-assistant/pkg/services/config"
	"github.com/de-tools/ba-assistant/pkg/services/generator"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	path     string
	registry generator.Registry
}

// NewProfilesCmd lists model profiles from the profile file along with the
// providers this build supports.
func NewProfilesCmd(registry generator.Registry) *cobra.Command {
	pc := &ProfilesCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List configured model profiles",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.path, "path", "", "Path to the profile file (default is $HOME/"+config.ProfileFileName+")")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	path := pc.path
	if path == "" {
		path = config.DefaultProfilePath()
	}

	reg, err := config.NewRegistry(path)
	if err != nil {
		return err
	}
	profiles, err := reg.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}

	fmt.Fprintf(out, "Supported providers: %s\n", strings.Join(pc.registry.ListProviders(), ", "))
	if len(profiles) == 0 {
		fmt.Fprintf(out, "No profiles found in %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "Profiles in %s:\n", path)
	for _, p := range profiles {
		fmt.Fprintf(out, "  %-12s provider=%s model=%s\n", p.Name, p.Provider, p.Model)
	}
	return nil
}
