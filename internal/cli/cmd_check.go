package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkResult summarises a loaded config for `autoscroll check`.
type checkResult struct {
	Source    string   `json:"source"`
	ItemsPath string   `json:"items_path,omitempty"`
	Items     int      `json:"items"`
	Direction string   `json:"direction"`
	Mode      string   `json:"mode"`
	Notes     []string `json:"notes"`
}

func buildCheckCommand(env Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config and items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load()
			if err != nil {
				return failCommand(env, flags, "check", "config_invalid", err)
			}
			res := summarize(s)
			if flags.json {
				PrintJSON(env.Stdout, "check", res, env.Version)
				return nil
			}
			source := res.Source
			if source == "" {
				source = "(defaults)"
			}
			fmt.Fprintf(env.Stdout, "config:    %s\n", source)
			if res.ItemsPath != "" {
				fmt.Fprintf(env.Stdout, "items:     %s\n", res.ItemsPath)
			}
			fmt.Fprintf(env.Stdout, "count:     %d\n", res.Items)
			fmt.Fprintf(env.Stdout, "direction: %s\n", res.Direction)
			fmt.Fprintf(env.Stdout, "mode:      %s\n", res.Mode)
			for _, note := range res.Notes {
				fmt.Fprintf(env.Stdout, "note:      %s\n", note)
			}
			return nil
		},
	}
}

func summarize(s *settings) checkResult {
	o := s.cfg.Scroll
	mode := "continuous"
	switch {
	case o.IsSingleStep:
		mode = "single-step"
	case o.IsRoller:
		mode = "roller"
	case !o.Seamless:
		mode = "continuous (stops at end)"
	}
	notes := s.notes
	if notes == nil {
		notes = []string{}
	}
	return checkResult{
		Source:    s.cfg.Source,
		ItemsPath: s.cfg.ItemsPath,
		Items:     len(s.items),
		Direction: o.Direction.String(),
		Mode:      mode,
		Notes:     notes,
	}
}
