// Package catalogcmd holds the commands that browse the platform catalog.
package catalogcmd

import (
	"fmt"
	"github.com/intinc/platformexplorer/cmd/cli/output"
	"github.com/intinc/platformexplorer/internal/catalog"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/intinc/platformexplorer/internal/sessionstate"
	"github.com/spf13/cobra"
	"strconv"
	"strings"
)

var Group = &cobra.Group{
	ID:    "catalog",
	Title: "Platform catalog",
}

// Commands returns a fresh set of the catalog commands.
func Commands() []*cobra.Command {
	return []*cobra.Command{newPlatformsCommand(), newPlatformCommand(), newCompareCommand(), newStrategyCommand()}
}

func newPlatformsCommand() *cobra.Command {
	var filter catalog.Filter
	cmd := &cobra.Command{
		Use:     "platforms",
		GroupID: Group.ID,
		Short:   "List platforms",
		Long:    "Lists the platforms of the catalog with their average capability score.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Default()
			if err != nil {
				return errors.Wrap(err, "load catalog")
			}
			platforms := filter.Apply(c.Platforms())
			out := cmd.OutOrStdout()
			if len(platforms) == 0 {
				_, _ = output.Muted.Fprintln(out, "No platforms found")
				return nil
			}
			rows := make([][]string, len(platforms))
			for i, p := range platforms {
				rows[i] = []string{
					p.ID, p.Name, string(p.Category), string(p.Priority), p.Pricing,
					strconv.Itoa(scoring.AverageScore(p.Capabilities)),
				}
			}
			_, _ = fmt.Fprintln(out, output.Table([]string{"ID", "Name", "Category", "Priority", "Pricing", "Avg"}, rows))
			_, _ = output.Muted.Fprintf(out, "Showing %d of %d platforms\n", len(platforms), len(c.Platforms()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "search name, verdict and target users")
	cmd.Flags().StringVar(&filter.Category, "category", catalog.FilterAll, "category to show")
	cmd.Flags().StringVar(&filter.Priority, "tier", catalog.FilterAll, `priority tier to show, for example "Tier 1"`)
	return cmd
}

func newPlatformCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "platform <id>",
		GroupID: Group.ID,
		Short:   "Show one platform",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Default()
			if err != nil {
				return errors.Wrap(err, "load catalog")
			}
			p, err := c.Platform(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = output.Title.Fprintln(out, p.Name)
			_, _ = fmt.Fprintln(out, p.Verdict)
			details := [][]string{
				{"Category", string(p.Category)},
				{"Priority", string(p.Priority)},
				{"Market share", p.MarketShare},
				{"Pricing", p.Pricing},
				{"Context window", p.ContextWindow},
				{"Compliance", strings.Join(p.Compliance, ", ")},
				{"Target users", p.TargetUsers},
			}
			_, _ = fmt.Fprintln(out, output.Table([]string{"Attribute", "Value"}, details))

			scores := make([][]string, 0, len(models.AllCapabilities)+1)
			for _, capability := range models.AllCapabilities {
				score, _ := p.Capabilities.Score(capability)
				scores = append(scores, []string{capability.Label(), strconv.Itoa(score)})
			}
			scores = append(scores, []string{"Average", strconv.Itoa(scoring.AverageScore(p.Capabilities))})
			_, _ = fmt.Fprintln(out, output.Table([]string{"Capability", "Score"}, scores))
			return nil
		},
	}
}

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "compare <id>...",
		GroupID: Group.ID,
		Short:   "Compare platforms side by side",
		Long:    fmt.Sprintf("Compares 1 to %d platforms. The highest average is marked.", sessionstate.MaxSelection),
		Args:    cobra.RangeArgs(1, sessionstate.MaxSelection),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Default()
			if err != nil {
				return errors.Wrap(err, "load catalog")
			}
			platforms, missing := c.PlatformsByIDs(args)
			if len(missing) > 0 {
				return errors.Wrap(catalog.ErrPlatformNotFound, "Platforms not found: "+strings.Join(missing, ", "))
			}

			best := scoring.HighestAverage(platforms)
			headers := []string{"Capability"}
			for i, p := range platforms {
				name := p.Name
				if i == best {
					name += " ★"
				}
				headers = append(headers, name)
			}
			rows := make([][]string, 0, len(models.AllCapabilities)+1)
			for _, capability := range models.AllCapabilities {
				row := []string{capability.Label()}
				for _, p := range platforms {
					score, _ := p.Capabilities.Score(capability)
					row = append(row, strconv.Itoa(score))
				}
				rows = append(rows, row)
			}
			averages := []string{"Average"}
			for _, p := range platforms {
				averages = append(averages, strconv.Itoa(scoring.AverageScore(p.Capabilities)))
			}
			rows = append(rows, averages)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, output.Table(headers, rows))
			_, _ = output.Good.Fprintf(out, "Highest average: %s\n", platforms[best].Name)
			return nil
		},
	}
}

func newStrategyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "strategy",
		GroupID: Group.ID,
		Short:   "Show the adoption tiers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Default()
			if err != nil {
				return errors.Wrap(err, "load catalog")
			}
			out := cmd.OutOrStdout()
			for _, tier := range c.StrategyTiers() {
				_, _ = output.Title.Fprintf(out, "Tier %d: %s\n", tier.Tier, tier.Name)
				_, _ = fmt.Fprintln(out, tier.Description)
				for _, p := range c.TierPlatforms(tier) {
					_, _ = fmt.Fprintf(out, "  - %s\n", p.Name)
				}
				_, _ = output.Muted.Fprintln(out, tier.Rationale)
				_, _ = fmt.Fprintln(out)
			}
			return nil
		},
	}
}
