// Package plancmd holds the planning commands: the ROI calculator, the department assessment and the PRD
// generator.
package plancmd

import (
	"bytes"
	"fmt"
	"github.com/charmbracelet/glamour"
	"github.com/intinc/platformexplorer/cmd/cli/output"
	"github.com/intinc/platformexplorer/internal/catalog"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/prd"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/intinc/platformexplorer/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"io"
	"log/slog"
	"os"
	"strings"
)

var Group = &cobra.Group{
	ID:    "plan",
	Title: "Planning",
}

const wordWrap = 100

// Commands returns a fresh set of the planning commands.
func Commands() []*cobra.Command {
	return []*cobra.Command{newROICommand(), newAssessCommand(), newPRDCommand()}
}

func newValidator() (*catalog.Catalog, *validation.Validator, error) {
	c, err := catalog.Default()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load catalog")
	}
	v, err := validation.New(c.Departments())
	if err != nil {
		return nil, nil, errors.Wrap(err, "new validator")
	}
	return c, v, nil
}

// decodeYAMLFile decodes the YAML file at path into v and rejects unknown fields.
func decodeYAMLFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read file", slog.String("path", path))
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode YAML", slog.String("path", path))
	}
	return nil
}

func newROICommand() *cobra.Command {
	var (
		in   = models.DefaultROIInputs
		file string
	)
	cmd := &cobra.Command{
		Use:     "roi",
		GroupID: Group.ID,
		Short:   "Calculate the enterprise ROI",
		Long: fmt.Sprintf("Projects the annual return of a platform rollout. Flags default to the reference case; "+
			"--file reads the inputs from YAML. The working year has %d weeks of %d hours.",
			scoring.EnterpriseWeeksPerYear, scoring.HoursPerWeek),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, v, err := newValidator()
			if err != nil {
				return err
			}
			if file != "" {
				if err = decodeYAMLFile(file, &in); err != nil {
					return err
				}
			}
			if err = v.Struct(validation.NewROIInputs(in)); err != nil {
				return err
			}

			results := scoring.CalculateROI(in)
			out := cmd.OutOrStdout()
			_, _ = output.Title.Fprintln(out, "ROI projection")
			_, _ = fmt.Fprintln(out, output.Table([]string{"Metric", "Value"}, [][]string{
				{"Annual productivity value", output.Money(results.AnnualProductivityValue)},
				{"Total annual cost", output.Money(results.AnnualTotalCost)},
				{"ROI", output.Number(results.ROIPercentage) + "%"},
				{"Payback period", fmt.Sprintf("%.1f months", results.PaybackPeriodMonths)},
			}))
			output.Signed(out, "Net benefit", output.Money(results.NetBenefit), results.NetBenefit)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&in.Employees, "employees", in.Employees, "number of employees")
	flags.Float64Var(&in.AverageSalary, "salary", in.AverageSalary, "average annual salary in dollars")
	flags.Float64Var(&in.AdoptionPercentage, "adoption", in.AdoptionPercentage, "share of employees using the platform in percent")
	flags.Float64Var(&in.WeeklyProductivityGain, "hours", in.WeeklyProductivityGain, "weekly hours saved per user")
	flags.Float64Var(&in.AnnualPlatformCost, "platform-cost", in.AnnualPlatformCost, "annual platform cost in dollars")
	flags.Float64Var(&in.TrainingCost, "training-cost", in.TrainingCost, "training cost in dollars")
	flags.StringVarP(&file, "file", "f", "", "YAML file with the inputs, overrides the other flags")
	return cmd
}

// assessmentFile is the YAML input of the assess command.
type assessmentFile struct {
	Departments []models.Department `yaml:"departments"`
}

func newAssessCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "assess",
		GroupID: Group.ID,
		Short:   "Rank the benchmark platforms for your departments",
		Long: fmt.Sprintf("Reads departments from YAML and ranks the benchmark platforms by one-year ROI. "+
			"The working year has %d weeks.", scoring.AssessmentWeeksPerYear),
		Example: `  pexctl assess --file departments.yaml

  # departments.yaml
  departments:
    - {name: Legal, userCount: 10, hourlyRate: 100}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, v, err := newValidator()
			if err != nil {
				return err
			}
			var f assessmentFile
			if err = decodeYAMLFile(file, &f); err != nil {
				return err
			}
			req := validation.Assessment{Departments: make([]validation.Department, len(f.Departments))}
			for i, d := range f.Departments {
				userCount := float64(d.UserCount)
				req.Departments[i] = validation.Department{Name: d.Name, UserCount: &userCount, HourlyRate: &d.HourlyRate}
			}
			if err = v.Struct(req); err != nil {
				return err
			}

			departments := req.Models()
			summary := scoring.Summarize(departments)
			results := scoring.RankPlatformROI(departments, c.Benchmarks())
			out := cmd.OutOrStdout()
			_, _ = output.Title.Fprintf(out, "Departments: %d, users: %d\n", summary.Departments, summary.TotalUsers)
			rows := make([][]string, len(results))
			for i, r := range results {
				name := r.PlatformName
				if r.Recommended {
					name += " (recommended)"
				}
				rows[i] = []string{
					name, output.Money(r.TotalAnnualSavings), output.Money(r.TotalCost), output.Money(r.NetAnnualSavings),
					output.Number(r.OneYearROI) + "%", output.Number(r.ThreeYearROI) + "%",
				}
			}
			_, _ = fmt.Fprintln(out, output.Table(
				[]string{"Platform", "Annual savings", "Annual cost", "Net benefit", "1-year ROI", "3-year ROI"}, rows))
			if len(results) > 0 {
				_, _ = output.Good.Fprintf(out, "Recommended: %s\n", results[0].PlatformName)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with the departments")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPRDCommand() *cobra.Command {
	var (
		outPath string
		render  bool
	)
	cmd := &cobra.Command{
		Use:     "prd <feature idea>...",
		GroupID: Group.ID,
		Short:   "Generate a product requirements document",
		Long:    "Generates the templated PRD for a feature idea as markdown.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := prd.NewGenerator()
			if err != nil {
				return errors.Wrap(err, "new PRD generator")
			}
			doc, err := g.Generate(strings.Join(args, " "))
			if err != nil {
				return err
			}
			md := prd.Markdown(doc)

			if outPath != "" {
				if outPath == "-" {
					outPath = prd.Filename(doc)
				}
				if err = os.WriteFile(outPath, []byte(md), 0o600); err != nil {
					return errors.Wrap(err, "write PRD", slog.String("path", outPath))
				}
				_, _ = output.Good.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
				return nil
			}
			if render {
				return renderMarkdown(cmd.OutOrStdout(), md)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), md)
			return errors.Wrap(err, "write PRD")
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", `file to write the markdown to, "-" uses the generated file name`)
	cmd.Flags().BoolVar(&render, "render", false, "render the markdown for the terminal")
	return cmd
}

func renderMarkdown(w io.Writer, md string) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wordWrap))
	if err != nil {
		return errors.Wrap(err, "new markdown renderer")
	}
	rendered, err := r.Render(md)
	if err != nil {
		return errors.Wrap(err, "render markdown")
	}
	_, err = io.WriteString(w, rendered)
	return errors.Wrap(err, "write rendered markdown")
}
