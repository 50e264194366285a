package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdconvert/internal/client"
	"github.com/pdiddy/mdconvert/internal/convert"
	"github.com/pdiddy/mdconvert/internal/view"
	"github.com/pdiddy/mdconvert/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Upload files and save the converted Markdown",
	Long: `Convert uploads all given files to the conversion service in a single
request. Every successfully converted file is saved as <name>.md in the output
directory; files the service could not convert are reported inline. A failed
request saves nothing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out", ".", "directory for converted Markdown files")
	convertCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter with the source filename")
	convertCmd.Flags().Bool("no-save", false, "report results without writing files")
	convertCmd.Flags().Bool("skip-existing", false, "keep existing .md files instead of overwriting them")
	convertCmd.Flags().Bool("json", false, "print results as JSON")
	convertCmd.Flags().Bool("yaml", false, "print results as YAML")
	convertCmd.MarkFlagsMutuallyExclusive("json", "yaml")

	viper.BindPFlag("output_dir", convertCmd.Flags().Lookup("out"))
	viper.BindPFlag("frontmatter", convertCmd.Flags().Lookup("frontmatter"))

	rootCmd.AddCommand(convertCmd)
}

// convertOptions controls one convert run.
type convertOptions struct {
	Save   convert.Options
	Format string // "", "json" or "yaml"
}

// convertReport is the structured output of --json and --yaml.
type convertReport struct {
	Status  types.Status        `json:"status" yaml:"status"`
	Error   string              `json:"error,omitempty" yaml:"error,omitempty"`
	Summary convert.BatchResult `json:"summary" yaml:"summary"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	files, err := client.FilesFromPaths(args)
	if err != nil {
		return err
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	yamlOut, _ := cmd.Flags().GetBool("yaml")
	noSave, _ := cmd.Flags().GetBool("no-save")
	skipExisting, _ := cmd.Flags().GetBool("skip-existing")

	opts := convertOptions{Save: convert.Options{
		OutputConfig: cfg.Output,
		NoSave:       noSave,
		SkipExisting: skipExisting,
	}}
	switch {
	case jsonOut:
		opts.Format = "json"
	case yamlOut:
		opts.Format = "yaml"
	}

	v := view.New(client.New(cfg.HTTP))
	return convertFiles(cmd.Context(), v, files, opts, cmd.OutOrStdout())
}

// convertFiles submits files through v, saves every downloadable row, and
// reports each row to w. It returns an error on a request-level failure
// or when any file failed to convert or save.
func convertFiles(ctx context.Context, v *view.View, files []types.File, opts convertOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	progress := w
	if opts.Format != "" {
		progress = io.Discard
	}
	fmt.Fprintf(progress, "Converting %d file(s) to Markdown...\n", len(files))

	submitErr := v.Submit(ctx, files)
	st := v.State()
	report := convertReport{Status: st.Status, Error: st.Error}

	if submitErr == nil {
		report.Summary = convert.SaveBatch(view.RowsOf(st.Results), opts.Save, progress)
	}
	if report.Summary.Rows == nil {
		report.Summary.Rows = []convert.RowResult{}
	}

	if opts.Format != "" {
		if err := writeReport(w, opts.Format, report); err != nil {
			return err
		}
	}

	if submitErr != nil {
		return fmt.Errorf("conversion failed: %w", submitErr)
	}
	if report.Summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", report.Summary.Failed)
	}
	return nil
}

func writeReport(w io.Writer, format string, report convertReport) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
}
