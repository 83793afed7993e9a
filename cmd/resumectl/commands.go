package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/resume/layout"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Render and validate résumé snapshots",
		SilenceUsage: true,
	}
	root.AddCommand(newSampleCmd(), newValidateCmd(), newRenderCmd(), newDocxCmd(), newTextCmd())
	return root
}

func newSampleCmd() *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := model.Default()
			if empty {
				data = model.Empty()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Print an empty snapshot instead")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a snapshot against the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readSnapshot(cmd, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%d experiences, %d education, %d skills)\n",
				orName(data.Contact.FullName), len(data.Experiences), len(data.Education), len(data.Skills))
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "-", "Snapshot JSON file, - for stdin")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var in, out, template string
	var print bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a snapshot to an HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readSnapshot(cmd, in)
			if err != nil {
				return err
			}
			opts := layout.PageOptions{Print: print}
			if template != "" {
				t, err := model.ParseTemplate(template)
				if err != nil {
					return err
				}
				opts.Template = t
			}
			page, err := layout.Page(data, opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out, page)
		},
	}
	cmd.Flags().StringVar(&in, "in", "-", "Snapshot JSON file, - for stdin")
	cmd.Flags().StringVar(&out, "out", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&template, "template", "", "Layout override (standard, classic, modern, minimal)")
	cmd.Flags().BoolVar(&print, "print", false, "Render the print page")
	return cmd
}

func newDocxCmd() *cobra.Command {
	var in, out, policy string
	cmd := &cobra.Command{
		Use:   "docx",
		Short: "Serialize a snapshot to a Word document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readSnapshot(cmd, in)
			if err != nil {
				return err
			}
			raw, err := render.RenderDocx(data, render.ParsePolicy(policy))
			if err != nil {
				return err
			}
			if out == "" {
				out = render.FileName(data.Contact.FullName)
			}
			if err := writeOutput(cmd, out, raw); err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "OK: wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "-", "Snapshot JSON file, - for stdin")
	cmd.Flags().StringVar(&out, "out", "", "Output file; defaults to <Name>_Resume.docx")
	cmd.Flags().StringVar(&policy, "policy", "aligned", "Serializer policy: aligned or verbatim")
	return cmd
}

func newTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text [file.docx]",
		Short: "Print the paragraphs of a generated document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			paragraphs, err := render.ExtractText(raw)
			if err != nil {
				return err
			}
			for _, p := range paragraphs {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

func readSnapshot(cmd *cobra.Command, path string) (model.ResumeData, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" || path == "" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("read snapshot: %w", err)
	}
	return model.Decode(raw)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func orName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}
