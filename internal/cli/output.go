package cli

import (
	"cipherstudio/internal/domain/project"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTable = "table"

	tableMinWidth = 0
	tableTabWidth = 4
	tablePadding  = 2
	timeLayout    = time.RFC3339
)

// render writes v in the selected format; table renders through writeTable.
func (a *App) render(w io.Writer, v any, writeTable func(*tabwriter.Writer)) error {
	switch a.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		tw := tabwriter.NewWriter(w, tableMinWidth, tableTabWidth, tablePadding, ' ', 0)
		writeTable(tw)
		return tw.Flush()
	}
}

func projectsTable(projects []*project.Project) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tNAME\tFILES\tLAST MODIFIED")
		for _, p := range projects {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID, p.Name, len(p.Files), p.LastModified.Format(timeLayout))
		}
	}
}

func summariesTable(summaries []*project.Summary) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tNAME\tFILES\tLAST MODIFIED")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.ID, s.Name, len(s.Files), s.LastModified.Format(timeLayout))
		}
	}
}

func projectTable(p *project.Project) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
		fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
		if p.Description != "" {
			fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
		}
		fmt.Fprintf(tw, "Public:\t%t\n", p.IsPublic)
		fmt.Fprintf(tw, "Last modified:\t%s\n", p.LastModified.Format(timeLayout))
		fmt.Fprintln(tw)
		filesTable(p.Files)(tw)
	}
}

func filesTable(files []project.File) func(*tabwriter.Writer) {
	return func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "FILE ID\tNAME\tTYPE\tSIZE\tMODIFIED")
		for _, f := range files {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", f.ID, f.Name, f.Type, len(f.Content), f.ModifiedAt.Format(timeLayout))
		}
	}
}
