package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"galeri_app_echo/internal/i18n"
	"galeri_app_echo/internal/navigation"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "routes",
		Short:         "Inspect the Galeri route table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var lang string
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "en", "Locale used for labels")

	rootCmd.AddCommand(listCmd(&lang), resolveCmd(&lang))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func load(lang string) (*navigation.Builder, navigation.Translator, error) {
	table, err := navigation.NewAppTable()
	if err != nil {
		return nil, nil, err
	}
	catalog, err := i18n.Load("en")
	if err != nil {
		return nil, nil, err
	}
	return navigation.NewBuilder(table), catalog.Translator(catalog.Negotiate(lang), i18n.NamespaceNavigation), nil
}

func listCmd(lang *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every registered route with its parent and label",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, translate, err := load(*lang)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), builder.Table(), translate)
		},
	}
}

func resolveCmd(lang *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Print the breadcrumb trail for a runtime path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, translate, err := load(*lang)
			if err != nil {
				return err
			}
			trail := builder.FromRuntimePath(args[0], translate)
			if trail == nil {
				return fmt.Errorf("no route matches %s", args[0])
			}
			return writeTrail(cmd.OutOrStdout(), trail, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the trail as JSON")

	return cmd
}

func writeTable(w io.Writer, table *navigation.Table, translate navigation.Translator) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tLABEL\tPARENT\tICON")
	for _, node := range table.Nodes() {
		parent := "-"
		if p := node.Parent(); p != nil {
			parent = p.Path
		}
		icon := node.Icon
		if icon == "" {
			icon = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", node.Path, navigation.ResolveLabel(node, translate), parent, icon)
	}
	return tw.Flush()
}

func writeTrail(w io.Writer, trail navigation.Trail, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(trail)
	}

	for i, seg := range trail {
		href := seg.Href
		if href == "" {
			href = "(current)"
		}
		fmt.Fprintf(w, "%d. %s  %s\n", i+1, seg.Label, href)
	}
	return nil
}
