package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [topic]",
	Short:     "Describe a practice table (all tables when no topic is given)",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: topicNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics := schema.Topics()
		if len(args) == 1 {
			t, err := schema.ParseTopic(args[0])
			if err != nil {
				return err
			}
			topics = []schema.Topic{t}
		}

		for i, t := range topics {
			text, err := schema.Render(t)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
		}
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List registered question templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		topicFilter, _ := cmd.Flags().GetString("topic")
		showSQL, _ := cmd.Flags().GetBool("sql")

		reg := challenge.DefaultRegistry()
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		header := []string{"Topic", "Function", "Question"}
		if showSQL {
			header = append(header, "Reference SQL")
		}
		table.SetHeader(header)
		table.SetAutoFormatHeaders(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetColWidth(60)

		n := 0
		for _, key := range reg.Keys() {
			if topicFilter != "" && string(key.Topic) != topicFilter {
				continue
			}
			tmpl, _ := reg.Lookup(key.Topic, key.Category)
			row := []string{key.Topic.String(), key.Category.Label(), tmpl.Question}
			if showSQL {
				row = append(row, tmpl.ReferenceSQL)
			}
			table.Append(row)
			n++
		}
		table.Render()

		fmt.Fprintf(cmd.OutOrStdout(), "\n%d templates\n", n)
		if missing := reg.Missing(schema.Topics(), challenge.Categories()); len(missing) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d topic/function pairs have no template\n", len(missing))
		}
		return nil
	},
}

func init() {
	templatesCmd.Flags().String("topic", "", "Only list templates for this topic")
	templatesCmd.Flags().Bool("sql", false, "Include the reference SQL (spoilers)")
}

func topicNames() []string {
	var names []string
	for _, t := range schema.Topics() {
		names = append(names, t.String())
	}
	return names
}
