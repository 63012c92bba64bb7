package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/pkg/naming"
	"github.com/dkoosis/tally/pkg/params"
)

func (a *app) nameCmd() *cobra.Command {
	var (
		storyTitle string
		storyToken string
		title      string
		paramSet   int
	)
	cmd := &cobra.Command{
		Use:   "name [METHOD]",
		Short: "Print the report name for a test",
		Long: `Name derives the report file name for a test from its story, its
method name (or title when there is no method), the qualifier and the report
format. With --param-set N the method is named as the Nth parameter set.`,
		Example: `  tally name --story-token AUserStory --qualifier firefox should_do_this
  a_user_story_should_do_this_firefox.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if storyTitle != "" && storyToken != "" {
				return usageError("--story and --story-token are mutually exclusive")
			}

			id := naming.Identity{Title: title}
			if len(args) == 1 {
				id.Method = args[0]
			}
			switch {
			case storyTitle != "":
				id.Story = &naming.Story{Title: storyTitle}
			case storyToken != "":
				s := naming.StoryFrom(storyToken)
				id.Story = &s
			}

			if cmd.Flags().Changed("param-set") {
				if id.Method == "" {
					return usageError("--param-set needs a method")
				}
				id.Method = params.TestName(id.Method, paramSet)
				if params.RestartDue(paramSet, a.cfg.RestartFrequency) {
					log.Info("fixture restart due before this parameter set",
						"set", paramSet, "frequency", a.cfg.RestartFrequency)
				}
			}

			name, err := naming.Name(id, a.cfg.Qualifier, a.cfg.ReportFormat)
			if errors.Is(err, naming.ErrInvalidIdentity) {
				return usageError("%w: give a method, --title or a story", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&storyTitle, "story", "", "Story title, e.g. \"A user story\"")
	f.StringVar(&storyToken, "story-token", "", "Story token to humanise, e.g. AUserStory")
	f.StringVar(&title, "title", "", "Display title, used when there is no method")
	f.IntVar(&paramSet, "param-set", 0, "Parameter set number of a parameterised test")
	return cmd
}
