package main

import (
	"fmt"

	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/calendar"
	"github.com/borgmon/jumpin/pkg/draft"
	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/spf13/cobra"
)

type inviteFlags struct {
	values map[draft.Field]*string
	owner  string
	out    string
	share  bool
}

func init() {
	flags := &inviteFlags{values: make(map[draft.Field]*string)}

	var inviteCommand = &cobra.Command{
		Use:   "invite --title T --date YYYY-MM-DD --time HH:mm [--platform P] [--link URL]",
		Short: "Print a meeting invite (.ics or share text)",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := models.DefaultConfig()
			if flags.owner != "" {
				config.OwnerName = flags.owner
			}
			state := app.New(app.Options{Config: config, Logger: logger.New(rootFlags.logLevel)})
			defer state.Shutdown()

			composer := state.NewComposer()
			for field, value := range flags.values {
				if *value == "" {
					continue
				}
				if err := composer.ApplyManualEdit(field, *value); err != nil {
					return err
				}
			}
			if !composer.CanCommit() {
				return fmt.Errorf("--title, --date and --time are required")
			}

			m, ok := state.Commit(composer)
			if !ok {
				return fmt.Errorf("invalid meeting: check the date (YYYY-MM-DD), time (HH:mm) and link")
			}

			if flags.share {
				fmt.Fprintln(cmd.OutOrStdout(), calendar.ShareText(m, state.Location()))
				return nil
			}
			return writeInvite(flags.out, cmd.OutOrStdout(), m)
		},
	}

	for _, f := range []struct {
		field draft.Field
		name  string
		usage string
	}{
		{draft.FieldTitle, "title", "meeting title"},
		{draft.FieldDate, "date", "date, YYYY-MM-DD"},
		{draft.FieldStartTime, "time", "start time, HH:mm"},
		{draft.FieldPlatform, "platform", "Google Meet, Zoom, Microsoft Teams, Discord, Slack, Webex or Other"},
		{draft.FieldLink, "link", "meeting link (defaults per platform)"},
		{draft.FieldDescription, "description", "agenda or notes"},
	} {
		flags.values[f.field] = inviteCommand.Flags().String(f.name, "", f.usage)
	}
	inviteCommand.Flags().StringVar(&flags.owner, "owner", "", "participant name for yourself")
	inviteCommand.Flags().StringVarP(&flags.out, "out", "o", "-", "output file, - for stdout")
	inviteCommand.Flags().BoolVar(&flags.share, "share", false, "print the plain-text invitation instead")

	rootCmd.AddCommand(inviteCommand)
}
