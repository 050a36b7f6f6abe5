package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/borgmon/jumpin/pkg/app"
	"github.com/borgmon/jumpin/pkg/assistant"
	"github.com/borgmon/jumpin/pkg/calendar"
	"github.com/borgmon/jumpin/pkg/draft"
	"github.com/borgmon/jumpin/pkg/logger"
	"github.com/borgmon/jumpin/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type draftFlags struct {
	audio   string
	ics     string
	speak   bool
	out     string
	timeout time.Duration
}

func init() {
	flags := new(draftFlags)

	var draftCommand = &cobra.Command{
		Use:   "draft [text...] [--audio file] [--ics file]",
		Short: "Draft a meeting from text, a voice recording or an invite and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraft(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), flags)
		},
	}

	draftCommand.Flags().StringVar(&flags.audio, "audio", "", "recording to transcribe (wav, mp3, ogg, flac, m4a)")
	draftCommand.Flags().StringVar(&flags.ics, "ics", "", "invite file to import")
	draftCommand.Flags().BoolVar(&flags.speak, "speak", false, "read the confirmation aloud")
	draftCommand.Flags().StringVarP(&flags.out, "out", "o", "", "commit the draft and write it as an .ics invite")
	draftCommand.Flags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "assistant request timeout")

	rootCmd.AddCommand(draftCommand)
}

func runDraft(ctx context.Context, out io.Writer, text string, flags *draftFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, flags.timeout)
	defer cancel()

	log := logger.New(rootFlags.logLevel)
	defer func() { _ = log.Sync() }()

	config := models.DefaultConfig()
	config.SpeakConfirmations = flags.speak

	opts := app.Options{Config: config, Logger: log, Voice: assistant.Unavailable{}}
	if text != "" || flags.audio != "" {
		a, err := newAssistant(ctx, config, log)
		if err != nil {
			return err
		}
		opts.Parser = a.Parser
		opts.Speaker = a.Speaker
		if flags.audio != "" {
			opts.Voice = assistant.FileCapture{Path: flags.audio, Transcriber: a.Transcriber}
		}
	}

	state := app.New(opts)
	defer state.Shutdown()
	composer := state.NewComposer()

	if flags.ics != "" {
		f, err := os.Open(flags.ics)
		if err != nil {
			return err
		}
		parsed, err := calendar.DecodeInvite(f, state.Location())
		f.Close()
		if err != nil {
			return err
		}
		composer.ApplyParsedResult(parsed)
	}

	switch {
	case flags.audio != "":
		if !composer.VoiceAvailable() {
			return fmt.Errorf("recording %q not found", flags.audio)
		}
		if err := composer.SubmitVoice(ctx); err != nil {
			return err
		}
	case text != "":
		if err := composer.SubmitText(ctx, text); err != nil {
			return err
		}
	case flags.ics == "":
		return fmt.Errorf("nothing to draft: pass text, --audio or --ics")
	}
	composer.Wait()

	printDraft(out, composer.Draft())

	if flags.out == "" {
		return nil
	}
	if !composer.CanCommit() {
		return fmt.Errorf("draft is missing a title, date or start time")
	}
	m, ok := state.Commit(composer)
	if !ok {
		return fmt.Errorf("draft does not describe a valid meeting")
	}
	log.Debug("meeting committed", zap.String("id", m.ID))
	return writeInvite(flags.out, out, m)
}

func printDraft(w io.Writer, d models.Draft) {
	rows := []struct {
		field draft.Field
		value string
	}{
		{draft.FieldTitle, d.Title},
		{draft.FieldDate, d.Date},
		{draft.FieldStartTime, d.StartTime},
		{draft.FieldPlatform, d.Platform},
		{draft.FieldLink, d.Link},
		{draft.FieldDescription, d.Description},
	}
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "%-12s %s\n", row.field+":", value)
	}
}

// writeInvite writes m as .ics to path, or to stdout when path is "-"
func writeInvite(path string, stdout io.Writer, m models.Meeting) error {
	data, err := calendar.EncodeInvite(m, time.Now())
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
