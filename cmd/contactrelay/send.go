package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/contact"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/mail"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Relay one submission from the command line",
		Long: `Push a single submission through the same sanitization, validation and
delivery path the HTTP endpoint uses.

Example:
  contactrelay send --name "Jane" --email jane@example.com --message "Hello"
  contactrelay send --name "Jane" --message "Hello" --dry-run   # print the body only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			message, _ := cmd.Flags().GetString("message")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

			var sender mail.Sender
			if dryRun {
				sender = mail.NewLogSender(logger)
			} else if sender, err = mail.New(cfg.MailOptions(), logger); err != nil {
				return err
			}

			service, err := contact.NewService(cfg.ContactSettings(), sender, logger)
			if err != nil {
				return err
			}

			in := contact.Input{Submitted: true, Name: name, Email: email, Message: message}
			if dryRun {
				sub, dropped, err := service.Prepare(in)
				if err != nil {
					return err
				}
				if dropped {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning: invalid email dropped")
				}
				msg := service.Message(sub)
				fmt.Fprintf(cmd.OutOrStdout(), "To: %s\nSubject: %s\n\n%s\n", msg.To, msg.Subject, msg.Body)
				return nil
			}

			return deliver(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), service, in)
		},
	}

	cmd.Flags().String("name", "", "Sender name")
	cmd.Flags().String("email", "", "Sender email address")
	cmd.Flags().String("message", "", "Message text")
	cmd.Flags().Bool("dry-run", false, "Print the composed message instead of sending it")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func deliver(ctx context.Context, out, progress io.Writer, service *contact.Service, in contact.Input) error {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(progress))
	s.Suffix = fmt.Sprintf(" Sending via %s...", service.Transport())
	s.Start()
	outcome, err := service.Submit(ctx, in)
	s.Stop()
	if err != nil {
		return err
	}
	if !outcome.Delivered {
		return outcome.DeliveryErr
	}

	fmt.Fprintf(out, "Delivered via %s (id %s)\n", outcome.Receipt.Transport, outcome.Receipt.ID)
	return nil
}
