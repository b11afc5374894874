package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/startup-pack-agent/internal/config"
	"github.com/BerylCAtieno/startup-pack-agent/internal/feedback"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
)

func newFeedbackCmd() *cobra.Command {
	var email, message string
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Send feedback to the configured webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			log, err := cliLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			relay := feedback.NewRelay(config.Load().FeedbackURL, nil, log)
			res, err := relay.Submit(ctx, models.FeedbackSubmission{Email: email, Feedback: message})
			if err != nil {
				return err
			}
			if err := res.Err(); err != nil {
				return fmt.Errorf("%w (webhook status %d)", err, res.StatusCode)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Feedback received successfully (webhook status %d)\n", res.StatusCode)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Contact email (required)")
	cmd.Flags().StringVar(&message, "message", "", "Feedback text (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
