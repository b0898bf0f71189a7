package main

import (
	"github.com/spf13/cobra"

	"github.com/mrwolf/burnout-server/internal/app"
)

// contactsCmd prints the hand-off directory
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List HR and counsellor contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			w := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(w, a.Tracker.Contacts())
			}
			for _, c := range a.Tracker.Contacts() {
				printf(w, "%-32s %s\n", c.Label(), c.Email)
			}
			return nil
		})
	},
}

// composeCmd drafts a hand-off message
var composeCmd = &cobra.Command{
	Use:   "compose <contact>",
	Short: "Draft a hand-off email to a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app.App) error {
			msg, draft, err := a.Tracker.Compose(actor, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(w, msg)
			}
			printf(w, "To: %s\nSubject: %s\n\n%s\n\n%s\n", msg.To, msg.Subject, msg.Body, msg.MailTo)
			if draft != "" {
				printf(w, "Draft saved to %s\n", draft)
			}
			return nil
		})
	},
}
