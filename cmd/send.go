package cmd

import (
	"fmt"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/relay"
	"github.com/spf13/cobra"
)

var (
	sendName    string
	sendEmail   string
	sendMessage string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one contact message through the form relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := relay.NewClient(appConfig.RelayEndpoint, relay.WithTimeout(appConfig.RelayTimeout))
		form := contact.New(client)
		defer form.Close()

		out := cmd.OutOrStdout()
		form.Subscribe(func(s contact.State) {
			if s.Status != contact.StatusIdle {
				fmt.Fprintln(out, s.Status)
			}
		})

		for name, value := range map[string]string{
			contact.FieldName:    sendName,
			contact.FieldEmail:   sendEmail,
			contact.FieldMessage: sendMessage,
		} {
			if err := form.UpdateField(name, value); err != nil {
				return err
			}
		}
		if err := form.Submit(cmd.Context()); err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendName, "name", "", "sender name")
	sendCmd.Flags().StringVar(&sendEmail, "email", "", "sender email (required)")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "message body (required)")
	rootCmd.AddCommand(sendCmd)
}
