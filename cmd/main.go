package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Abraxas-365/mailer/pkg/config"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/Abraxas-365/mailer/pkg/logx"
	"github.com/Abraxas-365/mailer/pkg/mailx"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	verifyUser string

	sendUser    string
	sendTo      []string
	sendCc      []string
	sendBcc     []string
	sendSubject string
	sendText    string
	sendHTML    string
)

var rootCmd = &cobra.Command{
	Use:   "mailer",
	Short: "Email relay API with per-user SMTP settings",
	Long: `mailer relays email through SMTP on behalf of a small set of users.

Each user may store their own SMTP account; otherwise the process-wide
default account is used.

Example:
  mailer serve                          # Run the HTTP API
  mailer verify --user 42               # Check a user's SMTP settings
  mailer send --to a@x.test --subject Hi --text "hello"`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logx.SetLevel(logx.LevelDebug)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		container, err := NewContainer(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer container.Cleanup()

		return runServer(container)
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Resolve and verify the SMTP settings for a user",
	Long: `verify resolves the SMTP settings for --user (or the defaults when
omitted), connects to the server and reports the security mode that worked,
including whether the alternate mode had to be used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := cliContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Cleanup()

		report, err := container.MailService.Verify(cmd.Context(), kernel.UserID(verifyUser))
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a single email",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := cliContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Cleanup()

		receipt, err := container.MailService.SendOne(cmd.Context(), mailx.SendRequest{
			To:      mailx.AddressList(sendTo),
			Cc:      mailx.AddressList(sendCc),
			Bcc:     mailx.AddressList(sendBcc),
			Subject: sendSubject,
			Text:    sendText,
			HTML:    sendHTML,
			UserID:  kernel.UserID(sendUser),
		})
		if err != nil {
			return err
		}
		return printJSON(receipt)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")

	verifyCmd.Flags().StringVarP(&verifyUser, "user", "u", "", "user whose SMTP settings to verify")

	sendCmd.Flags().StringVarP(&sendUser, "user", "u", "", "user whose SMTP settings to send with")
	sendCmd.Flags().StringSliceVar(&sendTo, "to", nil, "recipient address (repeatable)")
	sendCmd.Flags().StringSliceVar(&sendCc, "cc", nil, "cc address (repeatable)")
	sendCmd.Flags().StringSliceVar(&sendBcc, "bcc", nil, "bcc address (repeatable)")
	sendCmd.Flags().StringVarP(&sendSubject, "subject", "s", "", "message subject")
	sendCmd.Flags().StringVar(&sendText, "text", "", "plain text body")
	sendCmd.Flags().StringVar(&sendHTML, "html", "", "HTML body")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cliContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	return NewContainer(ctx, cfg)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
