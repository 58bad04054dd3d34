package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bmwcca/bmwcca-sso/internal/config"
	"github.com/bmwcca/bmwcca-sso/internal/interfaces"
	"github.com/bmwcca/bmwcca-sso/internal/log"
	"github.com/bmwcca/bmwcca-sso/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile            string
	flagIntegratorURL  string
	flagIntegratorUser string
	flagIntegratorPass string
	flagLogLevel       string
	flagLogFormat      string

	flagUsername        string
	flagPassword        string
	flagMemberNumber    string
	flagIncludeInactive bool
	flagChapter         string

	lambdaHandler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)
	newClient     func(ctx context.Context, cfg *config.Config) (interfaces.DirectoryClient, error)

	output io.Writer = os.Stdout
)

// SetLambdaHandler registers the Lambda handler used in Lambda mode.
func SetLambdaHandler(handler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)) {
	lambdaHandler = handler
}

// SetClientFactory registers the constructor used by every subcommand.
func SetClientFactory(factory func(ctx context.Context, cfg *config.Config) (interfaces.DirectoryClient, error)) {
	newClient = factory
}

var rootCmd = &cobra.Command{
	Use:           "bmwcca-sso",
	Short:         "Query the BMWCCA membership directory",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var authenticateCmd = &cobra.Command{
	Use:   "authenticate",
	Short: "Check member credentials against the directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagUsername == "" {
			return fmt.Errorf("--username is required")
		}
		client, _, err := setup(cmd)
		if err != nil {
			return err
		}

		user, err := client.Authenticate(cmd.Context(), flagUsername, flagPassword)
		if err != nil {
			return err
		}
		if user == nil {
			logrus.WithField("username", flagUsername).Warn("⚠ authentication rejected")
			return printJSON(models.NewAuthenticateResponse(nil))
		}
		logrus.WithField("member_number", user.MemberNumber).Info("✅ authenticated")
		return printJSON(models.NewAuthenticateResponse(user))
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Fetch memberships and committee positions for a member number",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagMemberNumber == "" {
			return fmt.Errorf("--member-number is required")
		}
		client, _, err := setup(cmd)
		if err != nil {
			return err
		}

		details, err := client.FetchMemberDetails(cmd.Context(), flagMemberNumber, flagIncludeInactive)
		if err != nil {
			return err
		}
		if !details.Found() {
			logrus.WithField("member_number", flagMemberNumber).Warn("⚠ member not found")
		}
		return printJSON(models.NewDetailsResponse(details))
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Report whether a member number holds an active chapter membership",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagMemberNumber == "" {
			return fmt.Errorf("--member-number is required")
		}
		client, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		chapterID := cfg.Membership.ChapterID
		if cmd.Flags().Changed("chapter") {
			chapterID = flagChapter
		}
		active := client.IsMemberNumberActive(cmd.Context(), flagMemberNumber, chapterID)
		logrus.WithFields(logrus.Fields{
			"member_number": flagMemberNumber,
			"chapter_id":    chapterID,
			"active":        active,
		}).Info("membership checked")
		return printJSON(models.NewActiveResponse(flagMemberNumber, chapterID, active))
	},
}

// Execute runs the CLI or Lambda handler depending on environment.
func Execute() {
	if isLambda() {
		if lambdaHandler == nil {
			logrus.Fatal("lambda handler is not configured")
		}
		lambda.Start(lambdaHandler)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagIntegratorURL, "integrator-url", "", "Directory base URL")
	rootCmd.PersistentFlags().StringVar(&flagIntegratorUser, "integrator-username", "", "Integrator username")
	rootCmd.PersistentFlags().StringVar(&flagIntegratorPass, "integrator-password", "", "Integrator password")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text, json or pretty")

	authenticateCmd.Flags().StringVar(&flagUsername, "username", "", "Member login")
	authenticateCmd.Flags().StringVar(&flagPassword, "password", "", "Member password")

	detailsCmd.Flags().StringVar(&flagMemberNumber, "member-number", "", "Member number")
	detailsCmd.Flags().BoolVar(&flagIncludeInactive, "include-inactive", false, "Include inactive memberships and committee positions")

	activeCmd.Flags().StringVar(&flagMemberNumber, "member-number", "", "Member number")
	activeCmd.Flags().StringVar(&flagChapter, "chapter", "", "Chapter group ID (defaults to membership.chapter_id)")

	rootCmd.AddCommand(authenticateCmd, detailsCmd, activeCmd)
}

func setup(cmd *cobra.Command) (interfaces.DirectoryClient, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	overrideConfigFromFlags(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	log.Setup(cfg.Log)

	if newClient == nil {
		return nil, nil, fmt.Errorf("directory client is not configured")
	}
	client, err := newClient(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func isLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func overrideConfigFromFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("integrator-url") {
		cfg.Integrator.BaseURL = flagIntegratorURL
	}
	if cmd.Flags().Changed("integrator-username") {
		cfg.Integrator.Username = flagIntegratorUser
	}
	if cmd.Flags().Changed("integrator-password") {
		cfg.Integrator.Password = flagIntegratorPass
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
}
