package main

import (
	"context"
	"fmt"

	"github.com/bmwcca/bmwcca-sso/cmd"
	"github.com/bmwcca/bmwcca-sso/internal/config"
	"github.com/bmwcca/bmwcca-sso/internal/directory"
	"github.com/bmwcca/bmwcca-sso/internal/interfaces"
	"github.com/bmwcca/bmwcca-sso/internal/log"
	"github.com/bmwcca/bmwcca-sso/internal/metrics"
	"github.com/bmwcca/bmwcca-sso/internal/models"
	"github.com/bmwcca/bmwcca-sso/internal/secrets"
	"github.com/bmwcca/bmwcca-sso/internal/transport"
	"github.com/sirupsen/logrus"
)

func main() {
	cmd.SetLambdaHandler(HandleRequest)
	cmd.SetClientFactory(newDirectoryClient)
	cmd.Execute()
}

// HandleRequest is the AWS Lambda handler.
func HandleRequest(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error) {
	cfg, err := config.Load("")
	if err != nil {
		return models.NewErrorResponse(err), nil
	}
	if err := config.Validate(cfg); err != nil {
		return models.NewErrorResponse(err), nil
	}
	log.Setup(cfg.Log)

	operation := event.EffectiveOperation()
	switch operation {
	case models.OperationActive, models.OperationDetails:
		if event.MemberNumber == "" {
			return models.NewBadRequestResponse(fmt.Errorf("member_number is required")), nil
		}
	case models.OperationAuthenticate:
		if event.Username == "" {
			return models.NewBadRequestResponse(fmt.Errorf("username is required")), nil
		}
	default:
		return models.NewBadRequestResponse(fmt.Errorf("unsupported operation %q", operation)), nil
	}

	client, err := newDirectoryClient(ctx, cfg)
	if err != nil {
		return models.NewErrorResponse(err), nil
	}

	switch operation {
	case models.OperationDetails:
		details, err := client.FetchMemberDetails(ctx, event.MemberNumber, event.IncludeInactive)
		if err != nil {
			return models.NewErrorResponse(err), nil
		}
		return models.NewDetailsResponse(details), nil
	case models.OperationAuthenticate:
		user, err := client.Authenticate(ctx, event.Username, event.Password)
		if err != nil {
			return models.NewErrorResponse(err), nil
		}
		return models.NewAuthenticateResponse(user), nil
	}

	chapterID := event.ChapterID
	if chapterID == "" {
		chapterID = cfg.Membership.ChapterID
	}
	active := client.IsMemberNumberActive(ctx, event.MemberNumber, chapterID)
	emitCheck(ctx, cfg, chapterID, active)
	return models.NewActiveResponse(event.MemberNumber, chapterID, active), nil
}

var newDirectoryClient = func(ctx context.Context, cfg *config.Config) (interfaces.DirectoryClient, error) {
	password, err := secrets.ResolveIntegratorPassword(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	client, err := directory.NewClient(directory.Credentials{
		BaseURL:  cfg.Integrator.BaseURL,
		Username: cfg.Integrator.Username,
		Password: password,
	}, transport.NewFormPoster(cfg.Integrator.Timeout))
	if err != nil {
		return nil, err
	}
	return client, nil
}

var newMetricsEmitter = func(ctx context.Context, cfg config.MetricsConfig) (interfaces.MetricsEmitter, error) {
	emitter, err := metrics.NewEmitterFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return emitter, nil
}

// emitCheck publishes the check outcome; metrics failures never change the response.
func emitCheck(ctx context.Context, cfg *config.Config, chapterID string, active bool) {
	if !cfg.Metrics.Enabled {
		return
	}
	emitter, err := newMetricsEmitter(ctx, cfg.Metrics)
	if err != nil {
		logrus.WithError(err).Warn("⚠ metrics emitter init failed")
		return
	}
	if err := emitter.EmitMembershipCheck(ctx, chapterID, active); err != nil {
		logrus.WithError(err).Warn("⚠ failed to publish membership check metrics")
	}
}
