package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"
)

// SecretFetcher is the slice of the Secrets Manager client LoadEnv needs.
type SecretFetcher interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// LoadEnv populates the process environment before LoadConfig runs. A JSON
// secret from AWS Secrets Manager is applied first (when
// AWS_SECRETS_MANAGER_SECRET_ID is set), then the .env file named by
// ENV_FILE_PATH or defaultEnvPath. Variables already present win unless
// AWS_SECRETS_MANAGER_OVERWRITE=true.
func LoadEnv(ctx context.Context, defaultEnvPath string) {
	if secretID := os.Getenv("AWS_SECRETS_MANAGER_SECRET_ID"); secretID != "" {
		if err := loadAWSSecrets(ctx, secretID); err != nil {
			slog.Warn("skipping aws secrets manager", "secret_id", secretID, "error", err)
		}
	}
	loadDotEnv(defaultEnvPath)
}

func loadDotEnv(defaultEnvPath string) {
	envFile := getEnvOrDefault("ENV_FILE_PATH", defaultEnvPath)

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to load env file", "path", envFile, "error", err)
		}
		return
	}
	slog.Debug("env file loaded", "path", envFile)
}

func loadAWSSecrets(ctx context.Context, secretID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var opts []func(*awsconfig.LoadOptions) error
	if region := os.Getenv("AWS_SECRETS_MANAGER_REGION"); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load aws config: %w", err)
	}

	overwrite := strings.EqualFold(os.Getenv("AWS_SECRETS_MANAGER_OVERWRITE"), "true")
	applied, err := applySecret(ctx, secretsmanager.NewFromConfig(cfg), secretID, overwrite)
	if err != nil {
		return err
	}

	slog.Info("env loaded from aws secrets manager", "secret_id", secretID, "applied", applied)
	return nil
}

// applySecret copies the key/value pairs of a JSON secret into the
// environment and reports how many were set.
func applySecret(ctx context.Context, client SecretFetcher, secretID string, overwrite bool) (int, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to fetch secret %s: %w", secretID, err)
	}

	var payload []byte
	switch {
	case out.SecretString != nil:
		payload = []byte(*out.SecretString)
	case len(out.SecretBinary) > 0:
		payload = out.SecretBinary
	default:
		return 0, fmt.Errorf("secret %s has no payload", secretID)
	}

	var kv map[string]any
	if err := json.Unmarshal(payload, &kv); err != nil {
		return 0, fmt.Errorf("secret %s is not a JSON object: %w", secretID, err)
	}

	applied := 0
	for key, val := range kv {
		if !overwrite && os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return applied, fmt.Errorf("failed to set %s: %w", key, err)
		}
		applied++
	}
	return applied, nil
}
