package preference

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// SecretsManagerAPI is the part of the Secrets Manager client SecretStore uses.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretStore reads preferences from a JSON object secret. Deployments
// manage the secret out of band, so writes are refused.
type SecretStore struct {
	client   SecretsManagerAPI
	secretID string
}

func NewSecretStore(ctx context.Context, secretID string, region string) (*SecretStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewSecretStoreWithClient(secretsmanager.NewFromConfig(cfg), secretID), nil
}

func NewSecretStoreWithClient(client SecretsManagerAPI, secretID string) *SecretStore {
	return &SecretStore{client: client, secretID: secretID}
}

func (s *SecretStore) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretID),
	})
	if err != nil {
		log.Error().Err(err).Str("secretId", s.secretID).Msg("Failed to get AWS secret")
		return "", false, err
	}
	if result.SecretString == nil {
		return "", false, errors.New("secret has no string value")
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &values); err != nil {
		return "", false, fmt.Errorf("secret %s is not a JSON object of strings: %w", s.secretID, err)
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *SecretStore) Set(context.Context, string, string) error {
	return ErrReadOnly
}

func (s *SecretStore) Delete(context.Context, string) error {
	return ErrReadOnly
}
