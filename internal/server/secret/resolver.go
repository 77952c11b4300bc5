// Package secret resolves the vault's encryption key, either from a value
// given in the configuration or from AWS SSM Parameter Store.
package secret

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmitrijs2005/secretsvault/internal/cryptox"
)

// SSMClient is the part of *ssm.Client the resolver needs.
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Resolver returns a secret value by name.
type Resolver interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// SSMResolver reads SecureString parameters with decryption.
type SSMResolver struct {
	client SSMClient
}

func NewSSMResolver(client SSMClient) *SSMResolver {
	return &SSMResolver{client: client}
}

// NewSSMClient builds a client from the default AWS credential chain.
func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(cfg), nil
}

func (r *SSMResolver) GetSecret(ctx context.Context, name string) (string, error) {
	out, err := r.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("ssm get parameter %q: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("ssm parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}

// StaticResolver serves values known up front, e.g. from the config file.
type StaticResolver map[string]string

func (r StaticResolver) GetSecret(_ context.Context, name string) (string, error) {
	v, ok := r[name]
	if !ok || v == "" {
		return "", fmt.Errorf("secret %q is not set", name)
	}
	return v, nil
}

var ErrInvalidKey = errors.New("invalid encryption key")

// DecodeKey parses a base64 (standard or URL alphabet) AES-256 key.
func DecodeKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		key, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: not base64", ErrInvalidKey)
		}
	}
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(key), cryptox.KeySize)
	}
	return key, nil
}

// EncryptionKey fetches name from r and decodes it with DecodeKey.
func EncryptionKey(ctx context.Context, r Resolver, name string) ([]byte, error) {
	encoded, err := r.GetSecret(ctx, name)
	if err != nil {
		return nil, err
	}
	return DecodeKey(encoded)
}
