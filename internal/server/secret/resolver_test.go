package secret

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSSMClient struct {
	params      map[string]string
	nilValue    bool
	decryptSeen bool
}

func (f *fakeSSMClient) GetParameter(_ context.Context, input *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.decryptSeen = aws.ToBool(input.WithDecryption)
	val, ok := f.params[*input.Name]
	if !ok {
		return nil, fmt.Errorf("parameter not found: %s", *input.Name)
	}
	if f.nilValue {
		return &ssm.GetParameterOutput{Parameter: &ssmtypes.Parameter{Name: input.Name}}, nil
	}
	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:  input.Name,
			Value: aws.String(val),
		},
	}, nil
}

var rawKey = bytes.Repeat([]byte{0xab}, 32)

func TestSSMResolver_GetSecret(t *testing.T) {
	client := &fakeSSMClient{params: map[string]string{"/secretsvault/encryption-key": "v"}}

	val, err := NewSSMResolver(client).GetSecret(context.Background(), "/secretsvault/encryption-key")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
	assert.True(t, client.decryptSeen, "SecureString must be decrypted")
}

func TestSSMResolver_GetSecret_NotFound(t *testing.T) {
	_, err := NewSSMResolver(&fakeSSMClient{}).GetSecret(context.Background(), "/missing")
	assert.ErrorContains(t, err, `ssm get parameter "/missing"`)
}

func TestSSMResolver_GetSecret_NoValue(t *testing.T) {
	client := &fakeSSMClient{params: map[string]string{"/p": ""}, nilValue: true}
	_, err := NewSSMResolver(client).GetSecret(context.Background(), "/p")
	assert.ErrorContains(t, err, "has no value")
}

func TestStaticResolver(t *testing.T) {
	r := StaticResolver{"key": "v", "empty": ""}

	v, err := r.GetSecret(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = r.GetSecret(context.Background(), "empty")
	assert.Error(t, err)
	_, err = r.GetSecret(context.Background(), "absent")
	assert.Error(t, err)
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"std", base64.StdEncoding.EncodeToString(rawKey), false},
		{"std with newline", base64.StdEncoding.EncodeToString(rawKey) + "\n", false},
		{"url raw", base64.RawURLEncoding.EncodeToString(rawKey), false},
		{"url padded", base64.URLEncoding.EncodeToString(rawKey), false},
		{"too short", base64.StdEncoding.EncodeToString(rawKey[:16]), true},
		{"not base64", "%%%", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DecodeKey(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, rawKey, key)
		})
	}
}

func TestEncryptionKey_FromSSM(t *testing.T) {
	client := &fakeSSMClient{params: map[string]string{
		"/secretsvault/encryption-key": base64.StdEncoding.EncodeToString(rawKey),
	}}

	key, err := EncryptionKey(context.Background(), NewSSMResolver(client), "/secretsvault/encryption-key")
	require.NoError(t, err)
	assert.Equal(t, rawKey, key)
}

func TestEncryptionKey_ResolverError(t *testing.T) {
	_, err := EncryptionKey(context.Background(), StaticResolver{}, "x")
	assert.Error(t, err)
}
