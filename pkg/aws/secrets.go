package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretStore reads secrets stored as flat JSON objects. Each secret is
// fetched once per process.
type SecretStore struct {
	api secretsAPI

	mu    sync.Mutex
	cache map[string]map[string]string
}

func NewSecretStore(cfg sdkaws.Config) *SecretStore {
	return newSecretStore(secretsmanager.NewFromConfig(cfg))
}

func newSecretStore(api secretsAPI) *SecretStore {
	return &SecretStore{api: api, cache: make(map[string]map[string]string)}
}

// Fields returns the key/value pairs of the named secret.
func (s *SecretStore) Fields(ctx context.Context, name string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fields, ok := s.cache[name]; ok {
		return fields, nil
	}

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", name)
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &fields); err != nil {
		return nil, fmt.Errorf("secret %s is not a JSON object: %w", name, err)
	}
	s.cache[name] = fields
	return fields, nil
}
