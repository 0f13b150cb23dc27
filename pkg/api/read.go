package api

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func ReadDescriptor[T any](filePath string, descriptor *T) (*T, error) {
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", filePath)
	}

	if err := yaml.Unmarshal(fileBytes, descriptor); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s", filePath)
	}
	return descriptor, nil
}

func MarshalDescriptor[T any](descriptor *T) ([]byte, error) {
	return yaml.Marshal(descriptor)
}

func UnmarshalDescriptor[T any](bytes []byte) (*T, error) {
	var descriptor T
	if err := yaml.Unmarshal(bytes, &descriptor); err != nil {
		return nil, err
	}
	return &descriptor, nil
}
