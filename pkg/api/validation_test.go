package api

import (
	"testing"

	. "github.com/onsi/gomega"
)

func validDesiredState() DesiredState {
	return DesiredState{
		BucketName:        "ingestion-bucket",
		FolderPrefix:      "raw",
		EnvironmentTag:    "dev",
		Encryption:        EncryptionAES256,
		VersioningEnabled: false,
		BlockPublicAccess: true,
	}
}

func TestValidateDesiredState(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name    string
		mutate  func(s *DesiredState)
		wantErr string
	}{
		{
			name:   "valid state",
			mutate: func(s *DesiredState) {},
		},
		{
			name:    "empty bucket name",
			mutate:  func(s *DesiredState) { s.BucketName = "" },
			wantErr: "invalid bucketName: must not be empty",
		},
		{
			name:    "bucket name too short",
			mutate:  func(s *DesiredState) { s.BucketName = "ab" },
			wantErr: "between 3 and 63 characters",
		},
		{
			name:    "uppercase bucket name",
			mutate:  func(s *DesiredState) { s.BucketName = "Ingestion-Bucket" },
			wantErr: "lowercase letters",
		},
		{
			name:    "bucket name with underscore",
			mutate:  func(s *DesiredState) { s.BucketName = "data_bucket" },
			wantErr: "lowercase letters",
		},
		{
			name:    "bucket name with leading hyphen",
			mutate:  func(s *DesiredState) { s.BucketName = "-ingestion" },
			wantErr: "start and end with a letter or digit",
		},
		{
			name:    "bucket name with adjacent dots",
			mutate:  func(s *DesiredState) { s.BucketName = "ingestion..bucket" },
			wantErr: "adjacent dots",
		},
		{
			name:    "bucket name formatted as IP",
			mutate:  func(s *DesiredState) { s.BucketName = "192.168.1.1" },
			wantErr: "IP address",
		},
		{
			name:    "folder prefix with leading slash",
			mutate:  func(s *DesiredState) { s.FolderPrefix = "/raw" },
			wantErr: "must not start with a slash",
		},
		{
			name:    "empty folder prefix",
			mutate:  func(s *DesiredState) { s.FolderPrefix = "" },
			wantErr: "invalid folderPrefix: must not be empty",
		},
		{
			name:    "empty environment tag",
			mutate:  func(s *DesiredState) { s.EnvironmentTag = "" },
			wantErr: "invalid environmentTag",
		},
		{
			name:    "unknown encryption algorithm",
			mutate:  func(s *DesiredState) { s.Encryption = "KMS" },
			wantErr: "must be one of NONE, AES256",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RegisterTestingT(t)

			state := validDesiredState()
			tt.mutate(&state)
			err := state.Validate()

			if tt.wantErr != "" {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring(tt.wantErr))
				Expect(IsValidationError(err)).To(BeTrue())
			} else {
				Expect(err).To(BeNil())
			}
		})
	}
}

func TestFolderObjectKey(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "raw", want: "raw/"},
		{prefix: "raw/", want: "raw/"},
		{prefix: "raw/daily", want: "raw/daily/"},
	}
	for _, tt := range tests {
		state := validDesiredState()
		state.FolderPrefix = tt.prefix
		Expect(state.FolderObjectKey()).To(Equal(tt.want))
	}
}
