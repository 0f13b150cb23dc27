package api

import (
	"net"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// S3 bucket naming rules: 3-63 characters, lowercase letters, digits, hyphens
// and dots, must start and end with a letter or digit.
var bucketNameRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`)

var validEncryptionAlgorithms = []EncryptionAlgorithm{EncryptionNone, EncryptionAES256}

// Validate checks the desired state against the provider's naming rules.
// It is called before any remote state is fetched.
func (s DesiredState) Validate() error {
	if err := ValidateBucketName(s.BucketName); err != nil {
		return err
	}
	if s.FolderPrefix == "" {
		return &ValidationError{Field: "folderPrefix", Reason: "must not be empty"}
	}
	if strings.HasPrefix(s.FolderPrefix, "/") {
		return &ValidationError{Field: "folderPrefix", Reason: "must not start with a slash"}
	}
	if s.EnvironmentTag == "" {
		return &ValidationError{Field: "environmentTag", Reason: "must not be empty"}
	}
	if !lo.Contains(validEncryptionAlgorithms, s.Encryption) {
		return &ValidationError{Field: "encryption", Reason: "must be one of NONE, AES256"}
	}
	return nil
}

func ValidateBucketName(name string) error {
	if name == "" {
		return &ValidationError{Field: "bucketName", Reason: "must not be empty"}
	}
	if len(name) < 3 || len(name) > 63 {
		return &ValidationError{Field: "bucketName", Reason: "must be between 3 and 63 characters long"}
	}
	if !bucketNameRegexp.MatchString(name) {
		return &ValidationError{Field: "bucketName", Reason: "must consist of lowercase letters, digits, dots and hyphens, and start and end with a letter or digit"}
	}
	if strings.Contains(name, "..") || strings.Contains(name, ".-") || strings.Contains(name, "-.") {
		return &ValidationError{Field: "bucketName", Reason: "must not contain adjacent dots or dot-hyphen sequences"}
	}
	if net.ParseIP(name) != nil {
		return &ValidationError{Field: "bucketName", Reason: "must not be formatted as an IP address"}
	}
	return nil
}
