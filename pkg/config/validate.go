package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg against its struct-tag rules plus the
// cross-section invariants validator's struct tags can't express on
// their own (a backend selector in one struct gating a required field
// in another).
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}
	if cfg.Blobstore.Backend == "s3" && cfg.Blobstore.S3.Bucket == "" {
		return fmt.Errorf("blobstore.s3.bucket is required when blobstore.backend is \"s3\"")
	}
	return nil
}
