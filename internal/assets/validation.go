package assets

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// maxAssetNameLength bounds style and template names.
const maxAssetNameLength = 64

// assetNamePattern allows plain file stems only, so a name can never carry
// a path or an extension.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName checks that a style or template name is a bare file stem.
// Returns ErrInvalidAssetName otherwise.
func ValidateAssetName(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, maxAssetNameLength),
		validation.Match(assetNamePattern).Error("must contain only letters, digits, '-' or '_'"),
	)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidAssetName, name, err)
	}
	return nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAssetName)
}
