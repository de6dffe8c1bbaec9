// Package policy loads and validates selection policies from YAML files.
package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/WyattAu/omnicpp/internal/types"
)

// fileSchema is the YAML shape of a policy file. Every field is optional;
// absent fields keep their built-in defaults.
type fileSchema struct {
	ToolchainPriority []string          `yaml:"toolchain_priority" validate:"omitempty,unique,dive,oneof=clang gcc msvc"`
	BackendPriority   []string          `yaml:"backend_priority" validate:"omitempty,unique,dive,oneof=conan vcpkg cpm native-os"`
	MinimumVersions   map[string]string `yaml:"minimum_versions" validate:"omitempty,dive,version_number"`
	NativeTuning      string            `yaml:"native_tuning" validate:"omitempty,oneof=auto always never"`
}

// Loader reads YAML policy files and validates them against the schema.
type Loader struct {
	validate *validator.Validate
}

// New creates a Loader with the schema validators registered.
func New() *Loader {
	v := validator.New()

	_ = v.RegisterValidation("version_number", func(fl validator.FieldLevel) bool {
		_, ok := types.ParseVersion(fl.Field().String())
		return ok
	})

	return &Loader{validate: v}
}

// Load reads the policy file at path and merges it over the built-in
// defaults. A missing file is not an error: the defaults apply unchanged.
func (l *Loader) Load(path string) (types.SelectionPolicy, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.DefaultPolicy(), nil
	}
	if err != nil {
		return types.SelectionPolicy{}, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return l.Parse(data, path)
}

// Parse decodes one policy document and merges it over the defaults. Unknown
// keys are rejected so a typo never silently falls back to a default.
func (l *Loader) Parse(data []byte, source string) (types.SelectionPolicy, error) {
	var file fileSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return types.SelectionPolicy{}, fmt.Errorf("failed to parse YAML in %q: %w", source, err)
	}

	if err := l.validate.Struct(file); err != nil {
		return types.SelectionPolicy{}, fmt.Errorf("%s: %w", source, formatValidationErrors(err))
	}

	return merge(file), nil
}

// merge overlays the file's fields onto the default policy. Priority lists
// replace the defaults wholesale; minimum versions override per key, so a
// file can raise one floor without restating the others.
func merge(file fileSchema) types.SelectionPolicy {
	policy := types.DefaultPolicy()

	if len(file.ToolchainPriority) > 0 {
		policy.ToolchainPriority = make([]types.Family, len(file.ToolchainPriority))
		for i, name := range file.ToolchainPriority {
			policy.ToolchainPriority[i] = types.Family(name)
		}
	}

	if len(file.BackendPriority) > 0 {
		policy.BackendPriority = make([]types.BackendKind, len(file.BackendPriority))
		for i, name := range file.BackendPriority {
			policy.BackendPriority[i] = types.BackendKind(name)
		}
	}

	for name, raw := range file.MinimumVersions {
		v, _ := types.ParseVersion(raw)
		policy.MinimumVersions[name] = v
	}

	if file.NativeTuning != "" {
		policy.NativeTuning = types.NativeTuning(file.NativeTuning)
	}

	return policy
}

// formatValidationErrors converts validator errors into user-friendly messages.
func formatValidationErrors(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var messages []string
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}

	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a human-readable message.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "version_number":
		return fmt.Sprintf("%s must be a version number like 1, 1.2 or 1.2.3", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
