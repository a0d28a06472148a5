package config

import (
	"errors"
	"testing"

	"github.com/0xalexb/hjarta-extras/properties"
)

type simpleConfig struct {
	Name    string
	bindErr error
	prefix  string
}

func (c *simpleConfig) Bind(store *properties.Store, prefix string) error {
	c.prefix = prefix
	c.Name = store.String(properties.Join(prefix, "name"), "")

	return c.bindErr
}

type configWithDefaults struct {
	simpleConfig

	changed bool
}

func (c *configWithDefaults) SetDefaults() bool {
	if c.Name == "" {
		c.Name = "default"
	}

	return c.changed
}

type configWithBoth struct {
	simpleConfig

	changed bool
	err     error
	order   []string
}

func (c *configWithBoth) SetDefaults() bool {
	c.order = append(c.order, "defaults")

	return c.changed
}

func (c *configWithBoth) Validate() error {
	c.order = append(c.order, "validate")

	return c.err
}

func TestProvider_Success(t *testing.T) {
	t.Parallel()

	target := &simpleConfig{}
	store := properties.New(map[string]string{"app.name": "test"})

	provider := Provider(target, "app")

	result, err := provider(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != target {
		t.Error("expected result to be the same as target")
	}

	if result.Name != "test" {
		t.Errorf("expected Name to be 'test', got %q", result.Name)
	}

	if result.prefix != "app" {
		t.Errorf("expected prefix 'app', got %q", result.prefix)
	}
}

func TestProvider_NilStore(t *testing.T) {
	t.Parallel()

	target := &configWithDefaults{}

	result, err := Provider(target, "app")(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Name != "default" {
		t.Errorf("expected default Name, got %q", result.Name)
	}
}

func TestProvider_DefaultsRunBeforeValidation(t *testing.T) {
	t.Parallel()

	target := &configWithBoth{changed: true}

	_, err := Provider(target, "")(properties.Empty())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(target.order) != 2 || target.order[0] != "defaults" || target.order[1] != "validate" {
		t.Errorf("expected defaults then validate, got %v", target.order)
	}
}

func TestProvider_Errors(t *testing.T) {
	t.Parallel()

	bindErr := errors.New("bind failed")
	validationErr := errors.New("validation failed")

	tests := []struct {
		name      string
		bindErr   error
		targetErr error
		wantErr   error
	}{
		{
			name:      "bind error",
			bindErr:   bindErr,
			targetErr: nil,
			wantErr:   bindErr,
		},
		{
			name:      "validation error",
			bindErr:   nil,
			targetErr: validationErr,
			wantErr:   validationErr,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			target := &configWithBoth{err: testInfo.targetErr}
			target.bindErr = testInfo.bindErr

			result, err := Provider(target, "app")(properties.Empty())

			if result != nil {
				t.Error("expected result to be nil")
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if !errors.Is(err, testInfo.wantErr) {
				t.Errorf("expected error to wrap %v, got %v", testInfo.wantErr, err)
			}
		})
	}
}

func TestProvider_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		changed bool
	}{
		{
			name:    "defaults changed",
			changed: true,
		},
		{
			name:    "defaults not changed",
			changed: false,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			target := &configWithDefaults{changed: testInfo.changed}

			result, err := Provider(target, "app")(properties.Empty())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result != target {
				t.Error("expected result to be the same as target")
			}
		})
	}
}
