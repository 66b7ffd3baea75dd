/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/webcam-light/pkg/logger"
)

// EnvConfigLoader loads configuration from environment variables.
// It supports nested struct fields using underscore separation.
// For example: NATS_URL maps to config.NATS.URL
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string // Optional prefix for all env vars
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader by reading from environment variables. Fields
// whose variable is unset keep their current value.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	// A complete JSON document in CONFIG_JSON replaces per-field loading.
	if jsonConfig := os.Getenv(e.prefix + "CONFIG_JSON"); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
			return fmt.Errorf("failed to unmarshal CONFIG_JSON: %w", err)
		}

		e.debug().Msg("Loaded configuration from CONFIG_JSON environment variable")

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	return e.loadStruct(v, e.prefix)
}

func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	var errs []error

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		fieldName := jsonFieldName(&fieldType)
		if fieldName == "" {
			continue
		}

		envName := e.buildEnvName(prefix, fieldName)

		if nested, ok := nestedStruct(field, envName+"_"); ok {
			if err := e.loadStruct(nested, envName+"_"); err != nil {
				errs = append(errs, err)
			}

			continue
		}

		envValue := os.Getenv(envName)
		if envValue == "" {
			continue
		}

		if err := setFieldByKind(field, envName, envValue); err != nil {
			errs = append(errs, err)
			continue
		}

		e.debug().Str("env", envName).Msg("Loaded value from environment variable")
	}

	return errors.Join(errs...)
}

func (e *EnvConfigLoader) debug() *zerolog.Event {
	if e.logger == nil {
		return nil
	}

	return e.logger.Debug()
}

// buildEnvName constructs the environment variable name from prefix and field name.
func (*EnvConfigLoader) buildEnvName(prefix, fieldName string) string {
	envName := strings.ReplaceAll(strings.ToUpper(fieldName), ".", "_")

	return prefix + envName
}

func jsonFieldName(field *reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}

	return strings.Split(tag, ",")[0]
}

// nestedStruct returns the struct value behind field. Nil pointers are only
// allocated when at least one variable under prefix is present.
func nestedStruct(field reflect.Value, prefix string) (reflect.Value, bool) {
	switch {
	case field.Kind() == reflect.Struct:
		return field, true
	case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
		if field.IsNil() {
			if !hasEnvPrefix(prefix) {
				return reflect.Value{}, false
			}

			field.Set(reflect.New(field.Type().Elem()))
		}

		return field.Elem(), true
	default:
		return reflect.Value{}, false
	}
}

func hasEnvPrefix(prefix string) bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, prefix) {
			return true
		}
	}

	return false
}

// setFieldByKind sets field value based on its reflect.Kind.
func setFieldByKind(field reflect.Value, envName, envValue string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)

	case reflect.Bool:
		b, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", envName, err)
		}

		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntField(field, envName, envValue)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(envValue, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", envName, err)
		}

		field.SetFloat(f)

	case reflect.Slice:
		return setSliceField(field, envName, envValue)

	default:
		// Maps and anything else are accepted as JSON.
		if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
			return fmt.Errorf("unsupported value for %s (%s): %w", envName, field.Kind(), err)
		}
	}

	return nil
}

// setIntField sets an integer field value, with special handling for duration types.
func setIntField(field reflect.Value, envName, envValue string) error {
	if strings.HasSuffix(field.Type().Name(), "Duration") {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", envName, err)
		}

		field.SetInt(int64(d))

		return nil
	}

	i, err := strconv.ParseInt(envValue, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value for %s: %w", envName, err)
	}

	field.SetInt(i)

	return nil
}

// setSliceField splits comma-separated values for string slices and falls back to JSON.
func setSliceField(field reflect.Value, envName, envValue string) error {
	if field.Type().Elem().Kind() != reflect.String {
		if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
			return fmt.Errorf("invalid slice value for %s: %w", envName, err)
		}

		return nil
	}

	values := strings.Split(envValue, ",")
	slice := reflect.MakeSlice(field.Type(), len(values), len(values))

	for i, v := range values {
		slice.Index(i).SetString(strings.TrimSpace(v))
	}

	field.Set(slice)

	return nil
}
