package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tessellated-io/txpipe/log"
	"gopkg.in/yaml.v2"
)

// WriteYamlWithComments writes config as YAML, preceding each top level key with the `comment` tag of its field.
func WriteYamlWithComments(config interface{}, header string, filename string, logger *log.Logger) error {
	fileData, err := addCommentsToYaml(config, header)
	if err != nil {
		return err
	}

	return SafeWrite(filename, fileData, logger)
}

// LoadYaml decodes the file at filename into out. Unknown keys are an error.
func LoadYaml(filename string, out interface{}) error {
	data, err := ReadFile(filename)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}

func addCommentsToYaml(config interface{}, header string) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}

	// Handle both struct and pointer to struct
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot comment yaml for %s", v.Kind())
	}

	comments := make(map[string]string)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		// Tag may carry options, ex. `yaml:"name,omitempty"`
		yamlKey := strings.Split(field.Tag.Get("yaml"), ",")[0]
		comment := field.Tag.Get("comment")
		if yamlKey != "" && comment != "" {
			comments[yamlKey] = comment
		}
	}

	var result strings.Builder
	if header != "" {
		result.WriteString("# " + header + "\n")
	}

	for _, line := range strings.SplitAfter(string(data), "\n") {
		// Only top level keys start at column zero
		key, _, isKey := strings.Cut(line, ":")
		if comment, found := comments[key]; isKey && found && !strings.HasPrefix(line, " ") {
			result.WriteString("\n# " + comment + "\n")
		}
		result.WriteString(line)
	}

	return []byte(result.String()), nil
}
