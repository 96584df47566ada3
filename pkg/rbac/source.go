package rbac

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// StaticSource serves role definitions from memory.
type StaticSource map[string]Role

func (s StaticSource) Load(_ context.Context) (map[string]Role, error) {
	return s, nil
}

// yamlSource parses role definitions from a YAML document of the form:
//
//	TEACHER:
//	  permissions: [courses.read, attendance.write]
//	INSTITUTE_ADMIN:
//	  inherits: [TEACHER]
//	  permissions: [batches.manage]
type yamlSource struct {
	raw []byte
}

// NewYAMLSource reads role definitions from raw YAML bytes.
func NewYAMLSource(raw []byte) Source {
	return &yamlSource{raw: raw}
}

// NewYAMLFileSource reads role definitions from a YAML file at load time.
func NewYAMLFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *yamlSource) Load(_ context.Context) (map[string]Role, error) {
	var roles map[string]Role
	if err := yaml.Unmarshal(s.raw, &roles); err != nil {
		return nil, errors.Join(ErrInvalidSource, err)
	}
	if roles == nil {
		roles = make(map[string]Role)
	}
	return roles, nil
}

type fileSource struct {
	path string
}

func (s *fileSource) Load(ctx context.Context) (map[string]Role, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrInvalidSource, err)
	}
	return (&yamlSource{raw: raw}).Load(ctx)
}
