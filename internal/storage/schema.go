package storage

import (
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const usersSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "email"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "username": {"type": "string"},
      "email": {"type": "string"},
      "password": {"type": "string"},
      "createdAt": {"type": "string", "format": "date-time"}
    }
  }
}`

const tasksSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "userId"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "description": {"type": ["string", "null"]},
      "completed": {"type": "boolean"},
      "userId": {"type": "string", "minLength": 1},
      "createdAt": {"type": "string", "format": "date-time"},
      "updatedAt": {"type": ["string", "null"], "format": "date-time"},
      "priority": {"enum": ["low", "medium", "high"]},
      "dueDate": {"type": ["string", "null"], "format": "date-time"},
      "category": {"type": "string"},
      "progress": {"type": "integer", "minimum": 0, "maximum": 100}
    }
  }
}`

var collectionSchemas = map[string]*jsonschema.Schema{
	KeyUsers: mustCompileSchema("mem://schemas/users.json", usersSchema),
	KeyTasks: mustCompileSchema("mem://schemas/tasks.json", tasksSchema),
}

// mustCompileSchema asserts "format" so timestamps the decoder would
// reject fail validation too.
func mustCompileSchema(url, schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	if err := c.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Errorf("add schema %s: %w", url, err))
	}
	return c.MustCompile(url)
}

// schemaViolations flattens a validation error into "path: message" lines.
func schemaViolations(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	var out []string
	var collect func(e *jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, fmt.Sprintf("%s: %s", pointerToPath(e.InstanceLocation), e.Message))
			return
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(ve)
	return out
}

func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "$"
	}

	path := "$"
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		path += "." + part
	}
	return path
}
