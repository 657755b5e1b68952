package schema

// tasksSchema is the JSON Schema for a task collection file. It mirrors the
// field-level contracts of the models package; keep the two in sync.
const tasksSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "tasks"],
  "properties": {
    "version": {
      "oneOf": [
        {"type": "string", "minLength": 1},
        {
          "type": "object",
          "required": ["schema"],
          "properties": {
            "schema": {"type": "string", "minLength": 1},
            "generator": {"type": "string"},
            "source_prd": {"type": "string"}
          },
          "additionalProperties": false
        }
      ]
    },
    "tasks": {
      "type": "array",
      "minItems": 1,
      "maxItems": 200,
      "items": {"$ref": "#/$defs/task"}
    }
  },
  "additionalProperties": false,
  "$defs": {
    "task": {
      "type": "object",
      "required": ["id", "title", "steps"],
      "properties": {
        "id": {"type": "string", "pattern": "^[A-Z]-[0-9]{3}$", "maxLength": 32},
        "title": {"type": "string", "minLength": 3, "maxLength": 140},
        "description": {"type": "string"},
        "details": {"type": "string"},
        "testStrategy": {"type": "string"},
        "tags": {
          "type": "array",
          "maxItems": 8,
          "items": {"type": "string", "minLength": 1}
        },
        "deps": {
          "type": "array",
          "maxItems": 16,
          "items": {"type": "string", "minLength": 1}
        },
        "steps": {
          "type": "array",
          "minItems": 1,
          "maxItems": 20,
          "items": {"type": "string", "minLength": 1}
        },
        "metadata": {"$ref": "#/$defs/metadata"}
      },
      "additionalProperties": false
    },
    "metadata": {
      "type": "object",
      "required": ["priority", "risk", "effort_hours", "role", "status", "created", "updated"],
      "properties": {
        "priority": {"enum": ["P0", "P1", "P2", "P3"]},
        "risk": {"enum": ["low", "medium", "high"]},
        "effort_hours": {"type": "number", "minimum": 2, "maximum": 24},
        "role": {"enum": ["frontend", "backend", "infra", "qa", "pm"]},
        "status": {"enum": ["planned", "in-progress", "completed"]},
        "created": {"type": "string"},
        "updated": {"type": "string"}
      },
      "additionalProperties": false
    }
  }
}`
