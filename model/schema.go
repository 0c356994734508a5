package model

// PetSchema is the JSON schema every Pet body returned by the API must satisfy.
const PetSchema = `{
  "type": "object",
  "required": ["name", "photoUrls"],
  "properties": {
    "id": {"type": "integer"},
    "category": {
      "type": "object",
      "properties": {
        "id": {"type": "integer"},
        "name": {"type": "string"}
      }
    },
    "name": {"type": "string"},
    "photoUrls": {"type": "array", "items": {"type": "string"}},
    "tags": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string"}
        }
      }
    },
    "status": {"type": "string", "enum": ["available", "pending", "sold"]}
  }
}`
