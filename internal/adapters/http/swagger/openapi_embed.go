package swagger

import _ "embed"

// OpenAPI is the dashboard API description served at DocumentPath.
//
//go:embed openapi.yaml
var OpenAPI []byte
