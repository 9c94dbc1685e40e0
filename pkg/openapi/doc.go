// Package openapi derives field configurations from the request bodies of
// OpenAPI 3 operations. Property schemas map onto field.Config and the
// x-formfield extension carries settings OpenAPI has no keyword for.
package openapi
