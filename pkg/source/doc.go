// Package source locates and reads form documents (descriptors and OpenAPI
// specifications) from local files, an fs.FS or HTTP endpoints.
package source
