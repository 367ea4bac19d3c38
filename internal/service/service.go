// Package service holds the business rules between handlers and
// repositories. Services receive validated input, make at most one store
// call per operation and translate failures into HTTP errors.
package service
