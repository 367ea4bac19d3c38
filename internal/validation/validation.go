// Package validation binds request input onto payload structs and turns
// validator failures into 400 error envelopes.
package validation
