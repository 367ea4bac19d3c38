package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/villains-api/internal/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of err, or Other when err is not a classified
// database error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	var raw *pgconn.PgError
	if errors.As(err, &raw) {
		return MapCode(raw.Code)
	}
	return Other
}

// ConvertPgError classifies a raw Postgres error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Convert replaces a *pgconn.PgError anywhere in err's chain with its
// classified *Error. Other errors are returned unchanged.
func Convert(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}
	return err
}

// generateErrorCode builds a machine-readable <DOMAIN>_<ACTION> code,
// e.g. villains + UniqueViolation => VILLAIN_ALREADY_EXISTS.
func generateErrorCode(tableName string, errType Code) string {
	domain := strings.ToUpper(singular(tableName))

	action := "ERROR"
	switch errType {
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage phrases a constraint violation for API clients.
func formatUserFriendlyMessage(sqlErr *Error) string {
	switch sqlErr.Code {
	case UniqueViolation:
		field := "identifier"
		if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
			field = humanizeText(column)
		}
		return fmt.Sprintf("A %s with this %s already exists", humanizeText(singular(sqlErr.TableName)), field)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	default:
		return "An error occurred while processing your request"
	}
}

// singular drops a trailing "s" from a table name; empty becomes "record".
func singular(tableName string) string {
	if tableName == "" {
		return "record"
	}
	if len(tableName) > 1 {
		return strings.TrimSuffix(tableName, "s")
	}
	return tableName
}

// humanizeText turns snake_case into Title Case: "first_name" -> "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// uniqueKeySuffix matches Postgres' default <table>_<column>_key naming.
var uniqueKeySuffix = regexp.MustCompile(`_([^_]+)_key$`)

// extractColumnForUniqueViolation infers the column from a constraint name,
// e.g. villains_slug_key => slug.
func extractColumnForUniqueViolation(constraintName string) string {
	if matches := uniqueKeySuffix.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts a database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - unique and not-null violations: 400 with a friendly message and code
//   - anything else: 500
//
// Services call it for constraint violations a client can correct; the
// global error handler uses it as the fallback for untranslated errors.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	sqlErr, ok := classify(err)
	if !ok {
		return errs.NewInternalServerError()
	}

	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case UniqueViolation:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	default:
		return errs.NewInternalServerError()
	}
}

// classify finds a classified or raw Postgres error in err's chain.
func classify(err error) (*Error, bool) {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr), true
	}
	return nil, false
}
