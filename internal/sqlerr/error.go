package sqlerr

import "fmt"

// Code is the category of a database error.
type Code string

const (
	Other                Code = "other"
	NotNullViolation     Code = "not_null_violation"
	ForeignKeyViolation  Code = "foreign_key_violation"
	UniqueViolation      Code = "unique_violation"
	CheckViolation       Code = "check_violation"
	ExclusionViolation   Code = "exclusion_violation"
	StringDataTruncation Code = "string_data_right_truncation"
	InvalidTextRep       Code = "invalid_text_representation"
	UndefinedTable       Code = "undefined_table"
	UndefinedColumn      Code = "undefined_column"
	SerializationFailure Code = "serialization_failure"
	DeadlockDetected     Code = "deadlock_detected"
	TooManyConnections   Code = "too_many_connections"
	QueryCanceled        Code = "query_canceled"
)

// MapCode maps a Postgres SQLSTATE onto a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22001":
		return StringDataTruncation
	case "22P02":
		return InvalidTextRep
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	case "53300":
		return TooManyConnections
	case "57014":
		return QueryCanceled
	default:
		return Other
	}
}

// Severity is the Postgres severity of an error.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the driver's severity string; unknown values become
// SeverityError.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a classified database error. The driver error stays reachable
// through errors.Unwrap.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	if e.ConstraintName != "" {
		return fmt.Sprintf("%s %s: %s (constraint %s)", e.Severity, e.DatabaseCode, e.Message, e.ConstraintName)
	}
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
