// Package lib groups infrastructure that sits outside the request layers:
// background jobs on asynq (lib/job) and transactional email through
// Resend (lib/email).
package lib
