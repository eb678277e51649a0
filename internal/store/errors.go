// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"themargin/internal/apperr"
	"themargin/internal/metrics"
)

// PostgreSQL error codes and constraint names the stores react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidTextRep      = "22P02"

	constraintPostSlug  = "posts_slug_key"
	constraintUserEmail = "users_email_key"
)

// translate converts a driver error into an apperr kind. Errors that are
// already classified pass through untouched. Anything unrecognized becomes
// StoreUnavailable with the cause attached for logging.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintPostSlug:
				metrics.SlugConflictsTotal.Inc()
				return apperr.SlugConflict()
			case constraintUserEmail:
				return apperr.Validation("User already exists")
			}
		case codeForeignKeyViolation:
			return apperr.Validation("Author does not exist.")
		case codeCheckViolation, codeNotNullViolation:
			return apperr.Validation("Invalid field value.")
		case codeInvalidTextRep:
			return apperr.Validation("Malformed identifier.")
		}
	}

	slog.Error("store operation failed", "op", op, "error", err)
	return apperr.Unavailable(fmt.Errorf("%s: %w", op, err))
}

// observe is deferred by store methods: it translates the returned error in
// place and records the operation's duration and outcome.
func observe(op string, start time.Time, errp *error) {
	*errp = translate(op, *errp)
	kind := ""
	if *errp != nil {
		kind = apperr.KindOf(*errp).String()
	}
	metrics.ObserveQuery(op, start, kind)
}
