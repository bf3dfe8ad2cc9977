package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/locvowork/hr_records/internal/domain"
)

// Postgres error codes that indicate bad input rather than a server fault.
const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqNotNullViolation    = "23502"
	pqInvalidText         = "22P02"
	pqInvalidDatetime     = "22007"
	pqDatetimeOverflow    = "22008"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// translateError maps driver errors onto domain errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: referenced employee does not exist", domain.ErrValidation)
		case pqCheckViolation, pqNotNullViolation, pqInvalidText, pqInvalidDatetime, pqDatetimeOverflow:
			return fmt.Errorf("%w: %s", domain.ErrValidation, pqErr.Message)
		}
	}
	return err
}
