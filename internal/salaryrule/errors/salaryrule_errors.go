package salaryruleerrors

import (
	"net/http"

	"github.com/sohada-a2it/A2itHRMServer/internal/shared/apperror"
)

var (
	ErrRuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary rule not found",
		http.StatusNotFound,
	)
	ErrInvalidRuleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary rule id",
		http.StatusBadRequest,
	)
	ErrDuplicateRuleName = apperror.New(
		apperror.CodeConflict,
		"a salary rule with the same name already exists",
		http.StatusConflict,
	)
)
