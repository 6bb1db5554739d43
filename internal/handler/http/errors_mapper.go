package http

import (
	"errors"
	"net/http"

	"github.com/ingib/site-auth/internal/service"
	"github.com/ingib/site-auth/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrEmailTaken:           http.StatusConflict,
	service.ErrWrongCredentials:     http.StatusUnauthorized,
	service.ErrIdentityNotFound:     http.StatusNotFound,
	service.ErrSessionNotFound:      http.StatusUnauthorized,
	service.ErrInvalidToken:         http.StatusForbidden,
	service.ErrTokenExpired:         http.StatusForbidden,
	service.ErrConfirmationNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
}

var storeErrorClassifier = store.NewPostgresErrorClassifier()

func statusFromError(err error) int {
	// A transient driver failure (connection loss, deadlock,
	// serialization rollback) is worth a client retry; everything the
	// classifier does not recognise falls through to the sentinel map.
	if storeErrorClassifier.Classify(err) == store.Retryable {
		return http.StatusServiceUnavailable
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
