// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package adminapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-bridge-match/pkg/maps"
	"github.com/AccelByte/extend-bridge-match/pkg/models"
	"github.com/AccelByte/extend-bridge-match/pkg/server"
)

var (
	errMatchNotFound = errors.New("match not found")
	errNotStartable  = errors.New("match is not waiting in its lobby")
)

type requestError struct {
	err error
}

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return requestError{err: err}
}

type errorResponse struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func statusOf(err error) int {
	var reqErr requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, maps.ErrMapNotFound), errors.Is(err, errMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, maps.ErrMapExists), errors.Is(err, errNotStartable):
		return http.StatusConflict
	case errors.Is(err, maps.ErrWorldMissing), errors.Is(err, maps.ErrLobbyIsWorld), errors.Is(err, maps.ErrDefaultWorld),
		errors.Is(err, models.ValidationErrorUnknownTeam), errors.Is(err, models.ValidationErrorNotPlayable),
		errors.Is(err, models.ValidationErrorInvalidMap):
		return http.StatusUnprocessableEntity
	case errors.Is(err, server.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("admin request failed")
	}

	writeJSON(w, status, errorResponse{
		ErrorCode:    models.ValidationErrorCode(err),
		ErrorMessage: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode admin response")
	}
}
