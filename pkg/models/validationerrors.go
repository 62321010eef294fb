// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	ValidationErrorUnknownTeam = errors.New("unknown team type")
	ValidationErrorNotPlayable = errors.New("map needs at least two teams and a bridge region")
	ValidationErrorInvalidMap  = errors.New("invalid map configuration")
)

var validationErrorCodeMap = map[error]int{
	ValidationErrorUnknownTeam: 520101,
	ValidationErrorNotPlayable: 520102,
	ValidationErrorInvalidMap:  520103,
}

// ValidationErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	for registered, code := range validationErrorCodeMap {
		if errors.Is(err, registered) {
			return code
		}
	}
	return 20002
}
