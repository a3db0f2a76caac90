// SPDX-License-Identifier: Apache-2.0

package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrMalformedDocument   = errors.New("document body is not valid JSON")
	ErrTokenCreationFailed = errors.New("token creation failed")
)
