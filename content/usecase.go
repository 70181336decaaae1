// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"encoding/json"
	"strings"
)

// UseCase - a permitted use of licensed data
//
// unknown values are normalised to "custom:<value>"
type UseCase string

// well known use cases
const (
	UseCaseAttribution     UseCase = "attribution"
	UseCaseRetargeting     UseCase = "retargeting"
	UseCasePersonalization UseCase = "personalization"
	UseCaseAITraining      UseCase = "ai_training"
	UseCaseDistribution    UseCase = "distribution"
	UseCaseAnalytics       UseCase = "analytics"
	UseCaseSupport         UseCase = "support"
)

var knownUseCases = map[UseCase]struct{}{
	UseCaseAttribution:     {},
	UseCaseRetargeting:     {},
	UseCasePersonalization: {},
	UseCaseAITraining:      {},
	UseCaseDistribution:    {},
	UseCaseAnalytics:       {},
	UseCaseSupport:         {},
}

// NewUseCase - normalise a use case
func NewUseCase(s string) UseCase {
	s = strings.TrimSpace(s)
	u := UseCase(s)
	if _, ok := knownUseCases[u]; ok {
		return u
	}
	if strings.HasPrefix(s, customPrefix) {
		return u
	}
	return UseCase(customPrefix + s)
}

// IsCustom - true if not a well known use case
func (u UseCase) IsCustom() bool {
	_, ok := knownUseCases[u]
	return !ok
}

// String - the value
func (u UseCase) String() string {
	return string(u)
}

// UnmarshalJSON - decode and normalise
func (u *UseCase) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if nil != err {
		return err
	}
	*u = NewUseCase(s)
	return nil
}

// Use - use cases permitted at a set of destinations
//
// nil destinations means unrestricted
type Use struct {
	UseCases     []UseCase `json:"useCases"`
	Destinations []string  `json:"destinations"`
}
