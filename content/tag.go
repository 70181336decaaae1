// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"encoding/json"
	"strings"
)

const customPrefix = "custom:"

// Tag - a data category label
//
// unknown labels are normalised to "custom:<label>"
type Tag string

// well known tags
const (
	TagEmailAddress       Tag = "email_address"
	TagPhoneNumber        Tag = "phone_number"
	TagPhysicalAddress    Tag = "physical_address"
	TagContactInfo        Tag = "contact_info"
	TagHealth             Tag = "health"
	TagFitness            Tag = "fitness"
	TagPaymentInfo        Tag = "payment_info"
	TagCreditInfo         Tag = "credit_info"
	TagFinancialInfo      Tag = "financial_info"
	TagPreciseLocation    Tag = "precise_location"
	TagCoarseLocation     Tag = "coarse_location"
	TagSensitiveInfo      Tag = "sensitive_info"
	TagContacts           Tag = "contacts"
	TagMessages           Tag = "messages"
	TagPhotoVideo         Tag = "photo_video"
	TagAudio              Tag = "audio"
	TagGameplayContent    Tag = "gameplay_content"
	TagCustomerSupport    Tag = "customer_support"
	TagUserContent        Tag = "user_content"
	TagBrowsingHistory    Tag = "browsing_history"
	TagSearchHistory      Tag = "search_history"
	TagUserID             Tag = "user_id"
	TagDeviceID           Tag = "device_id"
	TagPurchaseHistory    Tag = "purchase_history"
	TagProductInteraction Tag = "product_interaction"
	TagAdvertisingData    Tag = "advertising_data"
	TagUsageData          Tag = "usage_data"
	TagCrashData          Tag = "crash_data"
	TagPerformanceData    Tag = "performance_data"
	TagDiagnosticData     Tag = "diagnostic_data"
)

var knownTags = map[Tag]struct{}{
	TagEmailAddress:       {},
	TagPhoneNumber:        {},
	TagPhysicalAddress:    {},
	TagContactInfo:        {},
	TagHealth:             {},
	TagFitness:            {},
	TagPaymentInfo:        {},
	TagCreditInfo:         {},
	TagFinancialInfo:      {},
	TagPreciseLocation:    {},
	TagCoarseLocation:     {},
	TagSensitiveInfo:      {},
	TagContacts:           {},
	TagMessages:           {},
	TagPhotoVideo:         {},
	TagAudio:              {},
	TagGameplayContent:    {},
	TagCustomerSupport:    {},
	TagUserContent:        {},
	TagBrowsingHistory:    {},
	TagSearchHistory:      {},
	TagUserID:             {},
	TagDeviceID:           {},
	TagPurchaseHistory:    {},
	TagProductInteraction: {},
	TagAdvertisingData:    {},
	TagUsageData:          {},
	TagCrashData:          {},
	TagPerformanceData:    {},
	TagDiagnosticData:     {},
}

// NewTag - normalise a label
func NewTag(s string) Tag {
	s = strings.TrimSpace(s)
	t := Tag(s)
	if _, ok := knownTags[t]; ok {
		return t
	}
	if strings.HasPrefix(s, customPrefix) {
		return t
	}
	return Tag(customPrefix + s)
}

// IsCustom - true if not a well known tag
func (t Tag) IsCustom() bool {
	_, ok := knownTags[t]
	return !ok
}

// String - the label
func (t Tag) String() string {
	return string(t)
}

// UnmarshalJSON - decode and normalise
func (t *Tag) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if nil != err {
		return err
	}
	*t = NewTag(s)
	return nil
}
