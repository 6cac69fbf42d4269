package slackapi

import (
	"github.com/zostay/slackchat/pkg/constants"
)

// MaskToken masks a credential for logging
func MaskToken(s string) string {
	if len(s) <= constants.MinTokenLengthForMasking {
		return "***"
	}
	return s[:constants.TokenMaskPrefixLength] + "***" + s[len(s)-constants.TokenMaskSuffixLength:]
}
