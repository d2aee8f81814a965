// Package identity canonicalizes raw player identifiers and classifies
// them into identity fields.
package identity

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/highwayhustle/backend/internal/model"
)

// Kind is the pattern-inferred class of a normalized identifier
type Kind int

const (
	// KindWallet is a 0x-prefixed 40-hex-character address
	KindWallet Kind = iota
	// KindEmail contains an @ and is not a wallet address
	KindEmail
	// KindPrefixedHandle starts with the @ sigil
	KindPrefixedHandle
	// KindGenericHandle is any other non-empty string
	KindGenericHandle
)

var walletPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// Normalize canonicalizes a raw identifier: NFKC fold, lowercase,
// trim. Returns false when nothing usable remains.
func Normalize(raw string) (string, bool) {
	normalized := strings.TrimSpace(norm.NFKC.String(strings.ToLower(raw)))
	if normalized == "" {
		return "", false
	}
	return normalized, true
}

// Classify buckets a normalized identifier into exactly one kind.
// Wallet matching runs first so hex addresses containing no sigil
// never fall through to the handle kinds; email wins over the
// prefixed-handle kind only when the @ is not leading.
func Classify(normalized string) Kind {
	switch {
	case walletPattern.MatchString(normalized):
		return KindWallet
	case strings.HasPrefix(normalized, "@"):
		return KindPrefixedHandle
	case strings.Contains(normalized, "@"):
		return KindEmail
	default:
		return KindGenericHandle
	}
}

// Assign writes a bare normalized identifier into the identity field
// matching its inferred kind. Used only when creating a record from a
// bare string; explicit provider metadata always takes precedence.
func Assign(ident *model.IdentityData, normalized string) {
	switch Classify(normalized) {
	case KindWallet:
		ident.WalletAddress = normalized
	case KindEmail:
		ident.Email = normalized
	case KindPrefixedHandle:
		ident.TelegramHandle = normalized
	default:
		ident.DiscordHandle = normalized
	}
}

// DetermineType recomputes the identity classification after a
// metadata merge. Explicit type wins, then discord id, discord
// handle, telegram, wallet address, email.
func DetermineType(meta model.IdentityMetadata, walletCandidate string) model.IdentityType {
	switch {
	case meta.Type != "":
		return model.IdentityType(meta.Type)
	case meta.DiscordID != "":
		return model.IdentityTypeDiscordID
	case meta.DiscordHandle != "":
		return model.IdentityTypeDiscord
	case meta.TelegramHandle != "":
		return model.IdentityTypeTelegram
	case walletCandidate != "":
		return model.IdentityTypeWallet
	case meta.Email != "":
		return model.IdentityTypeEmail
	default:
		return model.IdentityTypeUnknown
	}
}
