// Package common contains shared constants and sentinel errors used across
// Daybook components.
package common

const (
	// ClientIDHeaderName is the HTTP header used to carry the persistent
	// client installation id on outbound requests.
	ClientIDHeaderName = "X-Client-Id"

	// ProviderDisabledID is the reserved id of the "AI disabled" provider.
	// It always resolves; an unresolvable active provider id falls back to it.
	ProviderDisabledID = "disabled"

	// CustomProviderPrefix prefixes every user-defined provider id.
	// Ids without this prefix are reserved for built-in providers.
	CustomProviderPrefix = "custom-"

	// AiSummaryPending marks a cache entry whose AI summary has been
	// requested but not yet confirmed by the backend.
	AiSummaryPending = "__pending__"

	// SecretPlaceholder is the reserved value shown in editable fields in
	// place of a stored API key. Submitting it verbatim means "keep the
	// stored secret", never "store this literal string".
	SecretPlaceholder = "••••••••"

	// ISODateLayout is the wire and cache-key format for entry dates.
	ISODateLayout = "2006-01-02"
)
