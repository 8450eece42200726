package gateway

// Policy parameterizes the shared engine per payment-method type. Card and
// boleto gateways run the same authorization and reconciliation code with
// different toggles.
type Policy struct {
	// Require3DSecure forwards browser info so the processor can enroll the
	// shopper in a 3-D Secure step-up.
	Require3DSecure bool

	// RequireOneClickPayment demands a fresh card verification value
	// alongside a stored profile. When set, a blank CVC fails the
	// authorization before any network call.
	RequireOneClickPayment bool

	// ProfilesSupported marks that stored payment profiles are maintained,
	// so the processor must echo last-digits data back on profile creation.
	ProfilesSupported bool

	// SourceRequired marks methods that need a stored card record at all;
	// boleto does not.
	SourceRequired bool
}
