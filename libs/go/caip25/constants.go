package caip25

const (
	// CaveatTypeAuthorizedScopes identifies the CAIP-25 authorization caveat
	// to the host permission framework
	CaveatTypeAuthorizedScopes = "authorizedScopes"

	// EndowmentCaip25 is the name of the granted endowment permission that
	// carries the authorization caveat
	EndowmentCaip25 = "endowment:caip25"
)
