package model

// Vault leg token types as stored in vault_amounts.token_type.
const (
	TokenTypeCollateral = "collateral"
	TokenTypeLoan       = "loan"
)

// VaultDetail is one vault snapshot. The store assigns a surrogate row id on
// insert, which links the VaultAmount children of the same poll cycle.
type VaultDetail struct {
	VaultID         string
	CollateralRatio string
	CollateralValue string
	LoanValue       string
	InterestValue   string
}

// VaultAmount is one collateral or loan leg of a vault snapshot. VaultRef is
// the surrogate id returned by the VaultDetail insert; the mapper leaves it
// zero and the writer fills it in.
type VaultAmount struct {
	VaultRef    int64
	TokenType   string
	TokenID     string
	Amount      string
	PriceKey    string
	ActivePrice *string
	NextPrice   *string
}

// VaultLeg pairs a leg's token stub with its amount row. The stub carries
// fixed flags rather than the token's real ones; it only exists to satisfy
// the token foreign key.
type VaultLeg struct {
	Token  TokenDetail
	Amount VaultAmount
}
