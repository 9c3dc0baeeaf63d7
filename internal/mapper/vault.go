package mapper

import (
	"portfolioScope/internal/model"
	"portfolioScope/internal/ocean"
)

// StablecoinTokenID is the DUSD token id. DUSD has no oracle feed of its
// own, so vault legs holding it get a pinned 1:1 USD price.
const StablecoinTokenID = "15"

const stablecoinPriceKey = "DUSD-USD"

// VaultSnapshot converts a vault into its detail record plus one leg per
// collateral and loan amount. Leg token stubs always carry
// isDAT=true/isLPS=false/isLoanToken=false; the real flags would need an
// extra token lookup and only the foreign key matters here.
func VaultSnapshot(vault ocean.Vault) (model.VaultDetail, []model.VaultLeg) {
	detail := model.VaultDetail{
		VaultID:         vault.VaultID,
		CollateralRatio: vault.InformativeRatio,
		CollateralValue: vault.CollateralValue,
		LoanValue:       vault.LoanValue,
		InterestValue:   vault.InterestValue,
	}

	legs := make([]model.VaultLeg, 0, len(vault.CollateralAmounts)+len(vault.LoanAmounts))
	for _, token := range vault.CollateralAmounts {
		legs = append(legs, vaultLeg(model.TokenTypeCollateral, token))
	}
	for _, token := range vault.LoanAmounts {
		legs = append(legs, vaultLeg(model.TokenTypeLoan, token))
	}
	return detail, legs
}

func vaultLeg(tokenType string, token ocean.VaultToken) model.VaultLeg {
	amount := model.VaultAmount{
		TokenType: tokenType,
		TokenID:   token.ID,
		Amount:    token.Amount,
	}

	switch {
	case token.ID == StablecoinTokenID:
		amount.PriceKey = stablecoinPriceKey
		amount.ActivePrice = strPtr("1")
		amount.NextPrice = strPtr("1")
	case token.ActivePrice != nil:
		amount.PriceKey = token.ActivePrice.Key
		if token.ActivePrice.Active != nil {
			amount.ActivePrice = strPtr(token.ActivePrice.Active.Amount)
		}
		if token.ActivePrice.Next != nil {
			amount.NextPrice = strPtr(token.ActivePrice.Next.Amount)
		}
	}

	return model.VaultLeg{
		Token: model.TokenDetail{
			TokenID:     token.ID,
			Symbol:      token.Symbol,
			Name:        token.Name,
			IsDAT:       true,
			IsLPS:       false,
			IsLoanToken: false,
		},
		Amount: amount,
	}
}
