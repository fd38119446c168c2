package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "Account without name should fail",
			account: Account{
				ID:      uuid.New(),
				Balance: decimal.NewFromInt(100),
			},
			wantErr: true,
			errMsg:  "account name cannot be empty",
		},
		{
			name: "Untagged account should pass",
			account: Account{
				ID:      uuid.New(),
				Name:    "Wallet",
				Balance: decimal.NewFromInt(50),
			},
			wantErr: false,
		},
		{
			name: "Known account type should pass",
			account: Account{
				ID:          uuid.New(),
				Name:        "Main Savings",
				Balance:     decimal.NewFromInt(5000),
				AccountType: AccountTypeSavings,
			},
			wantErr: false,
		},
		{
			name: "Unknown account type should fail",
			account: Account{
				ID:          uuid.New(),
				Name:        "Crypto",
				Balance:     decimal.NewFromInt(1),
				AccountType: "WALLET",
			},
			wantErr: true,
			errMsg:  "account type must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
