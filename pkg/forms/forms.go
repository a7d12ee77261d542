// Package forms holds the built-in form definitions served when no definitions
// directory is configured.
package forms

import (
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/grouping"
)

const (
	// BankAccountUSD is the ID of the US payout bank account form.
	BankAccountUSD = "bank_account_usd"
	// MailingAddress is the ID of the US mailing address form.
	MailingAddress = "mailing_address"
)

// DefaultPairs are the pair rules applied to forms that declare none.
var DefaultPairs = []grouping.Pair{
	{"abartn", "accountNumber"},
	{"address.state", "address.postCode"},
}

// Patterns shared by the built-in forms.
const (
	RoutingNumberPattern = `^\d{9}$`
	ZipCodePattern       = `^\d{5}(-\d{4})?$`
)

var usStates = []domain.Option{
	{Key: "AL", Label: "Alabama"}, {Key: "AK", Label: "Alaska"}, {Key: "AZ", Label: "Arizona"},
	{Key: "AR", Label: "Arkansas"}, {Key: "CA", Label: "California"}, {Key: "CO", Label: "Colorado"},
	{Key: "CT", Label: "Connecticut"}, {Key: "DE", Label: "Delaware"}, {Key: "DC", Label: "District of Columbia"},
	{Key: "FL", Label: "Florida"}, {Key: "GA", Label: "Georgia"}, {Key: "HI", Label: "Hawaii"},
	{Key: "ID", Label: "Idaho"}, {Key: "IL", Label: "Illinois"}, {Key: "IN", Label: "Indiana"},
	{Key: "IA", Label: "Iowa"}, {Key: "KS", Label: "Kansas"}, {Key: "KY", Label: "Kentucky"},
	{Key: "LA", Label: "Louisiana"}, {Key: "ME", Label: "Maine"}, {Key: "MD", Label: "Maryland"},
	{Key: "MA", Label: "Massachusetts"}, {Key: "MI", Label: "Michigan"}, {Key: "MN", Label: "Minnesota"},
	{Key: "MS", Label: "Mississippi"}, {Key: "MO", Label: "Missouri"}, {Key: "MT", Label: "Montana"},
	{Key: "NE", Label: "Nebraska"}, {Key: "NV", Label: "Nevada"}, {Key: "NH", Label: "New Hampshire"},
	{Key: "NJ", Label: "New Jersey"}, {Key: "NM", Label: "New Mexico"}, {Key: "NY", Label: "New York"},
	{Key: "NC", Label: "North Carolina"}, {Key: "ND", Label: "North Dakota"}, {Key: "OH", Label: "Ohio"},
	{Key: "OK", Label: "Oklahoma"}, {Key: "OR", Label: "Oregon"}, {Key: "PA", Label: "Pennsylvania"},
	{Key: "RI", Label: "Rhode Island"}, {Key: "SC", Label: "South Carolina"}, {Key: "SD", Label: "South Dakota"},
	{Key: "TN", Label: "Tennessee"}, {Key: "TX", Label: "Texas"}, {Key: "UT", Label: "Utah"},
	{Key: "VT", Label: "Vermont"}, {Key: "VA", Label: "Virginia"}, {Key: "WA", Label: "Washington"},
	{Key: "WV", Label: "West Virginia"}, {Key: "WI", Label: "Wisconsin"}, {Key: "WY", Label: "Wyoming"},
}

// Builtin returns fresh copies of the built-in forms.
func Builtin() []domain.Form {
	return []domain.Form{bankAccountUSD(), mailingAddress()}
}

func bankAccountUSD() domain.Form {
	return domain.Form{
		ID:          BankAccountUSD,
		Title:       "Bank account",
		Description: "US bank account used for contractor payouts.",
		Fields: []domain.Field{
			{Key: "accountHolderName", Label: "Full name of the account holder", Type: domain.FieldTypeText, Required: true, MinLength: 2, MaxLength: 140},
			{Key: "abartn", Label: "ACH routing number", Type: domain.FieldTypeText, Required: true, Pattern: RoutingNumberPattern, Example: "111000025"},
			{Key: "accountNumber", Label: "Account number", Type: domain.FieldTypeText, Required: true, MinLength: 4, MaxLength: 17, Example: "12345678"},
			{Key: "accountType", Label: "Account type", Type: domain.FieldTypeRadio, Required: true, Options: []domain.Option{
				{Key: "CHECKING", Label: "Checking"},
				{Key: "SAVINGS", Label: "Savings"},
			}},
			{Key: "address.country", Label: "Country", Type: domain.FieldTypeSelect, Required: true, RefreshOnChange: true, Options: []domain.Option{
				{Key: "US", Label: "United States"},
			}},
			{Key: "address.city", Label: "City", Type: domain.FieldTypeText, Required: true},
			{Key: "address.firstLine", Label: "Street address, apt number", Type: domain.FieldTypeText, Required: true},
			{Key: "address.state", Label: "State", Type: domain.FieldTypeSelect, Required: true, Options: usStates},
			{Key: "address.postCode", Label: "ZIP code", Type: domain.FieldTypeText, Required: true, Pattern: ZipCodePattern, Example: "10001"},
		},
		Pairs: DefaultPairs,
	}.Clone()
}

func mailingAddress() domain.Form {
	return domain.Form{
		ID:    MailingAddress,
		Title: "Mailing address",
		Fields: []domain.Field{
			{Key: "address.streetAddress", Label: "Residential address (street name, number, apartment)", Type: domain.FieldTypeText, Required: true},
			{Key: "address.city", Label: "City", Type: domain.FieldTypeText, Required: true},
			{Key: "address.state", Label: "State", Type: domain.FieldTypeSelect, Required: true, Options: usStates},
			{Key: "address.postCode", Label: "ZIP code", Type: domain.FieldTypeText, Required: true, Pattern: ZipCodePattern, Example: "10001"},
		},
		Pairs: []grouping.Pair{{"address.state", "address.postCode"}},
	}.Clone()
}
