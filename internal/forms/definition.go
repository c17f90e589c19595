// Package forms holds the declarative definitions of the two intake forms
// and the per-keystroke state reducer that normalizes applicant input.
//
// A single Definition drives everything downstream: client-side formatting
// and required-field gating, the section layout of the generated PDF, and
// the server-side email summary. The two form variants differ only in their
// field lists, so drift between the rendered form and the relayed summary
// cannot occur.
package forms

// Kind classifies a field for formatting and rendering purposes.
type Kind int

const (
	Text Kind = iota
	Email
	Date
	// Digits fields accept digit-only input of at most MaxDigitLen characters
	// (national ID, bank verification number, phone).
	Digits
	// Money fields store a thousands-grouped digit string, e.g. "1,234,567".
	Money
	Select
	MultiSelect
	// File fields hold the label of a chosen upload, never the bytes.
	File
)

// MaxDigitLen caps Digits fields. NIN, BVN and Nigerian phone numbers are
// all at most 11 digits.
const MaxDigitLen = 11

// Field describes one form input.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Options  []string
}

// Section is an ordered group of fields rendered under one heading, both on
// the form and in the PDF.
type Section struct {
	Title  string
	Fields []Field
}

// Definition is one complete intake form.
type Definition struct {
	// Type distinguishes the two variants, "Agent" or "Merchant". It prefixes
	// the generated PDF filename and selects the recipient list.
	Type  string
	Title string

	// PrimaryNameField names the field embedded in the PDF filename and used
	// in the declaration paragraph.
	PrimaryNameField string
	EmailField       string
	PhoneField       string

	Sections []Section
}

// FieldByName returns the field with the given name, searching all sections.
func (d *Definition) FieldByName(name string) (*Field, bool) {
	for si := range d.Sections {
		for fi := range d.Sections[si].Fields {
			if d.Sections[si].Fields[fi].Name == name {
				return &d.Sections[si].Fields[fi], true
			}
		}
	}
	return nil, false
}

// FileFields returns the file inputs in section order.
func (d *Definition) FileFields() []Field {
	var out []Field
	for _, sec := range d.Sections {
		for _, f := range sec.Fields {
			if f.Kind == File {
				out = append(out, f)
			}
		}
	}
	return out
}

// MoneyFields returns the monetary fields in section order.
func (d *Definition) MoneyFields() []Field {
	var out []Field
	for _, sec := range d.Sections {
		for _, f := range sec.Fields {
			if f.Kind == Money {
				out = append(out, f)
			}
		}
	}
	return out
}

var yesNo = []string{"YES", "NO"}

// Agent returns the POS agent application form.
func Agent() *Definition {
	return &Definition{
		Type:             "Agent",
		Title:            "AGENT POS APPLICATION FORM",
		PrimaryNameField: "fullName",
		EmailField:       "email",
		PhoneField:       "phone",
		Sections: []Section{
			{
				Title: "PERSONAL INFORMATION",
				Fields: []Field{
					{Name: "fullName", Label: "Full Name", Kind: Text, Required: true},
					{Name: "dob", Label: "Date of Birth", Kind: Date, Required: true},
					{Name: "gender", Label: "Gender", Kind: Select, Required: true, Options: []string{"Male", "Female"}},
					{Name: "stateOfOrigin", Label: "State of Origin", Kind: Text, Required: true},
					{Name: "lga", Label: "L.G.A", Kind: Text, Required: true},
					{Name: "idType", Label: "ID Type", Kind: Select, Required: true, Options: []string{"National ID", "Driver's License", "International Passport", "Voter's Card"}},
					{Name: "idNumber", Label: "ID Number (NIN)", Kind: Digits, Required: true},
					{Name: "bvn", Label: "BVN", Kind: Digits, Required: true},
					{Name: "phone", Label: "Phone Number", Kind: Digits, Required: true},
					{Name: "email", Label: "Email Address", Kind: Email, Required: true},
					{Name: "address", Label: "Residential Address", Kind: Text, Required: true},
				},
			},
			{
				Title: "BUSINESS INFORMATION",
				Fields: []Field{
					{Name: "businessName", Label: "Business Name", Kind: Text, Required: true},
					{Name: "businessAddress", Label: "Business Address", Kind: Text, Required: true},
					{Name: "businessType", Label: "Type of Business", Kind: Select, Required: true, Options: []string{"Retail", "Services", "Hospitality", "E-commerce", "Other"}},
					{Name: "cacRegNo", Label: "CAC Reg No", Kind: Text},
					{Name: "cacPaymentOption", Label: "CAC Payment Option", Kind: Select, Options: []string{"Self", "Olive Assisted"}},
					{Name: "yearsInBusiness", Label: "Years in Business", Kind: Text},
					{Name: "existingAgent", Label: "Existing POS Agent", Kind: Select, Required: true, Options: yesNo},
					{Name: "existingAgentBank", Label: "Current Bank/Provider", Kind: Text},
				},
			},
			{
				Title: "FINANCIAL INFORMATION",
				Fields: []Field{
					{Name: "accountNumber", Label: "Account Number", Kind: Text, Required: true},
					{Name: "accountName", Label: "Account Name", Kind: Text, Required: true},
					{Name: "accountType", Label: "Account Type", Kind: Select, Required: true, Options: []string{"Savings", "Current", "Corporate"}},
					{Name: "monthlyTurnover", Label: "Monthly Turnover", Kind: Money, Required: true},
					{Name: "dailyCashLimit", Label: "Daily Cash Limit", Kind: Money, Required: true},
				},
			},
			{
				Title: "POS REQUIREMENT",
				Fields: []Field{
					{Name: "posTerminalsNeeded", Label: "POS Terminals Needed", Kind: Text, Required: true},
					{Name: "posFeatures", Label: "POS Features", Kind: MultiSelect, Options: posFeatureOptions},
					{Name: "operatingPeriod", Label: "Operating Period", Kind: MultiSelect, Required: true, Options: []string{"Weekdays", "Weekends", "24/7"}},
					{Name: "debitConsent", Label: "Debit Consent", Kind: Select, Required: true, Options: []string{"yes", "no"}},
				},
			},
			{
				Title: "POS LOCATION INFORMATION",
				Fields: []Field{
					{Name: "primaryUsageLocation", Label: "Primary Usage Location", Kind: Text, Required: true},
					{Name: "locationAddress", Label: "Primary Usage Location Address", Kind: Text, Required: true},
					{Name: "terminalLocation", Label: "Terminal Location", Kind: MultiSelect, Options: []string{"Shop", "Kiosk", "Mobile", "Market Stall", "Office"}},
					{Name: "electricitySupply", Label: "Electricity Supply", Kind: Select, Options: yesNo},
					{Name: "backupPower", Label: "Backup Power", Kind: Select, Options: yesNo},
				},
			},
			{
				Title: "DECLARATION AND SIGNATURE",
				Fields: []Field{
					{Name: "date", Label: "Date", Kind: Date, Required: true},
					{Name: "relationshipManager", Label: "Relationship Manager", Kind: Select},
					{Name: "relationshipManagerBranch", Label: "Relationship Manager Branch", Kind: Select},
				},
			},
			{
				Title: "ATTACHMENTS",
				Fields: []Field{
					{Name: "idProof", Label: "ID Proof", Kind: File},
					{Name: "addressProof", Label: "Address Proof", Kind: File},
					{Name: "businessRegistration", Label: "Business Registration", Kind: File},
					{Name: "signature", Label: "Signature", Kind: File, Required: true},
				},
			},
		},
	}
}

// Merchant returns the merchant POS application form.
func Merchant() *Definition {
	return &Definition{
		Type:             "Merchant",
		Title:            "MERCHANT (POS) APPLICATION FORM",
		PrimaryNameField: "businessName",
		EmailField:       "businessEmail",
		PhoneField:       "businessPhone",
		Sections: []Section{
			{
				Title: "BUSINESS INFORMATION",
				Fields: []Field{
					{Name: "businessName", Label: "Business Name", Kind: Text, Required: true},
					{Name: "tradingName", Label: "Trading Name", Kind: Text},
					{Name: "businessAddress", Label: "Business Address", Kind: Text, Required: true},
					{Name: "city", Label: "City/Town", Kind: Text, Required: true},
					{Name: "state", Label: "State", Kind: Text, Required: true},
					{Name: "lga", Label: "L.G.A", Kind: Text, Required: true},
					{Name: "businessPhone", Label: "Business Phone Number", Kind: Digits, Required: true},
					{Name: "businessEmail", Label: "Business Email Address", Kind: Email, Required: true},
					{Name: "businessWebsite", Label: "Business Website", Kind: Text},
					{Name: "businessType", Label: "Business Type", Kind: Select, Required: true, Options: []string{"Retail", "Services", "Hospitality", "E-commerce", "Other"}},
					{Name: "cacRegNo", Label: "CAC Registration Number", Kind: Text},
					{Name: "tin", Label: "TIN", Kind: Text},
					{Name: "natureOfBusiness", Label: "Nature of Business", Kind: Text, Required: true},
				},
			},
			{
				Title: "BUSINESS OWNER/REPRESENTATIVE DETAILS",
				Fields: []Field{
					{Name: "ownerName", Label: "Full Name", Kind: Text, Required: true},
					{Name: "ownerTitle", Label: "Title/Position", Kind: Text, Required: true},
					{Name: "ownerPhone", Label: "Phone Number", Kind: Digits, Required: true},
					{Name: "ownerIdNo", Label: "ID Number", Kind: Digits, Required: true},
					{Name: "ownerEmail", Label: "Email Address", Kind: Email, Required: true},
				},
			},
			{
				Title: "BANK ACCOUNT INFORMATION",
				Fields: []Field{
					{Name: "bankName", Label: "Bank Name", Kind: Text},
					{Name: "accountName", Label: "Account Name", Kind: Text, Required: true},
					{Name: "accountNumber", Label: "Account Number", Kind: Text, Required: true},
					{Name: "accountType", Label: "Account Type", Kind: Select, Required: true, Options: []string{"Savings", "Current", "Corporate"}},
				},
			},
			{
				Title: "POS REQUIREMENT",
				Fields: []Field{
					{Name: "posTerminalsNeeded", Label: "No of POS Terminals Needed", Kind: Text, Required: true},
					{Name: "monthlyTransactionVolume", Label: "Expected Monthly Transaction Volume", Kind: Money, Required: true},
					{Name: "averageTransactionSize", Label: "Expected Average Transaction Size", Kind: Money, Required: true},
					{Name: "posFeatures", Label: "Preferred POS Features", Kind: MultiSelect, Options: posFeatureOptions},
					{Name: "existingAgent", Label: "Existing POS Agent", Kind: Select, Required: true, Options: yesNo},
					{Name: "existingAgentBank", Label: "Current Bank/Provider", Kind: Text},
					{Name: "debitConsent", Label: "Debit Consent (POS caution fee)", Kind: Select, Required: true, Options: []string{"yes", "no"}},
				},
			},
			{
				Title: "POS LOCATION INFORMATION",
				Fields: []Field{
					{Name: "primaryUsageLocation", Label: "Primary Place of Usage", Kind: Text, Required: true},
					{Name: "locationAddress", Label: "Location Address", Kind: Text, Required: true},
					{Name: "hasMultipleStores", Label: "Has Multiple Stores", Kind: Select, Required: true, Options: yesNo},
					{Name: "additionalLocations", Label: "Additional Locations", Kind: Text},
					{Name: "operatingPeriod", Label: "Operating Period", Kind: MultiSelect, Required: true, Options: []string{"Weekdays", "Weekends", "24/7"}},
				},
			},
			{
				Title: "REFERENCES",
				Fields: []Field{
					{Name: "bankReferenceName", Label: "Bank Reference Contact Name", Kind: Text, Required: true},
					{Name: "bankReferencePhone", Label: "Bank Reference Phone No", Kind: Digits, Required: true},
					{Name: "tradeReferenceName", Label: "Trade Reference Contact Name", Kind: Text},
					{Name: "tradeReferencePhone", Label: "Trade Reference Phone No", Kind: Digits},
				},
			},
			{
				Title: "DECLARATION",
				Fields: []Field{
					{Name: "relationshipManager", Label: "Relationship Manager", Kind: Select},
					{Name: "relationshipManagerBranch", Label: "Relationship Manager Branch", Kind: Select},
				},
			},
			{
				Title: "ATTACHMENTS",
				Fields: []Field{
					{Name: "cacDocument", Label: "CAC Registration Document", Kind: File},
					{Name: "idDocument", Label: "Valid ID Document", Kind: File, Required: true},
					{Name: "proofOfAddress", Label: "Proof of Address (Utility Bill)", Kind: File, Required: true},
					{Name: "signature", Label: "Business Owner Signature", Kind: File, Required: true},
				},
			},
		},
	}
}

var posFeatureOptions = []string{
	"Contactless Payment",
	"Mobile payment (NFC, QR code)",
	"Card Payments",
	"Transfer Services",
	"Bill Payments",
	"Airtime Purchase",
	"Cash Withdrawal",
	"Balance Inquiry",
	"Receipt printing",
	"Inventory Management",
	"Other",
}
