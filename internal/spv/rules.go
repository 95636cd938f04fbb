// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package spv maps jurisdictions to the legal forms an SPV may take there.
package spv

// Complexity rates how demanding it is to set up an SPV in a country.
type Complexity string

const (
	Low    Complexity = "low"
	Medium Complexity = "medium"
	High   Complexity = "high"
)

// LegalFormRule describes the SPV options for one country.
type LegalFormRule struct {
	Country          string
	LegalForms       []string // first entry is the default
	DefaultRole      string
	DirectorRequired bool // a locally resident director is mandatory
	Complexity       Complexity
}

var rules = map[string]LegalFormRule{
	"IT": {
		Country:          "IT",
		LegalForms:       []string{"SRL SPV immobiliare", "SPA", "SRL", "Società di cartolarizzazione (L.130/99)"},
		DefaultRole:      "issuer",
		DirectorRequired: true,
		Complexity:       Medium,
	},
	"US": {
		Country:     "US",
		LegalForms:  []string{"Delaware LLC", "Delaware Series LLC", "C-Corp"},
		DefaultRole: "issuer",
		Complexity:  Low,
	},
	"GB": {
		Country:     "GB",
		LegalForms:  []string{"Private Limited Company (Ltd)", "LLP", "PLC"},
		DefaultRole: "issuer",
		Complexity:  Low,
	},
	"DE": {
		Country:          "DE",
		LegalForms:       []string{"GmbH", "UG (haftungsbeschränkt)", "GmbH & Co. KG"},
		DefaultRole:      "issuer",
		DirectorRequired: true,
		Complexity:       High,
	},
	"FR": {
		Country:          "FR",
		LegalForms:       []string{"SAS", "SARL", "SCI"},
		DefaultRole:      "issuer",
		DirectorRequired: true,
		Complexity:       Medium,
	},
	"ES": {
		Country:          "ES",
		LegalForms:       []string{"SL", "SA", "Fondo de Titulización"},
		DefaultRole:      "issuer",
		DirectorRequired: true,
		Complexity:       Medium,
	},
	"CH": {
		Country:          "CH",
		LegalForms:       []string{"AG", "GmbH"},
		DefaultRole:      "issuer",
		DirectorRequired: true,
		Complexity:       High,
	},
	"LU": {
		Country:          "LU",
		LegalForms:       []string{"Securitisation Vehicle (SV)", "SARL", "SCSp"},
		DefaultRole:      "securitisation_vehicle",
		DirectorRequired: true,
		Complexity:       High,
	},
	"IE": {
		Country:          "IE",
		LegalForms:       []string{"Section 110 DAC", "Private Company Limited by Shares (LTD)"},
		DefaultRole:      "issuer",
		DirectorRequired: true,
		Complexity:       Medium,
	},
	"NL": {
		Country:     "NL",
		LegalForms:  []string{"BV", "Stichting"},
		DefaultRole: "holding",
		Complexity:  Medium,
	},
	"EE": {
		Country:     "EE",
		LegalForms:  []string{"OÜ", "AS"},
		DefaultRole: "issuer",
		Complexity:  Low,
	},
	"AE": {
		Country:     "AE",
		LegalForms:  []string{"ADGM SPV", "DIFC Prescribed Company"},
		DefaultRole: "holding",
		Complexity:  Medium,
	},
	"SG": {
		Country:          "SG",
		LegalForms:       []string{"Private Limited (Pte. Ltd.)", "Variable Capital Company (VCC)"},
		DefaultRole:      "issuer",
		DirectorRequired: true,
		Complexity:       Medium,
	},
}
