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

package preset

import "strings"

// Country is a jurisdiction the pro wizard can place an SPV in.
type Country struct {
	Code     string // ISO 3166-1 alpha-2
	Name     string
	Region   string
	Currency string
}

// Countries lists the supported jurisdictions.
var Countries = []Country{
	{Code: "IT", Name: "Italy", Region: "EU", Currency: "EUR"},
	{Code: "US", Name: "United States", Region: "Americas", Currency: "USD"},
	{Code: "GB", Name: "United Kingdom", Region: "Europe", Currency: "GBP"},
	{Code: "DE", Name: "Germany", Region: "EU", Currency: "EUR"},
	{Code: "FR", Name: "France", Region: "EU", Currency: "EUR"},
	{Code: "ES", Name: "Spain", Region: "EU", Currency: "EUR"},
	{Code: "CH", Name: "Switzerland", Region: "Europe", Currency: "CHF"},
	{Code: "LU", Name: "Luxembourg", Region: "EU", Currency: "EUR"},
	{Code: "IE", Name: "Ireland", Region: "EU", Currency: "EUR"},
	{Code: "NL", Name: "Netherlands", Region: "EU", Currency: "EUR"},
	{Code: "EE", Name: "Estonia", Region: "EU", Currency: "EUR"},
	{Code: "AE", Name: "United Arab Emirates", Region: "Middle East", Currency: "AED"},
	{Code: "SG", Name: "Singapore", Region: "Asia", Currency: "SGD"},
}

// LookupCountry returns the country with the given code, or nil.
func LookupCountry(code string) *Country {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range Countries {
		if Countries[i].Code == code {
			return &Countries[i]
		}
	}
	return nil
}

// CountryCodes returns all supported codes in table order.
func CountryCodes() []string {
	out := make([]string, 0, len(Countries))
	for _, c := range Countries {
		out = append(out, c.Code)
	}
	return out
}
