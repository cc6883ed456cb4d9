/*
 * © 2024 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package product

type Product string

const (
	ProductOpenSource           Product = "Snyk Open Source"
	ProductCode                 Product = "Snyk Code"
	ProductInfrastructureAsCode Product = "Snyk IaC"
	ProductContainer            Product = "Snyk Container"
	ProductUnknown              Product = ""
)

// All lists every known product in display order.
var All = []Product{ProductOpenSource, ProductCode, ProductInfrastructureAsCode, ProductContainer}

func (p Product) ToProductCodename() string {
	switch p {
	case ProductOpenSource:
		return "oss"
	case ProductCode:
		return "code"
	case ProductInfrastructureAsCode:
		return "iac"
	case ProductContainer:
		return "container"
	default:
		return ""
	}
}

func (p Product) IsKnown() bool {
	return p != ProductUnknown
}

func (p Product) String() string {
	if p == ProductUnknown {
		return "unknown"
	}
	return string(p)
}

// ToProduct maps a product codename as sent by the language server ("oss", "code", ...) to a Product.
// Anything else yields ProductUnknown.
func ToProduct(productName string) Product {
	switch productName {
	case "oss":
		return ProductOpenSource
	case "code":
		return ProductCode
	case "iac":
		return ProductInfrastructureAsCode
	case "container":
		return ProductContainer
	default:
		return ProductUnknown
	}
}

// FromSource maps the source field of a diagnostic to a Product. Both display names and codenames are
// accepted.
func FromSource(source string) Product {
	switch Product(source) {
	case ProductOpenSource, ProductCode, ProductInfrastructureAsCode, ProductContainer:
		return Product(source)
	default:
		return ToProduct(source)
	}
}
