// Package content holds the static site content served alongside the cart
// API: the footer and the hosted identity-provider settings.
package content

// Footer is the structured footer content the UI renders.
type Footer struct {
	LogoURL      string       `json:"logoUrl"`
	ContactInfo  string       `json:"contactInfo"`
	Columns      []LinkColumn `json:"columns"`
	SocialLinks  []SocialLink `json:"socialLinks"`
	CopyrightTag string       `json:"copyright"`
}

// LinkColumn is one titled column of footer links.
type LinkColumn struct {
	Title string `json:"title"`
	Links []Link `json:"links"`
}

// Link is a single footer entry; URL is empty for plain text entries.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// SocialLink points at a social profile.
type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// AuthSettings carries the hosted identity-provider configuration the UI
// wrapper needs. No token handling happens server-side; the redirect target
// is filled in per request from the caller's origin.
type AuthSettings struct {
	Domain   string `json:"domain"`
	ClientID string `json:"clientId"`
}

// DefaultFooter returns the storefront's footer content.
func DefaultFooter() Footer {
	return Footer{
		LogoURL:     "/lodo.00.png",
		ContactInfo: "17 Princess Road, London, Greater London NW1 8JR, UK",
		Columns: []LinkColumn{
			{
				Title: "Categories",
				Links: []Link{
					{Label: "Laptops & Computers"},
					{Label: "Cameras & Photography"},
					{Label: "Smart Phones & Tablets"},
					{Label: "Video Games & Consoles"},
					{Label: "Waterproof Headphones"},
				},
			},
			{
				Title: "Customer Care",
				Links: []Link{
					{Label: "My Account"},
					{Label: "Discount"},
					{Label: "Returns"},
					{Label: "Orders History"},
					{Label: "Order Tracking"},
				},
			},
			{
				Title: "Pages",
				Links: []Link{
					{Label: "FAQs", URL: "/faq"},
					{Label: "About Us", URL: "/aboutus"},
					{Label: "Category"},
					{Label: "Pre-Built Pages"},
					{Label: "Visual Composer Elements"},
					{Label: "WooCommerce Pages"},
				},
			},
		},
		SocialLinks: []SocialLink{
			{Network: "facebook", URL: "https://www.facebook.com/profile.php?id=100080688785803"},
			{Network: "instagram", URL: "https://www.instagram.com"},
			{Network: "linkedin", URL: "https://www.linkedin.com/in/affoo-bhai-37b929300/"},
		},
		CopyrightTag: "© 2024 Elitee Mart — All Rights Reserved",
	}
}
