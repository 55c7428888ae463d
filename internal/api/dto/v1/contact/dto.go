package contact

import "strings"

// ContactForm represents a contact form post. Field names match the HTML form.
type ContactForm struct {
	Name    string `form:"Name" binding:"max=200"`
	Email   string `form:"Email" binding:"max=320"`
	Message string `form:"Message" binding:"max=10000"`
	Submit  string `form:"submit"`
}

// ContactStatus is the body of the health endpoint's contact section.
type ContactStatus struct {
	Status    string `json:"status"`
	Transport string `json:"transport"`
	Version   string `json:"version"`
}

// Submitted reports whether the submit flag counts as set. present is whether
// the field was in the form at all; an empty value still counts.
func Submitted(value string, present bool) bool {
	if !present {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "off", "no":
		return false
	}
	return true
}
