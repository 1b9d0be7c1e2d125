package domain

// Identity is the authenticated caller as asserted by the identity provider.
type Identity struct {
	Subject string
	IsStaff bool
}

// CanSee reports whether the caller may access something owned by owner.
func (i Identity) CanSee(owner string) bool {
	return i.IsStaff || (i.Subject != "" && i.Subject == owner)
}
