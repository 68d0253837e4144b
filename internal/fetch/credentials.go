package fetch

// Credentials are the userinfo extracted from a source authority
type Credentials struct {
	Username string
	Password string
	// HasPassword distinguishes "user:@host" from "user@host"; both carry an empty Password
	HasPassword bool
}

// ExtractCredentials splits userinfo off d. It returns nil credentials when
// the authority carried none, and a copy of d whose authority is host[:port].
func ExtractCredentials(d Descriptor) (*Credentials, Descriptor) {
	if d.user == nil {
		return nil, d
	}

	password, hasPassword := d.user.Password()
	creds := &Credentials{
		Username:    d.user.Username(),
		Password:    password,
		HasPassword: hasPassword,
	}
	return creds, d.withoutUserinfo()
}

func (c *Credentials) username() string {
	if c == nil {
		return ""
	}
	return c.Username
}

func (c *Credentials) password() string {
	if c == nil {
		return ""
	}
	return c.Password
}
